package model

import (
	"time"

	"gorm.io/gorm"
)

type ExerciseSet struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	ClassID     uint   `json:"class_id" gorm:"index"`
	CreatorID   uint   `json:"creator_id" gorm:"index"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	// ShuffleQuestions asks clients to randomize question order per attempt;
	// the stored order_index is the canonical order.
	ShuffleQuestions bool `json:"shuffle_questions" gorm:"default:false"`
	// MaxAttempts of 0 means unlimited.
	MaxAttempts int            `json:"max_attempts" gorm:"default:0"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:ExerciseSetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

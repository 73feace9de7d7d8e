package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeMultipleChoice      = "multiple_choice"
	QuestionTypeTrueFalse           = "true_false"
	QuestionTypeEssay               = "essay"
	QuestionTypeSentenceArrangement = "sentence_arrangement"
)

type Question struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	ExerciseSetID uint   `json:"exercise_set_id" gorm:"not null;index"`
	Text          string `json:"text" gorm:"type:text;not null"`
	Type          string `json:"type" gorm:"not null"` // multiple_choice, true_false, essay, sentence_arrangement
	Points        int    `json:"points" gorm:"not null;default:1"`
	OrderIndex    int    `json:"order_index" gorm:"not null"`
	// CompleteSentence holds the full target sentence for sentence_arrangement
	// questions; the blank words and distractor words live in Options.
	CompleteSentence *string        `json:"complete_sentence,omitempty" gorm:"type:text"`
	Options          []Option       `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type Option struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"not null"`
	// IsBlankWord marks a word tile of a sentence_arrangement question as part
	// of the correct fill sequence; false means it is a distractor.
	IsBlankWord bool           `json:"is_blank_word" gorm:"default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

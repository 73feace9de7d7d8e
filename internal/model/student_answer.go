package model

import (
	"time"

	"gorm.io/gorm"
)

type StudentAnswer struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	AttemptID        uint           `json:"attempt_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	QuestionID       uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	Question         Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOptionID *uint          `json:"selected_option_id,omitempty"`
	TextAnswer       string         `json:"text_answer,omitempty" gorm:"type:text"`
	IsCorrect        bool           `json:"is_correct"`
	PointsEarned     int            `json:"points_earned" gorm:"default:0"`
	AnsweredAt       time.Time      `json:"answered_at"`
	Feedback         *AIFeedback    `json:"feedback,omitempty" gorm:"foreignKey:StudentAnswerID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusSubmitted  = "submitted"
)

type ExerciseAttempt struct {
	ID            uint `gorm:"primarykey" json:"id"`
	ExerciseSetID uint `json:"exercise_set_id" gorm:"not null;index"`
	StudentID     uint `json:"student_id" gorm:"not null;index"`
	AttemptNumber int  `json:"attempt_number" gorm:"not null"`
	// Status is in_progress or submitted. At most one in_progress row may
	// exist per (exercise_set_id, student_id); a partial unique index
	// enforces this, see database migration in cmd/main.go.
	Status           string          `json:"status" gorm:"not null;default:'in_progress'"`
	StartedAt        time.Time       `json:"started_at" gorm:"autoCreateTime"`
	SubmittedAt      *time.Time      `json:"submitted_at,omitempty"`
	TotalScore       int             `json:"total_score" gorm:"default:0"`
	MaxPossibleScore int             `json:"max_possible_score" gorm:"default:0"`
	Percentage       float64         `json:"percentage" gorm:"default:0"`
	TimeSpentMinutes int             `json:"time_spent_minutes" gorm:"default:0"`
	Answers          []StudentAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

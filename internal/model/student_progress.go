package model

import (
	"time"

	"gorm.io/gorm"
)

// StudentProgress is the per-(student, exercise set) analytics aggregate.
// It is updated best-effort when an attempt is completed.
type StudentProgress struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	StudentID      uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_student_set"`
	ExerciseSetID  uint           `json:"exercise_set_id" gorm:"not null;uniqueIndex:idx_student_set"`
	BestScore      int            `json:"best_score" gorm:"default:0"`
	BestPercentage float64        `json:"best_percentage" gorm:"default:0"`
	AttemptsUsed   int            `json:"attempts_used" gorm:"default:0"`
	LastAttemptAt  time.Time      `json:"last_attempt_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

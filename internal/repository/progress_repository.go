package repository

import (
	"time"

	"github.com/minhlq/lingolab/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	// RecordCompletion folds a finished attempt into the per-pair aggregate.
	RecordCompletion(studentID, setID uint, score int, percentage float64, at time.Time) error
	FindByStudentAndSet(studentID, setID uint) (*model.StudentProgress, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) RecordCompletion(studentID, setID uint, score int, percentage float64, at time.Time) error {
	progress := model.StudentProgress{
		StudentID:      studentID,
		ExerciseSetID:  setID,
		BestScore:      score,
		BestPercentage: percentage,
		AttemptsUsed:   1,
		LastAttemptAt:  at,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "exercise_set_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"best_score":      gorm.Expr("GREATEST(student_progresses.best_score, ?)", score),
			"best_percentage": gorm.Expr("GREATEST(student_progresses.best_percentage, ?)", percentage),
			"attempts_used":   gorm.Expr("student_progresses.attempts_used + 1"),
			"last_attempt_at": at,
			"updated_at":      time.Now(),
		}),
	}).Create(&progress).Error
}

func (r *progressRepository) FindByStudentAndSet(studentID, setID uint) (*model.StudentProgress, error) {
	var progress model.StudentProgress
	err := r.db.Where("student_id = ? AND exercise_set_id = ?", studentID, setID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

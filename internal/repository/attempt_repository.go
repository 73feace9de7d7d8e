package repository

import (
	"github.com/minhlq/lingolab/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.ExerciseAttempt) error
	Update(attempt *model.ExerciseAttempt) error
	FindByID(id uint) (*model.ExerciseAttempt, error)
	FindByIDWithAnswers(id uint) (*model.ExerciseAttempt, error)
	// FindInProgress returns the newest in_progress attempt for the pair, or
	// gorm.ErrRecordNotFound.
	FindInProgress(setID, studentID uint) (*model.ExerciseAttempt, error)
	MaxAttemptNumber(setID, studentID uint) (int, error)
	CountBySetAndStudent(setID, studentID uint) (int64, error)
	FindAllBySetAndStudent(setID, studentID uint) ([]model.ExerciseAttempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.ExerciseAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) Update(attempt *model.ExerciseAttempt) error {
	return r.db.Save(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.ExerciseAttempt, error) {
	var attempt model.ExerciseAttempt
	err := r.db.First(&attempt, id).Error
	return &attempt, err
}

func (r *attemptRepository) FindByIDWithAnswers(id uint) (*model.ExerciseAttempt, error) {
	var attempt model.ExerciseAttempt
	err := r.db.
		Preload("Answers.Question").
		Preload("Answers.Feedback").
		First(&attempt, id).Error
	return &attempt, err
}

func (r *attemptRepository) FindInProgress(setID, studentID uint) (*model.ExerciseAttempt, error) {
	var attempt model.ExerciseAttempt
	err := r.db.
		Where("exercise_set_id = ? AND student_id = ? AND status = ?", setID, studentID, model.AttemptStatusInProgress).
		Order("attempt_number DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) MaxAttemptNumber(setID, studentID uint) (int, error) {
	var max *int
	err := r.db.Model(&model.ExerciseAttempt{}).
		Where("exercise_set_id = ? AND student_id = ?", setID, studentID).
		Select("MAX(attempt_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *attemptRepository) CountBySetAndStudent(setID, studentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ExerciseAttempt{}).
		Where("exercise_set_id = ? AND student_id = ?", setID, studentID).
		Count(&count).Error
	return count, err
}

func (r *attemptRepository) FindAllBySetAndStudent(setID, studentID uint) ([]model.ExerciseAttempt, error) {
	var attempts []model.ExerciseAttempt
	err := r.db.
		Where("exercise_set_id = ? AND student_id = ?", setID, studentID).
		Order("attempt_number DESC").
		Find(&attempts).Error
	return attempts, err
}

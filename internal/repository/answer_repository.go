package repository

import (
	"github.com/minhlq/lingolab/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	// Upsert writes the answer keyed on (attempt_id, question_id); a
	// resubmission for the same question overwrites the earlier row.
	Upsert(answer *model.StudentAnswer) error
	FindByID(id uint) (*model.StudentAnswer, error)
	FindByIDWithQuestion(id uint) (*model.StudentAnswer, error)
	FindByAttemptID(attemptID uint) ([]model.StudentAnswer, error)
	FindByAttemptAndQuestion(attemptID, questionID uint) (*model.StudentAnswer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Upsert(answer *model.StudentAnswer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_option_id", "text_answer", "is_correct", "points_earned", "answered_at", "updated_at",
		}),
	}).Create(answer).Error
}

func (r *answerRepository) FindByID(id uint) (*model.StudentAnswer, error) {
	var answer model.StudentAnswer
	err := r.db.First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindByIDWithQuestion(id uint) (*model.StudentAnswer, error) {
	var answer model.StudentAnswer
	err := r.db.Preload("Question.Options").First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindByAttemptID(attemptID uint) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	err := r.db.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}

func (r *answerRepository) FindByAttemptAndQuestion(attemptID, questionID uint) (*model.StudentAnswer, error) {
	var answer model.StudentAnswer
	err := r.db.Where("attempt_id = ? AND question_id = ?", attemptID, questionID).First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

package repository

import (
	"github.com/minhlq/lingolab/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedbackRepository interface {
	// Upsert writes the feedback keyed on student_answer_id; regenerating
	// feedback for an answer never creates a duplicate row.
	Upsert(feedback *model.AIFeedback) error
	FindByAnswerID(answerID uint) (*model.AIFeedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Upsert(feedback *model.AIFeedback) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_answer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"feedback_type", "feedback_text", "explanation", "reference_materials",
			"ai_model", "processing_time_ms", "success", "updated_at",
		}),
	}).Create(feedback).Error
}

func (r *feedbackRepository) FindByAnswerID(answerID uint) (*model.AIFeedback, error) {
	var feedback model.AIFeedback
	err := r.db.Where("student_answer_id = ?", answerID).First(&feedback).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

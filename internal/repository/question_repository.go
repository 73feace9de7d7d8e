package repository

import (
	"github.com/minhlq/lingolab/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDWithOptions(id uint) (*model.Question, error)
	FindBySetID(setID uint) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDWithOptions(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.order_index ASC")
		}).
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindBySetID(setID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("exercise_set_id = ?", setID).Order("order_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}

package repository

import (
	"github.com/minhlq/lingolab/internal/model"
	"gorm.io/gorm"
)

type ExerciseSetRepository interface {
	Create(set *model.ExerciseSet) error
	FindByID(id uint) (*model.ExerciseSet, error)
	FindByIDWithQuestions(id uint) (*model.ExerciseSet, error)
	FindAllWithQuestionCount() ([]struct {
		model.ExerciseSet
		QuestionCount int
	}, error)
}

type exerciseSetRepository struct {
	db *gorm.DB
}

func NewExerciseSetRepository(db *gorm.DB) ExerciseSetRepository {
	return &exerciseSetRepository{db: db}
}

func (r *exerciseSetRepository) Create(set *model.ExerciseSet) error {
	// GORM creates associated questions and options when populated.
	return r.db.Create(set).Error
}

func (r *exerciseSetRepository) FindByID(id uint) (*model.ExerciseSet, error) {
	var set model.ExerciseSet
	err := r.db.First(&set, id).Error
	return &set, err
}

func (r *exerciseSetRepository) FindByIDWithQuestions(id uint) (*model.ExerciseSet, error) {
	var set model.ExerciseSet
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_index ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.order_index ASC")
		}).
		First(&set, id).Error
	return &set, err
}

func (r *exerciseSetRepository) FindAllWithQuestionCount() ([]struct {
	model.ExerciseSet
	QuestionCount int
}, error) {
	var results []struct {
		model.ExerciseSet
		QuestionCount int
	}
	err := r.db.Model(&model.ExerciseSet{}).
		Select("exercise_sets.*, (SELECT COUNT(*) FROM questions WHERE questions.exercise_set_id = exercise_sets.id AND questions.deleted_at IS NULL) as question_count").
		Where("exercise_sets.deleted_at IS NULL").
		Order("exercise_sets.created_at DESC").
		Scan(&results).Error
	return results, err
}

package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/minhlq/lingolab/internal/dto"
	"github.com/minhlq/lingolab/internal/model"
	"github.com/minhlq/lingolab/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminExerciseService interface {
	CreateExerciseSet(req dto.ExerciseSetCreateDTO) (*dto.ExerciseSetDetailDTO, error)
}

type adminExerciseService struct {
	setRepo repository.ExerciseSetRepository
}

func NewAdminExerciseService(setRepo repository.ExerciseSetRepository) AdminExerciseService {
	return &adminExerciseService{setRepo: setRepo}
}

func (s *adminExerciseService) CreateExerciseSet(req dto.ExerciseSetCreateDTO) (*dto.ExerciseSetDetailDTO, error) {
	orderMap := make(map[int]bool)
	var questions []model.Question

	for _, qDto := range req.Questions {
		if orderMap[qDto.OrderIndex] {
			return nil, fmt.Errorf("duplicate order_index %d found in questions", qDto.OrderIndex)
		}
		orderMap[qDto.OrderIndex] = true

		if err := validateQuestion(qDto); err != nil {
			return nil, err
		}

		var question model.Question
		copier.Copy(&question, &qDto)
		questions = append(questions, question)
	}

	set := model.ExerciseSet{
		ClassID:          req.ClassID,
		CreatorID:        req.CreatorID,
		Title:            req.Title,
		Description:      req.Description,
		ShuffleQuestions: req.ShuffleQuestions,
		MaxAttempts:      req.MaxAttempts,
		Questions:        questions,
	}

	if err := s.setRepo.Create(&set); err != nil {
		log.Error().Err(err).Msg("Failed to create exercise set in database")
		return nil, fmt.Errorf("database error creating exercise set: %w", err)
	}

	created, err := s.setRepo.FindByIDWithQuestions(set.ID)
	if err != nil {
		log.Error().Err(err).Uint("setID", set.ID).Msg("Failed to reload newly created exercise set")
		var fallback dto.ExerciseSetDetailDTO
		copier.Copy(&fallback, &set)
		return &fallback, nil
	}

	var resp dto.ExerciseSetDetailDTO
	if err := copier.Copy(&resp, created); err != nil {
		log.Error().Err(err).Msg("Failed to copy created ExerciseSet to DTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func validateQuestion(q dto.QuestionCreateDTO) error {
	correctCount := 0
	blankCount := 0
	for _, o := range q.Options {
		if o.IsCorrect {
			correctCount++
		}
		if o.IsBlankWord {
			blankCount++
		}
	}

	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("multiple_choice question %q needs at least 2 options", q.Text)
		}
		if correctCount != 1 {
			return fmt.Errorf("multiple_choice question %q needs exactly 1 correct option, got %d", q.Text, correctCount)
		}
	case model.QuestionTypeTrueFalse:
		if len(q.Options) != 2 {
			return fmt.Errorf("true_false question %q needs exactly 2 options, got %d", q.Text, len(q.Options))
		}
		if correctCount != 1 {
			return fmt.Errorf("true_false question %q needs exactly 1 correct option, got %d", q.Text, correctCount)
		}
	case model.QuestionTypeSentenceArrangement:
		if q.CompleteSentence == nil || *q.CompleteSentence == "" {
			return fmt.Errorf("sentence_arrangement question %q requires complete_sentence", q.Text)
		}
		if blankCount == 0 {
			return fmt.Errorf("sentence_arrangement question %q needs at least 1 blank word tile", q.Text)
		}
	case model.QuestionTypeEssay:
		if len(q.Options) != 0 {
			return fmt.Errorf("essay question %q must not have options", q.Text)
		}
	}
	return nil
}

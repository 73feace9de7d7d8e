package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/minhlq/lingolab/internal/dto"
	"github.com/minhlq/lingolab/internal/repository"
	"github.com/rs/zerolog/log"
)

type ExerciseService interface {
	GetAllSets() ([]dto.ExerciseSetSummaryDTO, error)
	GetSetDetails(setID uint) (*dto.ExerciseSetDetailDTO, error)
}

type exerciseService struct {
	setRepo repository.ExerciseSetRepository
}

func NewExerciseService(setRepo repository.ExerciseSetRepository) ExerciseService {
	return &exerciseService{setRepo: setRepo}
}

func (s *exerciseService) GetAllSets() ([]dto.ExerciseSetSummaryDTO, error) {
	setsWithCount, err := s.setRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list exercise sets with question count")
		return nil, fmt.Errorf("error fetching exercise sets: %w", err)
	}

	var dtos []dto.ExerciseSetSummaryDTO
	for _, swc := range setsWithCount {
		dtos = append(dtos, dto.ExerciseSetSummaryDTO{
			ID:            swc.ExerciseSet.ID,
			ClassID:       swc.ExerciseSet.ClassID,
			Title:         swc.ExerciseSet.Title,
			Description:   swc.ExerciseSet.Description,
			QuestionCount: swc.QuestionCount,
			MaxAttempts:   swc.ExerciseSet.MaxAttempts,
			CreatedAt:     swc.ExerciseSet.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *exerciseService) GetSetDetails(setID uint) (*dto.ExerciseSetDetailDTO, error) {
	set, err := s.setRepo.FindByIDWithQuestions(setID)
	if err != nil {
		log.Error().Err(err).Uint("setID", setID).Msg("Failed to get exercise set details")
		return nil, fmt.Errorf("exercise set not found with ID %d: %w", setID, err)
	}

	var resp dto.ExerciseSetDetailDTO
	if err := copier.Copy(&resp, set); err != nil {
		log.Error().Err(err).Msg("Failed to copy ExerciseSet model to DTO")
		return nil, fmt.Errorf("error preparing exercise set response: %w", err)
	}
	return &resp, nil
}

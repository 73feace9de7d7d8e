package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minhlq/lingolab/internal/dto"
	"github.com/minhlq/lingolab/internal/model"
	"github.com/minhlq/lingolab/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AnswerService interface {
	// Record validates and upserts one answer against an in-progress attempt,
	// computing correctness and points. On success it signals the feedback
	// service asynchronously; a signalling failure never fails the recording.
	Record(attemptID uint, req dto.RecordAnswerRequest) (*dto.RecordAnswerResponse, error)
}

type answerService struct {
	attemptRepo  repository.AttemptRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	feedbackSvc  FeedbackService
}

func NewAnswerService(
	attemptRepo repository.AttemptRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	feedbackSvc FeedbackService,
) AnswerService {
	return &answerService{
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		feedbackSvc:  feedbackSvc,
	}
}

func (s *answerService) Record(attemptID uint, req dto.RecordAnswerRequest) (*dto.RecordAnswerResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to load attempt %d: %w", attemptID, err)
	}
	if attempt.Status != model.AttemptStatusInProgress {
		return nil, ErrAttemptSubmitted
	}

	question, err := s.questionRepo.FindByIDWithOptions(req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %d: %w", req.QuestionID, err)
	}
	if question.ExerciseSetID != attempt.ExerciseSetID {
		return nil, ErrQuestionNotInAttempt
	}

	isCorrect := *req.IsCorrect
	// When an option id is supplied, the stored correctness flag wins over
	// whatever a stale client sent.
	if req.SelectedOptionID != nil {
		for _, opt := range question.Options {
			if opt.ID == *req.SelectedOptionID {
				isCorrect = opt.IsCorrect
				break
			}
		}
	}

	pointsEarned := 0
	if isCorrect {
		pointsEarned = question.Points
	}

	answer := &model.StudentAnswer{
		AttemptID:        attemptID,
		QuestionID:       req.QuestionID,
		SelectedOptionID: req.SelectedOptionID,
		TextAnswer:       req.TextAnswer,
		IsCorrect:        isCorrect,
		PointsEarned:     pointsEarned,
		AnsweredAt:       time.Now(),
	}
	if err := s.answerRepo.Upsert(answer); err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	// Fire-and-forget: feedback generation is decoupled from scoring.
	go func(answerID uint) {
		if _, err := s.feedbackSvc.GenerateForAnswer(context.Background(), answerID); err != nil {
			log.Error().Err(err).Uint("answerID", answerID).Msg("Async feedback generation failed")
		}
	}(answer.ID)

	return &dto.RecordAnswerResponse{
		AnswerID:     answer.ID,
		IsCorrect:    isCorrect,
		PointsEarned: pointsEarned,
	}, nil
}

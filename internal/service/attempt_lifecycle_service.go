package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/minhlq/lingolab/internal/dto"
	"github.com/minhlq/lingolab/internal/model"
	"github.com/minhlq/lingolab/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// conflictBackoff is the pause before re-querying after a duplicate-key
// violation on attempt creation.
const conflictBackoff = 50 * time.Millisecond

type AttemptLifecycleService interface {
	// CreateOrResume returns the student's in-progress attempt for the set,
	// creating one if none exists. Concurrent duplicate requests resolve to
	// the same attempt; the conflict is never surfaced to the caller.
	CreateOrResume(studentID, setID uint) (*dto.AttemptResponse, error)
	// Complete finalizes the attempt: aggregates scores, stamps submission
	// time, and transitions in_progress -> submitted. Completing an already
	// submitted attempt is a no-op returning the stored totals.
	Complete(attemptID uint) (*dto.CompleteAttemptResponse, error)
	GetAttemptDetails(attemptID uint) (*dto.AttemptDetailDTO, error)
	GetStudentAttempts(setID, studentID uint) ([]dto.AttemptSummaryDTO, error)
}

type attemptLifecycleService struct {
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	setRepo      repository.ExerciseSetRepository
	progressRepo repository.ProgressRepository
	gradeBand    GradeBandService
}

func NewAttemptLifecycleService(
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	setRepo repository.ExerciseSetRepository,
	progressRepo repository.ProgressRepository,
	gradeBand GradeBandService,
) AttemptLifecycleService {
	return &attemptLifecycleService{
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		setRepo:      setRepo,
		progressRepo: progressRepo,
		gradeBand:    gradeBand,
	}
}

func (s *attemptLifecycleService) CreateOrResume(studentID, setID uint) (*dto.AttemptResponse, error) {
	set, err := s.setRepo.FindByID(setID)
	if err != nil {
		return nil, fmt.Errorf("exercise set not found with ID %d: %w", setID, err)
	}

	if existing, err := s.attemptRepo.FindInProgress(setID, studentID); err == nil {
		return attemptResponse(existing, true), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up in-progress attempt: %w", err)
	}

	if set.MaxAttempts > 0 {
		used, err := s.attemptRepo.CountBySetAndStudent(setID, studentID)
		if err != nil {
			return nil, fmt.Errorf("failed to count attempts: %w", err)
		}
		if used >= int64(set.MaxAttempts) {
			return nil, ErrMaxAttemptsReached
		}
	}

	maxNumber, err := s.attemptRepo.MaxAttemptNumber(setID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to determine next attempt number: %w", err)
	}

	attempt := &model.ExerciseAttempt{
		ExerciseSetID: setID,
		StudentID:     studentID,
		AttemptNumber: maxNumber + 1,
		Status:        model.AttemptStatusInProgress,
		StartedAt:     time.Now(),
	}
	err = s.attemptRepo.Create(attempt)
	if err == nil {
		return attemptResponse(attempt, false), nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	// Another request won the race. Back off briefly and adopt its attempt.
	log.Info().Uint("studentID", studentID).Uint("setID", setID).Msg("Concurrent attempt creation detected, re-querying")
	time.Sleep(conflictBackoff)

	if existing, err := s.attemptRepo.FindInProgress(setID, studentID); err == nil {
		return attemptResponse(existing, true), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to re-query after attempt conflict: %w", err)
	}

	// Pathological timing: the winner vanished between the violation and the
	// re-query. One retry with a bumped attempt number, then give up.
	attempt.ID = 0
	attempt.AttemptNumber++
	if err := s.attemptRepo.Create(attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, ferr := s.attemptRepo.FindInProgress(setID, studentID); ferr == nil {
				return attemptResponse(existing, true), nil
			}
		}
		return nil, fmt.Errorf("failed to create attempt after conflict retry: %w", err)
	}
	return attemptResponse(attempt, false), nil
}

func (s *attemptLifecycleService) Complete(attemptID uint) (*dto.CompleteAttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to load attempt %d: %w", attemptID, err)
	}

	if attempt.Status == model.AttemptStatusSubmitted {
		return s.completionResponse(attempt), nil
	}

	answers, err := s.answerRepo.FindByAttemptID(attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers for attempt %d: %w", attemptID, err)
	}
	questions, err := s.questionRepo.FindBySetID(attempt.ExerciseSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for set %d: %w", attempt.ExerciseSetID, err)
	}

	totalScore := 0
	for _, a := range answers {
		totalScore += a.PointsEarned
	}
	maxScore := 0
	for _, q := range questions {
		maxScore += q.Points
	}
	percentage := 0.0
	if maxScore > 0 {
		percentage = float64(totalScore) / float64(maxScore) * 100
	}

	now := time.Now()
	minutes := int(now.Sub(attempt.StartedAt).Minutes())
	if minutes < 1 {
		minutes = 1
	}

	attempt.Status = model.AttemptStatusSubmitted
	attempt.SubmittedAt = &now
	attempt.TotalScore = totalScore
	attempt.MaxPossibleScore = maxScore
	attempt.Percentage = percentage
	attempt.TimeSpentMinutes = minutes

	if err := s.attemptRepo.Update(attempt); err != nil {
		return nil, fmt.Errorf("failed to finalize attempt %d: %w", attemptID, err)
	}

	// Analytics aggregation is best effort: its failure never fails the
	// completion response.
	go func(a model.ExerciseAttempt) {
		if err := s.progressRepo.RecordCompletion(a.StudentID, a.ExerciseSetID, a.TotalScore, a.Percentage, *a.SubmittedAt); err != nil {
			log.Error().Err(err).Uint("attemptID", a.ID).Msg("Failed to update student progress aggregate")
		}
	}(*attempt)

	return s.completionResponse(attempt), nil
}

func (s *attemptLifecycleService) completionResponse(attempt *model.ExerciseAttempt) *dto.CompleteAttemptResponse {
	return &dto.CompleteAttemptResponse{
		AttemptID:        attempt.ID,
		TotalScore:       attempt.TotalScore,
		MaxPossibleScore: attempt.MaxPossibleScore,
		Percentage:       attempt.Percentage,
		GradeBand:        s.gradeBand.BandForPercentage(attempt.Percentage),
		TimeSpentMinutes: attempt.TimeSpentMinutes,
	}
}

func (s *attemptLifecycleService) GetAttemptDetails(attemptID uint) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to load attempt %d: %w", attemptID, err)
	}

	var resp dto.AttemptDetailDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Failed to copy attempt to DTO")
		return nil, fmt.Errorf("error preparing attempt details: %w", err)
	}
	if attempt.Status == model.AttemptStatusSubmitted {
		resp.GradeBand = s.gradeBand.BandForPercentage(attempt.Percentage)
	}

	resp.Answers = make([]dto.AnswerDTO, len(attempt.Answers))
	for i, ans := range attempt.Answers {
		var ansDTO dto.AnswerDTO
		copier.Copy(&ansDTO, &ans)
		if ans.Feedback != nil {
			fb := feedbackDTO(ans.Feedback)
			ansDTO.Feedback = &fb
		}
		resp.Answers[i] = ansDTO
	}
	return &resp, nil
}

func (s *attemptLifecycleService) GetStudentAttempts(setID, studentID uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllBySetAndStudent(setID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching attempts for set %d: %w", setID, err)
	}
	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, a := range attempts {
		var summary dto.AttemptSummaryDTO
		if err := copier.Copy(&summary, &a); err != nil {
			log.Error().Err(err).Uint("attemptID", a.ID).Msg("Failed to copy attempt summary")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func attemptResponse(attempt *model.ExerciseAttempt, resumed bool) *dto.AttemptResponse {
	return &dto.AttemptResponse{
		AttemptID:     attempt.ID,
		AttemptNumber: attempt.AttemptNumber,
		Status:        attempt.Status,
		StartedAt:     attempt.StartedAt,
		Resumed:       resumed,
	}
}

func feedbackDTO(fb *model.AIFeedback) dto.FeedbackDTO {
	refs := make([]dto.ReferenceMaterialDTO, 0, len(fb.References))
	for _, r := range fb.References {
		refs = append(refs, dto.ReferenceMaterialDTO{Title: r.Title, URL: r.URL, Description: r.Description})
	}
	return dto.FeedbackDTO{
		FeedbackType:       fb.FeedbackType,
		FeedbackText:       fb.FeedbackText,
		Explanation:        fb.Explanation,
		ReferenceMaterials: refs,
		AIModel:            fb.AIModel,
		ProcessingTimeMs:   fb.ProcessingTimeMs,
		Success:            fb.Success,
	}
}

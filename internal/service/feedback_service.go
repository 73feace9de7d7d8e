package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minhlq/lingolab/internal/model"
	"github.com/minhlq/lingolab/internal/reference"
	"github.com/minhlq/lingolab/internal/repository"
	"github.com/rs/zerolog/log"
)

// providerTimeout bounds every external model call; a timeout takes the same
// fallback path as a provider error.
const providerTimeout = 30 * time.Second

var (
	essayParams    = GenerationParams{Temperature: 0.2, MaxTokens: 1200}
	standardParams = GenerationParams{Temperature: 0.7, MaxTokens: 512}
)

// FeedbackResult is the displayable outcome of one generation. It is always
// fully populated: provider or parse failures degrade the content, never the
// shape.
type FeedbackResult struct {
	FeedbackType     string
	FeedbackText     string
	Explanation      string
	References       []reference.Entry
	AIModel          string
	ProcessingTimeMs int64
	Success          bool
}

type FeedbackService interface {
	// Generate produces feedback for an answered question. It never returns
	// an error; failures yield a fallback result the student can still read.
	Generate(ctx context.Context, question *model.Question, studentAnswer, correctAnswer string, isCorrect bool) *FeedbackResult
	// GenerateForAnswer loads the saved answer, generates feedback, and
	// upserts one AIFeedback row for it. A persistence failure is logged and
	// the computed result still returned.
	GenerateForAnswer(ctx context.Context, answerID uint) (*FeedbackResult, error)
}

type feedbackService struct {
	standard     TextGenerator
	essay        TextGenerator
	answerRepo   repository.AnswerRepository
	feedbackRepo repository.FeedbackRepository
}

func NewFeedbackService(
	standard TextGenerator,
	essay TextGenerator,
	answerRepo repository.AnswerRepository,
	feedbackRepo repository.FeedbackRepository,
) FeedbackService {
	return &feedbackService{
		standard:     standard,
		essay:        essay,
		answerRepo:   answerRepo,
		feedbackRepo: feedbackRepo,
	}
}

func (s *feedbackService) Generate(ctx context.Context, question *model.Question, studentAnswer, correctAnswer string, isCorrect bool) *FeedbackResult {
	start := time.Now()

	provider := s.standard
	params := standardParams
	if question.Type == model.QuestionTypeEssay {
		provider = s.essay
		params = essayParams
	}

	prompt := BuildFeedbackPrompt(question, studentAnswer, correctAnswer, isCorrect)

	callCtx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	raw, modelID, err := provider.Generate(callCtx, prompt, params)
	if err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Str("questionType", question.Type).Msg("Provider call failed, returning fallback feedback")
		return fallbackResult(question.Type, isCorrect, time.Since(start))
	}

	content := ParseFeedback(raw, FallbackContext{
		QuestionText:  question.Text,
		StudentAnswer: studentAnswer,
		IsCorrect:     isCorrect,
	})

	return &FeedbackResult{
		FeedbackType:     feedbackType(isCorrect),
		FeedbackText:     content.FeedbackText,
		Explanation:      content.Explanation,
		References:       reference.Select(question.Text, correctAnswer, studentAnswer, question.Type),
		AIModel:          modelID,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Success:          true,
	}
}

func (s *feedbackService) GenerateForAnswer(ctx context.Context, answerID uint) (*FeedbackResult, error) {
	answer, err := s.answerRepo.FindByIDWithQuestion(answerID)
	if err != nil {
		return nil, fmt.Errorf("answer not found with ID %d: %w", answerID, err)
	}

	question := &answer.Question
	studentText := studentAnswerText(answer, question)
	correctText := correctAnswerText(question)

	result := s.Generate(ctx, question, studentText, correctText, answer.IsCorrect)

	row := &model.AIFeedback{
		StudentAnswerID:  answer.ID,
		QuestionID:       question.ID,
		AttemptID:        answer.AttemptID,
		FeedbackType:     result.FeedbackType,
		FeedbackText:     result.FeedbackText,
		Explanation:      result.Explanation,
		References:       toReferenceList(result.References),
		AIModel:          result.AIModel,
		ProcessingTimeMs: result.ProcessingTimeMs,
		Success:          result.Success,
	}
	if err := s.feedbackRepo.Upsert(row); err != nil {
		// The student still gets the computed feedback; only storage failed.
		log.Warn().Err(err).Uint("answerID", answer.ID).Msg("Failed to persist feedback, returning computed result anyway")
	}

	return result, nil
}

// fallbackResult is the typed failure object: apologetic text, default
// references, model identifier "fallback".
func fallbackResult(questionType string, isCorrect bool, elapsed time.Duration) *FeedbackResult {
	text := "We couldn't generate personalized feedback right now. Please review the reference materials below and try again later."
	if isCorrect {
		text = "Your answer is correct! We couldn't generate detailed feedback right now, but the references below cover the topic."
	}
	return &FeedbackResult{
		FeedbackType:     feedbackType(isCorrect),
		FeedbackText:     text,
		Explanation:      "Our feedback assistant is temporarily unavailable. Your answer and score were saved.",
		References:       reference.Defaults(questionType),
		AIModel:          "fallback",
		ProcessingTimeMs: elapsed.Milliseconds(),
		Success:          false,
	}
}

func feedbackType(isCorrect bool) string {
	if isCorrect {
		return model.FeedbackTypeCorrect
	}
	return model.FeedbackTypeIncorrect
}

func studentAnswerText(answer *model.StudentAnswer, question *model.Question) string {
	if answer.SelectedOptionID != nil {
		for _, opt := range question.Options {
			if opt.ID == *answer.SelectedOptionID {
				return opt.Text
			}
		}
	}
	return answer.TextAnswer
}

func correctAnswerText(question *model.Question) string {
	if question.Type == model.QuestionTypeSentenceArrangement && question.CompleteSentence != nil {
		return *question.CompleteSentence
	}
	var correct []string
	for _, opt := range question.Options {
		if opt.IsCorrect {
			correct = append(correct, opt.Text)
		}
	}
	return strings.Join(correct, ", ")
}

func toReferenceList(entries []reference.Entry) model.ReferenceList {
	out := make(model.ReferenceList, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.ReferenceMaterial{
			Title:       e.Title,
			URL:         e.URL,
			Description: e.Description,
		})
	}
	return out
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/minhlq/lingolab/internal/model"
	"github.com/minhlq/lingolab/internal/reference"
)

const validProviderJSON = `{"feedback_text": "Great choice!", "explanation": "Went is the irregular past tense of go."}`

func newFeedbackFixture(standard, essay *fakeTextGenerator) (FeedbackService, *fakeAnswerRepo, *fakeFeedbackRepo) {
	answerRepo := newFakeAnswerRepo()
	feedbackRepo := newFakeFeedbackRepo()
	return NewFeedbackService(standard, essay, answerRepo, feedbackRepo), answerRepo, feedbackRepo
}

func TestGenerateParsesProviderOutput(t *testing.T) {
	standard := &fakeTextGenerator{text: "```json\n" + validProviderJSON + "\n```", modelID: "gemini-1.5-flash"}
	svc, _, _ := newFeedbackFixture(standard, &fakeTextGenerator{modelID: "gpt-4o"})

	question := mcQuestion()
	result := svc.Generate(context.Background(), &question, "went", "went", true)

	if !result.Success {
		t.Error("Success = false, want true")
	}
	if result.FeedbackText != "Great choice!" {
		t.Errorf("FeedbackText = %q, want parsed provider text", result.FeedbackText)
	}
	if result.AIModel != "gemini-1.5-flash" {
		t.Errorf("AIModel = %q, want gemini-1.5-flash", result.AIModel)
	}
	if result.FeedbackType != model.FeedbackTypeCorrect {
		t.Errorf("FeedbackType = %q, want %q", result.FeedbackType, model.FeedbackTypeCorrect)
	}
	if len(result.References) != reference.SelectCount {
		t.Errorf("References count = %d, want %d", len(result.References), reference.SelectCount)
	}
}

func TestGenerateRoutesByQuestionType(t *testing.T) {
	standard := &fakeTextGenerator{text: validProviderJSON, modelID: "standard-model"}
	essay := &fakeTextGenerator{text: validProviderJSON, modelID: "essay-model"}
	svc, _, _ := newFeedbackFixture(standard, essay)

	essayQuestion := &model.Question{ID: 2, Text: "Describe your weekend.", Type: model.QuestionTypeEssay}
	result := svc.Generate(context.Background(), essayQuestion, "It was fun.", "", true)
	if result.AIModel != "essay-model" {
		t.Errorf("essay question used %q, want essay-model", result.AIModel)
	}
	if standard.callCount() != 0 {
		t.Errorf("standard provider called %d times for an essay, want 0", standard.callCount())
	}
	if essay.params[0] != essayParams {
		t.Errorf("essay params = %+v, want %+v", essay.params[0], essayParams)
	}

	mc := mcQuestion()
	result = svc.Generate(context.Background(), &mc, "went", "went", true)
	if result.AIModel != "standard-model" {
		t.Errorf("choice question used %q, want standard-model", result.AIModel)
	}
	if standard.params[0] != standardParams {
		t.Errorf("standard params = %+v, want %+v", standard.params[0], standardParams)
	}
}

func TestGenerateProviderFailureFallsBack(t *testing.T) {
	standard := &fakeTextGenerator{err: errors.New("deadline exceeded")}
	svc, _, _ := newFeedbackFixture(standard, &fakeTextGenerator{})

	question := mcQuestion()
	result := svc.Generate(context.Background(), &question, "goed", "went", false)

	if result.Success {
		t.Error("Success = true, want false on provider failure")
	}
	if result.AIModel != "fallback" {
		t.Errorf("AIModel = %q, want fallback", result.AIModel)
	}
	if result.FeedbackText == "" || result.Explanation == "" {
		t.Error("fallback result must still carry readable text")
	}
	if result.FeedbackType != model.FeedbackTypeIncorrect {
		t.Errorf("FeedbackType = %q, want %q", result.FeedbackType, model.FeedbackTypeIncorrect)
	}
	if len(result.References) != reference.SelectCount {
		t.Errorf("fallback References count = %d, want %d", len(result.References), reference.SelectCount)
	}
}

func TestGenerateUnparsableOutputStillSucceeds(t *testing.T) {
	standard := &fakeTextGenerator{text: "I am sorry, I cannot answer that.", modelID: "standard-model"}
	svc, _, _ := newFeedbackFixture(standard, &fakeTextGenerator{})

	question := mcQuestion()
	result := svc.Generate(context.Background(), &question, "goed", "went", false)

	if !result.Success {
		t.Error("a reachable provider with junk output is still a success, content is synthesized")
	}
	if result.FeedbackText == "" || result.Explanation == "" {
		t.Error("synthesized result must carry readable text")
	}
}

func TestGenerateForAnswerPersists(t *testing.T) {
	standard := &fakeTextGenerator{text: validProviderJSON, modelID: "standard-model"}
	svc, answerRepo, feedbackRepo := newFeedbackFixture(standard, &fakeTextGenerator{})

	answerRepo.seed(model.StudentAnswer{
		ID:               3,
		AttemptID:        1,
		QuestionID:       1,
		SelectedOptionID: uintPtr(11),
		IsCorrect:        true,
		Question:         mcQuestion(),
	})

	result, err := svc.GenerateForAnswer(context.Background(), 3)
	if err != nil {
		t.Fatalf("GenerateForAnswer failed: %v", err)
	}
	if !result.Success {
		t.Error("Success = false, want true")
	}

	row, err := feedbackRepo.FindByAnswerID(3)
	if err != nil {
		t.Fatalf("feedback row was not persisted: %v", err)
	}
	if row.FeedbackText != "Great choice!" {
		t.Errorf("persisted FeedbackText = %q, want parsed provider text", row.FeedbackText)
	}
	if len(row.References) != reference.SelectCount {
		t.Errorf("persisted References count = %d, want %d", len(row.References), reference.SelectCount)
	}
	if row.QuestionID != 1 || row.AttemptID != 1 {
		t.Errorf("persisted row keys = question %d attempt %d, want 1 and 1", row.QuestionID, row.AttemptID)
	}
}

func TestGenerateForAnswerPersistFailureStillReturnsResult(t *testing.T) {
	standard := &fakeTextGenerator{text: validProviderJSON, modelID: "standard-model"}
	svc, answerRepo, feedbackRepo := newFeedbackFixture(standard, &fakeTextGenerator{})
	feedbackRepo.upsertErr = errors.New("connection reset")

	answerRepo.seed(model.StudentAnswer{
		ID:         4,
		AttemptID:  1,
		QuestionID: 1,
		TextAnswer: "went",
		IsCorrect:  true,
		Question:   mcQuestion(),
	})

	result, err := svc.GenerateForAnswer(context.Background(), 4)
	if err != nil {
		t.Fatalf("GenerateForAnswer must not fail on a storage error, got: %v", err)
	}
	if result == nil || result.FeedbackText == "" {
		t.Error("computed result must survive the storage failure")
	}
}

func TestGenerateForAnswerUnknownAnswer(t *testing.T) {
	svc, _, _ := newFeedbackFixture(&fakeTextGenerator{}, &fakeTextGenerator{})
	if _, err := svc.GenerateForAnswer(context.Background(), 99); err == nil {
		t.Fatal("expected error for unknown answer")
	}
}

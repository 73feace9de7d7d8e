package service

import "context"

// GenerationParams tunes one text-generation call.
type GenerationParams struct {
	Temperature float32
	MaxTokens   int
}

// TextGenerator is the capability both external model providers implement.
// Orchestration code is provider-agnostic; tests substitute a deterministic
// fake.
type TextGenerator interface {
	// Generate returns the raw model text and the identifier of the model
	// that produced it.
	Generate(ctx context.Context, prompt string, params GenerationParams) (text string, model string, err error)
}

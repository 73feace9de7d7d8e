package service

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/minhlq/lingolab/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const geminiModelName = "gemini-1.5-flash"

// GeminiProvider is the standard provider used for non-essay question types.
type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(cfg *config.Config) (*GeminiProvider, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiProvider will be non-functional.")
		return &GeminiProvider{client: nil}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, params GenerationParams) (string, string, error) {
	if p.client == nil {
		return "", geminiModelName, fmt.Errorf("gemini client not initialized")
	}

	model := p.client.GenerativeModel(geminiModelName)
	model.SetTemperature(params.Temperature)
	if params.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(params.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", geminiModelName, fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", geminiModelName, fmt.Errorf("gemini returned no content")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if text == "" {
		return "", geminiModelName, fmt.Errorf("gemini returned no text content")
	}
	return text, geminiModelName, nil
}

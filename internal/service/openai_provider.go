package service

import (
	"context"
	"fmt"

	"github.com/minhlq/lingolab/config"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider is the high-reasoning provider used for essay feedback,
// where the multi-axis rubric needs a larger token budget.
type OpenAIProvider struct {
	client *openai.Client
}

func NewOpenAIProvider(cfg *config.Config) *OpenAIProvider {
	if cfg.OpenAIApiKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set. OpenAIProvider will be non-functional.")
		return &OpenAIProvider{client: nil}
	}
	return &OpenAIProvider{client: openai.NewClient(cfg.OpenAIApiKey)}
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, params GenerationParams) (string, string, error) {
	if p.client == nil {
		return "", openai.GPT4o, fmt.Errorf("openai client not initialized")
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an experienced English writing instructor. Follow the output format instructions exactly.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	})
	if err != nil {
		return "", openai.GPT4o, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", resp.Model, fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, resp.Model, nil
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/corp-finance-service/internal/config"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiClient generates text through the Gemini API
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int32
	log       *logrus.Logger
}

// NewGeminiClient initializes a Gemini client
func NewGeminiClient(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.NarratorAPIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.NarratorURL,
			Timeout: &cfg.NarratorTimeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{
		client:    client,
		model:     cfg.NarratorModel,
		maxTokens: int32(cfg.NarratorMaxTokens),
		log:       log,
	}, nil
}

// Generate sends the prompt with the system instruction attached
func (g *GeminiClient) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.7)),
		MaxOutputTokens: g.maxTokens,
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: "gemini", StatusCode: apiErr.Code}
		}
		var apiErrPtr *genai.APIError
		if errors.As(err, &apiErrPtr) {
			return "", &StatusError{Provider: "gemini", StatusCode: apiErrPtr.Code}
		}
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	return strings.TrimSpace(result.Text()), nil
}

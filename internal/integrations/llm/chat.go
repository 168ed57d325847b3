package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Dan9191/corp-finance-service/internal/config"
	"github.com/sirupsen/logrus"
)

// ChatClient talks to an OpenAI-compatible chat completions endpoint
type ChatClient struct {
	url       string
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
	log       *logrus.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewChatClient initializes a chat completions client
func NewChatClient(cfg *config.Config, log *logrus.Logger) *ChatClient {
	return &ChatClient{
		url:       strings.TrimRight(cfg.NarratorURL, "/") + "/chat/completions",
		apiKey:    cfg.NarratorAPIKey,
		model:     cfg.NarratorModel,
		maxTokens: cfg.NarratorMaxTokens,
		client: &http.Client{
			Timeout: cfg.NarratorTimeout,
		},
		log: log,
	}
}

// Generate sends one system instruction and one user prompt and returns the reply text
func (c *ChatClient) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Debugf("Chat completion error body: %s", string(body))
		return "", &StatusError{Provider: "chat completions", StatusCode: resp.StatusCode}
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

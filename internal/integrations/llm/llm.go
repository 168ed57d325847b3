// Package llm holds the text-generation backends used for report narration.
package llm

import (
	"context"
	"fmt"

	"github.com/Dan9191/corp-finance-service/internal/config"
	"github.com/sirupsen/logrus"
)

// Generator produces free text from a system instruction and a prompt
type Generator interface {
	Generate(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// StatusError is a non-success HTTP status returned by a backend
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Provider, e.StatusCode)
}

// New builds the backend selected by configuration. It returns nil without an
// error when no credential is configured.
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) (Generator, error) {
	if !cfg.NarratorEnabled() {
		log.Info("Narration disabled: no credential configured")
		return nil, nil
	}
	switch cfg.NarratorProvider {
	case config.ProviderOpenAI:
		return NewChatClient(cfg, log), nil
	case config.ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return nil, fmt.Errorf("unsupported narrator provider %q", cfg.NarratorProvider)
}

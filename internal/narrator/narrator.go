// Package narrator turns computed ratios into a prose report through a
// text-generation backend.
package narrator

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Dan9191/corp-finance-service/internal/integrations/llm"
	"github.com/Dan9191/corp-finance-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Client-facing messages. Upstream error detail is logged, never returned.
const (
	MsgDisabled     = "AI report is disabled: no narration credential is configured"
	MsgUnauthorized = "the narration service rejected the configured credential"
	MsgUnavailable  = "the narration service is temporarily unavailable"
	MsgTimeout      = "the narration service did not respond in time"
	MsgEmpty        = "the narration service returned an empty report"
	MsgFailed       = "the narration request failed"
)

// Narrator builds report prompts and delegates them to a generator
type Narrator struct {
	gen     llm.Generator
	timeout time.Duration
	log     *logrus.Logger
	now     func() time.Time
}

// New creates a narrator. A nil generator leaves narration disabled.
func New(gen llm.Generator, timeout time.Duration, log *logrus.Logger) *Narrator {
	return &Narrator{
		gen:     gen,
		timeout: timeout,
		log:     log,
		now:     time.Now,
	}
}

// Enabled reports whether a generator is configured
func (n *Narrator) Enabled() bool {
	return n != nil && n.gen != nil
}

// Narrate produces a report for the company. It always returns a report
// whose status is success, error or disabled.
func (n *Narrator) Narrate(ctx context.Context, company *models.Company, ratios models.RatioSet) models.Report {
	if !n.Enabled() {
		return models.Report{Status: models.ReportDisabled, Message: MsgDisabled, GeneratedAt: time.Now()}
	}

	now := n.now()
	prompt := BuildPrompt(BuildProfile(company, ratios, now), ratios)

	// The call runs to completion or timeout even if the caller goes away.
	callCtx := context.WithoutCancel(ctx)
	if n.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, n.timeout)
		defer cancel()
	}

	text, err := n.gen.Generate(callCtx, SystemPrompt, prompt)
	if err != nil {
		n.log.Errorf("Narration failed: %v", err)
		return models.Report{Status: models.ReportError, Message: classify(err), GeneratedAt: now}
	}
	if text == "" {
		return models.Report{Status: models.ReportError, Message: MsgEmpty, GeneratedAt: now}
	}

	n.log.Infof("Narrated report generated (%d bytes)", len(text))
	return models.Report{Status: models.ReportSuccess, Text: text, GeneratedAt: now}
}

func classify(err error) string {
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden:
			return MsgUnauthorized
		case statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500:
			return MsgUnavailable
		}
		return MsgFailed
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return MsgTimeout
	}
	return MsgFailed
}

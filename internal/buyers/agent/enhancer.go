// Package agent holds the model-backed summary enhancement. The enhancer
// wraps the deterministic narrative provider and only ever improves on it:
// any model failure, timeout, or empty response returns the deterministic
// text instead.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"buyer_triage_backend/internal/buyers/domain"
	"buyer_triage_backend/internal/buyers/narrative"
	"buyer_triage_backend/internal/buyers/scoring"
	"buyer_triage_backend/platform/logger"
)

// SummaryEnhancer rewrites the deterministic summary with a Gemini model.
type SummaryEnhancer struct {
	client   *genai.Client
	model    string
	timeout  time.Duration
	fallback narrative.SummaryProvider
	log      *logger.Logger
}

// NewSummaryEnhancer creates the model-backed provider. The fallback is
// required and is used verbatim whenever the model cannot be reached.
func NewSummaryEnhancer(ctx context.Context, apiKey, model string, timeout time.Duration, fallback narrative.SummaryProvider, log *logger.Logger) (*SummaryEnhancer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("summary enhancer: create client: %w", err)
	}

	return &SummaryEnhancer{
		client:   client,
		model:    model,
		timeout:  timeout,
		fallback: fallback,
		log:      log,
	}, nil
}

// Summarize returns the model-rewritten summary, or the deterministic one
// when the model call fails. It never returns an error alongside an empty
// summary.
func (e *SummaryEnhancer) Summarize(ctx context.Context, b domain.Buyer, r scoring.Result) (string, error) {
	draft, err := e.fallback.Summarize(ctx, b, r)
	if err != nil {
		return "", err
	}

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.Models.GenerateContent(callCtx, e.model, genai.Text(buildSummaryPrompt(b, r, draft)), nil)
	if err != nil {
		e.log.Warn("summary enhancement failed, using deterministic summary", "error", err)
		return draft, nil
	}

	enhanced := strings.TrimSpace(resp.Text())
	if enhanced == "" {
		return draft, nil
	}
	return enhanced, nil
}

func buildSummaryPrompt(b domain.Buyer, r scoring.Result, draft string) string {
	flags := "none"
	if len(r.RiskFlags) > 0 {
		flags = strings.Join(r.RiskFlags, "; ")
	}

	return fmt.Sprintf(`Context:
- Classification: %s (%s, respond within %s)
- Quality score: %d/100
- Intent score: %d/100
- Risk flags: %s
- Next action: %s

Draft summary:
%s

Task:
Rewrite the draft as a fluent three-sentence briefing for a sales agent.
Rules:
- Keep every fact from the draft; do not invent budget, timeline, or status.
- Do NOT include contact details: no phone numbers or email addresses.
- Plain prose only, no markdown, no headings.
- Exactly three sentences.
`, r.Classification, r.Priority.Code, r.Priority.SLA,
		r.Quality, r.Intent, flags, narrative.NextAction(b, r), draft)
}

// Compile-time check that SummaryEnhancer implements SummaryProvider.
var _ narrative.SummaryProvider = (*SummaryEnhancer)(nil)

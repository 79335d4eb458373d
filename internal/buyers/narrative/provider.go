package narrative

import (
	"context"

	"buyer_triage_backend/internal/buyers/domain"
	"buyer_triage_backend/internal/buyers/scoring"
)

// SummaryProvider produces the buyer summary. The deterministic Generator
// is the default; a model-backed implementation may wrap it, but callers
// must always receive a summary, so providers handle their own failures.
type SummaryProvider interface {
	Summarize(ctx context.Context, b domain.Buyer, r scoring.Result) (string, error)
}

// Generator is the deterministic SummaryProvider. It never fails and does
// no I/O, so it is safe as the fallback for any enhanced provider.
type Generator struct{}

// NewGenerator creates the deterministic summary provider.
func NewGenerator() *Generator {
	return &Generator{}
}

// Summarize renders the templated three-sentence summary.
func (g *Generator) Summarize(_ context.Context, b domain.Buyer, r scoring.Result) (string, error) {
	return Summary(b, r), nil
}

// Compile-time check that Generator implements SummaryProvider.
var _ SummaryProvider = (*Generator)(nil)

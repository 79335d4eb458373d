// Package scoring computes the deterministic triage score for a buyer
// snapshot: spam detection, quality/intent/confidence sub-scores,
// classification with a monotonic budget floor, priority, and risk flags.
// The whole pipeline is pure: no I/O, no state between invocations.
package scoring

// Tier is the internal rank-ordered classification. Higher values outrank
// lower ones; the budget floor comparison relies on this ordering.
type Tier int

const (
	TierSpam Tier = iota
	TierDisqualified
	TierCold
	TierNurtureStandard
	TierNurturePremium
	TierWarmEngaged
	TierWarmQualified
	TierHot
)

// Breakdown describes one scored category for auditing. Factors are
// human-readable and ordered by evaluation; downstream logic only ever
// consumes the numeric score.
type Breakdown struct {
	Category string   `json:"category"`
	Score    float64  `json:"score"`
	Max      float64  `json:"max"`
	Factors  []string `json:"factors"`
}

// SpamCheck is the spam/fake detector output.
type SpamCheck struct {
	IsSpam     bool     `json:"isSpam"`
	Flags      []string `json:"flags"`
	Confidence float64  `json:"confidence"` // 0-1
}

// Priority is the response-time tier attached to a classification.
type Priority struct {
	Code        string `json:"code"`
	SLA         string `json:"sla"`
	Description string `json:"description"`
}

// Result is the complete score object. It is produced fresh on every
// invocation and never mutated by the engine afterwards.
type Result struct {
	Profile          string    `json:"profile"`
	Spam             SpamCheck `json:"spam"`
	Quality          int       `json:"quality"`
	QualityDetail    Breakdown `json:"qualityDetail"`
	Intent           int       `json:"intent"`
	IntentDetail     Breakdown `json:"intentDetail"`
	Confidence       float64   `json:"confidence"`
	ConfidenceDetail Breakdown `json:"confidenceDetail"`
	Tier             Tier      `json:"-"`
	Classification   string    `json:"classification"`
	Priority         Priority  `json:"priority"`
	RiskFlags        []string  `json:"riskFlags"`
	Budget           float64   `json:"parsedBudget"`
}

package scoring

import "strings"

// ThresholdRule classifies by combined score, with an optional alternative
// floor on quality AND intent together. Rules are evaluated highest tier
// first; the first match wins.
type ThresholdRule struct {
	Tier     Tier
	Combined float64 // combined-score floor, 0 = unused
	Quality  int     // alternative (quality AND intent) floor, 0 = unused
	Intent   int
}

// BudgetTier guarantees a minimum classification and a quality boost for
// parsed budgets at or above Min.
type BudgetTier struct {
	Min          float64
	Floor        Tier
	QualityBoost int
}

// Profile is a named configuration of one complete scoring behavior:
// labels, thresholds, budget tiers, flag cap, and confidence scale.
// Both rule sets run through the same pipeline parameterized by this value.
type Profile struct {
	Name            string
	Labels          map[Tier]string
	Thresholds      []ThresholdRule
	BudgetTiers     []BudgetTier
	FlagCap         int
	ConfidenceScale float64 // 10 or 100

	// AutoDisqualifyHighBudgetStudio hard-disqualifies parsed budgets of
	// 2M+ paired with a 0-1 bedroom preference, forcing quality to 0.
	AutoDisqualifyHighBudgetStudio bool
}

// Label returns the profile's display label for a tier.
func (p Profile) Label(t Tier) string {
	if label, ok := p.Labels[t]; ok {
		return label
	}
	return p.Labels[TierCold]
}

// BudgetTierFor returns the highest tier whose minimum the budget meets.
func (p Profile) BudgetTierFor(budget float64) (BudgetTier, bool) {
	for _, tier := range p.BudgetTiers {
		if budget >= tier.Min {
			return tier, true
		}
	}
	return BudgetTier{}, false
}

// defaultThresholds is shared by both profiles: each tier is reachable via
// a combined-score floor or, for the warm tiers, a quality-and-intent pair.
var defaultThresholds = []ThresholdRule{
	{Tier: TierHot, Combined: 80, Quality: 75, Intent: 85},
	{Tier: TierWarmQualified, Combined: 65, Quality: 70, Intent: 60},
	{Tier: TierWarmEngaged, Combined: 55, Quality: 50, Intent: 65},
	{Tier: TierNurturePremium, Combined: 45},
	{Tier: TierNurtureStandard, Combined: 30},
}

// defaultBudgetTiers is the shared budget-tier table, highest minimum first.
var defaultBudgetTiers = []BudgetTier{
	{Min: 2_000_000, Floor: TierWarmQualified, QualityBoost: 35},
	{Min: 1_000_000, Floor: TierWarmEngaged, QualityBoost: 30},
	{Min: 750_000, Floor: TierNurturePremium, QualityBoost: 25},
	{Min: 500_000, Floor: TierNurturePremium, QualityBoost: 20},
	{Min: 400_000, Floor: TierNurtureStandard, QualityBoost: 15},
	{Min: 250_000, Floor: TierNurtureStandard, QualityBoost: 10},
}

// PipelineProfile is the legacy rule set used by the sales pipeline views.
var PipelineProfile = Profile{
	Name: "pipeline",
	Labels: map[Tier]string{
		TierSpam:            "Spam",
		TierDisqualified:    "Disqualified",
		TierCold:            "Cold",
		TierNurtureStandard: "Nurture-Standard",
		TierNurturePremium:  "Nurture-Premium",
		TierWarmEngaged:     "Warm-Engaged",
		TierWarmQualified:   "Warm-Qualified",
		TierHot:             "Hot",
	},
	Thresholds:      defaultThresholds,
	BudgetTiers:     defaultBudgetTiers,
	FlagCap:         4,
	ConfidenceScale: 10,
}

// IntakeProfile is the newer rule set used by the intake form, with its own
// label vocabulary, a larger flag cap, a 0-100 confidence scale, and the
// hard disqualification for implausible high-budget studio requests.
var IntakeProfile = Profile{
	Name: "intake",
	Labels: map[Tier]string{
		TierSpam:            "Disqualified",
		TierDisqualified:    "Disqualified",
		TierCold:            "Low Priority",
		TierNurtureStandard: "Nurture",
		TierNurturePremium:  "Nurture",
		TierWarmEngaged:     "Needs Qualification",
		TierWarmQualified:   "Qualified",
		TierHot:             "Hot Lead",
	},
	Thresholds:                     defaultThresholds,
	BudgetTiers:                    defaultBudgetTiers,
	FlagCap:                        5,
	ConfidenceScale:                100,
	AutoDisqualifyHighBudgetStudio: true,
}

// TierForLabel resolves a display label back to its tier. Labels the intake
// profile collapses (several tiers share "Nurture" or "Disqualified")
// resolve to the highest-ranked matching tier.
func (p Profile) TierForLabel(label string) (Tier, bool) {
	for t := TierHot; t >= TierSpam; t-- {
		if p.Labels[t] == label {
			return t, true
		}
	}
	return TierCold, false
}

// ProfileByName resolves a profile by its configured name.
func ProfileByName(name string) (Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "pipeline":
		return PipelineProfile, true
	case "intake":
		return IntakeProfile, true
	default:
		return Profile{}, false
	}
}

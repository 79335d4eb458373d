package scoring

import (
	"math"
	"time"

	"buyer_triage_backend/internal/buyers/domain"
)

// autoDisqualifyBudget and autoDisqualifyBedrooms define the intake
// profile's hard rule: a multi-million budget paired with a studio/one-bed
// request is treated as a junk entry.
const (
	autoDisqualifyBudget   = 2_000_000
	autoDisqualifyBedrooms = 1
)

// Score computes the complete triage result for a buyer snapshot under the
// given rule profile. The buyer is never mutated and no state survives the
// call.
func Score(b domain.Buyer, p Profile) Result {
	return ScoreAt(b, p, time.Now().UTC())
}

// ScoreAt is the pure core of Score: identical input and reference time
// always produce an identical result.
func ScoreAt(b domain.Buyer, p Profile, now time.Time) Result {
	budget := EffectiveBudget(b)
	spam := CheckSpam(b, budget)

	quality := scoreQuality(b, budget, p)
	intent := scoreIntent(b, now)
	confidence := scoreConfidence(b)

	var tier Tier
	if p.AutoDisqualifyHighBudgetStudio &&
		budget >= autoDisqualifyBudget &&
		b.Bedrooms != nil && *b.Bedrooms <= autoDisqualifyBedrooms {
		tier = TierDisqualified
		quality = Breakdown{
			Category: "quality",
			Score:    0,
			Max:      100,
			Factors:  []string{"Auto-disqualified: implausible budget for 0-1 bedroom request"},
		}
	} else {
		tier = classify(b, spam, int(quality.Score), int(intent.Score), budget, p)
	}

	return Result{
		Profile:          p.Name,
		Spam:             spam,
		Quality:          int(quality.Score),
		QualityDetail:    quality,
		Intent:           int(intent.Score),
		IntentDetail:     intent,
		Confidence:       scaleConfidence(confidence.Score, p.ConfidenceScale),
		ConfidenceDetail: confidence,
		Tier:             tier,
		Classification:   p.Label(tier),
		Priority:         PriorityFor(tier),
		RiskFlags:        RiskFlags(b, confidence.Score, now, p.FlagCap),
		Budget:           budget,
	}
}

// ConvertToPipeline maps a result produced under any profile onto the
// legacy pipeline contract: pipeline labels and a 0-10 confidence scale.
// Consumers of the older shape call this instead of re-scoring.
func ConvertToPipeline(r Result) Result {
	if r.Profile == PipelineProfile.Name {
		return r
	}

	source, ok := ProfileByName(r.Profile)
	if !ok {
		source = IntakeProfile
	}

	converted := r
	converted.Profile = PipelineProfile.Name
	converted.Classification = PipelineProfile.Label(r.Tier)
	converted.Confidence = scaleConfidence(
		r.Confidence/source.ConfidenceScale*10, PipelineProfile.ConfidenceScale)
	return converted
}

// scaleConfidence projects the internal 0-10 confidence onto the profile's
// scale, keeping one-decimal precision.
func scaleConfidence(base float64, scale float64) float64 {
	scaled := base * scale / 10
	return math.Round(scaled*10) / 10
}

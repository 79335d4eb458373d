package scoring

import (
	"math"

	"buyer_triage_backend/internal/buyers/domain"
)

// Confidence weights: data completeness dominates, corroboration and
// engagement refine, transcript quality nudges. Weights sum to 10 so the
// composite lands on a 0-10 scale.
const (
	weightCompleteness = 4.0
	weightVerification = 3.0
	weightEngagement   = 2.0
	weightTranscript   = 1.0
	confidenceSubCap   = 10.0
)

// confidenceFields are the ten snapshot fields counted toward data
// completeness, one point each.
func confidenceFieldChecks(b domain.Buyer) []struct {
	label   string
	present bool
} {
	return []struct {
		label   string
		present bool
	}{
		{"name", b.Name() != ""},
		{"email", b.Email != ""},
		{"phone", b.Phone != ""},
		{"country", b.Country != ""},
		{"budget", b.HasBudget()},
		{"timeline", b.Timeline != ""},
		{"payment method", b.PaymentMethod != ""},
		{"location", b.Location != ""},
		{"bedrooms", b.Bedrooms != nil},
		{"source", b.Source != ""},
	}
}

// scoreConfidence measures how much of the record is populated and
// corroborated, as a weighted composite on a 0-10 scale with one-decimal
// precision.
func scoreConfidence(b domain.Buyer) Breakdown {
	var factors []string

	completeness := 0
	missing := 0
	for _, check := range confidenceFieldChecks(b) {
		if check.present {
			completeness++
		} else {
			missing++
		}
	}
	if missing > 0 {
		addFactor(&factors, "Populated snapshot fields", completeness)
	} else {
		addFactor(&factors, "Fully populated snapshot", completeness)
	}

	verification := 0
	if b.ProofOfFunds {
		verification += 4
	}
	if b.BrokerConnection().Connected() {
		verification += 3
	}
	if b.SolicitorConnection().Connected() {
		verification += 3
	}
	if verification > 0 {
		addFactor(&factors, "Verification signals", verification)
	}

	engagement := 0
	if b.StatusCategory().AdvancedStage() {
		engagement += 4
	}
	if b.LastContactAt != nil {
		engagement += 3
	}
	if len(b.Notes) > 50 {
		engagement += 3
	}
	if engagement > 0 {
		addFactor(&factors, "Engagement evidence", engagement)
	}

	transcript := scoreTranscript(b.Notes)
	if transcript > 0 {
		addFactor(&factors, "Notes depth", transcript)
	}

	total := float64(completeness)/confidenceSubCap*weightCompleteness +
		float64(verification)/confidenceSubCap*weightVerification +
		float64(engagement)/confidenceSubCap*weightEngagement +
		float64(transcript)/confidenceSubCap*weightTranscript

	total = math.Round(total*10) / 10
	if total > 10 {
		total = 10
	}
	if total < 0 {
		total = 0
	}

	return Breakdown{
		Category: "confidence",
		Score:    total,
		Max:      10,
		Factors:  factors,
	}
}

// scoreTranscript tiers the notes field by length: long call transcripts
// score highest, a bare one-liner still counts for something.
func scoreTranscript(notes string) int {
	length := len(notes)
	switch {
	case length > 500:
		return 10
	case length > 200:
		return 7
	case length > 50:
		return 4
	case length > 0:
		return 2
	default:
		return 0
	}
}

package scoring

import (
	"time"

	"buyer_triage_backend/internal/buyers/domain"
)

// Sub-category caps for the intent score. Negative modifiers are uncapped;
// the raw sum may go negative before the final clamp.
const (
	maxTimeline   = 30
	maxPurpose    = 25
	maxEngagement = 25
	maxCommitment = 20

	newLeadBaseline = 15
	staleLeadDays   = 90
)

// scoreIntent measures urgency, engagement, and commitment on a 0-100 scale.
func scoreIntent(b domain.Buyer, now time.Time) Breakdown {
	var factors []string

	total := scoreTimeline(b, &factors)
	total += scorePurpose(b, &factors)
	total += scoreEngagement(b, &factors)
	total += scoreCommitment(b, &factors)
	total += scoreNegativeModifiers(b, now, &factors)

	if b.IsNewLead() && b.Email != "" && b.Phone != "" && b.HasBudget() {
		total += addFactor(&factors, "New lead with contactable profile and budget", newLeadBaseline)
	}

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return Breakdown{
		Category: "intent",
		Score:    float64(total),
		Max:      100,
		Factors:  factors,
	}
}

// scoreTimeline maps the urgency bucket to points. Any stated timeline,
// however vague, beats silence.
func scoreTimeline(b domain.Buyer, factors *[]string) int {
	switch b.TimelineBucket() {
	case domain.TimelineImmediate:
		return addFactor(factors, "Buying immediately", 30)
	case domain.TimelineSoon:
		return addFactor(factors, "Buying within 1-3 months", 20)
	case domain.TimelineThisYear:
		return addFactor(factors, "Buying within 3-6 months", 12)
	case domain.TimelineNextYear:
		return addFactor(factors, "Buying within 6-12 months", 6)
	case domain.TimelineVague:
		return addFactor(factors, "Timeline stated but vague", 5)
	default:
		return 0
	}
}

// scorePurpose rewards a serious funding route and specific search criteria.
func scorePurpose(b domain.Buyer, factors *[]string) int {
	score := 0
	switch b.Payment() {
	case domain.PaymentCash:
		score += addFactor(factors, "Cash purchase intent", 15)
	case domain.PaymentMortgage:
		score += addFactor(factors, "Mortgage purchase intent", 10)
	}
	if b.Bedrooms != nil && b.Location != "" {
		score += addFactor(factors, "Specific search criteria", 10)
	}
	return capAt(score, maxPurpose)
}

// scoreEngagement reads the pipeline ladder plus the acquisition channel.
func scoreEngagement(b domain.Buyer, factors *[]string) int {
	score := 0
	status := b.StatusCategory()
	switch {
	case status.CommittedStage():
		score += addFactor(factors, "Committed pipeline stage", 25)
	case status == domain.StatusViewingBooked || status == domain.StatusNegotiating:
		score += addFactor(factors, "Active pipeline stage", 20)
	case status == domain.StatusFollowUp:
		score += addFactor(factors, "In follow-up", 12)
	case status == domain.StatusNew:
		score += addFactor(factors, "New lead awaiting contact", 8)
	}
	if b.HighIntentSource() {
		score += addFactor(factors, "High-intent acquisition channel", 5)
	}
	return capAt(score, maxEngagement)
}

// scoreCommitment rewards tangible preparation for a purchase.
func scoreCommitment(b domain.Buyer, factors *[]string) int {
	score := 0
	if b.ProofOfFunds {
		score += addFactor(factors, "Proof of funds", 8)
	}
	if b.Mortgage() == domain.MortgageApproved {
		score += addFactor(factors, "Mortgage approved or AIP", 7)
	}
	if b.SolicitorConnection().Connected() {
		score += addFactor(factors, "Solicitor engaged", 5)
	}
	return capAt(score, maxCommitment)
}

// scoreNegativeModifiers subtracts for explicit opt-outs, junk markers, and
// staleness. Deliberately uncapped.
func scoreNegativeModifiers(b domain.Buyer, now time.Time, factors *[]string) int {
	score := 0
	switch b.StatusCategory() {
	case domain.StatusNotProceeding:
		score += addFactor(factors, "Buyer not proceeding", -50)
	case domain.StatusDisqualified:
		score += addFactor(factors, "Marked fake, unverifiable, or disqualified", -75)
	case domain.StatusDuplicate:
		score += addFactor(factors, "Duplicate record", -25)
	}
	if b.AgeDays(now) > staleLeadDays && b.LastContactAt == nil {
		score += addFactor(factors, "Stale lead with no recorded contact", -15)
	}
	return score
}

package scoring

import (
	"fmt"

	"buyer_triage_backend/internal/buyers/domain"
	"buyer_triage_backend/platform/phone"
)

// Sub-category caps for the quality score. The four capped categories plus
// the budget-tier boost and new-lead bonus clamp to 100 overall.
const (
	maxCompleteness = 25
	maxFinancial    = 35
	maxVerification = 20
	maxInventoryFit = 20

	newLeadBonus               = 10
	newLeadCompletenessFloor   = 15
	verifiedPhoneMinimumDigits = 10
)

// scoreQuality measures profile completeness and financial/verification
// strength on a 0-100 scale.
func scoreQuality(b domain.Buyer, budget float64, p Profile) Breakdown {
	var factors []string

	completeness := scoreCompleteness(b, &factors)
	financial := scoreFinancial(b, &factors)
	verification := scoreVerification(b, &factors)
	inventory := scoreInventoryFit(b, &factors)

	total := completeness + financial + verification + inventory

	if tier, ok := p.BudgetTierFor(budget); ok && tier.QualityBoost > 0 {
		total += addFactor(&factors, "Budget tier boost", tier.QualityBoost)
	}

	if b.IsNewLead() && completeness >= newLeadCompletenessFloor {
		total += addFactor(&factors, "Well-populated new lead", newLeadBonus)
	}

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return Breakdown{
		Category: "quality",
		Score:    float64(total),
		Max:      100,
		Factors:  factors,
	}
}

// scoreCompleteness rewards identity, contact, and preference fields being
// filled in at all.
func scoreCompleteness(b domain.Buyer, factors *[]string) int {
	score := 0
	if b.Name() != "" {
		score += addFactor(factors, "Name provided", 5)
	}
	if b.Email != "" {
		score += addFactor(factors, "Email provided", 5)
	}
	if b.Phone != "" {
		score += addFactor(factors, "Phone provided", 5)
	}
	if b.Location != "" {
		score += addFactor(factors, "Preferred location provided", 5)
	}
	if b.Country != "" {
		score += addFactor(factors, "Country provided", 3)
	}
	if b.Bedrooms != nil {
		score += addFactor(factors, "Bedroom preference provided", 2)
	}
	return capAt(score, maxCompleteness)
}

// scoreFinancial rewards funding strength: cash beats mortgage, a confirmed
// mortgage beats an application, proof of funds beats both.
func scoreFinancial(b domain.Buyer, factors *[]string) int {
	score := 0
	switch b.Payment() {
	case domain.PaymentCash:
		score += addFactor(factors, "Cash buyer", 20)
	case domain.PaymentMortgage:
		score += addFactor(factors, "Mortgage buyer", 10)
		switch b.Mortgage() {
		case domain.MortgageApproved:
			score += addFactor(factors, "Mortgage approved or AIP", 10)
		case domain.MortgageInProgress:
			score += addFactor(factors, "Mortgage application in progress", 5)
		}
	}
	if b.ProofOfFunds {
		score += addFactor(factors, "Proof of funds on file", 10)
	}
	if b.HasBudget() {
		score += addFactor(factors, "Budget stated", 5)
	}
	return capAt(score, maxFinancial)
}

// scoreVerification rewards corroborated contact details and UK
// professional connections.
func scoreVerification(b domain.Buyer, factors *[]string) int {
	score := 0
	if b.BrokerConnection().Connected() {
		score += addFactor(factors, "UK broker connection", 6)
	}
	if b.SolicitorConnection().Connected() {
		score += addFactor(factors, "UK solicitor connection", 6)
	}
	if b.ValidEmail() {
		score += addFactor(factors, "Valid email address", 4)
	}
	if phone.DigitCount(b.Phone) >= verifiedPhoneMinimumDigits {
		score += addFactor(factors, "Complete phone number", 4)
	}
	return capAt(score, maxVerification)
}

// scoreInventoryFit rewards the preferences needed to match the buyer
// against available stock.
func scoreInventoryFit(b domain.Buyer, factors *[]string) int {
	score := 0
	if b.Location != "" {
		score += addFactor(factors, "Location preference for matching", 8)
	}
	if b.Bedrooms != nil {
		score += addFactor(factors, "Bedroom preference for matching", 6)
	}
	if b.HasBudget() {
		score += addFactor(factors, "Budget for matching", 6)
	}
	return capAt(score, maxInventoryFit)
}

// addFactor appends a signed human-readable factor and returns the points.
func addFactor(factors *[]string, label string, points int) int {
	if points >= 0 {
		*factors = append(*factors, fmt.Sprintf("%s (+%d)", label, points))
	} else {
		*factors = append(*factors, fmt.Sprintf("%s (%d)", label, points))
	}
	return points
}

func capAt(score, max int) int {
	if score > max {
		return max
	}
	return score
}

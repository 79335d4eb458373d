// Package narrative turns an assembled score result into human guidance:
// a single next action, a bounded recommendation list, and a three-sentence
// summary. Everything here is deterministic; the optional model-backed
// enhancement lives behind the SummaryProvider boundary.
package narrative

import (
	"fmt"
	"strings"

	"buyer_triage_backend/internal/buyers/domain"
	"buyer_triage_backend/internal/buyers/scoring"
)

const maxRecommendations = 5

// NextAction returns exactly one imperative sentence for the agent handling
// this lead. The tree is keyed on classification first, then the gaps that
// block progress at that tier.
func NextAction(b domain.Buyer, r scoring.Result) string {
	switch r.Tier {
	case scoring.TierSpam:
		return "Archive the lead as spam after a quick manual check."

	case scoring.TierDisqualified:
		return "Close the lead and record the disqualification reason."

	case scoring.TierCold:
		if b.StatusCategory() == domain.StatusNotProceeding {
			return "Archive the lead and schedule a courtesy check-in in six months."
		}
		if strings.TrimSpace(b.Phone) == "" && strings.TrimSpace(b.Email) == "" {
			return "Obtain contact details before attempting any outreach."
		}
		return "Add the lead to the quarterly market-update list."

	case scoring.TierNurtureStandard:
		if strings.TrimSpace(b.Timeline) == "" {
			return "Call to establish a purchase timeline."
		}
		return "Enroll the lead in the monthly nurture sequence."

	case scoring.TierNurturePremium:
		return "Book a discovery call this week to qualify budget and requirements."

	case scoring.TierWarmEngaged:
		switch b.StatusCategory() {
		case domain.StatusViewingBooked:
			return "Confirm the upcoming viewing and prepare comparable listings."
		case domain.StatusNegotiating:
			return "Support the negotiation with a same-day pricing analysis."
		}
		return "Schedule a viewing within the next three days."

	case scoring.TierWarmQualified:
		if b.Payment() == domain.PaymentCash && !b.ProofOfFunds {
			return "Request proof of funds before advancing to offers."
		}
		if b.Payment() == domain.PaymentMortgage && b.Mortgage() != domain.MortgageApproved {
			return "Introduce a mortgage broker to secure an agreement in principle."
		}
		if !b.SolicitorConnection().Connected() {
			return "Recommend a solicitor so legal readiness is in place."
		}
		return "Shortlist matching properties and send them within 24 hours."

	case scoring.TierHot:
		if strings.TrimSpace(b.Phone) == "" {
			return "Email immediately to arrange a call; no phone number is on file."
		}
		return "Call within the hour; this buyer is ready to transact."
	}

	return "Review the lead manually."
}

// Recommendations returns an ordered checklist of up to five follow-ups.
// Spam and disqualified leads short-circuit to a fixed pair.
func Recommendations(b domain.Buyer, r scoring.Result) []string {
	if r.Tier == scoring.TierSpam || r.Tier == scoring.TierDisqualified {
		return []string{
			"Verify the lead manually before any outreach",
			"Remove from active follow-up queues",
		}
	}

	var recs []string

	if b.Payment() == domain.PaymentCash && !b.ProofOfFunds {
		recs = append(recs, "Collect proof of funds to verify cash position")
	}
	if b.Payment() == domain.PaymentMortgage && b.Mortgage() != domain.MortgageApproved {
		recs = append(recs, "Refer to a mortgage broker for an agreement in principle")
	}
	if !b.SolicitorConnection().Connected() {
		recs = append(recs, "Introduce a conveyancing solicitor early")
	}
	if strings.TrimSpace(b.Location) != "" && b.Bedrooms != nil {
		recs = append(recs, fmt.Sprintf("Send curated property matches for %s", strings.TrimSpace(b.Location)))
	} else {
		if strings.TrimSpace(b.Location) == "" {
			recs = append(recs, "Capture a location preference to enable property matching")
		}
		if b.Bedrooms == nil {
			recs = append(recs, "Capture a bedroom requirement to enable property matching")
		}
	}
	if !b.IsUK() {
		recs = append(recs, "Share the international buyer guide and currency considerations")
	}
	if r.Budget >= 1_000_000 {
		recs = append(recs, "Offer off-market and premium exclusivity options")
	}
	if strings.TrimSpace(b.Timeline) == "" {
		recs = append(recs, "Establish a purchase timeline at next contact")
	}
	if strings.TrimSpace(b.Email) == "" || strings.TrimSpace(b.Phone) == "" {
		recs = append(recs, "Complete missing contact details at next touchpoint")
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// Summary renders the three-sentence deterministic summary: who the buyer
// is, the budget and timeline facts, and a context-selected closing line.
func Summary(b domain.Buyer, r scoring.Result) string {
	return strings.Join([]string{
		identitySentence(b, r),
		factsSentence(b, r),
		closingSentence(b, r),
	}, " ")
}

func identitySentence(b domain.Buyer, r scoring.Result) string {
	name := b.Name()
	if name == "" {
		name = "An unnamed buyer"
	}

	descriptor := tierDescriptor(r.Tier)
	financial := financialDescriptor(b)

	geography := ""
	country := strings.TrimSpace(b.Country)
	if !b.IsUK() {
		geography = fmt.Sprintf(", buying from %s (international)", country)
	} else if country != "" {
		geography = ", based in the UK"
	}

	return fmt.Sprintf("%s is a %s lead, %s%s.", name, descriptor, financial, geography)
}

func factsSentence(b domain.Buyer, r scoring.Result) string {
	budget := "No budget has been stated"
	if r.Budget > 0 {
		budget = fmt.Sprintf("Stated budget is %s", formatMoney(r.Budget))
	}

	timeline := strings.TrimSpace(b.Timeline)
	if timeline == "" {
		return budget + " and no purchase timeline has been given."
	}
	return fmt.Sprintf("%s with a timeline of %q.", budget, timeline)
}

// closingSentence picks one closing line by priority: live pipeline stage,
// else the top risk flag, else a low-confidence caveat, else a recap.
func closingSentence(b domain.Buyer, r scoring.Result) string {
	if status := b.StatusCategory(); status.AdvancedStage() {
		return fmt.Sprintf("Currently at the %s stage; respond within %s.",
			stageName(status), r.Priority.SLA)
	}
	if len(r.RiskFlags) > 0 {
		return fmt.Sprintf("Key risk: %s.", strings.ToLower(r.RiskFlags[0][:1])+r.RiskFlags[0][1:])
	}
	if r.ConfidenceDetail.Score < 4 {
		return "Data confidence is low; verify details on first contact."
	}
	return fmt.Sprintf("Quality %d/100 and intent %d/100 support %s handling.",
		r.Quality, r.Intent, r.Priority.Code)
}

func tierDescriptor(t scoring.Tier) string {
	switch t {
	case scoring.TierHot:
		return "hot, transaction-ready"
	case scoring.TierWarmQualified:
		return "well-qualified"
	case scoring.TierWarmEngaged:
		return "actively engaged"
	case scoring.TierNurturePremium:
		return "promising longer-term"
	case scoring.TierNurtureStandard:
		return "early-stage"
	case scoring.TierDisqualified:
		return "disqualified"
	case scoring.TierSpam:
		return "suspected spam"
	default:
		return "low-activity"
	}
}

func financialDescriptor(b domain.Buyer) string {
	switch b.Payment() {
	case domain.PaymentCash:
		if b.ProofOfFunds {
			return "a cash buyer with verified funds"
		}
		return "a cash buyer with funds not yet verified"
	case domain.PaymentMortgage:
		switch b.Mortgage() {
		case domain.MortgageApproved:
			return "a mortgage buyer with an agreement in principle"
		case domain.MortgageInProgress:
			return "a mortgage buyer with an application in progress"
		}
		return "a mortgage buyer with no confirmed approval"
	}
	return "a buyer with no stated funding route"
}

func stageName(s domain.StatusCategory) string {
	switch s {
	case domain.StatusViewingBooked:
		return "viewing"
	case domain.StatusNegotiating:
		return "negotiation"
	case domain.StatusReserved:
		return "reservation"
	case domain.StatusExchanged:
		return "exchange"
	default:
		return "active"
	}
}

// formatMoney renders a base-currency amount as £1.5M / £750k / £9,500.
func formatMoney(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return trimZero(fmt.Sprintf("£%.1fM", amount/1_000_000))
	case amount >= 100_000:
		return trimZero(fmt.Sprintf("£%.0fk", amount/1_000))
	default:
		return fmt.Sprintf("£%s", groupThousands(int64(amount)))
	}
}

func trimZero(s string) string {
	return strings.ReplaceAll(s, ".0M", "M")
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}

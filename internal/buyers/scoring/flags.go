package scoring

import (
	"fmt"
	"strings"
	"time"

	"buyer_triage_backend/internal/buyers/domain"
)

const (
	noContactFlagDays  = 60
	lowConfidenceFloor = 4.0
)

// RiskFlags evaluates the ordered checklist top to bottom and truncates to
// the profile's cap, preserving evaluation order rather than severity.
func RiskFlags(b domain.Buyer, confidence float64, now time.Time, limit int) []string {
	var flags []string

	if b.Payment() == domain.PaymentCash && !b.ProofOfFunds {
		flags = append(flags, "No proof of funds for cash purchase")
	}
	if b.Payment() == domain.PaymentMortgage && b.Mortgage() != domain.MortgageApproved {
		flags = append(flags, "Mortgage not confirmed")
	}
	if !b.IsUK() {
		flags = append(flags, "International buyer")
	}
	if strings.TrimSpace(b.Phone) == "" && strings.TrimSpace(b.Email) == "" {
		flags = append(flags, "No contact details")
	}
	if strings.TrimSpace(b.Timeline) == "" {
		flags = append(flags, "No purchase timeline")
	}
	if age := b.AgeDays(now); age > noContactFlagDays && b.LastContactAt == nil {
		flags = append(flags, fmt.Sprintf("No contact recorded in %d days", age))
	}
	if confidence < lowConfidenceFloor {
		flags = append(flags, "Low data confidence")
	}

	if limit > 0 && len(flags) > limit {
		flags = flags[:limit]
	}
	return flags
}

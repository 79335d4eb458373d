// Package domain holds the buyer snapshot and the typed categories derived
// from its free-text fields. Scorers consume the typed categories; the raw
// text never leaves this package.
package domain

import (
	"strings"
	"time"
)

// Buyer is an immutable snapshot of a prospective purchaser. Every field is
// optional: intake forms, bulk imports, and update triggers all produce
// partial records, and absence must never be an error downstream.
type Buyer struct {
	FullName  string
	FirstName string
	LastName  string

	Email string
	Phone string

	Country  string
	Location string
	Bedrooms *int

	Budget        string // free text, e.g. "£750k", "1.2m - 1.5m"
	BudgetRange   string
	BudgetMin     *float64
	BudgetMax     *float64
	PaymentMethod string
	MortgageState string
	ProofOfFunds  bool

	Timeline string
	Purpose  string
	Source   string
	Status   string
	Notes    string

	UKBroker    string
	UKSolicitor string

	LastContactAt *time.Time
	CreatedAt     *time.Time
}

// Name returns the best available display name.
func (b Buyer) Name() string {
	if full := strings.TrimSpace(b.FullName); full != "" {
		return full
	}
	combined := strings.TrimSpace(strings.TrimSpace(b.FirstName) + " " + strings.TrimSpace(b.LastName))
	return combined
}

// HasBudget reports whether any budget field is populated.
func (b Buyer) HasBudget() bool {
	if strings.TrimSpace(b.Budget) != "" || strings.TrimSpace(b.BudgetRange) != "" {
		return true
	}
	return b.BudgetMin != nil || b.BudgetMax != nil
}

// AgeDays returns whole days since the record was created, or 0 when the
// creation time is unknown.
func (b Buyer) AgeDays(now time.Time) int {
	if b.CreatedAt == nil {
		return 0
	}
	days := int(now.Sub(*b.CreatedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DaysSinceContact returns whole days since last recorded contact, falling
// back to record age when no contact has been logged.
func (b Buyer) DaysSinceContact(now time.Time) int {
	if b.LastContactAt != nil {
		days := int(now.Sub(*b.LastContactAt).Hours() / 24)
		if days < 0 {
			return 0
		}
		return days
	}
	return b.AgeDays(now)
}

package domain

import (
	"net/mail"
	"strings"
	"unicode"
)

// PaymentMethod is the typed funding category.
type PaymentMethod int

const (
	PaymentUnspecified PaymentMethod = iota
	PaymentCash
	PaymentMortgage
)

// ParsePaymentMethod maps free-text payment input to a typed category.
// Unrecognized values fall through to PaymentUnspecified.
func ParsePaymentMethod(raw string) PaymentMethod {
	switch {
	case containsAny(raw, "cash"):
		return PaymentCash
	case containsAny(raw, "mortgage", "finance", "loan"):
		return PaymentMortgage
	default:
		return PaymentUnspecified
	}
}

// Payment returns the buyer's typed payment method.
func (b Buyer) Payment() PaymentMethod {
	return ParsePaymentMethod(b.PaymentMethod)
}

// MortgageStage is the typed mortgage progress category.
type MortgageStage int

const (
	MortgageUnknown MortgageStage = iota
	MortgageInProgress
	MortgageApproved
)

// ParseMortgageStage maps free-text mortgage status to a typed stage.
// "AIP" is an agreement in principle, treated as approved.
func ParseMortgageStage(raw string) MortgageStage {
	switch {
	case containsAny(raw, "approved", "aip", "agreement in principle"):
		return MortgageApproved
	case containsAny(raw, "in progress", "applied", "application"):
		return MortgageInProgress
	default:
		return MortgageUnknown
	}
}

// Mortgage returns the buyer's typed mortgage stage.
func (b Buyer) Mortgage() MortgageStage {
	return ParseMortgageStage(b.MortgageState)
}

// ConnectionStatus is the tri-state for broker/solicitor relationships.
type ConnectionStatus int

const (
	ConnectionNone ConnectionStatus = iota
	ConnectionIntroduced
	ConnectionConfirmed
)

// Connected reports whether the relationship exists in any form.
func (c ConnectionStatus) Connected() bool {
	return c != ConnectionNone
}

// ParseConnection maps free-text connection status to the tri-state.
func ParseConnection(raw string) ConnectionStatus {
	switch {
	case containsAny(raw, "yes", "confirmed", "connected", "appointed", "instructed"):
		return ConnectionConfirmed
	case containsAny(raw, "introduced", "intro", "referred"):
		return ConnectionIntroduced
	default:
		return ConnectionNone
	}
}

// BrokerConnection returns the typed UK broker relationship state.
func (b Buyer) BrokerConnection() ConnectionStatus {
	return ParseConnection(b.UKBroker)
}

// SolicitorConnection returns the typed UK solicitor relationship state.
func (b Buyer) SolicitorConnection() ConnectionStatus {
	return ParseConnection(b.UKSolicitor)
}

// StatusCategory is the typed pipeline position derived from the free-text
// status field. Parsing is best-effort: unknown text maps to StatusOther
// and contributes nothing downstream.
type StatusCategory int

const (
	StatusOther StatusCategory = iota
	StatusNew
	StatusFollowUp
	StatusViewingBooked
	StatusNegotiating
	StatusReserved
	StatusExchanged
	StatusCompleted
	StatusDuplicate
	StatusNotProceeding
	StatusDisqualified
)

// ParseStatus maps free-text pipeline status to a typed category.
// Disqualifying keywords win over everything else, then the voluntary
// opt-out, then duplicates, then the pipeline ladder.
func ParseStatus(raw string) StatusCategory {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return StatusNew
	}
	switch {
	case containsAny(trimmed, "fake", "cant verify", "can't verify", "spam", "test lead", "disqualified"):
		return StatusDisqualified
	case containsAny(trimmed, "not proceeding"):
		return StatusNotProceeding
	case containsAny(trimmed, "duplicate"):
		return StatusDuplicate
	case containsAny(trimmed, "exchanged"):
		return StatusExchanged
	case containsAny(trimmed, "completed", "complete"):
		return StatusCompleted
	case containsAny(trimmed, "reserved"):
		return StatusReserved
	case containsAny(trimmed, "negotiat", "offer"):
		return StatusNegotiating
	case containsAny(trimmed, "viewing"):
		return StatusViewingBooked
	case containsAny(trimmed, "follow"):
		return StatusFollowUp
	case containsAny(trimmed, "contact pending") || containsWord(trimmed, "new"):
		return StatusNew
	default:
		return StatusOther
	}
}

// StatusCategory returns the buyer's typed pipeline status.
func (b Buyer) StatusCategory() StatusCategory {
	return ParseStatus(b.Status)
}

// IsNewLead reports whether the buyer is still awaiting first contact.
func (b Buyer) IsNewLead() bool {
	return b.StatusCategory() == StatusNew
}

// AdvancedStage reports whether the buyer has progressed past first contact
// into an active or committed pipeline stage.
func (c StatusCategory) AdvancedStage() bool {
	switch c {
	case StatusViewingBooked, StatusNegotiating, StatusReserved, StatusExchanged:
		return true
	default:
		return false
	}
}

// CommittedStage reports whether the buyer has committed to a purchase.
func (c StatusCategory) CommittedStage() bool {
	switch c {
	case StatusReserved, StatusExchanged, StatusCompleted:
		return true
	default:
		return false
	}
}

// TimelineBucket is the typed urgency category derived from the free-text
// purchase timeline.
type TimelineBucket int

const (
	TimelineUnknown TimelineBucket = iota
	TimelineVague
	TimelineNextYear
	TimelineThisYear
	TimelineSoon
	TimelineImmediate
)

// ParseTimeline maps free-text timeline input to an urgency bucket.
// Longer horizons are matched first so "6-12 months" does not hit the
// "1 month" immediate pattern.
func ParseTimeline(raw string) TimelineBucket {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TimelineUnknown
	}
	switch {
	case containsAny(trimmed, "6-12 months", "6 to 12 months", "next year"):
		return TimelineNextYear
	case containsAny(trimmed, "3-6 months", "3 to 6 months", "this year"):
		return TimelineThisYear
	case containsAny(trimmed, "immediate", "asap", "28 days", "1 month", "urgent", "now"):
		return TimelineImmediate
	case containsAny(trimmed, "1-3 months", "1 to 3 months", "soon"):
		return TimelineSoon
	default:
		return TimelineVague
	}
}

// TimelineBucket returns the buyer's typed urgency bucket.
func (b Buyer) TimelineBucket() TimelineBucket {
	return ParseTimeline(b.Timeline)
}

// highIntentSources are acquisition channels with above-average conversion.
var highIntentSources = []string{"referral", "direct", "website", "walk-in", "walk in"}

// HighIntentSource reports whether the lead came through a high-intent channel.
func (b Buyer) HighIntentSource() bool {
	return containsAny(b.Source, highIntentSources...)
}

// ukAliases are the country spellings treated as domestic.
var ukAliases = []string{
	"uk", "united kingdom", "great britain", "britain", "gb",
	"england", "scotland", "wales", "northern ireland",
}

// IsUK reports whether the buyer's country is a UK alias. An absent country
// is treated as domestic; only an explicit foreign country flags the buyer
// as international.
func (b Buyer) IsUK() bool {
	country := strings.ToLower(strings.TrimSpace(b.Country))
	if country == "" {
		return true
	}
	for _, alias := range ukAliases {
		if country == alias {
			return true
		}
	}
	return false
}

// ValidEmail reports whether the buyer's email is syntactically valid.
func (b Buyer) ValidEmail() bool {
	trimmed := strings.TrimSpace(b.Email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}

// containsAny reports whether the lowercased input contains any keyword.
func containsAny(s string, keywords ...string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// containsWord reports whether the lowercased input contains the keyword as
// a whole word, so "new" does not match "renewal" or "knew".
func containsWord(s, word string) bool {
	for _, field := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if field == word {
			return true
		}
	}
	return false
}

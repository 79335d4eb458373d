package scoring

import (
	"strconv"
	"strings"

	"buyer_triage_backend/internal/buyers/domain"
)

// rangeSeparators split "A-B" style budget ranges. The word form is padded
// so "to" inside a word never splits.
var rangeSeparators = []string{"–", "—", " to ", "-"}

// ParseBudget normalizes a free-text monetary string into a base-currency
// number. Ranges resolve to their upper bound; k/m suffixes multiply;
// anything unparseable is 0. It never fails.
func ParseBudget(raw string) float64 {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return 0
	}

	// A leading minus is a negative amount, not a range separator.
	if strings.HasPrefix(text, "-") {
		return 0
	}

	for _, sep := range rangeSeparators {
		if strings.Contains(text, sep) {
			parts := strings.Split(text, sep)
			// Upper bound of the range.
			for i := len(parts) - 1; i >= 0; i-- {
				if value := parseAmount(parts[i]); value > 0 {
					return value
				}
			}
			return 0
		}
	}

	return parseAmount(text)
}

// parseAmount parses a single monetary token: currency symbols, thousands
// separators, and whitespace stripped; k/m magnitude suffixes honored.
func parseAmount(token string) float64 {
	cleaned := strings.NewReplacer(
		"£", "", "$", "", "€", "",
		"gbp", "", "usd", "", "eur", "",
		",", "", " ", "", "\t", "",
	).Replace(strings.ToLower(strings.TrimSpace(token)))
	if cleaned == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(cleaned, "million"):
		multiplier = 1_000_000
		cleaned = strings.TrimSuffix(cleaned, "million")
	case strings.HasSuffix(cleaned, "m"):
		multiplier = 1_000_000
		cleaned = strings.TrimSuffix(cleaned, "m")
	case strings.HasSuffix(cleaned, "k"):
		multiplier = 1_000
		cleaned = strings.TrimSuffix(cleaned, "k")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value * multiplier
}

// EffectiveBudget resolves the buyer's budget from whichever field is
// populated: free text first, then the structured maximum, then the range
// text, then the structured minimum.
func EffectiveBudget(b domain.Buyer) float64 {
	if value := ParseBudget(b.Budget); value > 0 {
		return value
	}
	if b.BudgetMax != nil && *b.BudgetMax > 0 {
		return *b.BudgetMax
	}
	if value := ParseBudget(b.BudgetRange); value > 0 {
		return value
	}
	if b.BudgetMin != nil && *b.BudgetMin > 0 {
		return *b.BudgetMin
	}
	return 0
}

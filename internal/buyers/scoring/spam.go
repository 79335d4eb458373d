package scoring

import (
	"regexp"
	"strings"

	"buyer_triage_backend/internal/buyers/domain"
)

// minPlausibleBudget is the floor under which a stated budget is treated as
// a junk entry rather than a real purchase intent.
const minPlausibleBudget = 10_000

// spamThreshold is the additive score at which a lead is marked spam.
const spamThreshold = 50

var (
	placeholderNamePrefixes = []string{"test", "fake", "asdf", "qwerty"}
	placeholderNameExact    = []string{"n/a", "na", "none", "null", "unknown", "xxx"}
	numericName             = regexp.MustCompile(`^[0-9]+$`)

	placeholderEmailLocals = []string{"test", "fake", "spam", "asdf", "example"}
	disposableDomains      = []string{
		"example.com", "example.org", "test.com",
		"mailinator.com", "guerrillamail.com", "10minutemail.com",
		"tempmail.com", "temp-mail.org", "yopmail.com", "trashmail.com",
		"throwawaymail.com", "sharklasers.com",
	}

	placeholderPhones = []string{"1234567890", "0123456789", "123456789", "9876543210"}
)

// CheckSpam runs the additive pattern-weight checks over the identity and
// contact fields. Each triggered check adds its weight and appends a
// human-readable flag in evaluation order.
func CheckSpam(b domain.Buyer, budget float64) SpamCheck {
	score := 0
	var flags []string

	name := strings.ToLower(strings.TrimSpace(b.Name()))
	email := strings.ToLower(strings.TrimSpace(b.Email))
	phone := strings.TrimSpace(b.Phone)

	if name != "" && placeholderName(name) {
		score += 30
		flags = append(flags, "Name matches a placeholder or test pattern")
	}

	if email != "" && placeholderEmail(email) {
		score += 40
		flags = append(flags, "Email uses a disposable or placeholder address")
	}

	if phone != "" && placeholderPhone(phone) {
		score += 30
		flags = append(flags, "Phone number is a placeholder pattern")
	}

	if email == "" && phone == "" {
		score += 20
		flags = append(flags, "No contact details provided")
	}

	if len(name) < 3 {
		score += 15
		flags = append(flags, "Name is too short to be real")
	}

	if budget > 0 && budget < minPlausibleBudget {
		score += 25
		flags = append(flags, "Stated budget is below any plausible purchase")
	}

	confidence := float64(score) / 100
	if confidence > 1 {
		confidence = 1
	}

	return SpamCheck{
		IsSpam:     score >= spamThreshold,
		Flags:      flags,
		Confidence: confidence,
	}
}

func placeholderName(name string) bool {
	for _, prefix := range placeholderNamePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for _, exact := range placeholderNameExact {
		if name == exact {
			return true
		}
	}
	condensed := strings.ReplaceAll(name, " ", "")
	if repeatedChar(condensed) {
		return true
	}
	return numericName.MatchString(condensed)
}

// repeatedChar reports whether the string is three or more copies of a
// single character, like "aaaa" or "zzz".
func repeatedChar(s string) bool {
	runes := []rune(s)
	if len(runes) < 3 {
		return false
	}
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}

func placeholderEmail(email string) bool {
	local, dom, found := strings.Cut(email, "@")
	if !found {
		return false
	}
	for _, prefix := range placeholderEmailLocals {
		if strings.HasPrefix(local, prefix) {
			return true
		}
	}
	for _, disposable := range disposableDomains {
		if dom == disposable {
			return true
		}
	}
	return false
}

func placeholderPhone(phone string) bool {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) == 0 {
		return false
	}

	allSame := true
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return true
	}

	for _, pattern := range placeholderPhones {
		if digits == pattern {
			return true
		}
	}
	return false
}

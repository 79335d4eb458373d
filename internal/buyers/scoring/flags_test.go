package scoring

import (
	"reflect"
	"testing"
	"time"

	"buyer_triage_backend/internal/buyers/domain"
)

var flagsRef = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestRiskFlagsFullChecklistInEvaluationOrder(t *testing.T) {
	created := flagsRef.AddDate(0, 0, -70)
	b := domain.Buyer{
		FullName:      "Omar Farouk",
		Country:       "France",
		PaymentMethod: "mortgage",
		CreatedAt:     &created,
	}

	got := RiskFlags(b, 2.0, flagsRef, 0)
	want := []string{
		"Mortgage not confirmed",
		"International buyer",
		"No contact details",
		"No purchase timeline",
		"No contact recorded in 70 days",
		"Low data confidence",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("flags = %v, want %v", got, want)
	}
}

func TestRiskFlagsIndividualChecks(t *testing.T) {
	cases := []struct {
		name       string
		buyer      domain.Buyer
		confidence float64
		wantFlag   string
		wantAbsent string
	}{
		{
			name:       "cash without proof of funds",
			buyer:      domain.Buyer{PaymentMethod: "cash"},
			confidence: 8,
			wantFlag:   "No proof of funds for cash purchase",
		},
		{
			name:       "verified cash buyer is not flagged",
			buyer:      domain.Buyer{PaymentMethod: "cash", ProofOfFunds: true},
			confidence: 8,
			wantAbsent: "No proof of funds for cash purchase",
		},
		{
			name:       "mortgage without approval",
			buyer:      domain.Buyer{PaymentMethod: "mortgage", MortgageState: "application submitted"},
			confidence: 8,
			wantFlag:   "Mortgage not confirmed",
		},
		{
			name:       "approved mortgage is not flagged",
			buyer:      domain.Buyer{PaymentMethod: "mortgage", MortgageState: "AIP in hand"},
			confidence: 8,
			wantAbsent: "Mortgage not confirmed",
		},
		{
			name:       "explicit foreign country",
			buyer:      domain.Buyer{Country: "United States"},
			confidence: 8,
			wantFlag:   "International buyer",
		},
		{
			name:       "empty country is domestic",
			buyer:      domain.Buyer{},
			confidence: 8,
			wantAbsent: "International buyer",
		},
		{
			name:       "one contact channel is enough",
			buyer:      domain.Buyer{Email: "amira.khan@homemail.co.uk"},
			confidence: 8,
			wantAbsent: "No contact details",
		},
		{
			name:       "confidence at the floor is not low",
			buyer:      domain.Buyer{},
			confidence: 4.0,
			wantAbsent: "Low data confidence",
		},
		{
			name:       "confidence below the floor",
			buyer:      domain.Buyer{},
			confidence: 3.9,
			wantFlag:   "Low data confidence",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RiskFlags(tc.buyer, tc.confidence, flagsRef, 0)
			if tc.wantFlag != "" && !containsFlag(got, tc.wantFlag) {
				t.Fatalf("expected %q in %v", tc.wantFlag, got)
			}
			if tc.wantAbsent != "" && containsFlag(got, tc.wantAbsent) {
				t.Fatalf("did not expect %q in %v", tc.wantAbsent, got)
			}
		})
	}
}

func TestRiskFlagsStaleContactUsesLeadAge(t *testing.T) {
	created := flagsRef.AddDate(0, 0, -95)
	b := domain.Buyer{
		Email:     "amira.khan@homemail.co.uk",
		Phone:     "+447700912345",
		Timeline:  "3-6 months",
		CreatedAt: &created,
	}

	got := RiskFlags(b, 8, flagsRef, 0)
	if !containsFlag(got, "No contact recorded in 95 days") {
		t.Fatalf("expected day count from lead age, got %v", got)
	}

	// A recorded contact suppresses the flag regardless of lead age.
	contacted := flagsRef.AddDate(0, 0, -2)
	b.LastContactAt = &contacted
	got = RiskFlags(b, 8, flagsRef, 0)
	for _, flag := range got {
		if flag == "No contact recorded in 95 days" {
			t.Fatalf("expected contact to suppress the staleness flag, got %v", got)
		}
	}
}

func TestRiskFlagsTruncationKeepsLeadingFlags(t *testing.T) {
	created := flagsRef.AddDate(0, 0, -70)
	b := domain.Buyer{
		Country:       "France",
		PaymentMethod: "cash",
		CreatedAt:     &created,
	}

	full := RiskFlags(b, 2.0, flagsRef, 0)
	capped := RiskFlags(b, 2.0, flagsRef, 4)
	if len(capped) != 4 {
		t.Fatalf("expected 4 flags, got %v", capped)
	}
	if !reflect.DeepEqual(capped, full[:4]) {
		t.Fatalf("truncation reordered flags: %v vs %v", capped, full)
	}
	if capped[0] != "No proof of funds for cash purchase" {
		t.Fatalf("expected the funding check first, got %v", capped)
	}
}

func TestRiskFlagsWellPopulatedBuyerHasNone(t *testing.T) {
	created := flagsRef.AddDate(0, 0, -10)
	b := domain.Buyer{
		FullName:      "James Wright",
		Email:         "james.wright@homemail.co.uk",
		Phone:         "+447700912345",
		Country:       "UK",
		PaymentMethod: "cash",
		ProofOfFunds:  true,
		Timeline:      "immediate",
		CreatedAt:     &created,
	}

	if got := RiskFlags(b, 8.5, flagsRef, 4); len(got) != 0 {
		t.Fatalf("expected no flags, got %v", got)
	}
}

func containsFlag(flags []string, want string) bool {
	for _, flag := range flags {
		if flag == want {
			return true
		}
	}
	return false
}

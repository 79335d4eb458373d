package scoring

import (
	"strings"
	"testing"

	"buyer_triage_backend/internal/buyers/domain"
)

func intPtr(v int) *int { return &v }

func TestScoreQualityEmptyBuyerIsZero(t *testing.T) {
	got := scoreQuality(domain.Buyer{Status: "contacted previously"}, 0, PipelineProfile)
	if got.Score != 0 {
		t.Fatalf("expected zero quality for empty record, got %v (%v)", got.Score, got.Factors)
	}
}

func TestScoreQualityFullyQualifiedCashBuyerClampsAtHundred(t *testing.T) {
	b := domain.Buyer{
		FullName:      "James Wright",
		Email:         "james.wright@homemail.co.uk",
		Phone:         "+447700912345",
		Country:       "UK",
		Location:      "Mayfair",
		Bedrooms:      intPtr(3),
		Budget:        "£2.5m",
		PaymentMethod: "cash",
		ProofOfFunds:  true,
		UKBroker:      "yes",
		UKSolicitor:   "confirmed",
	}

	got := scoreQuality(b, 2_500_000, PipelineProfile)
	if got.Score != 100 {
		t.Fatalf("expected clamp at 100, got %v (%v)", got.Score, got.Factors)
	}
	if got.Max != 100 {
		t.Fatalf("expected max 100, got %v", got.Max)
	}
}

func TestScoreQualityCategoryCaps(t *testing.T) {
	// Cash + proof of funds + budget = 35 raw, exactly the financial cap.
	b := domain.Buyer{
		PaymentMethod: "cash",
		ProofOfFunds:  true,
		Budget:        "£500k",
		Status:        "in contact",
	}
	got := scoreQuality(b, 0, PipelineProfile)

	// financial 35 + completeness 0 + inventory 6 (budget only).
	if got.Score != 41 {
		t.Fatalf("expected 41, got %v (%v)", got.Score, got.Factors)
	}
}

func TestScoreQualityBudgetTierBoost(t *testing.T) {
	base := domain.Buyer{FullName: "Amira Khan", Status: "in contact"}

	without := scoreQuality(base, 0, PipelineProfile)
	with := scoreQuality(base, 1_000_000, PipelineProfile)

	if with.Score-without.Score != 30 {
		t.Fatalf("expected +30 boost at £1M, got %v -> %v", without.Score, with.Score)
	}
}

func TestScoreQualityNewLeadBonusRequiresCompleteness(t *testing.T) {
	// Sparse new lead: name only, completeness 5 < 15, no bonus.
	sparse := scoreQuality(domain.Buyer{FullName: "Amira Khan"}, 0, PipelineProfile)
	for _, f := range sparse.Factors {
		if strings.Contains(f, "Well-populated new lead") {
			t.Fatalf("sparse lead should not receive the new-lead bonus: %v", sparse.Factors)
		}
	}

	// Populated new lead crosses the completeness floor.
	full := scoreQuality(domain.Buyer{
		FullName: "Amira Khan",
		Email:    "amira.khan@homemail.co.uk",
		Phone:    "+447700912345",
	}, 0, PipelineProfile)
	found := false
	for _, f := range full.Factors {
		if strings.Contains(f, "Well-populated new lead") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected new-lead bonus, factors: %v", full.Factors)
	}
}

func TestScoreQualityMortgageLadder(t *testing.T) {
	cases := []struct {
		name  string
		state string
		want  float64
	}{
		{"mortgage only", "", 10},
		{"application in progress", "application submitted", 15},
		{"agreement in principle", "AIP received", 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := domain.Buyer{
				PaymentMethod: "mortgage",
				MortgageState: tc.state,
				Status:        "in contact",
			}
			got := scoreQuality(b, 0, PipelineProfile)
			if got.Score != tc.want {
				t.Fatalf("expected %v, got %v (%v)", tc.want, got.Score, got.Factors)
			}
		})
	}
}

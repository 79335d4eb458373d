package scoring

import (
	"testing"
	"time"

	"buyer_triage_backend/internal/buyers/domain"
)

var scoreRef = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScoreIntentTimelineLadder(t *testing.T) {
	cases := []struct {
		timeline string
		want     float64
	}{
		{"immediate", 30},
		{"ASAP please", 30},
		{"within 28 days", 30},
		{"1-3 months", 20},
		{"sometime soon", 20},
		{"3-6 months", 12},
		{"this year", 12},
		{"6-12 months", 6},
		{"next year maybe", 6},
		{"whenever the right place appears", 5},
		{"", 0},
	}

	for _, tc := range cases {
		t.Run(tc.timeline, func(t *testing.T) {
			b := domain.Buyer{Timeline: tc.timeline, Status: "in contact"}
			got := scoreIntent(b, scoreRef)
			if got.Score != tc.want {
				t.Fatalf("timeline %q: expected %v, got %v (%v)", tc.timeline, tc.want, got.Score, got.Factors)
			}
		})
	}
}

func TestScoreIntentDisqualifiedStatusClampsToZero(t *testing.T) {
	b := domain.Buyer{
		Status:   "fake lead, cant verify",
		Timeline: "immediate",
	}
	got := scoreIntent(b, scoreRef)
	if got.Score != 0 {
		t.Fatalf("expected clamp to zero, got %v (%v)", got.Score, got.Factors)
	}
}

func TestScoreIntentNotProceedingPenalty(t *testing.T) {
	active := domain.Buyer{Timeline: "immediate", PaymentMethod: "cash", ProofOfFunds: true, Status: "in contact"}
	opted := active
	opted.Status = "not proceeding"

	activeScore := scoreIntent(active, scoreRef)
	optedScore := scoreIntent(opted, scoreRef)
	if activeScore.Score-optedScore.Score != 50 {
		t.Fatalf("expected -50 penalty, got %v -> %v", activeScore.Score, optedScore.Score)
	}
}

func TestScoreIntentStaleLeadPenalty(t *testing.T) {
	created := scoreRef.AddDate(0, 0, -120)

	stale := domain.Buyer{Timeline: "1-3 months", Status: "in contact", CreatedAt: &created}
	got := scoreIntent(stale, scoreRef)
	if got.Score != 5 {
		t.Fatalf("expected 20 - 15 = 5, got %v (%v)", got.Score, got.Factors)
	}

	// Recorded contact suppresses the staleness penalty.
	contacted := stale
	lastContact := scoreRef.AddDate(0, 0, -10)
	contacted.LastContactAt = &lastContact
	got = scoreIntent(contacted, scoreRef)
	if got.Score != 20 {
		t.Fatalf("expected no staleness penalty after contact, got %v (%v)", got.Score, got.Factors)
	}
}

func TestScoreIntentNewLeadBaseline(t *testing.T) {
	// New lead with reachable contact details and a budget gets the baseline
	// on top of the new-lead engagement points.
	b := domain.Buyer{
		Email:  "amira.khan@homemail.co.uk",
		Phone:  "+447700912345",
		Budget: "£600k",
	}
	got := scoreIntent(b, scoreRef)
	// engagement new 8 + baseline 15
	if got.Score != 23 {
		t.Fatalf("expected 23, got %v (%v)", got.Score, got.Factors)
	}

	// Without a budget the baseline does not apply.
	b.Budget = ""
	got = scoreIntent(b, scoreRef)
	if got.Score != 8 {
		t.Fatalf("expected 8 without baseline, got %v (%v)", got.Score, got.Factors)
	}
}

func TestScoreIntentEngagementCap(t *testing.T) {
	// Committed stage (25) + high-intent source (5) caps at 25.
	b := domain.Buyer{Status: "reserved", Source: "referral"}
	got := scoreIntent(b, scoreRef)
	if got.Score != 25 {
		t.Fatalf("expected engagement capped at 25, got %v (%v)", got.Score, got.Factors)
	}
}

func TestScoreIntentCommittedCashBuyer(t *testing.T) {
	b := domain.Buyer{
		Timeline:      "immediate",
		PaymentMethod: "cash",
		Location:      "Richmond",
		Bedrooms:      intPtr(4),
		Status:        "negotiating offer",
		ProofOfFunds:  true,
		UKSolicitor:   "instructed",
	}
	got := scoreIntent(b, scoreRef)
	// timeline 30 + purpose (15+10) + engagement 20 + commitment (8+5)
	if got.Score != 88 {
		t.Fatalf("expected 88, got %v (%v)", got.Score, got.Factors)
	}
}

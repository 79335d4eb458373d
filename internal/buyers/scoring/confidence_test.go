package scoring

import (
	"testing"
	"time"

	"buyer_triage_backend/internal/buyers/domain"
)

func TestScoreConfidenceEmptyRecordIsZero(t *testing.T) {
	got := scoreConfidence(domain.Buyer{})
	if got.Score != 0 {
		t.Fatalf("expected zero confidence, got %v (%v)", got.Score, got.Factors)
	}
	if got.Max != 10 {
		t.Fatalf("expected max 10, got %v", got.Max)
	}
}

func TestScoreConfidenceWeightedComposite(t *testing.T) {
	lastContact := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	b := domain.Buyer{
		FullName:      "Amira Khan",
		Email:         "amira.khan@homemail.co.uk",
		Phone:         "+447700912345",
		Country:       "UK",
		Budget:        "£750k",
		Timeline:      "3-6 months",
		PaymentMethod: "mortgage",
		Location:      "Clapham",
		Bedrooms:      intPtr(2),
		Source:        "website",
		ProofOfFunds:  true,
		UKBroker:      "introduced",
		UKSolicitor:   "confirmed",
		LastContactAt: &lastContact,
		Notes:         "Spoke on the phone, very keen, wants to view this month.",
	}

	got := scoreConfidence(b)
	// completeness 10/10*4 + verification 10/10*3 + engagement 6/10*2 +
	// transcript 4/10*1 = 4 + 3 + 1.2 + 0.4 = 8.6
	if got.Score != 8.6 {
		t.Fatalf("expected 8.6, got %v (%v)", got.Score, got.Factors)
	}
}

func TestScoreConfidenceOneDecimalPrecision(t *testing.T) {
	// Seven of ten fields populated: 7/10*4 = 2.8 exactly.
	b := domain.Buyer{
		FullName:      "Amira Khan",
		Email:         "amira.khan@homemail.co.uk",
		Phone:         "+447700912345",
		Country:       "UK",
		Budget:        "£750k",
		Timeline:      "soon",
		PaymentMethod: "cash",
	}
	got := scoreConfidence(b)
	if got.Score != 2.8 {
		t.Fatalf("expected 2.8, got %v (%v)", got.Score, got.Factors)
	}
}

func TestScoreTranscriptTiers(t *testing.T) {
	cases := []struct {
		name  string
		notes string
		want  int
	}{
		{"empty", "", 0},
		{"one liner", "keen buyer", 2},
		{"paragraph", string(make([]byte, 120)), 4},
		{"long notes", string(make([]byte, 300)), 7},
		{"full transcript", string(make([]byte, 700)), 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoreTranscript(tc.notes); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

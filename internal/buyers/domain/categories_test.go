package domain

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want StatusCategory
	}{
		{"", StatusNew},
		{"New enquiry", StatusNew},
		{"contact pending", StatusNew},
		{"Follow up scheduled", StatusFollowUp},
		{"Viewing booked for Saturday", StatusViewingBooked},
		{"negotiating price", StatusNegotiating},
		{"offer submitted", StatusNegotiating},
		{"Reserved plot 12", StatusReserved},
		{"Exchanged contracts", StatusExchanged},
		{"Completed", StatusCompleted},
		{"duplicate of earlier entry", StatusDuplicate},
		{"not proceeding this year", StatusNotProceeding},
		{"fake details", StatusDisqualified},
		{"cant verify phone", StatusDisqualified},
		{"can't verify identity", StatusDisqualified},
		{"spam submission", StatusDisqualified},
		{"test lead from QA", StatusDisqualified},
		{"ringing tomorrow", StatusOther},
		{"renewal notice sent", StatusOther},
		{"knew the agent previously", StatusOther},
		{"NEW - needs first call", StatusNew},
	}

	for _, tc := range cases {
		if got := ParseStatus(tc.raw); got != tc.want {
			t.Errorf("ParseStatus(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseStatusDisqualifiersWinOverPipeline(t *testing.T) {
	// A disqualifying keyword beats a pipeline keyword in the same text.
	if got := ParseStatus("viewing booked but looks like spam"); got != StatusDisqualified {
		t.Fatalf("expected disqualification to win, got %d", got)
	}
}

func TestParseTimeline(t *testing.T) {
	cases := []struct {
		raw  string
		want TimelineBucket
	}{
		{"", TimelineUnknown},
		{"immediately", TimelineImmediate},
		{"ASAP", TimelineImmediate},
		{"within 28 days", TimelineImmediate},
		{"1 month", TimelineImmediate},
		{"urgent relocation", TimelineImmediate},
		{"1-3 months", TimelineSoon},
		{"as soon as we sell", TimelineSoon},
		{"3-6 months", TimelineThisYear},
		{"this year", TimelineThisYear},
		{"6-12 months", TimelineNextYear},
		{"next year after the wedding", TimelineNextYear},
		{"depends on the market", TimelineVague},
	}

	for _, tc := range cases {
		if got := ParseTimeline(tc.raw); got != tc.want {
			t.Errorf("ParseTimeline(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParsePaymentAndMortgage(t *testing.T) {
	if got := ParsePaymentMethod("Cash purchase"); got != PaymentCash {
		t.Fatalf("expected cash, got %d", got)
	}
	if got := ParsePaymentMethod("mortgage with Halifax"); got != PaymentMortgage {
		t.Fatalf("expected mortgage, got %d", got)
	}
	if got := ParsePaymentMethod("bridging finance"); got != PaymentMortgage {
		t.Fatalf("expected finance to map to mortgage, got %d", got)
	}
	if got := ParsePaymentMethod(""); got != PaymentUnspecified {
		t.Fatalf("expected unspecified, got %d", got)
	}

	if got := ParseMortgageStage("AIP in hand"); got != MortgageApproved {
		t.Fatalf("expected AIP to count as approved, got %d", got)
	}
	if got := ParseMortgageStage("application submitted"); got != MortgageInProgress {
		t.Fatalf("expected in progress, got %d", got)
	}
	if got := ParseMortgageStage("thinking about it"); got != MortgageUnknown {
		t.Fatalf("expected unknown, got %d", got)
	}
}

func TestParseConnection(t *testing.T) {
	cases := []struct {
		raw  string
		want ConnectionStatus
	}{
		{"", ConnectionNone},
		{"no", ConnectionNone},
		{"yes", ConnectionConfirmed},
		{"solicitor instructed", ConnectionConfirmed},
		{"introduced last week", ConnectionIntroduced},
		{"referred by partner", ConnectionIntroduced},
	}

	for _, tc := range cases {
		if got := ParseConnection(tc.raw); got != tc.want {
			t.Errorf("ParseConnection(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}

	if ConnectionNone.Connected() {
		t.Fatal("none must not count as connected")
	}
	if !ConnectionIntroduced.Connected() || !ConnectionConfirmed.Connected() {
		t.Fatal("introduced and confirmed must count as connected")
	}
}

func TestIsUK(t *testing.T) {
	uk := []string{"", "UK", "United Kingdom", "great britain", "England", "SCOTLAND", " wales "}
	for _, c := range uk {
		if !(Buyer{Country: c}).IsUK() {
			t.Errorf("expected %q to be domestic", c)
		}
	}

	foreign := []string{"France", "United States", "UAE"}
	for _, c := range foreign {
		if (Buyer{Country: c}).IsUK() {
			t.Errorf("expected %q to be international", c)
		}
	}
}

func TestBuyerName(t *testing.T) {
	if got := (Buyer{FullName: " James Wright "}).Name(); got != "James Wright" {
		t.Fatalf("got %q", got)
	}
	if got := (Buyer{FirstName: "James", LastName: "Wright"}).Name(); got != "James Wright" {
		t.Fatalf("got %q", got)
	}
	if got := (Buyer{FirstName: "James"}).Name(); got != "James" {
		t.Fatalf("got %q", got)
	}
	if got := (Buyer{}).Name(); got != "" {
		t.Fatalf("expected empty name, got %q", got)
	}
}

func TestBuyerAgeAndContactDays(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := (Buyer{}).AgeDays(now); got != 0 {
		t.Fatalf("unknown creation time should be age 0, got %d", got)
	}

	created := now.AddDate(0, 0, -30)
	b := Buyer{CreatedAt: &created}
	if got := b.AgeDays(now); got != 30 {
		t.Fatalf("expected 30 days, got %d", got)
	}
	if got := b.DaysSinceContact(now); got != 30 {
		t.Fatalf("expected fallback to age, got %d", got)
	}

	contacted := now.AddDate(0, 0, -3)
	b.LastContactAt = &contacted
	if got := b.DaysSinceContact(now); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
}

func TestValidEmail(t *testing.T) {
	if !(Buyer{Email: "james.wright@homemail.co.uk"}).ValidEmail() {
		t.Fatal("expected valid email")
	}
	if (Buyer{Email: "not-an-email"}).ValidEmail() {
		t.Fatal("expected invalid email")
	}
	if (Buyer{}).ValidEmail() {
		t.Fatal("empty email must be invalid")
	}
}

package scoring

import (
	"reflect"
	"testing"
	"time"

	"buyer_triage_backend/internal/buyers/domain"
)

var engineRef = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func qualifiedCashBuyer() domain.Buyer {
	return domain.Buyer{
		FullName:      "James Wright",
		Email:         "james.wright@homemail.co.uk",
		Phone:         "+447700912345",
		Country:       "UK",
		Location:      "Mayfair",
		Bedrooms:      intPtr(3),
		Budget:        "£2.5m",
		PaymentMethod: "cash",
		ProofOfFunds:  true,
		Timeline:      "immediate",
		Source:        "referral",
		UKBroker:      "yes",
		UKSolicitor:   "confirmed",
	}
}

func TestScoreAtIsDeterministic(t *testing.T) {
	b := qualifiedCashBuyer()

	first := ScoreAt(b, PipelineProfile, engineRef)
	second := ScoreAt(b, PipelineProfile, engineRef)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input produced different results:\n%+v\n%+v", first, second)
	}
}

func TestScoreHotCashBuyer(t *testing.T) {
	r := ScoreAt(qualifiedCashBuyer(), PipelineProfile, engineRef)

	if r.Spam.IsSpam {
		t.Fatalf("unexpected spam verdict: %v", r.Spam.Flags)
	}
	if r.Quality != 100 {
		t.Fatalf("expected quality 100, got %d (%v)", r.Quality, r.QualityDetail.Factors)
	}
	if r.Intent != 96 {
		t.Fatalf("expected intent 96, got %d (%v)", r.Intent, r.IntentDetail.Factors)
	}
	if r.Classification != "Hot" {
		t.Fatalf("expected Hot, got %q", r.Classification)
	}
	if r.Priority.Code != "P1" || r.Priority.SLA != "<1 hour" {
		t.Fatalf("expected P1 <1 hour, got %+v", r.Priority)
	}
	if r.Budget != 2_500_000 {
		t.Fatalf("expected parsed budget 2.5M, got %v", r.Budget)
	}
}

func TestScoreSpamShortCircuitsClassification(t *testing.T) {
	b := domain.Buyer{
		FullName: "Test",
		Email:    "test@mailinator.com",
		Phone:    "1111111111",
		Budget:   "£2.5m", // high budget must not rescue a spam lead
	}

	r := ScoreAt(b, PipelineProfile, engineRef)
	if !r.Spam.IsSpam {
		t.Fatalf("expected spam, flags: %v", r.Spam.Flags)
	}
	if r.Classification != "Spam" {
		t.Fatalf("expected Spam classification, got %q", r.Classification)
	}
	if r.Priority.Code != "P4" {
		t.Fatalf("expected P4 for spam, got %q", r.Priority.Code)
	}

	intake := ScoreAt(b, IntakeProfile, engineRef)
	if intake.Classification != "Disqualified" {
		t.Fatalf("expected intake label Disqualified, got %q", intake.Classification)
	}
}

func TestScoreBudgetFloorRaisesThinLead(t *testing.T) {
	b := domain.Buyer{
		FullName: "Amira Khan",
		Email:    "amira.khan@homemail.co.uk",
		Budget:   "£1.2m",
	}

	r := ScoreAt(b, PipelineProfile, engineRef)
	if r.Spam.IsSpam {
		t.Fatalf("unexpected spam verdict: %v", r.Spam.Flags)
	}
	if r.Classification != "Warm-Engaged" {
		t.Fatalf("expected budget floor to raise to Warm-Engaged, got %q (q=%d i=%d)",
			r.Classification, r.Quality, r.Intent)
	}
	if r.Priority.Code != "P2" {
		t.Fatalf("expected P2, got %q", r.Priority.Code)
	}
}

func TestScoreBudgetFloorNeverLowers(t *testing.T) {
	// A lead already above the floor keeps its earned tier.
	b := qualifiedCashBuyer()
	b.Budget = "£260k" // floor would be Nurture-Standard

	r := ScoreAt(b, PipelineProfile, engineRef)
	if r.Tier != TierHot {
		t.Fatalf("expected earned Hot to survive a low budget floor, got %q", r.Classification)
	}
}

func TestScoreBudgetMonotonicity(t *testing.T) {
	// Raising only the budget must never lower the classification rank.
	budgets := []string{"", "£100k", "£250k", "£400k", "£500k", "£750k", "£1m", "£2m", "£3m"}

	b := domain.Buyer{
		FullName: "Amira Khan",
		Email:    "amira.khan@homemail.co.uk",
		Phone:    "+447700912345",
		Timeline: "3-6 months",
	}

	prev := TierSpam
	for _, budget := range budgets {
		b.Budget = budget
		r := ScoreAt(b, PipelineProfile, engineRef)
		if r.Tier < prev {
			t.Fatalf("budget %q lowered tier from %d to %d", budget, prev, r.Tier)
		}
		prev = r.Tier
	}
}

func TestScoreNotProceedingIsTerminalCold(t *testing.T) {
	b := qualifiedCashBuyer()
	b.Status = "not proceeding"

	r := ScoreAt(b, PipelineProfile, engineRef)
	if r.Tier != TierCold {
		t.Fatalf("expected terminal Cold, got %q", r.Classification)
	}
	if r.Classification != "Cold" {
		t.Fatalf("expected Cold label, got %q", r.Classification)
	}
	// The 2.5M budget floor must not resurrect an opted-out buyer.
	if r.Priority.Code != "P4" {
		t.Fatalf("expected P4, got %q", r.Priority.Code)
	}
}

func TestScoreDisqualifiedStatusIsTerminal(t *testing.T) {
	b := qualifiedCashBuyer()
	b.Status = "marked fake by agent"

	r := ScoreAt(b, PipelineProfile, engineRef)
	if r.Tier != TierDisqualified {
		t.Fatalf("expected Disqualified, got %q", r.Classification)
	}
}

func TestScoreIntakeAutoDisqualifiesHighBudgetStudio(t *testing.T) {
	b := domain.Buyer{
		FullName: "Amira Khan",
		Email:    "amira.khan@homemail.co.uk",
		Phone:    "+447700912345",
		Budget:   "£2m",
		Bedrooms: intPtr(1),
	}

	r := ScoreAt(b, IntakeProfile, engineRef)
	if r.Tier != TierDisqualified {
		t.Fatalf("expected auto-disqualification, got %q", r.Classification)
	}
	if r.Quality != 0 {
		t.Fatalf("expected quality forced to 0, got %d", r.Quality)
	}
	if r.Classification != "Disqualified" {
		t.Fatalf("expected Disqualified label, got %q", r.Classification)
	}

	// The pipeline profile has no such rule: same input classifies normally.
	pipeline := ScoreAt(b, PipelineProfile, engineRef)
	if pipeline.Tier == TierDisqualified {
		t.Fatalf("pipeline profile must not auto-disqualify, got %q", pipeline.Classification)
	}
}

func TestScoreFlagCapDiffersByProfile(t *testing.T) {
	created := engineRef.AddDate(0, 0, -70)
	b := domain.Buyer{
		FullName:      "Omar Farouk",
		Country:       "United Arab Emirates",
		PaymentMethod: "cash",
		CreatedAt:     &created,
	}

	pipeline := ScoreAt(b, PipelineProfile, engineRef)
	if len(pipeline.RiskFlags) != 4 {
		t.Fatalf("expected pipeline cap of 4 flags, got %v", pipeline.RiskFlags)
	}

	intake := ScoreAt(b, IntakeProfile, engineRef)
	if len(intake.RiskFlags) != 5 {
		t.Fatalf("expected intake cap of 5 flags, got %v", intake.RiskFlags)
	}
}

func TestScoreRangesAlwaysHold(t *testing.T) {
	buyers := []domain.Buyer{
		{},
		qualifiedCashBuyer(),
		{FullName: "Test", Email: "test@mailinator.com"},
		{Status: "not proceeding"},
		{Budget: "£5m", Bedrooms: intPtr(0)},
	}

	for _, profile := range []Profile{PipelineProfile, IntakeProfile} {
		for i, b := range buyers {
			r := ScoreAt(b, profile, engineRef)
			if r.Quality < 0 || r.Quality > 100 {
				t.Fatalf("case %d (%s): quality out of range: %d", i, profile.Name, r.Quality)
			}
			if r.Intent < 0 || r.Intent > 100 {
				t.Fatalf("case %d (%s): intent out of range: %d", i, profile.Name, r.Intent)
			}
			if r.Confidence < 0 || r.Confidence > profile.ConfidenceScale {
				t.Fatalf("case %d (%s): confidence out of range: %v", i, profile.Name, r.Confidence)
			}
			if r.Classification == "" {
				t.Fatalf("case %d (%s): empty classification", i, profile.Name)
			}
			if r.Priority.Code == "" {
				t.Fatalf("case %d (%s): empty priority", i, profile.Name)
			}
		}
	}
}

func TestScoreConfidenceScaleByProfile(t *testing.T) {
	b := qualifiedCashBuyer()

	pipeline := ScoreAt(b, PipelineProfile, engineRef)
	intake := ScoreAt(b, IntakeProfile, engineRef)

	if pipeline.Confidence > 10 {
		t.Fatalf("pipeline confidence should be 0-10, got %v", pipeline.Confidence)
	}
	if intake.Confidence != pipeline.Confidence*10 {
		t.Fatalf("intake confidence should be the 0-100 projection: %v vs %v",
			intake.Confidence, pipeline.Confidence)
	}
}

func TestConvertToPipeline(t *testing.T) {
	b := qualifiedCashBuyer()
	intake := ScoreAt(b, IntakeProfile, engineRef)
	if intake.Classification != "Hot Lead" {
		t.Fatalf("expected intake Hot Lead, got %q", intake.Classification)
	}

	converted := ConvertToPipeline(intake)
	if converted.Profile != "pipeline" {
		t.Fatalf("expected pipeline profile, got %q", converted.Profile)
	}
	if converted.Classification != "Hot" {
		t.Fatalf("expected relabel to Hot, got %q", converted.Classification)
	}
	if converted.Confidence != intake.Confidence/10 {
		t.Fatalf("expected confidence rescaled to 0-10: %v vs %v",
			converted.Confidence, intake.Confidence)
	}
	// Sub-scores are profile-independent and must survive unchanged.
	if converted.Quality != intake.Quality || converted.Intent != intake.Intent {
		t.Fatalf("sub-scores changed during conversion")
	}

	// Converting a pipeline result is the identity.
	pipeline := ScoreAt(b, PipelineProfile, engineRef)
	if !reflect.DeepEqual(ConvertToPipeline(pipeline), pipeline) {
		t.Fatalf("pipeline conversion should be identity")
	}
}

package scoring

import "buyer_triage_backend/internal/buyers/domain"

// classify runs the ordered decision procedure: terminal short-circuits
// first, then the threshold table on the combined score, then the monotonic
// budget-tier floor. The floor may only raise a non-terminal outcome.
func classify(b domain.Buyer, spam SpamCheck, quality, intent int, budget float64, p Profile) Tier {
	// Terminal outcomes. The budget floor never applies to these.
	if spam.IsSpam {
		return TierSpam
	}
	switch b.StatusCategory() {
	case domain.StatusDisqualified:
		return TierDisqualified
	case domain.StatusNotProceeding:
		// Voluntary opt-out, distinct from disqualification.
		return TierCold
	}

	tier := classifyByThresholds(quality, intent, p)

	if budgetTier, ok := p.BudgetTierFor(budget); ok && budgetTier.Floor > tier {
		tier = budgetTier.Floor
	}

	return tier
}

// classifyByThresholds walks the tier table highest first. A tier matches on
// its combined-score floor or, when configured, on meeting both the quality
// and intent floors.
func classifyByThresholds(quality, intent int, p Profile) Tier {
	combined := 0.5*float64(quality) + 0.5*float64(intent)
	for _, rule := range p.Thresholds {
		if rule.Combined > 0 && combined >= rule.Combined {
			return rule.Tier
		}
		if rule.Quality > 0 && quality >= rule.Quality && intent >= rule.Intent {
			return rule.Tier
		}
	}
	return TierCold
}

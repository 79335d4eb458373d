package scoring

// PriorityFor maps a classification tier to its response-time priority.
// Pure lookup, shared by both rule profiles.
func PriorityFor(t Tier) Priority {
	switch t {
	case TierHot:
		return Priority{Code: "P1", SLA: "<1 hour", Description: "Call immediately, ready to transact"}
	case TierWarmQualified, TierWarmEngaged:
		return Priority{Code: "P2", SLA: "<4 hours", Description: "Same-day response expected"}
	case TierNurturePremium, TierNurtureStandard:
		return Priority{Code: "P3", SLA: "<24 hours", Description: "Next-day follow-up and nurture"}
	default:
		return Priority{Code: "P4", SLA: "48+ hours", Description: "Low priority, batch follow-up"}
	}
}

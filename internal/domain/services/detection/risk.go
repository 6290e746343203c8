package detection

import "redflag-lab/internal/domain/models"

// AggregateRisk reduces a set of matched flags to a single risk level: the
// highest severity among them. No flags means low risk.
func AggregateRisk(flags []models.FlagMatch) models.RiskLevel {
	level := models.RiskLevelLow
	for _, f := range flags {
		level = models.MaxRiskLevel(level, f.Severity)
	}
	return level
}

var baseRecommendations = map[models.RiskLevel][]string{
	models.RiskLevelCritical: {
		"Block this sender immediately - the message shows dangerous behavior patterns",
		"Screenshot the conversation with timestamps before blocking",
		"Report the account to the platform, and to local authorities if you feel threatened",
	},
	models.RiskLevelHigh: {
		"Proceed with extreme caution with this sender",
		"Tell a trusted friend or family member about this interaction",
		"Consider blocking if the behavior continues",
	},
	models.RiskLevelMedium: {
		"Be cautious - some concerning patterns were detected",
		"Keep the conversation on the platform and watch for escalation",
	},
	models.RiskLevelLow: {
		"No red flags detected - stay alert as the conversation develops",
	},
}

// Category-specific guidance appended after the tier baseline. Keyed by
// category name; multiple categories can map to the same advice, which is
// deduplicated in the output.
var categoryRecommendations = map[string]string{
	CategoryFinancialScam:  "Never send money, gift cards, or payment details to someone you have not met in person",
	CategoryCryptoScheme:   "Never send money, gift cards, or payment details to someone you have not met in person",
	CategoryPersonalInfo:   "Keep your address, phone number, and workplace private until you have met safely in public",
	CategoryLocation:       "Keep your address, phone number, and workplace private until you have met safely in public",
	CategorySexualPressure: "You are never obligated to share photos or engage with sexual requests",
	CategoryLoveBombing:    "Trust your instincts - emotional manipulation tactics are a warning sign",
	CategoryGuiltTripping:  "Trust your instincts - emotional manipulation tactics are a warning sign",
	CategoryGaslighting:    "Trust your instincts - emotional manipulation tactics are a warning sign",
	CategoryIsolation:      "Trust your instincts - emotional manipulation tactics are a warning sign",
}

// Recommend builds the guidance list for a classified message: the baseline
// for the risk tier plus category-specific advice for the matched flags.
// The result is never empty and never repeats a line.
func Recommend(level models.RiskLevel, flags []models.FlagMatch) []string {
	base, ok := baseRecommendations[level]
	if !ok {
		base = baseRecommendations[models.RiskLevelLow]
	}

	out := make([]string, 0, len(base)+2)
	seen := make(map[string]struct{}, len(base)+2)
	add := func(s string) {
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, s := range base {
		add(s)
	}
	for _, f := range flags {
		if advice, ok := categoryRecommendations[f.Category]; ok {
			add(advice)
		}
	}
	return out
}

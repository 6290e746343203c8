package models

// RiskLevel represents the overall risk tier of an analyzed message
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"      // No concerning patterns
	RiskLevelMedium   RiskLevel = "medium"   // Some concerning patterns, monitor
	RiskLevelHigh     RiskLevel = "high"     // Strong manipulation/safety signals
	RiskLevelCritical RiskLevel = "critical" // Immediate financial or physical risk
)

// riskRank orders risk levels from least to most severe.
var riskRank = map[RiskLevel]int{
	RiskLevelLow:      0,
	RiskLevelMedium:   1,
	RiskLevelHigh:     2,
	RiskLevelCritical: 3,
}

// Rank returns the numeric position of the level in the severity order.
// Unknown levels rank below low.
func (r RiskLevel) Rank() int {
	if rank, ok := riskRank[r]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether r is at least as severe as other.
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return r.Rank() >= other.Rank()
}

// MaxRiskLevel returns the more severe of two levels.
func MaxRiskLevel(a, b RiskLevel) RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// FlagMatch is a single red-flag category detected in a message
type FlagMatch struct {
	Category    string    `json:"category"`
	Explanation string    `json:"explanation"`
	Severity    RiskLevel `json:"severity"`
}

// ClassificationResult is the outcome of analyzing one message
type ClassificationResult struct {
	Message         string      `json:"message"`
	RiskLevel       RiskLevel   `json:"risk_level"`
	RedFlags        []FlagMatch `json:"red_flags"`
	Recommendations []string    `json:"recommendations"`
}

package detection

import (
	"fmt"

	"redflag-lab/internal/domain/models"
)

// MatchFlags scans a message against every category in catalog order and
// returns at most one flag per category. Matching runs against the original
// text, so the snippet quoted in the explanation keeps the sender's casing.
func (c *Catalog) MatchFlags(message string) []models.FlagMatch {
	flags := make([]models.FlagMatch, 0, 4)

	for _, cat := range c.categories {
		snippet, ok := cat.firstMatch(message)
		if !ok {
			continue
		}
		if cat.excluded(message) {
			continue
		}
		flags = append(flags, models.FlagMatch{
			Category:    cat.Name,
			Explanation: fmt.Sprintf("%s (matched %q)", cat.Description, snippet),
			Severity:    cat.Severity,
		})
	}

	return flags
}

func (cc *compiledCategory) firstMatch(message string) (string, bool) {
	for _, re := range cc.matchers {
		if m := re.FindString(message); m != "" {
			return m, true
		}
	}
	return "", false
}

func (cc *compiledCategory) excluded(message string) bool {
	for _, re := range cc.exclusions {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}

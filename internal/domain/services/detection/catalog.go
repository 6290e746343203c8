package detection

import (
	"fmt"
	"regexp"

	"redflag-lab/internal/domain/models"
)

// Category identifiers. Severity lives on the category definition, never
// derived from the name.
const (
	CategoryLoveBombing    = "love_bombing"
	CategoryGuiltTripping  = "guilt_tripping"
	CategoryGaslighting    = "gaslighting"
	CategoryPersistence    = "persistent_messaging"
	CategorySexualPressure = "sexual_pressure"
	CategoryFinancialScam  = "financial_scam"
	CategoryCryptoScheme   = "crypto_scheme"
	CategoryPersonalInfo   = "personal_info_request"
	CategoryLocation       = "location_request"
	CategoryIsolation      = "isolation"
	CategoryUrgency        = "urgency_pressure"
	CategoryThreats        = "threats"
	CategoryCatfishing     = "catfishing"
)

// Category is one red-flag rule: a named group of detection patterns
// sharing a severity tier and an explanation.
type Category struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Severity    models.RiskLevel `json:"severity"`
	Keywords    []string         `json:"keywords,omitempty"`   // literal phrases, case-insensitive substring
	Patterns    []string         `json:"patterns,omitempty"`   // regex patterns, compiled case-insensitive
	Exclusions  []string         `json:"exclusions,omitempty"` // regex guards; any hit suppresses the category
}

// compiledCategory pairs a category with its compiled matchers.
type compiledCategory struct {
	Category
	matchers   []*regexp.Regexp
	exclusions []*regexp.Regexp
}

// Catalog is the immutable, ordered red-flag rule table. It is built once
// at startup and shared read-only by every classification call.
type Catalog struct {
	categories []compiledCategory
}

// NewCatalog compiles the given categories into a catalog. Construction
// fails on a category without patterns or with a malformed regex, so a
// misconfigured catalog is caught at startup instead of per message.
func NewCatalog(categories []Category) (*Catalog, error) {
	compiled := make([]compiledCategory, 0, len(categories))

	for _, cat := range categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("catalog: category with empty name")
		}
		if len(cat.Keywords) == 0 && len(cat.Patterns) == 0 {
			return nil, fmt.Errorf("catalog: category %q has no patterns", cat.Name)
		}

		cc := compiledCategory{Category: cat}

		// Keywords become quoted case-insensitive regexes so literal and
		// regex patterns share one matching path against the original text.
		for _, kw := range cat.Keywords {
			re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(kw))
			if err != nil {
				return nil, fmt.Errorf("catalog: category %q keyword %q: %w", cat.Name, kw, err)
			}
			cc.matchers = append(cc.matchers, re)
		}
		for _, p := range cat.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("catalog: category %q pattern %q: %w", cat.Name, p, err)
			}
			cc.matchers = append(cc.matchers, re)
		}
		for _, ex := range cat.Exclusions {
			re, err := regexp.Compile("(?i)" + ex)
			if err != nil {
				return nil, fmt.Errorf("catalog: category %q exclusion %q: %w", cat.Name, ex, err)
			}
			cc.exclusions = append(cc.exclusions, re)
		}

		compiled = append(compiled, cc)
	}

	return &Catalog{categories: compiled}, nil
}

// MustDefaultCatalog builds the default catalog and panics on a compile
// error. The default rule table is fixed at build time, so a failure here
// is a programming error.
func MustDefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultCategories())
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of categories in the catalog.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// Categories returns the category definitions in catalog order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cc := range c.categories {
		out[i] = cc.Category
	}
	return out
}

// DefaultCategories returns the built-in red-flag rule table. Catalog order
// is significant: it is the order matched flags are reported in, and it
// breaks ties between categories of equal severity.
func DefaultCategories() []Category {
	return []Category{
		{
			Name:        CategoryFinancialScam,
			Description: "Money request detected - classic romance scam pattern",
			Severity:    models.RiskLevelCritical,
			Keywords: []string{
				"venmo", "cashapp", "cash app", "paypal", "zelle",
				"western union", "moneygram", "wire transfer", "money order",
				"financial help", "gift card",
			},
			Patterns: []string{
				`\b(?:need|needs|send|sends|lend|loan|borrow)\b[^.?!]*\b(?:money|cash|funds)\b`,
				`\bemergency\b[^.?!]*\b(?:money|cash|funds)\b`,
				`\bsend\s+\$\s*\d`,
				`\b(?:stranded|stuck|trapped)\b[^.?!]*\b(?:money|cash|funds|help)\b`,
				`\b(?:promise|guarantee|swear)\b[^.?!]*\bpay\s+you\s+back\b`,
				`\bpay\s+you\s+back\b`,
			},
		},
		{
			Name:        CategoryCryptoScheme,
			Description: "Cryptocurrency or investment scheme pitch",
			Severity:    models.RiskLevelCritical,
			Keywords: []string{
				"bitcoin", "crypto", "investment opportunity",
				"guaranteed returns", "double your money", "trading platform",
			},
			Patterns: []string{
				`\bsend\b[^.?!]*\bwallet\b`,
				`\b(?:btc|eth)\b[^.?!]*\b(?:send|wallet|invest)\b`,
			},
		},
		{
			Name:        CategoryThreats,
			Description: "Aggressive or threatening language toward you",
			Severity:    models.RiskLevelCritical,
			Keywords: []string{
				"watch your back",
			},
			Patterns: []string{
				`\byou['\x{2019}]?ll\s+(?:regret|be\s+sorry)\b`,
				`\bi['\x{2019}]?ll\s+(?:find|hurt|kill|destroy)\s+you\b`,
				`\byou['\x{2019}]?re\s+dead\b`,
				`\b(?:bitch|slut|whore)\b`,
				`\bmake\s+you\s+regret\b`,
			},
			Exclusions: []string{
				`\bhurt\s+my\s+(?:back|neck|knee|ankle|shoulder|wrist)\b`,
				`\b(?:back|neck|knee|ankle|shoulder)\s+(?:hurts|pain)\b`,
				`\bphysical\s+therap`,
				`\bpulled\s+(?:a\s+)?muscle\b`,
				`\b(?:lol|lmao|haha|jk|gg)\b`,
			},
		},
		{
			Name:        CategoryGuiltTripping,
			Description: "Guilt tripping - manipulating through guilt and emotional pressure",
			Severity:    models.RiskLevelHigh,
			Keywords: []string{
				"if you really cared", "forget it then", "fine whatever",
				"guess i was wrong about you",
			},
			Patterns: []string{
				`\byou\s+don['\x{2019}]?t\s+(?:even\s+)?care\b`,
				`\bi\s+thought\s+you\s+were\s+different\b`,
				`\bafter\s+(?:everything|all)\s+i['\x{2019}]?ve\s+done\b`,
			},
		},
		{
			Name:        CategoryGaslighting,
			Description: "Gaslighting - making you question your own perception",
			Severity:    models.RiskLevelHigh,
			Keywords: []string{
				"that never happened", "i never said that",
			},
			Patterns: []string{
				`\byou['\x{2019}]?re\s+(?:overreacting|being\s+dramatic|imagining\s+(?:it|things))\b`,
				`\byou['\x{2019}]?re\s+(?:too\s+sensitive|being\s+paranoid|crazy)\b`,
				`\byou\s+misunderstood\b`,
			},
			Exclusions: []string{
				`\b(?:glad|happy|awesome|amazing)\s+you\b`,
				`\b(?:lol|lmao|haha)\b`,
			},
		},
		{
			Name:        CategorySexualPressure,
			Description: "Sexual pressure - inappropriate sexual requests or comments",
			Severity:    models.RiskLevelHigh,
			Keywords: []string{
				"send pics", "send nudes", "what are you wearing",
			},
			Patterns: []string{
				`\bnudes?\b`,
				`\byou['\x{2019}]?re\s+so\s+sexy\b`,
				`\bshow\s+me\b[^.?!]*\b(?:body|pics|photos)\b`,
				`\bsexy\s+photo\b`,
			},
		},
		{
			Name:        CategoryPersonalInfo,
			Description: "Personal information fishing - requesting sensitive details too early",
			Severity:    models.RiskLevelHigh,
			Keywords: []string{
				"where do you live", "where do you work", "what school",
			},
			Patterns: []string{
				`\bwhat['\x{2019}]?s\s+your\s+(?:address|phone|number)\b`,
				`\bgive\s+me\s+your\s+(?:address|phone(?:\s+number)?|number)\b`,
				`\b(?:your|ur)\s+home\s+address\b`,
				`\bwhat\s+bank\s+do\s+you\s+use\b`,
			},
		},
		{
			Name:        CategoryLocation,
			Description: "Location tracking request - attempting to pinpoint where you are",
			Severity:    models.RiskLevelHigh,
			Keywords: []string{
				"send your location", "share your location",
				"turn on your location", "drop a pin",
			},
			Patterns: []string{
				`\bwhere\s+are\s+you\s+right\s+now\b`,
				`\bmeet\s+me\s+(?:now|right\s+now|tonight)\b`,
			},
		},
		{
			Name:        CategoryIsolation,
			Description: "Isolation tactics - separating you from your support network",
			Severity:    models.RiskLevelHigh,
			Keywords: []string{
				"keep this between us", "delete this conversation",
				"nobody gets us",
			},
			Patterns: []string{
				`\bdon['\x{2019}]?t\s+tell\s+(?:anyone|anybody|your\s+friends)\b`,
				`\byour\s+(?:friends|family)\s+(?:don['\x{2019}]?t|won['\x{2019}]?t|wouldn['\x{2019}]?t)\s+(?:understand|approve|get\s+it)\b`,
			},
		},
		{
			Name:        CategoryLoveBombing,
			Description: "Love bombing - excessive romantic declarations too early in conversation",
			Severity:    models.RiskLevelMedium,
			Keywords: []string{
				"soulmate", "soulmates", "meant to be", "love at first sight",
				"my everything", "destiny brought us",
			},
			Patterns: []string{
				`\byou['\x{2019}]?re\s+(?:perfect|so\s+perfect|my\s+world)\b`,
				`\bnever\s+felt\s+this\s+way\b`,
				`\bcan['\x{2019}]?t\s+(?:live|be)\s+without\s+you\b`,
				`\bi['\x{2019}]?m\s+in\s+love\s+with\s+you\b`,
				`\bnot\s+like\s+other\s+(?:girls|guys)\b`,
			},
		},
		{
			Name:        CategoryPersistence,
			Description: "Persistent messaging - not respecting communication boundaries",
			Severity:    models.RiskLevelMedium,
			Keywords: []string{
				"answer me", "reply to me", "respond please",
			},
			Patterns: []string{
				`\b(?:hello|hey)\?{2,}`,
				`\bwhy\s+aren['\x{2019}]?t\s+you\s+(?:responding|answering|replying)\b`,
				`\b(?:stop\s+)?ignoring\s+me\b`,
			},
		},
		{
			Name:        CategoryUrgency,
			Description: "Pressure tactics - manufactured urgency to bypass rational thinking",
			Severity:    models.RiskLevelMedium,
			Keywords: []string{
				"act fast", "limited time", "last chance", "decide now",
			},
			Patterns: []string{
				`\bbefore\s+it['\x{2019}]?s\s+too\s+late\b`,
				`\bneed\s+to\s+know\s+(?:now|right\s+now|today)\b`,
				`\b(?:urgent|immediately|asap)\b`,
			},
		},
		{
			Name:        CategoryCatfishing,
			Description: "Catfishing indicator - avoiding verification or inconsistent story",
			Severity:    models.RiskLevelMedium,
			Keywords: []string{
				"camera is broken", "webcam is broken", "oil rig",
				"working offshore", "deployed overseas",
			},
			Patterns: []string{
				`\bcan['\x{2019}]?t\s+(?:video\s+)?(?:call|facetime)\s+(?:you\s+)?(?:right\s+)?now\b`,
				`\bstationed\s+(?:in|at|overseas)\b`,
				`\bphone\s+camera\s+(?:is\s+)?(?:broken|not\s+working)\b`,
			},
		},
	}
}

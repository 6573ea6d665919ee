package domain

import (
	"errors"
	"strings"
	"time"
)

// Category classifies a deal by the kind of product the partner offers.
type Category string

const (
	CategoryCloud          Category = "cloud"
	CategoryMarketing      Category = "marketing"
	CategoryAnalytics      Category = "analytics"
	CategoryProductivity   Category = "productivity"
	CategoryDesign         Category = "design"
	CategoryDeveloperTools Category = "developer-tools"
	CategoryCommunication  Category = "communication"
	CategoryFinance        Category = "finance"
)

// CategoryAll is the filter sentinel that matches every category.
const CategoryAll = "all"

// AccessLevel filters deals by whether they require a verified account.
type AccessLevel string

const (
	AccessAll      AccessLevel = "all"
	AccessLocked   AccessLevel = "locked"
	AccessUnlocked AccessLevel = "unlocked"
)

var ErrDealNotFound = errors.New("deal not found")

// categoryLabels maps each category to its display string.
var categoryLabels = map[Category]string{
	CategoryCloud:          "Cloud Services",
	CategoryMarketing:      "Marketing",
	CategoryAnalytics:      "Analytics",
	CategoryProductivity:   "Productivity",
	CategoryDesign:         "Design",
	CategoryDeveloperTools: "Developer Tools",
	CategoryCommunication:  "Communication",
	CategoryFinance:        "Finance",
}

// categoryIcons maps each category to its display glyph.
var categoryIcons = map[Category]string{
	CategoryCloud:          "☁️",
	CategoryMarketing:      "📣",
	CategoryAnalytics:      "📊",
	CategoryProductivity:   "⚡",
	CategoryDesign:         "🎨",
	CategoryDeveloperTools: "🛠️",
	CategoryCommunication:  "💬",
	CategoryFinance:        "💰",
}

// Categories returns the fixed category enumeration in display order.
func Categories() []Category {
	return []Category{
		CategoryCloud,
		CategoryMarketing,
		CategoryAnalytics,
		CategoryProductivity,
		CategoryDesign,
		CategoryDeveloperTools,
		CategoryCommunication,
		CategoryFinance,
	}
}

// Label returns the display string for the category, or the raw value when
// the category is outside the enumeration.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Icon returns the display glyph for the category, empty when unknown.
func (c Category) Icon() string {
	return categoryIcons[c]
}

// Valid reports whether the category belongs to the fixed enumeration.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Partner identifies the company behind a deal.
type Partner struct {
	Name    string `json:"name" bson:"name"`
	Logo    string `json:"logo" bson:"logo"`
	Website string `json:"website" bson:"website"`
}

// Deal is an immutable catalog entry: a partner offer with eligibility rules
// and a discount. The catalog is loaded once at startup and never mutated.
type Deal struct {
	ID                string     `json:"id" bson:"_id"`
	Title             string     `json:"title" bson:"title"`
	Description       string     `json:"description" bson:"description"`
	ShortDescription  string     `json:"short_description" bson:"short_description"`
	Partner           Partner    `json:"partner" bson:"partner"`
	Category          Category   `json:"category" bson:"category"`
	Discount          string     `json:"discount" bson:"discount"`
	OriginalPrice     string     `json:"original_price,omitempty" bson:"original_price,omitempty"`
	IsLocked          bool       `json:"is_locked" bson:"is_locked"`
	EligibilityRules  []string   `json:"eligibility_rules" bson:"eligibility_rules"`
	ClaimInstructions string     `json:"claim_instructions" bson:"claim_instructions"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	TotalClaims       int        `json:"total_claims" bson:"total_claims"`
	MaxClaims         int        `json:"max_claims,omitempty" bson:"max_claims,omitempty"` // 0 = uncapped
}

// FilterDeals returns the deals matching all three predicates, preserving the
// relative order of the input. Search is a case-insensitive substring match on
// title, description, or partner name; an empty search matches everything.
// Category must match exactly or be the "all" sentinel, and the same holds for
// the access level. Values outside the enumerations match nothing, so the
// function is total over arbitrary input.
func FilterDeals(deals []Deal, search, category string, access AccessLevel) []Deal {
	needle := strings.ToLower(search)

	matched := make([]Deal, 0, len(deals))
	for _, d := range deals {
		if !matchesSearch(d, needle) {
			continue
		}
		if category != CategoryAll && Category(category) != d.Category {
			continue
		}
		if !matchesAccess(d, access) {
			continue
		}
		matched = append(matched, d)
	}
	return matched
}

func matchesSearch(d Deal, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(d.Title), needle) ||
		strings.Contains(strings.ToLower(d.Description), needle) ||
		strings.Contains(strings.ToLower(d.Partner.Name), needle)
}

func matchesAccess(d Deal, access AccessLevel) bool {
	switch access {
	case AccessAll:
		return true
	case AccessLocked:
		return d.IsLocked
	case AccessUnlocked:
		return !d.IsLocked
	default:
		return false
	}
}

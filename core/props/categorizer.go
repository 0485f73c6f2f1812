// Package props classifies component attribute names into semantic categories.
package props

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Category string

const (
	EventHandler   Category = "eventHandler"
	Accessibility  Category = "accessibility"
	TestSelector   Category = "testSelector"
	DataAttribute  Category = "dataAttribute"
	Reference      Category = "reference"
	Composition    Category = "composition"
	Identification Category = "identification"
	LoadingState   Category = "loadingState"
	StateControl   Category = "stateControl"
	Configuration  Category = "configuration"
	Styling        Category = "styling"
	Customization  Category = "customization"
	Other          Category = "other"
)

// ErrInvalidPropName is returned for names that cannot be classified.
var ErrInvalidPropName = errors.New("invalid prop name")

// Rule is one row of the categorization table.
type Rule struct {
	Category Category
	// Exact names claim the prop outright when no higher priority rule has
	// matched yet; no later rule is consulted.
	Exact []string
	// Patterns and Substrings accumulate: every matching rule contributes.
	// Substrings are compared against the lowercased name.
	Patterns   []*regexp.Regexp
	Substrings []string
	// SuppressedBy drops this category when any listed category also matched.
	SuppressedBy []Category
}

func (r Rule) MatchesExact(name string) bool {
	for _, e := range r.Exact {
		if e == name {
			return true
		}
	}
	return false
}

func (r Rule) MatchesPattern(name string) bool {
	for _, re := range r.Patterns {
		if re.MatchString(name) {
			return true
		}
	}
	lower := strings.ToLower(name)
	for _, s := range r.Substrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// Matches reports whether the rule would consider name at all.
func (r Rule) Matches(name string) bool {
	return r.MatchesExact(name) || r.MatchesPattern(name)
}

// Categorizer evaluates an ordered rule table. It holds no mutable state and is
// safe for concurrent use.
type Categorizer struct {
	rules []Rule
}

func New(rules []Rule) *Categorizer {
	return &Categorizer{rules: rules}
}

var defaultCategorizer = New(DefaultRules())

// Default returns the categorizer built from DefaultRules.
func Default() *Categorizer {
	return defaultCategorizer
}

func (c *Categorizer) Rules() []Rule {
	return c.rules
}

// Categorize returns the categories of name in priority order, never empty.
//
// Claim pass: rules are evaluated in priority order. A rule listing name
// exactly claims it and stops evaluation, unless a higher priority rule
// already matched by pattern; then it is collected like a pattern match.
// Exclusion pass: a collected category is dropped when one of its
// SuppressedBy categories was also collected.
func (c *Categorizer) Categorize(name string) ([]Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPropName, name)
	}

	var matched []Rule
	for _, rule := range c.rules {
		if rule.MatchesExact(name) {
			if len(matched) == 0 {
				matched = []Rule{rule}
				break
			}
			matched = append(matched, rule)
			continue
		}
		if rule.MatchesPattern(name) {
			matched = append(matched, rule)
		}
	}

	if len(matched) == 0 {
		return []Category{Other}, nil
	}

	present := make(map[Category]bool, len(matched))
	for _, m := range matched {
		present[m.Category] = true
	}

	out := make([]Category, 0, len(matched))
	for _, m := range matched {
		if suppressed(m, present) {
			continue
		}
		out = append(out, m.Category)
	}
	if len(out) == 0 {
		// Mutually suppressing rules; keep the highest priority one.
		out = append(out, matched[0].Category)
	}
	return out, nil
}

func suppressed(r Rule, present map[Category]bool) bool {
	for _, by := range r.SuppressedBy {
		if by != r.Category && present[by] {
			return true
		}
	}
	return false
}

// Strings converts categories for the usage aggregates.
func Strings(cats []Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}

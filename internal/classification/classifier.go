// Package classification assigns categories to bank statement lines using
// prioritized regular expression rules.
package classification

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Kind is the direction of money a rule applies to.
type Kind string

// Rule kinds.
const (
	KindIncome   Kind = "income"
	KindExpense  Kind = "expense"
	KindTransfer Kind = "transfer"
)

// Rule maps statement text to a category.
type Rule struct {
	Category string
	Kind     Kind
	Pattern  string
	// Higher priority rules are tried first.
	Priority int
}

type compiledRule struct {
	re *regexp.Regexp
	Rule
}

// Classifier matches statement text against rules in priority order.
// It is safe for concurrent use.
type Classifier struct {
	rules []compiledRule
}

// New compiles rules. Patterns are case-insensitive.
func New(rules []Rule) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		pattern := r.Pattern
		if !strings.HasPrefix(pattern, "(?i)") {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.Category, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, re: re})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})
	return &Classifier{rules: compiled}, nil
}

// Default returns a classifier over DefaultRules.
func Default() *Classifier {
	c, err := New(DefaultRules())
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the first rule matching text whose kind is one of kinds.
// With no kinds every rule is considered.
func (c *Classifier) Classify(text string, kinds ...Kind) (Rule, bool) {
	for _, r := range c.rules {
		if len(kinds) > 0 && !hasKind(kinds, r.Kind) {
			continue
		}
		if r.re.MatchString(text) {
			return r.Rule, true
		}
	}
	return Rule{}, false
}

// Len returns the number of rules.
func (c *Classifier) Len() int {
	return len(c.rules)
}

func hasKind(kinds []Kind, k Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

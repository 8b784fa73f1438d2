package listview

import (
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/model"
)

// Criterion constrains one record field. An empty Value matches everything.
type Criterion struct {
	Field string
	Value string
	// Contains selects case-insensitive substring matching instead of
	// exact equality.
	Contains bool
}

// Match reports whether r satisfies the criterion.
func (c Criterion) Match(r model.Record) bool {
	if c.Value == "" {
		return true
	}
	got := r.Field(c.Field)
	if c.Contains {
		return strings.Contains(strings.ToLower(got), strings.ToLower(c.Value))
	}
	return got == c.Value
}

// Query is a conjunction of criteria.
type Query []Criterion

// Search returns a query matching field case-insensitively against text.
func Search(field, text string) Query {
	return Query{{Field: field, Value: text, Contains: true}}
}

// Equals returns a query requiring field to equal value.
func Equals(field, value string) Query {
	return Query{{Field: field, Value: value}}
}

// And combines two queries; a record must satisfy both.
func (q Query) And(other Query) Query {
	out := make(Query, 0, len(q)+len(other))
	out = append(out, q...)
	return append(out, other...)
}

// Match reports whether r satisfies every criterion.
func (q Query) Match(r model.Record) bool {
	for _, c := range q {
		if !c.Match(r) {
			return false
		}
	}
	return true
}

// Apply returns the records matching q in their original order. The input
// slice is never modified and the result never aliases it.
func Apply[T model.Record](records []T, q Query) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Options returns the distinct non-empty values of field in first-appearance
// order.
func Options[T model.Record](records []T, field string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		v := r.Field(field)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

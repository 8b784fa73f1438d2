package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/model"
)

// Progress returns current/target as a percentage clamped to [0, 100].
func Progress(g model.Goal) float64 {
	target := g.TargetAmount.Float()
	if target <= 0 {
		return 0
	}
	return max(0, min(g.CurrentAmount.Float()/target*100, 100))
}

// GoalPage is the part of the goals page a contribution needs.
type GoalPage interface {
	Find(id model.ID) (model.Goal, bool)
	Update(ctx context.Context, id model.ID, patch any) error
}

// Contribute adds delta to the saved amount of goal id and returns the new
// amount. The page refetches on success.
func Contribute(ctx context.Context, page GoalPage, id model.ID, delta float64) (float64, error) {
	g, ok := page.Find(id)
	if !ok {
		return 0, fmt.Errorf("%w: goal %s", common.ErrNotFound, id)
	}
	amount := g.CurrentAmount.Float() + delta
	if err := page.Update(ctx, id, model.GoalPatch{CurrentAmount: amount}); err != nil {
		return 0, err
	}
	return amount, nil
}

// Day groups the records dated on one day of the month.
type Day[T model.Record] struct {
	Entries []T
	Day     int
}

// Calendar groups records by the day of month of their date field, in day
// order. Records with an unparseable date are skipped.
func Calendar[T model.Record](records []T, dateField string) []Day[T] {
	var days [32][]T
	for _, r := range records {
		d, ok := dayOfMonth(r.Field(dateField))
		if !ok {
			continue
		}
		days[d] = append(days[d], r)
	}
	var out []Day[T]
	for d, entries := range days {
		if len(entries) > 0 {
			out = append(out, Day[T]{Day: d, Entries: entries})
		}
	}
	return out
}

func dayOfMonth(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t.Day(), true
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 31 {
		return n, true
	}
	return 0, false
}

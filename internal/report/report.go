package report

import "github.com/Veraticus/ledgerdeck/internal/model"

// Slice is one expense category of the pie chart.
type Slice struct {
	Category string
	Amount   float64
	Percent  float64
	StartDeg float64
	EndDeg   float64
	Hue      int
}

// Comparison is one budget of the budget vs actual chart.
type Comparison struct {
	Budget  model.Budget
	Actual  float64
	Percent float64
	// Fill is Percent clamped to 100.
	Fill float64
	Over bool
}

// Report is the financial report screen.
type Report struct {
	Categories  []Slice
	Comparisons []Comparison
	Totals      Totals
	NetBalance  float64
}

// BuildReport derives the report from a snapshot.
func BuildReport(d Data) Report {
	totals := ComputeTotals(d)
	return Report{
		Totals:      totals,
		NetBalance:  totals.Income - totals.Expenses,
		Categories:  CategoryPie(d.Expenses),
		Comparisons: BudgetVsActual(d.Budgets, d.Expenses),
	}
}

// CategoryPie groups expenses by category in first-appearance order. Hues
// step by 60 degrees per slice.
func CategoryPie(expenses []model.Expense) []Slice {
	var (
		slices []Slice
		index  = make(map[string]int)
		total  float64
	)
	for _, e := range expenses {
		amount := e.Amount.Float()
		total += amount
		i, ok := index[e.Category]
		if !ok {
			i = len(slices)
			index[e.Category] = i
			slices = append(slices, Slice{Category: e.Category, Hue: i * 60})
		}
		slices[i].Amount += amount
	}
	if total == 0 {
		return slices
	}
	start := 0.0
	for i := range slices {
		slices[i].Percent = slices[i].Amount / total * 100
		slices[i].StartDeg = start
		slices[i].EndDeg = start + slices[i].Percent/100*360
		start = slices[i].EndDeg
	}
	return slices
}

// BudgetVsActual compares each budget with the expenses linked to it. A
// budget with no positive plan reports 0%.
func BudgetVsActual(budgets []model.Budget, expenses []model.Expense) []Comparison {
	spent := SpentByBudget(expenses)
	out := make([]Comparison, 0, len(budgets))
	for _, b := range budgets {
		c := Comparison{Budget: b, Actual: spent[b.ID]}
		if planned := b.AmountPlanned.Float(); planned > 0 {
			c.Percent = c.Actual / planned * 100
		}
		c.Fill = min(c.Percent, 100)
		c.Over = c.Percent > 100
		out = append(out, c)
	}
	return out
}

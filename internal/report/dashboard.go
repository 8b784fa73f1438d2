package report

import "github.com/Veraticus/ledgerdeck/internal/model"

// Totals are the summed amounts of each collection.
type Totals struct {
	Budgets  float64
	Expenses float64
	Income   float64
	Payroll  float64
	Goals    float64
}

// Bar is one row of the overview bar chart.
type Bar struct {
	Label   string
	Value   float64
	Percent float64
}

// Overrun is a budget whose linked expenses exceed the plan.
type Overrun struct {
	Budget model.Budget
	Actual float64
}

// Dashboard is the overview screen.
type Dashboard struct {
	Overruns      []Overrun
	Bars          []Bar
	Totals        Totals
	GoalCount     int
	AchievedGoals int
}

// ComputeTotals sums each collection.
func ComputeTotals(d Data) Totals {
	var t Totals
	for _, b := range d.Budgets {
		t.Budgets += b.AmountPlanned.Float()
	}
	for _, e := range d.Expenses {
		t.Expenses += e.Amount.Float()
	}
	for _, i := range d.Income {
		t.Income += i.Amount.Float()
	}
	for _, p := range d.Payroll {
		t.Payroll += p.AmountPaid.Float()
	}
	for _, g := range d.Goals {
		t.Goals += g.TargetAmount.Float()
	}
	return t
}

// BuildDashboard derives the dashboard from a snapshot.
func BuildDashboard(d Data) Dashboard {
	totals := ComputeTotals(d)
	dash := Dashboard{
		Totals:    totals,
		GoalCount: len(d.Goals),
		Bars: bars([]Bar{
			{Label: "Budgets", Value: totals.Budgets},
			{Label: "Expenses", Value: totals.Expenses},
			{Label: "Income", Value: totals.Income},
			{Label: "Payroll", Value: totals.Payroll},
			{Label: "Goals", Value: totals.Goals},
		}),
	}
	for _, g := range d.Goals {
		if g.Status == model.GoalAchieved {
			dash.AchievedGoals++
		}
	}
	spent := SpentByBudget(d.Expenses)
	for _, b := range d.Budgets {
		if actual := spent[b.ID]; actual > b.AmountPlanned.Float() {
			dash.Overruns = append(dash.Overruns, Overrun{Budget: b, Actual: actual})
		}
	}
	return dash
}

// SpentByBudget sums expense amounts per linked budget id.
func SpentByBudget(expenses []model.Expense) map[model.ID]float64 {
	spent := make(map[model.ID]float64)
	for _, e := range expenses {
		if e.BudgetID.IsZero() {
			continue
		}
		spent[e.BudgetID] += e.Amount.Float()
	}
	return spent
}

// bars scales each value as a percentage of the largest. A largest value
// of zero is treated as one.
func bars(in []Bar) []Bar {
	largest := 0.0
	for _, b := range in {
		if b.Value > largest {
			largest = b.Value
		}
	}
	if largest == 0 {
		largest = 1
	}
	for i := range in {
		in[i].Percent = in[i].Value / largest * 100
	}
	return in
}

package report

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/ledgerdeck/internal/apiclient"
	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/listview"
	"github.com/Veraticus/ledgerdeck/internal/mockapi"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticList[T any] struct {
	err     error
	records []T
}

func (s staticList[T]) List(context.Context) ([]T, error) {
	return s.records, s.err
}

func snapshot() Data {
	return Data{
		Budgets: []model.Budget{
			{ID: "1", Department: "Ops", Title: "Supplies", AmountPlanned: 500},
			{ID: "2", Department: "IT", Title: "Hardware", AmountPlanned: 1000},
			{ID: "3", Department: "HR", Title: "Unplanned"},
		},
		Expenses: []model.Expense{
			{ID: "1", BudgetID: "1", Category: "Office", Amount: 300},
			{ID: "2", BudgetID: "1", Category: "Travel", Amount: 300},
			{ID: "3", BudgetID: "2", Category: "Office", Amount: 200},
			{ID: "4", Category: "Meals", Amount: 200},
		},
		Income:  []model.Income{{ID: "1", Amount: 2500}},
		Payroll: []model.Payroll{{ID: "1", AmountPaid: 1500}, {ID: "2", AmountPaid: 500}},
		Goals: []model.Goal{
			{ID: "1", TargetAmount: 1000, CurrentAmount: 1000, Status: model.GoalAchieved},
			{ID: "2", TargetAmount: 500, CurrentAmount: 100, Status: "In Progress"},
		},
	}
}

func TestBuildDashboard(t *testing.T) {
	dash := BuildDashboard(snapshot())

	assert.Equal(t, Totals{Budgets: 1500, Expenses: 1000, Income: 2500, Payroll: 2000, Goals: 1500}, dash.Totals)
	assert.Equal(t, 1, dash.AchievedGoals)
	assert.Equal(t, 2, dash.GoalCount)
	require.Len(t, dash.Overruns, 1)
	assert.Equal(t, "Supplies", dash.Overruns[0].Budget.Title)
	assert.InDelta(t, 600, dash.Overruns[0].Actual, 0.001)

	require.Len(t, dash.Bars, 5)
	assert.Equal(t, "Income", dash.Bars[2].Label)
	assert.InDelta(t, 100, dash.Bars[2].Percent, 0.001)
	assert.InDelta(t, 40, dash.Bars[1].Percent, 0.001)
}

func TestBuildDashboardEmpty(t *testing.T) {
	dash := BuildDashboard(Data{})
	for _, b := range dash.Bars {
		assert.Zero(t, b.Percent)
	}
	assert.Empty(t, dash.Overruns)
}

func TestBuildReport(t *testing.T) {
	r := BuildReport(snapshot())
	assert.InDelta(t, 1500, r.NetBalance, 0.001)

	require.Len(t, r.Categories, 3)
	office, travel, meals := r.Categories[0], r.Categories[1], r.Categories[2]
	assert.Equal(t, "Office", office.Category)
	assert.InDelta(t, 50, office.Percent, 0.001)
	assert.InDelta(t, 0, office.StartDeg, 0.001)
	assert.InDelta(t, 180, office.EndDeg, 0.001)
	assert.Equal(t, 0, office.Hue)
	assert.Equal(t, "Travel", travel.Category)
	assert.InDelta(t, 180, travel.StartDeg, 0.001)
	assert.Equal(t, 60, travel.Hue)
	assert.InDelta(t, 360, meals.EndDeg, 0.001)
	assert.Equal(t, 120, meals.Hue)

	require.Len(t, r.Comparisons, 3)
	assert.InDelta(t, 120, r.Comparisons[0].Percent, 0.001)
	assert.InDelta(t, 100, r.Comparisons[0].Fill, 0.001)
	assert.True(t, r.Comparisons[0].Over)
	assert.InDelta(t, 20, r.Comparisons[1].Percent, 0.001)
	assert.False(t, r.Comparisons[1].Over)
	assert.Zero(t, r.Comparisons[2].Percent)
}

func TestCategoryPieWithoutSpend(t *testing.T) {
	slices := CategoryPie([]model.Expense{{Category: "Office"}})
	require.Len(t, slices, 1)
	assert.Zero(t, slices[0].Percent)
}

func TestLoadFailsAsOne(t *testing.T) {
	ctx := context.Background()
	src := Sources{
		Budgets:  staticList[model.Budget]{records: snapshot().Budgets},
		Expenses: staticList[model.Expense]{err: errors.New("timeout")},
		Income:   staticList[model.Income]{},
		Payroll:  staticList[model.Payroll]{},
		Goals:    staticList[model.Goal]{},
	}

	_, err := LoadDashboard(ctx, src)
	assert.Equal(t, DashboardFetchMessage, common.UserMessage(err))

	_, err = LoadReport(ctx, src)
	assert.Equal(t, ReportFetchMessage, common.UserMessage(err))

	src.Expenses = staticList[model.Expense]{records: snapshot().Expenses}
	src.Payroll = staticList[model.Payroll]{err: errors.New("down")}
	rep, err := LoadReport(ctx, src)
	require.NoError(t, err)
	assert.Len(t, rep.Comparisons, 3)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		goal model.Goal
		want float64
	}{
		{"partial", model.Goal{TargetAmount: 1000, CurrentAmount: 550}, 55},
		{"over target", model.Goal{TargetAmount: 100, CurrentAmount: 250}, 100},
		{"negative", model.Goal{TargetAmount: 100, CurrentAmount: -5}, 0},
		{"no target", model.Goal{CurrentAmount: 50}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Progress(tt.goal), 0.001)
		})
	}
}

func TestContributeScenario(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := mockapi.New(mockapi.Options{})
	ts := httptest.NewServer(mock.Handler())
	t.Cleanup(ts.Close)
	client, err := apiclient.New(ts.URL, apiclient.WithTimeout(5*time.Second))
	require.NoError(t, err)

	ids, err := mock.Seed("goals", map[string]any{"name": "Reserve", "target_amount": 1000, "current_amount": 400, "deadline": "2025-12-31"})
	require.NoError(t, err)
	id := model.ID(ids[0])

	ctx := context.Background()
	page := listview.NewGoals(client.Goals(), nil)
	require.NoError(t, page.Fetch(ctx))

	amount, err := Contribute(ctx, page, id, 150)
	require.NoError(t, err)
	assert.InDelta(t, 550, amount, 0.001)

	g, ok := page.Find(id)
	require.True(t, ok)
	assert.InDelta(t, 550, g.CurrentAmount.Float(), 0.001)
	assert.InDelta(t, 55, Progress(g), 0.001)

	_, err = Contribute(ctx, page, "missing", 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCalendar(t *testing.T) {
	expenses := []model.Expense{
		{ID: "1", Date: "2024-03-09"},
		{ID: "2", Date: "2024-03-02"},
		{ID: "3", Date: "2024-04-09T00:00:00Z"},
		{ID: "4", Date: "soon"},
	}
	days := Calendar(expenses, "date")
	require.Len(t, days, 2)
	assert.Equal(t, 2, days[0].Day)
	assert.Equal(t, 9, days[1].Day)
	assert.Len(t, days[1].Entries, 2)
}

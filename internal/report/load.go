// Package report derives the dashboard, report and goal views from the
// finance collections.
package report

import (
	"context"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"golang.org/x/sync/errgroup"
)

// Static messages shown when a load fails.
const (
	DashboardFetchMessage = "Failed to fetch dashboard data."
	ReportFetchMessage    = "Failed to fetch reports data."
)

// Lister fetches one collection.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Sources are the collections a report reads. Nil sources are skipped.
type Sources struct {
	Budgets  Lister[model.Budget]
	Expenses Lister[model.Expense]
	Income   Lister[model.Income]
	Payroll  Lister[model.Payroll]
	Goals    Lister[model.Goal]
}

// Data is one consistent snapshot of the collections.
type Data struct {
	Budgets  []model.Budget
	Expenses []model.Expense
	Income   []model.Income
	Payroll  []model.Payroll
	Goals    []model.Goal
}

// Load fetches every configured source concurrently. Any failure fails the
// whole load; there is no partial data.
func Load(ctx context.Context, src Sources) (Data, error) {
	var data Data
	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, g, src.Budgets, &data.Budgets)
	fetch(gctx, g, src.Expenses, &data.Expenses)
	fetch(gctx, g, src.Income, &data.Income)
	fetch(gctx, g, src.Payroll, &data.Payroll)
	fetch(gctx, g, src.Goals, &data.Goals)
	if err := g.Wait(); err != nil {
		return Data{}, err
	}
	return data, nil
}

func fetch[T any](ctx context.Context, g *errgroup.Group, src Lister[T], out *[]T) {
	if src == nil {
		return
	}
	g.Go(func() error {
		records, err := src.List(ctx)
		if err != nil {
			return err
		}
		*out = records
		return nil
	})
}

// LoadDashboard fetches all five collections and builds the dashboard.
func LoadDashboard(ctx context.Context, src Sources) (Dashboard, error) {
	data, err := Load(ctx, src)
	if err != nil {
		return Dashboard{}, common.NewUserError(DashboardFetchMessage, err)
	}
	return BuildDashboard(data), nil
}

// LoadReport fetches budgets, expenses and income and builds the report.
func LoadReport(ctx context.Context, src Sources) (Report, error) {
	data, err := Load(ctx, Sources{Budgets: src.Budgets, Expenses: src.Expenses, Income: src.Income})
	if err != nil {
		return Report{}, common.NewUserError(ReportFetchMessage, err)
	}
	return BuildReport(data), nil
}

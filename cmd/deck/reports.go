package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/cli"
	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/report"
	"github.com/spf13/cobra"
)

const barWidth = 30

func sources(a *app) report.Sources {
	return report.Sources{
		Budgets:  a.client.Budgets(),
		Expenses: a.client.Expenses(),
		Income:   a.client.Income(),
		Payroll:  a.client.Payroll(),
		Goals:    a.client.Goals(),
	}
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals, goal progress and budget overruns",
		Args:  cobra.NoArgs,
		RunE: withApp(true, func(cmd *cobra.Command, _ []string, a *app) error {
			d, err := report.LoadDashboard(cmd.Context(), sources(a))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Dashboard"))

			var bars strings.Builder
			for _, b := range d.Bars {
				fmt.Fprintf(&bars, "%-9s %s %12s\n", b.Label, cli.RenderBar(b.Percent, barWidth), cli.FormatMoney(b.Value))
			}
			fmt.Fprintf(&bars, "\nGoals achieved: %d of %d", d.AchievedGoals, d.GoalCount)
			fmt.Fprintln(out, cli.RenderBox("Overview", bars.String()))

			if len(d.Overruns) == 0 {
				fmt.Fprintln(out, cli.FormatSuccess("No budgets are over plan"))
				return nil
			}
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d budget(s) over plan", len(d.Overruns))))
			rows := make([][]string, len(d.Overruns))
			for i, o := range d.Overruns {
				rows[i] = []string{o.Budget.ID.String(), o.Budget.Title, cli.FormatMoney(o.Budget.AmountPlanned.Float()), cli.FormatMoney(o.Actual)}
			}
			fmt.Fprintln(out, cli.RenderTable([]string{"ID", "Budget", "Planned", "Actual"}, rows, ""))
			return nil
		}),
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the expense breakdown and budget vs actual",
		Args:  cobra.NoArgs,
		RunE: withApp(true, func(cmd *cobra.Command, _ []string, a *app) error {
			r, err := report.LoadReport(cmd.Context(), sources(a))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Financial report"))

			summary := fmt.Sprintf("Income:    %s\nExpenses:  %s\nNet:       %s",
				cli.FormatMoney(r.Totals.Income), cli.FormatMoney(r.Totals.Expenses), cli.FormatMoney(r.NetBalance))
			fmt.Fprintln(out, cli.RenderBox("Summary", summary))

			categories := make([][]string, len(r.Categories))
			for i, s := range r.Categories {
				categories[i] = []string{s.Category, cli.FormatMoney(s.Amount), fmt.Sprintf("%.1f%%", s.Percent), cli.RenderBar(s.Percent, barWidth)}
			}
			fmt.Fprintln(out, cli.RenderTable([]string{"Category", "Amount", "Share", ""}, categories, "No expenses recorded."))

			comparisons := make([][]string, len(r.Comparisons))
			for i, c := range r.Comparisons {
				comparisons[i] = []string{
					c.Budget.Title,
					cli.FormatMoney(c.Budget.AmountPlanned.Float()),
					cli.FormatMoney(c.Actual),
					fmt.Sprintf("%.0f%%", c.Percent),
					cli.RenderBar(c.Percent, barWidth),
				}
			}
			fmt.Fprintln(out, cli.RenderTable([]string{"Budget", "Planned", "Actual", "Used", ""}, comparisons, "No budgets recorded."))
			return nil
		}),
	}
}

func calendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "calendar <expenses|income>",
		Short:     "Group expenses or income by day of month",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"expenses", "income"},
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			ctx := cmd.Context()
			var rows [][]string
			switch args[0] {
			case "expenses":
				expenses, err := a.client.Expenses().List(ctx)
				if err != nil {
					return common.NewUserError("Failed to fetch expenses.", err)
				}
				for _, day := range report.Calendar(expenses, "date") {
					for _, e := range day.Entries {
						rows = append(rows, []string{fmt.Sprint(day.Day), e.Category, e.Description, cli.FormatMoney(e.Amount.Float())})
					}
				}
			case "income":
				income, err := a.client.Income().List(ctx)
				if err != nil {
					return common.NewUserError("Failed to fetch income.", err)
				}
				for _, day := range report.Calendar(income, "date_received") {
					for _, i := range day.Entries {
						rows = append(rows, []string{fmt.Sprint(day.Day), i.Category, i.SourceName, cli.FormatMoney(i.Amount.Float())})
					}
				}
			default:
				return fmt.Errorf("%w: calendar shows expenses or income, not %q", common.ErrInvalidInput, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable([]string{"Day", "Category", "Entry", "Amount"}, rows, "Nothing dated this month."))
			return nil
		}),
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/ledgerdeck/internal/classification"
	"github.com/Veraticus/ledgerdeck/internal/cli"
	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/form"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/ofx"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx <file>",
		Short: "Import a bank statement as expenses and income",
		Long: `Import an OFX or QFX statement. Debits become expenses linked to
--budget-id and credits become income. Every draft is validated before
anything is sent.

Examples:
  deck import-ofx statement.qfx --budget-id 3
  deck import-ofx statement.ofx --budget-id 3 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			budgetFlag, _ := cmd.Flags().GetString("budget-id")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			opts := ofx.Options{}
			opts.ExpenseCategory, _ = cmd.Flags().GetString("expense-category")
			opts.IncomeCategory, _ = cmd.Flags().GetString("income-category")
			if raw, _ := cmd.Flags().GetBool("no-classify"); !raw {
				opts.Classifier = classification.Default()
			}
			opts.BudgetID = model.ID(budgetFlag)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			ctx, cleanup := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Stopping import after the current record...").HandleInterrupts(cmd.Context())
			defer cleanup()

			stmt, err := ofx.NewParser(opts, a.logger).ParseFile(ctx, f)
			if err != nil {
				return err
			}
			if stmt.Len() == 0 {
				printInfo(cmd, "No transactions found in %s", args[0])
				return nil
			}

			// Reject the whole file before any request when a draft is invalid.
			for i, d := range stmt.Expenses {
				if err := form.Validate(d, nil); err != nil {
					return fmt.Errorf("expense %d: %w", i+1, err)
				}
			}
			for i, d := range stmt.Income {
				if err := form.Validate(d, nil); err != nil {
					return fmt.Errorf("income %d: %w", i+1, err)
				}
			}

			if stmt.Transfers > 0 {
				printInfo(cmd, "Skipped %d transfers between accounts", stmt.Transfers)
			}
			if dryRun {
				printInfo(cmd, "Would import %d expenses and %d income entries", len(stmt.Expenses), len(stmt.Income))
				return nil
			}

			progress := cli.NewProgress(cmd.ErrOrStderr(), stmt.Len(), "Importing")
			defer progress.Finish()

			created := 0
			for _, d := range stmt.Expenses {
				if ctx.Err() != nil {
					break
				}
				if _, err := a.client.Expenses().Create(ctx, d); err != nil {
					return common.NewUserError(fmt.Sprintf("Failed to import expense %q after %d records.", d.Description, created), err)
				}
				created++
				progress.Step()
			}
			for _, d := range stmt.Income {
				if ctx.Err() != nil {
					break
				}
				if _, err := a.client.Income().Create(ctx, d); err != nil {
					return common.NewUserError(fmt.Sprintf("Failed to import income %q after %d records.", d.SourceName, created), err)
				}
				created++
				progress.Step()
			}

			if created < stmt.Len() {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf("Import interrupted: %d of %d records created", created, stmt.Len())))
				return nil
			}
			printSuccess(cmd, "Imported %d expenses and %d income entries", len(stmt.Expenses), len(stmt.Income))
			return nil
		}),
	}

	cmd.Flags().String("budget-id", "", "budget to link imported expenses to")
	cmd.Flags().String("expense-category", "", "category for debits (default Uncategorized)")
	cmd.Flags().String("income-category", "", "category for credits (default Deposit)")
	cmd.Flags().Bool("dry-run", false, "parse and validate without creating records")
	cmd.Flags().Bool("no-classify", false, "keep default categories and import transfers")
	return cmd
}

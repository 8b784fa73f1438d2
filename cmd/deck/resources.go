package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/cli"
	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/form"
	"github.com/Veraticus/ledgerdeck/internal/listview"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/spf13/cobra"
)

// pageDef describes one resource command group.
type pageDef struct {
	build    func(a *app) listview.Page
	path     func(a *app) string
	extras   []func() *cobra.Command
	name     string
	short    string
	download bool
}

func pageDefs() []pageDef {
	return []pageDef{
		{
			name: "budgets", short: "Manage department budgets", download: true,
			build: func(a *app) listview.Page { return listview.NewBudgets(a.client.Budgets(), a.logger) },
			path:  func(a *app) string { return a.client.Budgets().Path() },
		},
		{
			name: "expenses", short: "Manage expenses", download: true,
			build: func(a *app) listview.Page { return listview.NewExpenses(a.client.Expenses(), a.logger) },
			path:  func(a *app) string { return a.client.Expenses().Path() },
		},
		{
			name: "income", short: "Manage income entries", download: true,
			build: func(a *app) listview.Page { return listview.NewIncome(a.client.Income(), a.logger) },
			path:  func(a *app) string { return a.client.Income().Path() },
		},
		{
			name: "payroll", short: "Manage payroll entries", download: true,
			build: func(a *app) listview.Page { return listview.NewPayroll(a.client.Payroll(), a.logger) },
			path:  func(a *app) string { return a.client.Payroll().Path() },
		},
		{
			name: "goals", short: "Manage savings goals", download: true,
			build:  func(a *app) listview.Page { return listview.NewGoals(a.client.Goals(), a.logger) },
			path:   func(a *app) string { return a.client.Goals().Path() },
			extras: []func() *cobra.Command{goalsContributeCmd},
		},
		{
			name: "invitations", short: "Invite users and manage pending invitations",
			build:  func(a *app) listview.Page { return listview.NewInvitations(a.client.Invitations(), a.logger) },
			extras: []func() *cobra.Command{invitationsResendCmd},
		},
		{
			name: "integrations", short: "Connect external systems",
			build:  func(a *app) listview.Page { return listview.NewIntegrations(a.client.Integrations(), a.logger) },
			extras: []func() *cobra.Command{integrationsSyncCmd},
		},
		{
			name: "roles", short: "Manage roles and permissions",
			build:  func(a *app) listview.Page { return listview.NewRoles(a.client.Roles(), a.logger) },
			extras: []func() *cobra.Command{rolesAssignCmd, rolesPermissionsCmd},
		},
		{
			name: "tenants", short: "Manage tenant organizations",
			build: func(a *app) listview.Page { return listview.NewTenants(a.client.Tenants(), a.logger) },
		},
		{
			name: "channels", short: "Manage communication channels",
			build:  func(a *app) listview.Page { return listview.NewChannels(a.client.Channels(), a.logger) },
			extras: []func() *cobra.Command{channelsJoinCmd, channelsMessagesCmd, channelsPostCmd},
		},
	}
}

// buildPages creates a fresh page for every resource, in tab order.
func buildPages(a *app) []listview.Page {
	defs := pageDefs()
	pages := make([]listview.Page, len(defs))
	for i, def := range defs {
		pages[i] = def.build(a)
	}
	return pages
}

func resourceCmds() []*cobra.Command {
	defs := pageDefs()
	cmds := make([]*cobra.Command, 0, len(defs))
	for _, def := range defs {
		cmds = append(cmds, resourceCmd(def))
	}
	return cmds
}

func resourceCmd(def pageDef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   def.name,
		Short: def.short,
	}
	cmd.AddCommand(listCmd(def))
	cmd.AddCommand(optionsCmd(def))
	cmd.AddCommand(addCmd(def))
	cmd.AddCommand(editCmd(def))
	cmd.AddCommand(deleteCmd(def))
	if def.download {
		cmd.AddCommand(downloadCmd(def))
	}
	for _, extra := range def.extras {
		cmd.AddCommand(extra())
	}
	return cmd
}

func listCmd(def pageDef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + def.name,
		Long: `List records, optionally narrowed by a case-insensitive search and
exact-match filters. Filters and search are applied locally to the fetched
collection.

Examples:
  deck ` + def.name + ` list
  deck ` + def.name + ` list --search rent --export > ` + def.name + `.csv
  deck ` + def.name + ` list --filter status=Open --export-to s3`,
		Args: cobra.NoArgs,
		RunE: withApp(true, func(cmd *cobra.Command, _ []string, a *app) error {
			ctx := cmd.Context()
			page := def.build(a)

			if err := page.Fetch(ctx); err != nil {
				return err
			}
			if err := applyQuery(cmd, page); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asCSV, _ := cmd.Flags().GetBool("export"); asCSV {
				_, err := out.Write(page.Export().Bytes())
				return err
			}
			if target, _ := cmd.Flags().GetString("export-to"); target != "" {
				sink, err := sinkFor(ctx, target, a.logger)
				if err != nil {
					return err
				}
				doc := page.Export()
				location, err := sink.Deliver(ctx, doc)
				if err != nil {
					return fmt.Errorf("failed to export %s: %w", def.name, err)
				}
				printSuccess(cmd, "Exported %d %s to %s", len(doc.Rows), def.name, location)
				return nil
			}

			cfg := page.Config()
			headers := make([]string, len(cfg.Columns))
			for i, c := range cfg.Columns {
				headers[i] = c.Label
			}
			_, rows := page.Rows()
			fmt.Fprintln(out, cli.FormatTitle(cfg.Title))
			fmt.Fprintln(out, cli.RenderTable(headers, rows, fmt.Sprintf("No %s found.", cfg.Name)))
			return nil
		}),
	}

	cmd.Flags().String("search", "", "case-insensitive substring match on the search field")
	cmd.Flags().StringArray("filter", nil, "exact match filter as field=value (repeatable)")
	cmd.Flags().Bool("export", false, "write the filtered rows as CSV to stdout")
	cmd.Flags().String("export-to", "", "deliver the filtered rows as CSV to file, s3 or sheets")
	return cmd
}

func applyQuery(cmd *cobra.Command, page listview.Page) error {
	search, _ := cmd.Flags().GetString("search")
	page.SetSearch(search)

	filters, _ := cmd.Flags().GetStringArray("filter")
	for _, f := range filters {
		field, value, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("%w: filter %q must be field=value", common.ErrInvalidInput, f)
		}
		if err := page.SetFilter(strings.TrimSpace(field), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

func optionsCmd(def pageDef) *cobra.Command {
	return &cobra.Command{
		Use:   "options <field>",
		Short: "List the distinct values of a filterable field",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			page := def.build(a)
			if err := page.Fetch(cmd.Context()); err != nil {
				return err
			}
			options, err := page.Options(args[0])
			if err != nil {
				return err
			}
			for _, o := range options {
				fmt.Fprintln(cmd.OutOrStdout(), o)
			}
			return nil
		}),
	}
}

func addCmd(def pageDef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a record",
		Long: `Create a record from --set field=value pairs. Without --set every
field is prompted for.`,
		Args: cobra.NoArgs,
		RunE: withApp(true, func(cmd *cobra.Command, _ []string, a *app) error {
			page := def.build(a)
			editor := page.Form()
			editor.Open()
			if err := fillDraft(cmd, editor); err != nil {
				editor.Cancel()
				return err
			}
			if err := editor.Submit(cmd.Context()); err != nil {
				return err
			}
			printSuccess(cmd, "Added %s", page.Config().Noun())
			return nil
		}),
	}
	cmd.Flags().StringArray("set", nil, "field=value to assign (repeatable)")
	return cmd
}

func editCmd(def pageDef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a record",
		Long:  `Update a record. Fields not named with --set keep their current values.`,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			page := def.build(a)
			if err := page.Fetch(cmd.Context()); err != nil {
				return err
			}
			if err := page.Edit(model.ID(args[0])); err != nil {
				return err
			}
			editor := page.Form()
			if err := fillDraft(cmd, editor); err != nil {
				editor.Cancel()
				return err
			}
			if err := editor.Submit(cmd.Context()); err != nil {
				return err
			}
			printSuccess(cmd, "Updated %s %s", page.Config().Noun(), args[0])
			return nil
		}),
	}
	cmd.Flags().StringArray("set", nil, "field=value to assign (repeatable)")
	return cmd
}

// fillDraft applies --set pairs to editor, or prompts for each field when
// none are given.
func fillDraft(cmd *cobra.Command, editor form.Editor) error {
	sets, _ := cmd.Flags().GetStringArray("set")
	if len(sets) == 0 {
		p := prompter(cmd, false)
		for _, f := range editor.Fields() {
			label := f.Label
			if current := editor.Value(f.Name); current != "" {
				label = fmt.Sprintf("%s [%s]", label, current)
			}
			answer, err := p.Ask(cmd.Context(), label+": ")
			if err != nil {
				return err
			}
			if answer == "" {
				continue
			}
			if err := editor.Set(f.Name, answer); err != nil {
				return err
			}
		}
		return nil
	}

	for _, s := range sets {
		field, value, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("%w: --set %q must be field=value", common.ErrInvalidInput, s)
		}
		if err := editor.Set(strings.TrimSpace(field), value); err != nil {
			return err
		}
	}
	return nil
}

func deleteCmd(def pageDef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			force, _ := cmd.Flags().GetBool("force")
			page := def.build(a)

			removed, err := page.Remove(cmd.Context(), model.ID(args[0]), prompter(cmd, force))
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Cancelled"))
				return nil
			}
			printSuccess(cmd, "Deleted %s %s", page.Config().Noun(), args[0])
			return nil
		}),
	}
	cmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")
	return cmd
}

func downloadCmd(def pageDef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [id]",
		Short: "Download the backend rendering of the collection or one record",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			var id model.ID
			if len(args) == 1 {
				id = model.ID(args[0])
			}
			data, err := a.client.Download(cmd.Context(), def.path(a), id)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("Failed to download %s.", def.name), err)
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			printSuccess(cmd, "Saved %s (%d bytes)", output, len(data))
			return nil
		}),
	}
	cmd.Flags().StringP("output", "o", "", "file to write (default stdout)")
	return cmd
}

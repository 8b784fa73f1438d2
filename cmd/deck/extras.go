package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/cli"
	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/form"
	"github.com/Veraticus/ledgerdeck/internal/listview"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/report"
	"github.com/spf13/cobra"
)

func goalsContributeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contribute <id> <amount>",
		Short: "Add an amount to a goal's saved total",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			delta, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return common.NewUserError("Amount must be a number.", err)
			}
			ctx := cmd.Context()
			page := listview.NewGoals(a.client.Goals(), a.logger)
			if err := page.Fetch(ctx); err != nil {
				return err
			}
			amount, err := report.Contribute(ctx, page, model.ID(args[0]), delta)
			if err != nil {
				return err
			}
			printSuccess(cmd, "Goal %s now has %s saved", args[0], cli.FormatMoney(amount))
			return nil
		}),
	}
}

func invitationsResendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resend <email>",
		Short: "Send a pending invitation again",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			ctx := cmd.Context()
			page := listview.NewInvitations(a.client.Invitations(), a.logger)
			if err := page.Fetch(ctx); err != nil {
				return err
			}
			inv, ok := page.Find(model.ID(args[0]))
			if !ok {
				return fmt.Errorf("%w: invitation %s", common.ErrNotFound, args[0])
			}
			if err := a.client.ResendInvitation(ctx, inv); err != nil {
				return common.NewUserError("Failed to resend invitation.", err)
			}
			printSuccess(cmd, "Invitation resent to %s", inv.Email)
			return nil
		}),
	}
}

func integrationsSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <id>",
		Short: "Pull records from a connected integration",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			result, err := a.client.SyncIntegration(cmd.Context(), model.ID(args[0]))
			if err != nil {
				return common.NewUserError("Failed to sync integration.", err)
			}
			printSuccess(cmd, "Synced %d records", result.SyncedRecords)
			return nil
		}),
	}
}

func rolesAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <user-id> <role-id>",
		Short: "Assign a role to a user",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			assignment := model.RoleAssignment{UserID: args[0], RoleID: model.ID(args[1])}
			if err := a.client.AssignRole(cmd.Context(), assignment); err != nil {
				return common.NewUserError("Failed to assign role.", err)
			}
			printSuccess(cmd, "Assigned role %s to user %s", args[1], args[0])
			return nil
		}),
	}
}

func rolesPermissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "permissions",
		Short: "List the grantable permissions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, p := range model.Permissions {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
		},
	}
}

func channelsJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join a channel",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			if err := a.client.JoinChannel(cmd.Context(), model.ID(args[0])); err != nil {
				return common.NewUserError("Failed to join channel.", err)
			}
			printSuccess(cmd, "Joined channel %s", args[0])
			return nil
		}),
	}
}

func channelsMessagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages <id>",
		Short: "Show the messages of a channel",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			messages, err := a.client.ChannelMessages(cmd.Context(), model.ID(args[0]))
			if err != nil {
				return common.NewUserError("Failed to fetch channel messages.", err)
			}
			rows := make([][]string, len(messages))
			for i, m := range messages {
				rows[i] = []string{m.Timestamp, m.Sender, m.Message}
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable([]string{"Time", "Sender", "Message"}, rows, "No messages yet."))
			return nil
		}),
	}
}

func channelsPostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post <id> <text>",
		Short: "Post a message to a channel",
		Args:  cobra.MinimumNArgs(2),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			post := model.ChannelPost{Message: strings.Join(args[1:], " ")}
			if err := form.Validate(post, nil); err != nil {
				return err
			}
			if err := a.client.PostChannelMessage(cmd.Context(), model.ID(args[0]), post); err != nil {
				return common.NewUserError("Failed to post message.", err)
			}
			printSuccess(cmd, "Posted to channel %s", args[0])
			return nil
		}),
	}
}

func messagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Direct messages and the communications feed",
	}

	send := &cobra.Command{
		Use:   "send",
		Short: "Send a direct message",
		Long: `Send a direct message to a team member.

Examples:
  deck messages send --to ana@corp.io --subject "Q3 close" --message "Numbers are in"`,
		Args: cobra.NoArgs,
		RunE: withApp(true, func(cmd *cobra.Command, _ []string, a *app) error {
			composer := form.New(nil, func(ctx context.Context, msg model.DirectMessage) error {
				return a.client.SendMessage(ctx, msg)
			}, nil)
			composer.Open()

			for flag, field := range map[string]string{"to": "recipient", "subject": "subject", "message": "message"} {
				value, _ := cmd.Flags().GetString(flag)
				if err := composer.Set(field, value); err != nil {
					return err
				}
			}
			if err := composer.Submit(cmd.Context()); err != nil {
				return err
			}
			to, _ := cmd.Flags().GetString("to")
			printSuccess(cmd, "Message sent to %s", to)
			return nil
		}),
	}
	send.Flags().String("to", "", "recipient email")
	send.Flags().String("subject", "", "subject line")
	send.Flags().String("message", "", "message body")

	feed := &cobra.Command{
		Use:   "feed",
		Short: "Show the communications feed",
		Args:  cobra.NoArgs,
		RunE: withApp(true, func(cmd *cobra.Command, _ []string, a *app) error {
			entries, err := a.client.Communications(cmd.Context())
			if err != nil {
				return common.NewUserError("Failed to fetch communications.", err)
			}
			rows := make([][]string, len(entries))
			for i, c := range entries {
				rows[i] = []string{c.Timestamp, c.Type, c.Sender, c.Recipient, c.Subject, c.Message}
			}
			headers := []string{"Time", "Type", "From", "To", "Subject", "Message"}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable(headers, rows, "No communications yet."))
			return nil
		}),
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "List the team members who can receive messages",
		Args:  cobra.NoArgs,
		RunE: withApp(true, func(cmd *cobra.Command, _ []string, a *app) error {
			members, err := a.client.TeamMembers(cmd.Context())
			if err != nil {
				return common.NewUserError("Failed to fetch users.", err)
			}
			me := currentUser(a)
			rows := make([][]string, 0, len(members))
			for _, m := range members {
				if strings.EqualFold(m.Email, me.Email) {
					continue
				}
				rows = append(rows, []string{m.ID.String(), m.Name, m.Email, m.Role})
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable([]string{"ID", "Name", "Email", "Role"}, rows, "No other users."))
			return nil
		}),
	}

	cmd.AddCommand(send, feed, users)
	return cmd
}

func whitelabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelabel",
		Short: "Show and change the dashboard branding",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current branding",
		Args:  cobra.NoArgs,
		RunE: withApp(true, func(cmd *cobra.Command, _ []string, a *app) error {
			settings, err := a.client.WhiteLabel(cmd.Context())
			if err != nil {
				return common.NewUserError("Failed to fetch white label settings.", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("White label", renderSettings(settings)))
			return nil
		}),
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Change branding fields",
		Long: `Change branding fields. Fields not named with --set keep their current values.

Examples:
  deck whitelabel set --set companyName="Acme Finance" --set primaryColor=#0f766e`,
		Args: cobra.NoArgs,
		RunE: withApp(true, func(cmd *cobra.Command, _ []string, a *app) error {
			ctx := cmd.Context()
			current, err := a.client.WhiteLabel(ctx)
			if err != nil {
				return common.NewUserError("Failed to fetch white label settings.", err)
			}
			editor := whiteLabelEditor(a)
			editor.OpenEdit("", current)
			if err := fillDraft(cmd, editor); err != nil {
				return err
			}
			if err := editor.Submit(ctx); err != nil {
				return err
			}
			printSuccess(cmd, "White label settings saved")
			return nil
		}),
	}
	set.Flags().StringArray("set", nil, "field=value to assign (repeatable)")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default branding",
		Args:  cobra.NoArgs,
		RunE: withApp(true, func(cmd *cobra.Command, _ []string, a *app) error {
			force, _ := cmd.Flags().GetBool("force")
			ok, err := prompter(cmd, force).Confirm(cmd.Context(), "Reset all branding to the defaults?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Cancelled"))
				return nil
			}
			if err := a.client.SaveWhiteLabel(cmd.Context(), model.DefaultWhiteLabelSettings()); err != nil {
				return common.NewUserError("Failed to save white label settings.", err)
			}
			printSuccess(cmd, "White label settings reset")
			return nil
		}),
	}
	reset.Flags().BoolP("force", "f", false, "skip the confirmation prompt")

	upload := &cobra.Command{
		Use:   "upload-logo <file>",
		Short: "Upload a logo image and use it",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			ctx := cmd.Context()
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			url, err := a.client.UploadLogo(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return common.NewUserError("Failed to upload logo.", err)
			}
			settings, err := a.client.WhiteLabel(ctx)
			if err != nil {
				return common.NewUserError("Failed to fetch white label settings.", err)
			}
			settings.Logo = url
			if err := a.client.SaveWhiteLabel(ctx, settings); err != nil {
				return common.NewUserError("Failed to save white label settings.", err)
			}
			printSuccess(cmd, "Logo uploaded to %s", url)
			return nil
		}),
	}

	cmd.AddCommand(show, set, reset, upload)
	return cmd
}

// whiteLabelEditor validates branding drafts before saving them.
func whiteLabelEditor(a *app) *form.Controller[model.WhiteLabelSettings] {
	return form.New(model.DefaultWhiteLabelSettings, nil,
		func(ctx context.Context, _ model.ID, settings model.WhiteLabelSettings) error {
			if err := a.client.SaveWhiteLabel(ctx, settings); err != nil {
				return common.NewUserError("Failed to save white label settings.", err)
			}
			return nil
		})
}

func renderSettings(s model.WhiteLabelSettings) string {
	lines := []string{
		"Company:   " + s.CompanyName,
		"Domain:    " + s.Domain,
		"Logo:      " + s.Logo,
		"Favicon:   " + s.Favicon,
		"Colors:    " + s.PrimaryColor + " / " + s.SecondaryColor,
		"Font:      " + s.FontFamily,
		"Support:   " + s.SupportEmail,
		"Enabled:   " + strconv.FormatBool(s.Enabled),
	}
	return strings.Join(lines, "\n")
}

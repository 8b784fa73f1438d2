package main

import (
	"fmt"

	"github.com/Veraticus/ledgerdeck/internal/cli"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/spf13/cobra"
)

func loginCmd(signup bool) *cobra.Command {
	use, short := "login", "Sign in to the finance backend"
	if signup {
		use, short = "signup", "Create an account and sign in"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

The signed-in user is kept in the local session store until 'deck logout'.
Without --email or --password you are prompted for them.`,
		Args: cobra.NoArgs,
		RunE: withApp(false, func(cmd *cobra.Command, _ []string, a *app) error {
			ctx := cmd.Context()
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			p := prompter(cmd, false)
			var err error
			if email == "" {
				if email, err = p.Ask(ctx, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = p.AskSecret(ctx, "Password: "); err != nil {
					return err
				}
			}

			user, err := a.session.SignIn(ctx, a.client, model.Credentials{Email: email, Password: password}, signup)
			if err != nil {
				return err
			}
			printSuccess(cmd, "Signed in as %s (%s)", user.Email, user.Role)
			return nil
		}),
	}

	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in user",
		Args:  cobra.NoArgs,
		RunE: withApp(false, func(cmd *cobra.Command, _ []string, a *app) error {
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			printSuccess(cmd, "Signed out")
			return nil
		}),
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: withApp(false, func(cmd *cobra.Command, _ []string, a *app) error {
			u, ok := a.session.User()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Not signed in"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Session", fmt.Sprintf("Email: %s\nID:    %s\nRole:  %s", u.Email, u.ID, u.Role)))
			return nil
		}),
	}
}

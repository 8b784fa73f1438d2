package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/ledgerdeck/internal/apiclient"
	"github.com/Veraticus/ledgerdeck/internal/cli"
	"github.com/Veraticus/ledgerdeck/internal/config"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/session"
	"github.com/Veraticus/ledgerdeck/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app bundles the collaborators a command needs.
type app struct {
	client  *apiclient.Client
	session *session.Session
	store   *storage.SQLiteStorage
	logger  *slog.Logger
}

// newApp connects to the backend and restores the saved session.
func newApp(ctx context.Context) (*app, error) {
	api, err := config.LoadAPI()
	if err != nil {
		return nil, err
	}
	logger := slog.Default()

	client, err := apiclient.New(api.BaseURL,
		apiclient.WithTimeout(api.Timeout),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	store, err := storage.NewSQLiteStorage(ctx, config.ExpandPath(viper.GetString("session.path")))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	sess, err := session.Open(ctx, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &app{client: client, session: sess, store: store, logger: logger}, nil
}

// Close releases the session store.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close session store", "error", err)
	}
}

// withApp runs fn with a connected app. When signedIn is set, fn only runs
// for a signed-in operator.
func withApp(signedIn bool, fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if signedIn {
			if _, err := a.session.Require(); err != nil {
				return fmt.Errorf("%w: run 'deck login' first", err)
			}
		}
		return fn(cmd, args, a)
	}
}

// prompter reads answers from the command input and writes prompts to the command's output.
func prompter(cmd *cobra.Command, assumeYes bool) *cli.Prompter {
	return cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), assumeYes)
}

func printSuccess(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(format, args...)))
}

func printInfo(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf(format, args...)))
}

func currentUser(a *app) model.User {
	u, _ := a.session.User()
	return u
}

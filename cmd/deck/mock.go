package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/ledgerdeck/internal/mockapi"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func mockServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve an in-memory finance backend for demos and tests",
		Long: `Serve an in-memory implementation of the finance backend, with
Prometheus metrics at /metrics. State is lost on exit.

Examples:
  deck mock-server --seed &
  deck --api-url http://127.0.0.1:4000 login --email finance@ledgerdeck.local --password demo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = viper.GetString("mock.addr")
			}
			password, _ := cmd.Flags().GetString("password")
			seed, _ := cmd.Flags().GetBool("seed")

			gin.SetMode(gin.ReleaseMode)
			logger := slog.Default()
			mock := mockapi.New(mockapi.Options{Logger: logger})
			mock.AddUser(mockapi.DefaultUser, password, "Finance Manager")
			if seed {
				if err := seedDemo(mock); err != nil {
					return err
				}
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           mock.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx := cmd.Context()
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			logger.Info("mock backend listening", "addr", addr, "user", mockapi.DefaultUser)
			printInfo(cmd, "Serving on http://%s (sign in as %s)", addr, mockapi.DefaultUser)

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("mock server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to stop mock server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "listen address (default mock.addr)")
	cmd.Flags().String("password", "demo", "password of the demo account")
	cmd.Flags().Bool("seed", false, "load a small demo data set")
	return cmd
}

// seedDemo loads one department's worth of records. Ids are assigned in
// order, so the first budget is 1.
func seedDemo(mock *mockapi.Server) error {
	seeds := []struct {
		resource string
		records  []any
	}{
		{"budgets", []any{
			map[string]any{"department": "Operations", "title": "Q1 Operations", "amount_planned": 12000},
			map[string]any{"department": "Marketing", "title": "Spring campaign", "amount_planned": 4000},
		}},
		{"expenses", []any{
			map[string]any{"category": "Rent", "description": "Office rent", "date": "2026-01-01", "recurrence": "Monthly", "budget_id": 1, "amount": 3500},
			map[string]any{"category": "Ads", "description": "Search ads", "date": "2026-01-12", "recurrence": "None", "budget_id": 2, "amount": 4600},
		}},
		{"income", []any{
			map[string]any{"source_name": "Acme Corp", "category": "Consulting", "date_received": "2026-01-15", "recurrence": "Monthly", "amount": 18000},
		}},
		{"payroll", []any{
			map[string]any{"employee_id": 7, "month": "January 2026", "amount_paid": 6200, "payment_date": "2026-01-31", "status": "Paid"},
		}},
		{"goals", []any{
			map[string]any{"name": "Emergency fund", "target_amount": 20000, "current_amount": 7500, "deadline": "2026-12-31"},
		}},
	}
	for _, s := range seeds {
		if _, err := mock.Seed(s.resource, s.records...); err != nil {
			return err
		}
	}
	return nil
}

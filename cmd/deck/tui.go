package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/config"
	"github.com/Veraticus/ledgerdeck/internal/export"
	"github.com/Veraticus/ledgerdeck/internal/report"
	"github.com/Veraticus/ledgerdeck/internal/tui"
	"github.com/Veraticus/ledgerdeck/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen dashboard",
		Long: `Open the full-screen dashboard. Without a saved session the sign-in
screen is shown first. Exports from the TUI are written to export.dir.`,
		Args: cobra.NoArgs,
		RunE: withApp(false, func(cmd *cobra.Command, _ []string, a *app) error {
			name, _ := cmd.Flags().GetString("theme")
			if name == "" {
				name = viper.GetString("tui.theme")
			}
			theme, ok := themes.Get(name)
			if !ok {
				return fmt.Errorf("%w: unknown theme %q (available: %s)", common.ErrInvalidConfig, name, strings.Join(themes.Names(), ", "))
			}

			src := sources(a)
			return tui.Run(cmd.Context(),
				tui.WithSession(a.session, a.client),
				tui.WithPages(buildPages(a)...),
				tui.WithDashboard(func(ctx context.Context) (report.Dashboard, error) {
					return report.LoadDashboard(ctx, src)
				}),
				tui.WithSink(export.NewFileSink(config.ExpandPath(viper.GetString("export.dir")), a.logger)),
				tui.WithLogger(a.logger),
				tui.WithTheme(theme),
			)
		}),
	}
	cmd.Flags().String("theme", "", "color theme (default tui.theme)")
	return cmd
}

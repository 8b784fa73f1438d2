package tui

import (
	"context"
	"log/slog"

	"github.com/Veraticus/ledgerdeck/internal/listview"
	"github.com/Veraticus/ledgerdeck/internal/report"
	"github.com/Veraticus/ledgerdeck/internal/service"
	"github.com/Veraticus/ledgerdeck/internal/session"
	"github.com/Veraticus/ledgerdeck/internal/tui/themes"
)

// DashboardFunc loads the overview shown on the first tab.
type DashboardFunc func(ctx context.Context) (report.Dashboard, error)

// Config holds TUI configuration.
type Config struct {
	Session   *session.Session
	Auth      session.Authenticator
	Dashboard DashboardFunc
	Sink      service.Sink
	Logger    *slog.Logger
	Theme     themes.Theme
	Pages     []listview.Page
	Width     int
	Height    int
}

// Option configures the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  100,
		Height: 30,
		Logger: slog.Default(),
	}
}

// WithPages sets the resource pages shown as tabs after the dashboard.
func WithPages(pages ...listview.Page) Option {
	return func(c *Config) {
		c.Pages = pages
	}
}

// WithSession enables the sign-in screen. Without a session the TUI opens
// directly on the dashboard.
func WithSession(s *session.Session, auth session.Authenticator) Option {
	return func(c *Config) {
		c.Session = s
		c.Auth = auth
	}
}

// WithDashboard sets the overview loader.
func WithDashboard(fn DashboardFunc) Option {
	return func(c *Config) {
		c.Dashboard = fn
	}
}

// WithSink sets where CSV exports are delivered.
func WithSink(sink service.Sink) Option {
	return func(c *Config) {
		c.Sink = sink
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// Package themes defines the color palettes of the interactive dashboard.
package themes

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Faint         lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	TableHeader   lipgloss.Style
	Tab           lipgloss.Style
	ActiveTab     lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Box           lipgloss.Style
	Modal         lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

// Palette is the set of colors a theme is derived from.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color
}

// New derives every style of a theme from p.
func New(p Palette) Theme {
	return Theme{
		Primary:    p.Primary,
		Secondary:  p.Secondary,
		Success:    p.Success,
		Warning:    p.Warning,
		Error:      p.Error,
		Info:       p.Info,
		Background: p.Background,
		Foreground: p.Foreground,
		Border:     p.Border,
		Muted:      p.Muted,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Secondary),
		Normal: lipgloss.NewStyle().
			Foreground(p.Foreground),
		Faint: lipgloss.NewStyle().
			Foreground(p.Muted),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Foreground),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Background).
			Background(p.Primary),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			BorderBottom(true),
		Tab: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Underline(true).
			Padding(0, 1),

		StatusInfo:    lipgloss.NewStyle().Foreground(p.Info),
		StatusError:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		StatusWarning: lipgloss.NewStyle().Foreground(p.Warning),
		StatusSuccess: lipgloss.NewStyle().Foreground(p.Success),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),
	}
}

// Default is the default theme.
var Default = New(Palette{
	Primary:    lipgloss.Color("#0f766e"),
	Secondary:  lipgloss.Color("#5eead4"),
	Success:    lipgloss.Color("#10b981"),
	Warning:    lipgloss.Color("#f59e0b"),
	Error:      lipgloss.Color("#ef4444"),
	Info:       lipgloss.Color("#3b82f6"),
	Background: lipgloss.Color("#1a1a1a"),
	Foreground: lipgloss.Color("#fafafa"),
	Border:     lipgloss.Color("#404040"),
	Muted:      lipgloss.Color("#737373"),
})

// CatppuccinMocha is a darker pastel theme.
var CatppuccinMocha = New(Palette{
	Primary:    lipgloss.Color("#cba6f7"),
	Secondary:  lipgloss.Color("#f5c2e7"),
	Success:    lipgloss.Color("#a6e3a1"),
	Warning:    lipgloss.Color("#f9e2af"),
	Error:      lipgloss.Color("#f38ba8"),
	Info:       lipgloss.Color("#89dceb"),
	Background: lipgloss.Color("#1e1e2e"),
	Foreground: lipgloss.Color("#cdd6f4"),
	Border:     lipgloss.Color("#45475a"),
	Muted:      lipgloss.Color("#6c7086"),
})

var registry = map[string]Theme{
	"default":          Default,
	"catppuccin-mocha": CatppuccinMocha,
}

// Get returns the theme registered under name.
func Get(name string) (Theme, bool) {
	t, ok := registry[name]
	return t, ok
}

// Names lists the registered themes.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

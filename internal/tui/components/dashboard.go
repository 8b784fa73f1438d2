package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/report"
	"github.com/Veraticus/ledgerdeck/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardModel renders the overview tab.
type DashboardModel struct {
	theme       themes.Theme
	message     string
	data        *report.Dashboard
	spinner     spinner.Model
	progressBar progress.Model
	loading     bool
	width       int
}

// NewDashboardModel creates an empty overview.
func NewDashboardModel(theme themes.Theme) DashboardModel {
	prog := progress.New(progress.WithDefaultGradient())
	prog.ShowPercentage = false
	prog.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.StatusInfo

	return DashboardModel{
		theme:       theme,
		spinner:     s,
		progressBar: prog,
		width:       80,
	}
}

// Start shows the spinner until Loaded or Failed is called.
func (m *DashboardModel) Start() tea.Cmd {
	m.loading = true
	m.message = ""
	return m.spinner.Tick
}

// Loaded replaces the overview.
func (m *DashboardModel) Loaded(d report.Dashboard) {
	m.loading = false
	m.message = ""
	m.data = &d
}

// Failed drops the overview and shows message.
func (m *DashboardModel) Failed(message string) {
	m.loading = false
	m.data = nil
	m.message = message
}

// Data returns the loaded overview, if any.
func (m DashboardModel) Data() (report.Dashboard, bool) {
	if m.data == nil {
		return report.Dashboard{}, false
	}
	return *m.data, true
}

// SetWidth resizes the bars.
func (m *DashboardModel) SetWidth(width int) {
	m.width = width
	m.progressBar.Width = min(max(width-30, 10), 50)
}

// Update advances the spinner.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok && m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}
	return m, nil
}

// View renders totals, the bar chart and budget overruns.
func (m DashboardModel) View() string {
	if m.loading {
		return m.spinner.View() + " Loading dashboard..."
	}
	if m.message != "" {
		return m.theme.StatusError.Render("✗ " + m.message)
	}
	if m.data == nil {
		return m.theme.Faint.Render("Press r to load the dashboard.")
	}

	d := *m.data
	sections := []string{
		m.theme.Subtitle.Render("Totals"),
		m.renderBars(d.Bars),
		"",
		m.theme.Normal.Render(fmt.Sprintf("Goals achieved: %d of %d", d.AchievedGoals, d.GoalCount)),
		"",
		m.renderOverruns(d.Overruns),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderBars(bars []report.Bar) string {
	labelWidth := 0
	for _, b := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
	}
	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		label := m.theme.Normal.Width(labelWidth + 1).Render(b.Label)
		bar := m.progressBar.ViewAs(b.Percent / 100)
		lines = append(lines, fmt.Sprintf("%s %s %s", label, bar, m.theme.Bold.Render(fmt.Sprintf("$%.2f", b.Value))))
	}
	return strings.Join(lines, "\n")
}

func (m DashboardModel) renderOverruns(overruns []report.Overrun) string {
	if len(overruns) == 0 {
		return m.theme.StatusSuccess.Render("✓ No budgets are over plan")
	}
	lines := []string{m.theme.StatusWarning.Render(fmt.Sprintf("⚠ %d budget(s) over plan", len(overruns)))}
	for _, o := range overruns {
		lines = append(lines, m.theme.Normal.Render(fmt.Sprintf("  %s / %s: spent $%.2f of $%.2f",
			o.Budget.Department, o.Budget.Title, o.Actual, o.Budget.AmountPlanned.Float())))
	}
	return strings.Join(lines, "\n")
}

// Package components holds the widgets composed by the TUI model.
package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/listview"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const minColumnWidth = 8

// ListModel renders the filtered rows of one resource page.
type ListModel struct {
	page   listview.Page
	theme  themes.Theme
	ids    []model.ID
	table  table.Model
	width  int
	height int
}

// NewListModel creates a table for page.
func NewListModel(page listview.Page, theme themes.Theme) ListModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = theme.TableHeader
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := ListModel{
		page:   page,
		theme:  theme,
		table:  t,
		width:  80,
		height: 10,
	}
	m.table.SetColumns(m.columns())
	return m
}

// Page returns the resource page behind the table.
func (m ListModel) Page() listview.Page {
	return m.page
}

// Refresh reloads the rows from the page's derived view.
func (m *ListModel) Refresh() {
	ids, rows := m.page.Rows()
	m.ids = ids
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row(r)
	}
	m.table.SetRows(tableRows)
	if m.table.Cursor() >= len(tableRows) {
		m.table.SetCursor(max(len(tableRows)-1, 0))
	}
}

// SetSize resizes the table.
func (m *ListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height, 3))
	m.table.SetColumns(m.columns())
}

// Selected returns the id of the highlighted row.
func (m ListModel) Selected() (model.ID, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.ids) {
		return "", false
	}
	return m.ids[cursor], true
}

// Len returns the number of visible rows.
func (m ListModel) Len() int {
	return len(m.ids)
}

// Update handles navigation keys.
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table with a filter summary line.
func (m ListModel) View() string {
	var b strings.Builder
	b.WriteString(m.summary())
	b.WriteString("\n")
	if len(m.ids) == 0 {
		b.WriteString(m.theme.Faint.Render(fmt.Sprintf("No %s match the current search and filters.", m.page.Config().Name)))
		return b.String()
	}
	b.WriteString(m.table.View())
	return b.String()
}

func (m ListModel) summary() string {
	cfg := m.page.Config()
	parts := []string{fmt.Sprintf("%d %s", len(m.ids), cfg.Name)}
	if q := m.page.Search(); q != "" {
		parts = append(parts, fmt.Sprintf("search %q", q))
	}
	for _, field := range cfg.FilterableFields {
		if v := m.page.Filter(field); v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", field, v))
		}
	}
	return m.theme.Subtitle.Render(strings.Join(parts, " · "))
}

func (m ListModel) columns() []table.Column {
	cfg := m.page.Config()
	if len(cfg.Columns) == 0 {
		return nil
	}
	width := max((m.width-2*len(cfg.Columns))/len(cfg.Columns), minColumnWidth)
	cols := make([]table.Column, len(cfg.Columns))
	for i, c := range cfg.Columns {
		w := width
		if c.Field == "id" {
			w = minColumnWidth
		}
		cols[i] = table.Column{Title: c.Label, Width: w}
	}
	return cols
}

// Placeholder renders a centered message in the list area.
func Placeholder(theme themes.Theme, width, height int, text string) string {
	return lipgloss.Place(width, max(height, 1), lipgloss.Center, lipgloss.Center, theme.Faint.Render(text))
}

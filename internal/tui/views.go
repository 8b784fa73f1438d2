package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// chromeHeight is the rows taken by the header, tabs, prompt, status and help lines.
const chromeHeight = 9

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state == StateLogin {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				m.config.Theme.Title.Render("ledgerdeck"),
				m.login.View(),
			))
	}

	var body string
	switch m.state {
	case StateForm:
		if m.form != nil {
			body = m.overlay(m.form.View())
		}
	case StateConfirm:
		if m.confirm != nil {
			body = m.overlay(m.confirm.View())
		}
	case StateHelp:
		body = m.overlay(m.renderHelp())
	default:
		body = m.renderBody()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		"",
		body,
		m.renderPrompt(),
		m.renderStatus(),
		m.renderShortHelp(),
	)
}

func (m Model) renderHeader() string {
	theme := m.config.Theme
	header := theme.Title.UnsetMarginBottom().Render("ledgerdeck")
	if m.config.Session != nil {
		if u, ok := m.config.Session.User(); ok {
			header += "  " + theme.Faint.Render(fmt.Sprintf("%s (%s)", u.Email, u.Role))
		}
	}
	return header
}

func (m Model) renderTabs() string {
	theme := m.config.Theme
	tabs := make([]string, 0, len(m.lists)+1)
	titles := []string{"Dashboard"}
	for _, l := range m.lists {
		titles = append(titles, l.Page().Config().Title)
	}
	for i, title := range titles {
		style := theme.Tab
		if i == m.active {
			style = theme.ActiveTab
		}
		tabs = append(tabs, style.Render(title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderBody() string {
	if m.active == 0 {
		return m.dashboard.View()
	}
	list := m.lists[m.active-1]
	if msg := list.Page().Message(); msg != "" && list.Len() == 0 {
		return m.config.Theme.StatusError.Render("✗ " + msg)
	}
	return list.View()
}

// overlay centers a modal in the body area.
func (m Model) overlay(modal string) string {
	return lipgloss.Place(m.width, max(m.height-chromeHeight, lipgloss.Height(modal)), lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) renderPrompt() string {
	theme := m.config.Theme
	switch m.state {
	case StateSearch:
		return theme.Bold.Render("/ ") + m.input.View()
	case StateFilter:
		return theme.Bold.Render("filter ") + m.input.View()
	}
	return ""
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	theme := m.config.Theme
	if m.statusIsError {
		return theme.StatusError.Render("✗ " + m.status)
	}
	return theme.StatusSuccess.Render("✓ " + m.status)
}

func (m Model) renderShortHelp() string {
	return m.config.Theme.Faint.Render(helpLine(m.keys.ShortHelp()))
}

func (m Model) renderHelp() string {
	theme := m.config.Theme
	var b strings.Builder
	b.WriteString(theme.Title.Render("Keys"))
	b.WriteString("\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(theme.Bold.Width(14).Render(h.Key))
			b.WriteString(theme.Normal.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(theme.Faint.Render("Press any key to close"))
	return theme.Modal.Render(b.String())
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return strings.Join(parts, " · ")
}

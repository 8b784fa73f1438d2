package components

import (
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel is the yes/no modal shown before a delete.
type ConfirmModel struct {
	theme  themes.Theme
	prompt string
	id     model.ID
}

// NewConfirmModel asks prompt about the record with id.
func NewConfirmModel(prompt string, id model.ID, theme themes.Theme) ConfirmModel {
	return ConfirmModel{theme: theme, prompt: prompt, id: id}
}

// ID returns the record the question is about.
func (m ConfirmModel) ID() model.ID {
	return m.id
}

// Prompt returns the question text.
func (m ConfirmModel) Prompt() string {
	return m.prompt
}

// View renders the modal.
func (m ConfirmModel) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Bold.Render(m.prompt),
		"",
		m.theme.Faint.Render("y confirm · n cancel"),
	)
	return m.theme.Modal.BorderForeground(m.theme.Warning).Render(body)
}

package components

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/form"
	"github.com/Veraticus/ledgerdeck/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FormModel edits the open draft of a form.Editor with one text input per
// field.
type FormModel struct {
	editor form.Editor
	err    error
	theme  themes.Theme
	title  string
	fields []form.Field
	inputs []textinput.Model
	focus  int
	width  int
}

// NewFormModel creates inputs pre-filled from the editor's current draft.
func NewFormModel(editor form.Editor, title string, theme themes.Theme) FormModel {
	m := FormModel{
		editor: editor,
		theme:  theme,
		title:  title,
		fields: editor.Fields(),
		width:  60,
	}
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Width = 40
		ti.Placeholder = placeholder(f)
		ti.SetValue(editor.Value(f.Name))
		m.inputs[i] = ti
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

func placeholder(f form.Field) string {
	switch f.Kind {
	case form.KindNumber:
		return "0"
	case form.KindBool:
		return "yes/no"
	case form.KindChoice:
		return strings.Join(f.Choices, " | ")
	case form.KindList:
		return "comma, separated"
	case form.KindJSON:
		return `{"key": "value"}`
	}
	if strings.Contains(f.Label, "Date") || f.Label == "Deadline" {
		return "YYYY-MM-DD"
	}
	return ""
}

// Focused returns the index of the focused input.
func (m FormModel) Focused() int {
	return m.focus
}

// SetValue replaces the text of the named field's input.
func (m *FormModel) SetValue(field, value string) {
	for i, f := range m.fields {
		if f.Name == field {
			m.inputs[i].SetValue(value)
			return
		}
	}
}

// SetError shows err under the form.
func (m *FormModel) SetError(err error) {
	m.err = err
}

// Next moves focus to the next field, wrapping around.
func (m *FormModel) Next() {
	m.move(1)
}

// Prev moves focus to the previous field, wrapping around.
func (m *FormModel) Prev() {
	m.move(-1)
}

func (m *FormModel) move(delta int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// Apply copies every input into the editor's draft. Parse errors of all
// fields are joined.
func (m *FormModel) Apply() error {
	var errs []error
	for i, f := range m.fields {
		if err := m.editor.Set(f.Name, m.inputs[i].Value()); err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)
	m.err = err
	return err
}

// Update forwards typing to the focused input.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View renders the form modal.
func (m FormModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.title))
	b.WriteString("\n")

	labelWidth := 0
	for _, f := range m.fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label)+2)
	}
	for i, f := range m.fields {
		label := f.Label
		if f.Required {
			label += "*"
		}
		style := m.theme.Normal
		if i == m.focus {
			style = m.theme.Bold.Foreground(m.theme.Primary)
		}
		b.WriteString(style.Width(labelWidth).Render(label))
		b.WriteString(" ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.theme.StatusError.Render(fmt.Sprintf("✗ %s", formError(m.err))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Faint.Render("Enter submit · Tab next field · Esc cancel"))
	return m.theme.Modal.Width(m.width).Render(b.String())
}

func formError(err error) string {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return strings.ReplaceAll(common.UserMessage(err), "\n", "; ")
}

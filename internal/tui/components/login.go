package components

import (
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/tui/themes"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel collects credentials for sign-in or sign-up.
type LoginModel struct {
	theme    themes.Theme
	message  string
	email    textinput.Model
	password textinput.Model
	spinner  spinner.Model
	signup   bool
	busy     bool
	focus    int
}

// NewLoginModel creates an empty sign-in form.
func NewLoginModel(theme themes.Theme) LoginModel {
	email := textinput.New()
	email.Placeholder = "you@company.com"
	email.CharLimit = 254
	email.Width = 32
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 32

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.StatusInfo

	return LoginModel{
		theme:    theme,
		email:    email,
		password: password,
		spinner:  s,
	}
}

// Credentials returns the typed email and password.
func (m LoginModel) Credentials() model.Credentials {
	return model.Credentials{
		Email:    strings.TrimSpace(m.email.Value()),
		Password: m.password.Value(),
	}
}

// SignUp reports whether the form registers a new account.
func (m LoginModel) SignUp() bool {
	return m.signup
}

// ToggleMode switches between sign-in and sign-up.
func (m *LoginModel) ToggleMode() {
	m.signup = !m.signup
	m.message = ""
}

// NextField moves focus between email and password.
func (m *LoginModel) NextField() {
	m.focus = (m.focus + 1) % 2
	if m.focus == 0 {
		m.password.Blur()
		m.email.Focus()
		return
	}
	m.email.Blur()
	m.password.Focus()
}

// Busy reports whether a sign-in request is in flight.
func (m LoginModel) Busy() bool {
	return m.busy
}

// Start marks a request as in flight and starts the spinner.
func (m *LoginModel) Start() tea.Cmd {
	m.busy = true
	m.message = ""
	return m.spinner.Tick
}

// Fail shows the server's message and re-enables the form.
func (m *LoginModel) Fail(message string) {
	m.busy = false
	m.message = message
}

// Update handles typing and spinner ticks.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}
	if m.busy {
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// View renders the sign-in box.
func (m LoginModel) View() string {
	title := "Sign in"
	toggle := "Ctrl+S create an account"
	if m.signup {
		title = "Create account"
		toggle = "Ctrl+S sign in instead"
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.theme.Normal.Render("Email    "))
	b.WriteString(m.email.View())
	b.WriteString("\n")
	b.WriteString(m.theme.Normal.Render("Password "))
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(m.spinner.View())
		b.WriteString(" Signing in...")
	case m.message != "":
		b.WriteString(m.theme.StatusError.Render("✗ " + m.message))
	default:
		b.WriteString(m.theme.Faint.Render("Enter submit · Tab switch field · " + toggle))
	}
	return m.theme.Modal.Render(b.String())
}

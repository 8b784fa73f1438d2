// Package tui is the interactive finance dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/listview"
	"github.com/Veraticus/ledgerdeck/internal/tui/components"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateLogin State = iota
	StateBrowse
	StateSearch
	StateFilter
	StateForm
	StateConfirm
	StateHelp
)

func (s State) String() string {
	switch s {
	case StateLogin:
		return "login"
	case StateBrowse:
		return "browse"
	case StateSearch:
		return "search"
	case StateFilter:
		return "filter"
	case StateForm:
		return "form"
	case StateConfirm:
		return "confirm"
	case StateHelp:
		return "help"
	}
	return "unknown"
}

// Model is the main TUI model.
type Model struct {
	ctx           context.Context
	form          *components.FormModel
	confirm       *components.ConfirmModel
	status        string
	prevSearch    string
	lists         []components.ListModel
	config        Config
	input         textinput.Model
	login         components.LoginModel
	dashboard     components.DashboardModel
	keys          KeyMap
	state         State
	helpFrom      State
	active        int
	statusSeq     int
	width         int
	height        int
	statusIsError bool
	quitting      bool
}

// New creates a new TUI model. Tab 0 is the dashboard; the pages follow in
// the order given.
func New(ctx context.Context, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	input := textinput.New()
	input.CharLimit = 128
	input.Width = 40

	m := Model{
		ctx:       ctx,
		config:    cfg,
		keys:      DefaultKeyMap(),
		input:     input,
		login:     components.NewLoginModel(cfg.Theme),
		dashboard: components.NewDashboardModel(cfg.Theme),
		state:     StateBrowse,
	}
	for _, p := range cfg.Pages {
		m.lists = append(m.lists, components.NewListModel(p, cfg.Theme))
	}
	if cfg.Session != nil {
		if _, ok := cfg.Session.User(); !ok {
			m.state = StateLogin
		}
	}
	if m.state != StateLogin && cfg.Dashboard != nil {
		m.dashboard.Start()
	}
	m.resize(cfg.Width, cfg.Height)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.state == StateLogin {
		return textinput.Blink
	}
	_, cmd := m.opened(m.active)
	return cmd
}

// State returns the current screen.
func (m Model) State() State {
	return m.state
}

// Active returns the selected tab; 0 is the dashboard.
func (m Model) Active() int {
	return m.active
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case signedInMsg:
		if msg.err != nil {
			m.login.Fail(common.UserMessage(msg.err))
			return m, nil
		}
		m.state = StateBrowse
		next, statusCmd := m.withStatus(fmt.Sprintf("Signed in as %s", msg.user.Email), false)
		next, openCmd := next.opened(next.active)
		return next, tea.Batch(statusCmd, openCmd)

	case dashboardLoadedMsg:
		if msg.err != nil {
			m.dashboard.Failed(common.UserMessage(msg.err))
			return m, nil
		}
		m.dashboard.Loaded(msg.dashboard)
		return m, nil

	case pageFetchedMsg:
		list := m.list(msg.page)
		if list == nil {
			return m, nil
		}
		list.Refresh()
		if msg.err != nil {
			return m.withStatus(list.Page().Message(), true)
		}
		return m, nil

	case formSubmittedMsg:
		if msg.err != nil {
			if m.form != nil {
				m.form.SetError(msg.err)
			}
			return m, nil
		}
		m.form = nil
		m.state = StateBrowse
		list := m.list(msg.page)
		if list == nil {
			return m, nil
		}
		list.Refresh()
		return m.withStatus(fmt.Sprintf("Saved %s", list.Page().Config().Noun()), false)

	case deleteDoneMsg:
		list := m.list(msg.page)
		if list == nil {
			return m, nil
		}
		list.Refresh()
		if msg.err != nil {
			return m.withStatus(common.UserMessage(msg.err), true)
		}
		if msg.removed {
			return m.withStatus(fmt.Sprintf("Deleted %s", list.Page().Config().Noun()), false)
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			return m.withStatus(fmt.Sprintf("Export failed: %s", common.UserMessage(msg.err)), true)
		}
		return m.withStatus(fmt.Sprintf("Exported to %s", msg.location), false)

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusIsError = false
		}
		return m, nil

	case spinner.TickMsg:
		var loginCmd, dashCmd tea.Cmd
		m.login, loginCmd = m.login.Update(msg)
		m.dashboard, dashCmd = m.dashboard.Update(msg)
		return m, tea.Batch(loginCmd, dashCmd)
	}

	return m.forward(msg)
}

// forward passes non-key messages such as cursor blinks to the focused widget.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateLogin:
		m.login, cmd = m.login.Update(msg)
	case StateSearch, StateFilter:
		m.input, cmd = m.input.Update(msg)
	case StateForm:
		if m.form != nil {
			var f components.FormModel
			f, cmd = m.form.Update(msg)
			m.form = &f
		}
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateLogin:
		return m.handleLoginKey(msg)
	case StateSearch:
		return m.handleSearchKey(msg)
	case StateFilter:
		return m.handleFilterKey(msg)
	case StateForm:
		return m.handleFormKey(msg)
	case StateConfirm:
		return m.handleConfirmKey(msg)
	case StateHelp:
		m.state = m.helpFrom
		return m, nil
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.Busy() {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		cmd := m.login.Start()
		return m, tea.Batch(cmd, signInCmd(m.ctx, m.config.Session, m.config.Auth, m.login.Credentials(), m.login.SignUp()))
	case "tab", "shift+tab":
		m.login.NextField()
		return m, nil
	case "ctrl+s":
		m.login.ToggleMode()
		return m, nil
	case "esc":
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpFrom = m.state
		m.state = StateHelp
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		return m.switchTab(m.active + 1)
	case key.Matches(msg, m.keys.PrevPage):
		return m.switchTab(m.active - 1)
	case key.Matches(msg, m.keys.Home):
		return m.switchTab(0)
	case key.Matches(msg, m.keys.Refresh):
		return m.reload(m.active)
	}

	list := m.list(m.active)
	if list == nil {
		return m, nil
	}
	page := list.Page()
	cfg := page.Config()

	switch {
	case key.Matches(msg, m.keys.Search):
		m.prevSearch = page.Search()
		m.input.SetValue(page.Search())
		m.input.Placeholder = fmt.Sprintf("search %s", strings.ReplaceAll(cfg.SearchField, "_", " "))
		m.input.Focus()
		m.state = StateSearch
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Filter):
		if len(cfg.FilterableFields) == 0 {
			return m.withStatus(fmt.Sprintf("%s have no filters", cfg.Title), true)
		}
		m.input.SetValue("")
		m.input.Placeholder = fmt.Sprintf("field=value (%s)", strings.Join(cfg.FilterableFields, ", "))
		m.input.Focus()
		m.state = StateFilter
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Clear):
		page.ClearFilters()
		page.SetSearch("")
		list.Refresh()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		editor := page.Form()
		editor.Open()
		f := components.NewFormModel(editor, fmt.Sprintf("New %s", cfg.Noun()), m.config.Theme)
		m.form = &f
		m.state = StateForm
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		id, ok := list.Selected()
		if !ok {
			return m, nil
		}
		if err := page.Edit(id); err != nil {
			return m.withStatus(err.Error(), true)
		}
		f := components.NewFormModel(page.Form(), fmt.Sprintf("Edit %s %s", cfg.Noun(), id), m.config.Theme)
		m.form = &f
		m.state = StateForm
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		id, ok := list.Selected()
		if !ok {
			return m, nil
		}
		c := components.NewConfirmModel(listview.DeletePrompt(cfg), id, m.config.Theme)
		m.confirm = &c
		m.state = StateConfirm
		return m, nil

	case key.Matches(msg, m.keys.Export):
		if m.config.Sink == nil {
			return m.withStatus("Export is not configured", true)
		}
		return m, exportCmd(m.ctx, m.config.Sink, page)
	}

	var cmd tea.Cmd
	*list, cmd = list.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.list(m.active)
	if list == nil {
		m.state = StateBrowse
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.input.Blur()
		m.state = StateBrowse
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		list.Page().SetSearch(m.prevSearch)
		list.Refresh()
		m.input.Blur()
		m.state = StateBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	list.Page().SetSearch(m.input.Value())
	list.Refresh()
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.list(m.active)
	if list == nil {
		m.state = StateBrowse
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.input.Blur()
		m.state = StateBrowse
		field, value, ok := strings.Cut(m.input.Value(), "=")
		if !ok {
			return m.withStatus("Filters are written as field=value", true)
		}
		if err := list.Page().SetFilter(strings.TrimSpace(field), strings.TrimSpace(value)); err != nil {
			return m.withStatus(err.Error(), true)
		}
		list.Refresh()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		m.state = StateBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.list(m.active)
	if m.form == nil || list == nil {
		m.state = StateBrowse
		return m, nil
	}
	editor := list.Page().Form()

	switch {
	case key.Matches(msg, m.keys.Cancel):
		editor.Cancel()
		m.form = nil
		m.state = StateBrowse
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if err := m.form.Apply(); err != nil {
			return m, nil
		}
		return m, submitCmd(m.ctx, m.active, editor)
	case key.Matches(msg, m.keys.NextIn):
		m.form.Next()
		return m, nil
	case key.Matches(msg, m.keys.PrevIn):
		m.form.Prev()
		return m, nil
	}

	f, cmd := m.form.Update(msg)
	m.form = &f
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.list(m.active)
	c := m.confirm
	m.confirm = nil
	m.state = StateBrowse
	if c == nil || list == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m, removeCmd(m.ctx, m.active, list.Page(), c.ID())
	case key.Matches(msg, m.keys.Decline):
		return m, nil
	}
	// Anything else keeps the question open.
	m.confirm = c
	m.state = StateConfirm
	return m, nil
}

func (m Model) switchTab(tab int) (tea.Model, tea.Cmd) {
	tabs := len(m.lists) + 1
	m.active = (tab%tabs + tabs) % tabs
	return m.opened(m.active)
}

// opened starts loading a tab. Pages start empty and are refetched every
// time they open.
func (m Model) opened(tab int) (Model, tea.Cmd) {
	if list := m.list(tab); list != nil {
		list.Page().Reset()
		list.Refresh()
	}
	return m.reload(tab)
}

// reload refetches a tab and keeps its search text and filters.
func (m Model) reload(tab int) (Model, tea.Cmd) {
	if tab == 0 {
		if m.config.Dashboard == nil {
			return m, nil
		}
		return m, tea.Batch(m.dashboard.Start(), dashboardCmd(m.ctx, m.config.Dashboard))
	}
	list := m.list(tab)
	if list == nil {
		return m, nil
	}
	return m, fetchCmd(m.ctx, tab, list.Page())
}

// list returns the list of a tab, or nil for the dashboard.
func (m *Model) list(tab int) *components.ListModel {
	if tab < 1 || tab > len(m.lists) {
		return nil
	}
	return &m.lists[tab-1]
}

func (m Model) withStatus(text string, isError bool) (Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusIsError = isError
	return m, clearStatusCmd(m.statusSeq)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	for i := range m.lists {
		m.lists[i].SetSize(width, height-chromeHeight)
	}
	m.dashboard.SetWidth(width)
}

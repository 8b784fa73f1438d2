package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/ledgerdeck/internal/apiclient"
	"github.com/Veraticus/ledgerdeck/internal/listview"
	"github.com/Veraticus/ledgerdeck/internal/mockapi"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/report"
	"github.com/Veraticus/ledgerdeck/internal/session"
	"github.com/Veraticus/ledgerdeck/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	client *apiclient.Client
	mock   *mockapi.Server
}

func newHarness(t *testing.T) harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mock := mockapi.New(mockapi.Options{})
	ts := httptest.NewServer(mock.Handler())
	t.Cleanup(ts.Close)

	client, err := apiclient.New(ts.URL, apiclient.WithTimeout(5*time.Second))
	require.NoError(t, err)
	return harness{client: client, mock: mock}
}

func (h harness) budgets() *listview.Resource[model.Budget, model.BudgetDraft] {
	return listview.NewBudgets(h.client.Budgets(), nil)
}

// step feeds msg to m and resolves the commands it returns.
func step(t *testing.T, m tea.Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return drain(t, next, cmd)
}

// drain runs cmd and feeds back the application messages it produces.
// Timer based commands (spinners, status expiry) are abandoned.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case pageFetchedMsg, formSubmittedMsg, deleteDoneMsg, exportedMsg, signedInMsg, dashboardLoadedMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			m = drain(t, m, next)
		case tea.QuitMsg:
			mm := m.(Model)
			mm.quitting = true
			m = mm
		}
	}
	return m.(Model)
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func start(t *testing.T, opts ...Option) Model {
	t.Helper()
	m := New(context.Background(), opts...)
	return drain(t, m, m.Init())
}

func TestBrowseSearchAndFilterBudgets(t *testing.T) {
	h := newHarness(t)
	_, err := h.mock.Seed("budgets",
		map[string]any{"department": "Ops", "title": "Q1 Supplies", "amount_planned": 500},
		map[string]any{"department": "IT", "title": "Laptops", "amount_planned": 900},
	)
	require.NoError(t, err)

	m := start(t, WithPages(h.budgets()))
	assert.Equal(t, StateBrowse, m.State())
	assert.Equal(t, 0, m.Active())

	m = step(t, m, keyOf(tea.KeyTab))
	require.Equal(t, 1, m.Active())
	assert.Equal(t, 2, m.lists[0].Len())
	assert.Equal(t, 1, h.mock.Calls(http.MethodGet, "/api/budgets"))

	m = step(t, m, keyRunes("/"))
	assert.Equal(t, StateSearch, m.State())
	m = step(t, m, keyRunes("supp"))
	assert.Equal(t, 1, m.lists[0].Len(), "search narrows the list while typing")
	m = step(t, m, keyOf(tea.KeyEnter))
	assert.Equal(t, StateBrowse, m.State())
	assert.Equal(t, "supp", m.lists[0].Page().Search())

	m = step(t, m, keyRunes("c"))
	assert.Equal(t, 2, m.lists[0].Len())

	m = step(t, m, keyRunes("f"))
	assert.Equal(t, StateFilter, m.State())
	m = step(t, m, keyRunes("department=IT"))
	m = step(t, m, keyOf(tea.KeyEnter))
	assert.Equal(t, 1, m.lists[0].Len())
	assert.Equal(t, "IT", m.lists[0].Page().Filter("department"))
	assert.Contains(t, m.View(), "department=IT")

	// Filtering happens locally.
	assert.Equal(t, 1, h.mock.Calls(http.MethodGet, "/api/budgets"))
}

func TestSearchEscRestoresPreviousText(t *testing.T) {
	h := newHarness(t)
	_, err := h.mock.Seed("budgets", map[string]any{"department": "Ops", "title": "Q1 Supplies", "amount_planned": 500})
	require.NoError(t, err)

	m := start(t, WithPages(h.budgets()))
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyRunes("/"))
	m = step(t, m, keyRunes("zzz"))
	assert.Equal(t, 0, m.lists[0].Len())
	m = step(t, m, keyOf(tea.KeyEsc))
	assert.Equal(t, StateBrowse, m.State())
	assert.Equal(t, 1, m.lists[0].Len())
}

func TestUnknownFilterFieldShowsError(t *testing.T) {
	h := newHarness(t)
	m := start(t, WithPages(h.budgets()))
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyRunes("f"))
	m = step(t, m, keyRunes("title=Laptops"))
	m = step(t, m, keyOf(tea.KeyEnter))
	assert.Equal(t, StateBrowse, m.State())
	assert.Contains(t, m.Status(), "cannot be filtered")
}

func TestAddBudgetThroughForm(t *testing.T) {
	h := newHarness(t)
	m := start(t, WithPages(h.budgets()))
	m = step(t, m, keyOf(tea.KeyTab))
	require.Equal(t, 0, m.lists[0].Len())

	m = step(t, m, keyRunes("a"))
	require.Equal(t, StateForm, m.State())
	m = step(t, m, keyRunes("Finance"))
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyRunes("Audit"))
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyRunes("1200"))
	m = step(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, StateBrowse, m.State())
	assert.Equal(t, 1, m.lists[0].Len())
	assert.Equal(t, "Saved budget", m.Status())
	assert.Equal(t, 1, h.mock.Calls(http.MethodPost, "/api/budgets"))
	assert.Equal(t, 2, h.mock.Calls(http.MethodGet, "/api/budgets"), "one refetch after the create")
}

func TestInvalidFormStaysOpenWithoutRequest(t *testing.T) {
	h := newHarness(t)
	m := start(t, WithPages(h.budgets()))
	m = step(t, m, keyOf(tea.KeyTab))

	m = step(t, m, keyRunes("a"))
	m = step(t, m, keyRunes("Finance"))
	m = step(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, StateForm, m.State())
	require.NotNil(t, m.form)
	assert.Contains(t, m.View(), "is required")
	assert.Zero(t, h.mock.Calls(http.MethodPost, "/api/budgets"))

	m = step(t, m, keyOf(tea.KeyEsc))
	assert.Equal(t, StateBrowse, m.State())
	assert.Nil(t, m.form)
}

func TestEditPrefillsDraft(t *testing.T) {
	h := newHarness(t)
	ids, err := h.mock.Seed("budgets", map[string]any{"department": "Ops", "title": "Q1", "amount_planned": 500})
	require.NoError(t, err)

	pages := h.budgets()
	m := start(t, WithPages(pages))
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyRunes("e"))
	require.Equal(t, StateForm, m.State())
	assert.Equal(t, "Ops", pages.Form().Value("department"))
	assert.Equal(t, "500", pages.Form().Value("amount_planned"))

	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyRunes(" revised"))
	m = step(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, StateBrowse, m.State())
	assert.Equal(t, 1, h.mock.Calls(http.MethodPut, "/api/budgets/:id"))
	record, ok := pages.Find(model.ID(ids[0]))
	require.True(t, ok)
	assert.Equal(t, "Q1 revised", record.Title)
}

func TestDeleteAsksFirst(t *testing.T) {
	h := newHarness(t)
	_, err := h.mock.Seed("budgets",
		map[string]any{"department": "Ops", "title": "Q1", "amount_planned": 500},
		map[string]any{"department": "IT", "title": "Laptops", "amount_planned": 900},
	)
	require.NoError(t, err)

	m := start(t, WithPages(h.budgets()))
	m = step(t, m, keyOf(tea.KeyTab))

	m = step(t, m, keyRunes("d"))
	require.Equal(t, StateConfirm, m.State())
	assert.Contains(t, m.View(), "Are you sure you want to delete this budget?")

	m = step(t, m, keyRunes("n"))
	assert.Equal(t, StateBrowse, m.State())
	assert.Zero(t, h.mock.Calls(http.MethodDelete, "/api/budgets/:id"))
	assert.Equal(t, 2, m.lists[0].Len())

	m = step(t, m, keyRunes("d"))
	m = step(t, m, keyRunes("y"))
	assert.Equal(t, 1, h.mock.Calls(http.MethodDelete, "/api/budgets/:id"))
	assert.Equal(t, 1, m.lists[0].Len())
	assert.Equal(t, "Deleted budget", m.Status())
}

func TestFailedDeleteKeepsRows(t *testing.T) {
	h := newHarness(t)
	_, err := h.mock.Seed("budgets", map[string]any{"department": "Ops", "title": "Q1", "amount_planned": 500})
	require.NoError(t, err)
	h.mock.FailOn(http.MethodDelete, "/api/budgets/:id", http.StatusInternalServerError)

	m := start(t, WithPages(h.budgets()))
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyRunes("d"))
	m = step(t, m, keyRunes("y"))

	assert.Equal(t, 1, m.lists[0].Len())
	assert.Equal(t, "Failed to delete budget.", m.Status())
}

func TestFetchFailureShowsStaticMessage(t *testing.T) {
	h := newHarness(t)
	h.mock.FailOn(http.MethodGet, "/api/budgets", http.StatusInternalServerError)

	m := start(t, WithPages(h.budgets()))
	m = step(t, m, keyOf(tea.KeyTab))
	assert.Equal(t, "Failed to fetch budgets.", m.Status())
	assert.Contains(t, m.View(), "Failed to fetch budgets.")
}

func TestTabsWrapAndRefetchOnOpen(t *testing.T) {
	h := newHarness(t)
	m := start(t, WithPages(h.budgets(), listview.NewGoals(h.client.Goals(), nil)))

	m = step(t, m, keyOf(tea.KeyShiftTab))
	assert.Equal(t, 2, m.Active(), "shift+tab from the dashboard wraps to the last page")
	m = step(t, m, keyOf(tea.KeyTab))
	assert.Equal(t, 0, m.Active())
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyOf(tea.KeyTab))

	assert.Equal(t, 2, h.mock.Calls(http.MethodGet, "/api/budgets"))
	assert.Equal(t, 2, h.mock.Calls(http.MethodGet, "/api/goals"))
}

func TestRevisitedPageStartsEmpty(t *testing.T) {
	h := newHarness(t)
	_, err := h.mock.Seed("budgets",
		map[string]any{"department": "Ops", "title": "Q1 Supplies", "amount_planned": 500},
		map[string]any{"department": "IT", "title": "Laptops", "amount_planned": 900},
	)
	require.NoError(t, err)

	m := start(t, WithPages(h.budgets()))
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyRunes("f"))
	m = step(t, m, keyRunes("department=IT"))
	m = step(t, m, keyOf(tea.KeyEnter))
	require.Equal(t, 1, m.lists[0].Len())

	m = step(t, m, keyOf(tea.KeyShiftTab))
	require.Equal(t, 0, m.Active())

	// Read the page before the refetch lands.
	next, cmd := m.Update(keyOf(tea.KeyTab))
	mm := next.(Model)
	page := mm.lists[0].Page()
	assert.Equal(t, 0, page.Len())
	assert.Equal(t, 0, mm.lists[0].Len())
	assert.Empty(t, page.Filter("department"))
	assert.Empty(t, page.Search())
	assert.Equal(t, listview.StateLoading, page.State())

	mm = drain(t, mm, cmd)
	assert.Equal(t, 2, mm.lists[0].Len())
	assert.Equal(t, listview.StateLoaded, mm.lists[0].Page().State())
}

func TestRefreshKeepsFilters(t *testing.T) {
	h := newHarness(t)
	_, err := h.mock.Seed("budgets",
		map[string]any{"department": "Ops", "title": "Q1 Supplies", "amount_planned": 500},
		map[string]any{"department": "IT", "title": "Laptops", "amount_planned": 900},
	)
	require.NoError(t, err)

	m := start(t, WithPages(h.budgets()))
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyRunes("f"))
	m = step(t, m, keyRunes("department=IT"))
	m = step(t, m, keyOf(tea.KeyEnter))

	m = step(t, m, keyRunes("r"))
	assert.Equal(t, 2, h.mock.Calls(http.MethodGet, "/api/budgets"))
	assert.Equal(t, "IT", m.lists[0].Page().Filter("department"))
	assert.Equal(t, 1, m.lists[0].Len())
}

func TestDashboardLoads(t *testing.T) {
	h := newHarness(t)
	_, err := h.mock.Seed("budgets", map[string]any{"department": "Ops", "title": "Q1", "amount_planned": 100})
	require.NoError(t, err)
	_, err = h.mock.Seed("expenses", map[string]any{"budget_id": 1, "category": "Supplies", "amount": 150, "description": "Paper", "date": "2024-01-05"})
	require.NoError(t, err)

	src := report.Sources{
		Budgets:  h.client.Budgets(),
		Expenses: h.client.Expenses(),
		Income:   h.client.Income(),
		Payroll:  h.client.Payroll(),
		Goals:    h.client.Goals(),
	}
	m := start(t, WithDashboard(func(ctx context.Context) (report.Dashboard, error) {
		return report.LoadDashboard(ctx, src)
	}))

	d, ok := m.dashboard.Data()
	require.True(t, ok)
	require.Len(t, d.Overruns, 1)
	assert.Contains(t, m.View(), "1 budget(s) over plan")
}

func TestDashboardFailure(t *testing.T) {
	h := newHarness(t)
	h.mock.FailOn(http.MethodGet, "/api/goals", http.StatusInternalServerError)
	src := report.Sources{Budgets: h.client.Budgets(), Goals: h.client.Goals()}

	m := start(t, WithDashboard(func(ctx context.Context) (report.Dashboard, error) {
		return report.LoadDashboard(ctx, src)
	}))
	assert.Contains(t, m.View(), report.DashboardFetchMessage)
}

func TestLoginFlow(t *testing.T) {
	h := newHarness(t)
	h.mock.AddUser("ana@corp.io", "s3cret", "Finance Manager")

	store, err := storage.NewSQLiteStorage(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	sess, err := session.Open(context.Background(), store, nil)
	require.NoError(t, err)

	m := start(t, WithSession(sess, h.client), WithPages(h.budgets()))
	require.Equal(t, StateLogin, m.State())

	m = step(t, m, keyRunes("ana@corp.io"))
	m = step(t, m, keyOf(tea.KeyTab))
	m = step(t, m, keyRunes("wrong"))
	m = step(t, m, keyOf(tea.KeyEnter))
	assert.Equal(t, StateLogin, m.State())
	assert.Contains(t, m.View(), "Invalid email or password")

	m = step(t, m, keyOf(tea.KeyBackspace))
	m = step(t, m, keyOf(tea.KeyBackspace))
	m = step(t, m, keyOf(tea.KeyBackspace))
	m = step(t, m, keyOf(tea.KeyBackspace))
	m = step(t, m, keyOf(tea.KeyBackspace))
	m = step(t, m, keyRunes("s3cret"))
	m = step(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, StateBrowse, m.State())
	user, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, "Finance Manager", user.Role)
	assert.Contains(t, m.View(), "ana@corp.io")
}

func TestHelpAndQuit(t *testing.T) {
	h := newHarness(t)
	m := start(t, WithPages(h.budgets()))

	m = step(t, m, keyRunes("?"))
	assert.Equal(t, StateHelp, m.State())
	assert.Contains(t, m.View(), "clear filters")
	m = step(t, m, keyRunes("x"))
	assert.Equal(t, StateBrowse, m.State())

	m = step(t, m, keyRunes("q"))
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

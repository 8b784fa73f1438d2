package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/form"
	"github.com/Veraticus/ledgerdeck/internal/mockapi"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	mock   *mockapi.Server
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock := mockapi.New(mockapi.Options{})
	mock.AddUser("ana@corp.io", "s3cret", "Finance Manager")
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("api:\n  base_url: %s\nsession:\n  path: %s\nexport:\n  dir: %s\nlogging:\n  level: error\n",
		srv.URL, filepath.Join(dir, "session.db"), dir)
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))

	return &testEnv{mock: mock, config: cfg}
}

// run executes one deck invocation with input as stdin.
func (e *testEnv) run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	cfgFile = ""

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	out, err := e.run(t, "", "login", "--email", "ana@corp.io", "--password", "s3cret")
	require.NoError(t, err)
	require.Contains(t, out, "Signed in as ana@corp.io (Finance Manager)")
}

func TestCommandsRequireSignIn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "budgets", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotSignedIn)
	assert.Zero(t, env.mock.Calls("GET", "/api/budgets"))

	out, err := env.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestLoginPersistsSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "login", "--email", "ana@corp.io", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", common.UserMessage(err))

	env.login(t)
	out, err := env.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ana@corp.io")
	assert.Contains(t, out, "Finance Manager")

	_, err = env.run(t, "", "logout")
	require.NoError(t, err)
	out, err = env.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestBudgetLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	out, err := env.run(t, "", "budgets", "add",
		"--set", "department=Ops", "--set", "title=Q1 Ops", "--set", "amount_planned=1200")
	require.NoError(t, err)
	assert.Contains(t, out, "Added budget")
	assert.Equal(t, 1, env.mock.Calls("POST", "/api/budgets"))

	_, err = env.run(t, "", "budgets", "add",
		"--set", "department=Sales", "--set", "title=Q1 Sales", "--set", "amount_planned=800")
	require.NoError(t, err)

	out, err = env.run(t, "", "budgets", "list", "--filter", "department=Ops")
	require.NoError(t, err)
	assert.Contains(t, out, "Q1 Ops")
	assert.NotContains(t, out, "Q1 Sales")

	out, err = env.run(t, "", "budgets", "list", "--search", "sales", "--export")
	require.NoError(t, err)
	assert.Equal(t, "Department,Title,Amount Planned\nSales,Q1 Sales,800", out)

	out, err = env.run(t, "", "budgets", "options", "department")
	require.NoError(t, err)
	assert.Equal(t, "Ops\nSales\n", out)

	out, err = env.run(t, "", "budgets", "edit", "1", "--set", "title=Q1 Ops revised")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated budget 1")
	assert.Equal(t, 1, env.mock.Calls("PUT", "/api/budgets/:id"))

	out, err = env.run(t, "n\n", "budgets", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")
	assert.Zero(t, env.mock.Calls("DELETE", "/api/budgets/:id"))

	out, err = env.run(t, "", "budgets", "delete", "1", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted budget 1")

	out, err = env.run(t, "", "budgets", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Q1 Ops")
	assert.Contains(t, out, "Q1 Sales")
}

func TestAddRejectsInvalidDraft(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	_, err := env.run(t, "", "budgets", "add", "--set", "department=Ops")
	require.Error(t, err)
	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("title"))
	assert.Zero(t, env.mock.Calls("POST", "/api/budgets"))

	_, err = env.run(t, "", "budgets", "add", "--set", "bogus=1")
	assert.ErrorIs(t, err, common.ErrUnknownField)

	_, err = env.run(t, "", "budgets", "list", "--filter", "department")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestFetchFailureShowsStaticMessage(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.mock.FailOn("GET", "/api/expenses", 500)

	_, err := env.run(t, "", "expenses", "list")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch expenses.", common.UserMessage(err))
}

func TestGoalsContribute(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	ids, err := env.mock.Seed("goals", map[string]any{"name": "Fund", "target_amount": 1000, "current_amount": 250, "deadline": "2026-12-31"})
	require.NoError(t, err)

	out, err := env.run(t, "", "goals", "contribute", ids[0], "100")
	require.NoError(t, err)
	assert.Contains(t, out, "$350.00")

	out, err = env.run(t, "", "goals", "list", "--export")
	require.NoError(t, err)
	assert.Contains(t, out, "350")

	_, err = env.run(t, "", "goals", "contribute", ids[0], "lots")
	require.Error(t, err)
	assert.Equal(t, "Amount must be a number.", common.UserMessage(err))
}

func TestDashboardAndReport(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	_, err := env.mock.Seed("budgets", map[string]any{"department": "Ops", "title": "Rent budget", "amount_planned": 1000})
	require.NoError(t, err)
	_, err = env.mock.Seed("expenses", map[string]any{"category": "Rent", "description": "Office", "date": "2026-01-05", "budget_id": 1, "amount": 1500})
	require.NoError(t, err)

	out, err := env.run(t, "", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "1 budget(s) over plan")
	assert.Contains(t, out, "Rent budget")

	out, err = env.run(t, "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "150%")

	out, err = env.run(t, "", "calendar", "expenses")
	require.NoError(t, err)
	assert.Contains(t, out, "Office")

	env.mock.FailOn("GET", "/api/income", 500)
	_, err = env.run(t, "", "dashboard")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch dashboard data.", common.UserMessage(err))
}

func TestMessagesSendValidatesBeforeSending(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	_, err := env.run(t, "", "messages", "send", "--to", "not-an-email", "--message", "hi")
	require.Error(t, err)
	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("recipient"))
	assert.Zero(t, env.mock.Calls("POST", "/api/communications/message"))

	out, err := env.run(t, "", "messages", "send", "--to", "bo@corp.io", "--subject", "Close", "--message", "Numbers are in")
	require.NoError(t, err)
	assert.Contains(t, out, "Message sent to bo@corp.io")
	assert.Equal(t, 1, env.mock.Calls("POST", "/api/communications/message"))
}

func TestExportToFile(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	_, err := env.mock.Seed("budgets", map[string]any{"department": "Ops", "title": "Q1", "amount_planned": 10})
	require.NoError(t, err)

	out, err := env.run(t, "", "budgets", "list", "--export-to", "file")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 budgets to")

	data, err := os.ReadFile(filepath.Join(filepath.Dir(env.config), "budgets.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Department,Title,Amount Planned\nOps,Q1,10", string(data))

	_, err = env.mock.Seed("budgets", map[string]any{"department": "IT", "title": "Laptops", "amount_planned": 900})
	require.NoError(t, err)
	out, err = env.run(t, "", "budgets", "list", "--filter", "department=IT", "--export-to", "file")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 budgets to", "count reflects the filtered rows")

	_, err = env.run(t, "", "budgets", "list", "--export-to", "ftp")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestWhiteLabelSet(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	_, err := env.run(t, "", "whitelabel", "set", "--set", "primaryColor=teal")
	require.Error(t, err)
	assert.Zero(t, env.mock.Calls("PUT", "/api/whitelabel"))

	_, err = env.run(t, "", "whitelabel", "set", "--set", "companyName=Acme Finance")
	require.NoError(t, err)

	out, err := env.run(t, "", "whitelabel", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Finance")
}

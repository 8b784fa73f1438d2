package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{"number", `7`, "7"},
		{"string", `"inv-1"`, "inv-1"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestIDMarshalKeepsNumericShape(t *testing.T) {
	b, err := json.Marshal(struct {
		A ID `json:"a"`
		B ID `json:"b"`
	}{A: "12", B: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":12,"b":"abc"}`, string(b))
}

func TestDraftsKeepOpaqueReferences(t *testing.T) {
	e := Expense{ID: "exp-1", BudgetID: "budget-q1", Category: "Travel", Amount: 12}
	assert.Equal(t, ID("budget-q1"), e.Draft().BudgetID)

	p := Payroll{ID: "9", EmployeeID: "emp-42", AmountPaid: 100}
	assert.Equal(t, ID("emp-42"), p.Draft().EmployeeID)

	body, err := json.Marshal(ExpenseDraft{BudgetID: "3"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"budget_id":3`)
}

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Number
		wantErr bool
	}{
		{"number", `1200`, 1200, false},
		{"decimal string", `"500.50"`, 500.5, false},
		{"empty string", `""`, 0, false},
		{"null", `null`, 0, false},
		{"garbage", `"abc"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			err := json.Unmarshal([]byte(tt.input), &n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "1200", Number(1200).String())
	assert.Equal(t, "99.5", Number(99.5).String())
}

func TestBudgetDecodesStringAmounts(t *testing.T) {
	var b Budget
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"department":"IT","title":"Office supplies","amount_planned":"500.00"}`), &b))
	assert.Equal(t, ID("3"), b.RecordID())
	assert.Equal(t, "500", b.Field("amount_planned"))
	assert.Equal(t, "Office supplies", b.Field("title"))
	assert.Empty(t, b.Field("unknown"))
}

func TestAuthResponseUserFor(t *testing.T) {
	var withUser AuthResponse
	require.NoError(t, json.Unmarshal([]byte(`{"user":{"id":42},"role":"Finance Manager"}`), &withUser))
	assert.Equal(t, User{Email: "a@b.co", ID: "42", Role: "Finance Manager"}, withUser.UserFor("a@b.co"))

	var bare AuthResponse
	assert.Equal(t, User{Email: "a@b.co", ID: "a@b.co", Role: DefaultRole}, bare.UserFor("a@b.co"))
}

func TestRoleDraftTogglePermission(t *testing.T) {
	d := RoleDraft{Permissions: []string{"budgets:read"}}
	d.TogglePermission("expenses:read")
	assert.Equal(t, []string{"budgets:read", "expenses:read"}, d.Permissions)
	d.TogglePermission("budgets:read")
	assert.Equal(t, []string{"expenses:read"}, d.Permissions)
}

func TestTenantFieldsReadSettings(t *testing.T) {
	tenant := Tenant{ID: "1", Name: "Acme", Settings: DefaultTenantSettings()}
	assert.Equal(t, "USD", tenant.Field("currency"))
	assert.Equal(t, "America/New_York", tenant.Field("settings.timezone"))
	assert.Equal(t, "#4f46e5", tenant.Field("settings.primaryColor"))
}

func TestInvitationKeyedByEmail(t *testing.T) {
	inv := Invitation{ID: "9", Email: "new@corp.io", Status: InvitationPending}
	assert.Equal(t, ID("new@corp.io"), inv.RecordID())
	assert.True(t, inv.IsPending())
}

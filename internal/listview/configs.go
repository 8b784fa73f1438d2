package listview

import (
	"log/slog"

	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/service"
)

// Page configurations. Filenames and messages are fixed per resource.
var (
	BudgetsConfig = Config{
		Name:             "budgets",
		Singular:         "budget",
		Title:            "Budgets",
		SearchField:      "title",
		FilterableFields: []string{"department"},
		Filename:         "budgets.csv",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "department", Label: "Department"},
			{Field: "title", Label: "Title"},
			{Field: "amount_planned", Label: "Amount Planned"},
			{Field: "status", Label: "Status"},
		},
		ExportColumns: []Column{
			{Field: "department", Label: "Department"},
			{Field: "title", Label: "Title"},
			{Field: "amount_planned", Label: "Amount Planned"},
		},
		Messages: Messages{
			Fetch:  "Failed to fetch budgets.",
			Create: "Failed to add budget.",
			Update: "Failed to update budget.",
			Delete: "Failed to delete budget.",
		},
	}

	ExpensesConfig = Config{
		Name:             "expenses",
		Singular:         "expense",
		Title:            "Expenses",
		SearchField:      "description",
		FilterableFields: []string{"category", "budget_id", "recurrence", "date"},
		Filename:         "expenses.csv",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "category", Label: "Category"},
			{Field: "amount", Label: "Amount"},
			{Field: "description", Label: "Description"},
			{Field: "date", Label: "Date"},
			{Field: "recurrence", Label: "Recurrence"},
			{Field: "budget_id", Label: "Budget"},
		},
		ExportColumns: []Column{
			{Field: "category", Label: "Category"},
			{Field: "amount", Label: "Amount"},
			{Field: "description", Label: "Description"},
			{Field: "date", Label: "Date"},
		},
		Messages: Messages{
			Fetch:  "Failed to fetch expenses.",
			Create: "Failed to add expense.",
			Update: "Failed to update expense.",
			Delete: "Failed to delete expense.",
		},
	}

	IncomeConfig = Config{
		Name:             "income",
		Singular:         "income entry",
		Title:            "Income",
		SearchField:      "source_name",
		FilterableFields: []string{"category", "recurrence", "date_received"},
		Filename:         "income.csv",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "source_name", Label: "Source"},
			{Field: "category", Label: "Category"},
			{Field: "amount", Label: "Amount"},
			{Field: "date_received", Label: "Date"},
			{Field: "notes", Label: "Notes"},
		},
		ExportColumns: []Column{
			{Field: "source_name", Label: "Source"},
			{Field: "category", Label: "Category"},
			{Field: "amount", Label: "Amount"},
			{Field: "date_received", Label: "Date"},
			{Field: "notes", Label: "Notes"},
		},
		Messages: Messages{
			Fetch:  "Failed to fetch income data.",
			Create: "Failed to add income.",
			Update: "Failed to update income.",
			Delete: "Failed to delete income.",
		},
	}

	PayrollConfig = Config{
		Name:             "payroll",
		Singular:         "payroll entry",
		Title:            "Payroll",
		SearchField:      "month",
		FilterableFields: []string{"status", "employee_id"},
		Filename:         "payroll.csv",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "employee_id", Label: "Employee"},
			{Field: "month", Label: "Month"},
			{Field: "amount_paid", Label: "Amount Paid"},
			{Field: "status", Label: "Status"},
			{Field: "payment_date", Label: "Payment Date"},
		},
		Messages: Messages{
			Fetch:  "Failed to fetch payroll data.",
			Create: "Failed to add payroll.",
			Update: "Failed to update payroll.",
			Delete: "Failed to delete payroll.",
		},
	}

	GoalsConfig = Config{
		Name:             "goals",
		Singular:         "goal",
		Title:            "Goals",
		SearchField:      "name",
		FilterableFields: []string{"status"},
		Filename:         "goals.csv",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "name", Label: "Name"},
			{Field: "target_amount", Label: "Target"},
			{Field: "current_amount", Label: "Current"},
			{Field: "deadline", Label: "Deadline"},
			{Field: "status", Label: "Status"},
		},
		Messages: Messages{
			Fetch:  "Failed to fetch goals.",
			Create: "Failed to add goal.",
			Update: "Failed to update goal.",
			Delete: "Failed to delete goal.",
		},
	}

	InvitationsConfig = Config{
		Name:             "invitations",
		Singular:         "invitation",
		Title:            "Invitations",
		SearchField:      "email",
		FilterableFields: []string{"role", "status"},
		Filename:         "invitations.csv",
		Columns: []Column{
			{Field: "email", Label: "Email"},
			{Field: "role", Label: "Role"},
			{Field: "status", Label: "Status"},
			{Field: "created_at", Label: "Sent"},
		},
		Messages: Messages{
			Fetch:  "Failed to fetch invitations",
			Create: "Failed to send invitation",
			Update: "Failed to update invitation",
			Delete: "Failed to delete invitation",
		},
	}

	IntegrationsConfig = Config{
		Name:             "integrations",
		Singular:         "integration",
		Title:            "Integrations",
		SearchField:      "name",
		FilterableFields: []string{"type", "status"},
		Filename:         "integrations.csv",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "name", Label: "Name"},
			{Field: "type_label", Label: "Type"},
			{Field: "status", Label: "Status"},
			{Field: "lastSync", Label: "Last Sync"},
		},
		Messages: Messages{
			Fetch:  "Failed to fetch integrations",
			Create: "Failed to save integration",
			Update: "Failed to save integration",
			Delete: "Failed to delete integration",
		},
	}

	RolesConfig = Config{
		Name:        "roles",
		Singular:    "role",
		Title:       "Roles",
		SearchField: "name",
		Filename:    "roles.csv",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "name", Label: "Name"},
			{Field: "description", Label: "Description"},
			{Field: "permissions", Label: "Permissions"},
		},
		Messages: Messages{
			Fetch:  "Failed to fetch roles",
			Create: "Failed to save role",
			Update: "Failed to save role",
			Delete: "Failed to delete role",
		},
	}

	TenantsConfig = Config{
		Name:             "tenants",
		Singular:         "tenant",
		Title:            "Tenants",
		SearchField:      "name",
		FilterableFields: []string{"status", "currency"},
		Filename:         "tenants.csv",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "name", Label: "Name"},
			{Field: "domain", Label: "Domain"},
			{Field: "status", Label: "Status"},
			{Field: "currency", Label: "Currency"},
			{Field: "timezone", Label: "Timezone"},
		},
		Messages: Messages{
			Fetch:  "Failed to fetch tenants",
			Create: "Failed to save tenant",
			Update: "Failed to save tenant",
			Delete: "Failed to delete tenant",
		},
	}

	ChannelsConfig = Config{
		Name:             "channels",
		Singular:         "channel",
		Title:            "Channels",
		SearchField:      "name",
		FilterableFields: []string{"is_private"},
		Filename:         "channels.csv",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "name", Label: "Name"},
			{Field: "description", Label: "Description"},
			{Field: "is_private", Label: "Private"},
			{Field: "members", Label: "Members"},
		},
		Messages: Messages{
			Fetch:  "Failed to fetch channels",
			Create: "Failed to create channel",
			Update: "Failed to update channel",
			Delete: "Failed to delete channel",
		},
	}
)

// NewBudgets builds the budgets page.
func NewBudgets(c service.Collection[model.Budget, model.BudgetDraft], logger *slog.Logger) *Resource[model.Budget, model.BudgetDraft] {
	return NewResource(BudgetsConfig, c, func() model.BudgetDraft { return model.BudgetDraft{} }, logger)
}

// NewExpenses builds the expenses page.
func NewExpenses(c service.Collection[model.Expense, model.ExpenseDraft], logger *slog.Logger) *Resource[model.Expense, model.ExpenseDraft] {
	return NewResource(ExpensesConfig, c, func() model.ExpenseDraft {
		return model.ExpenseDraft{Recurrence: model.RecurrenceNone}
	}, logger)
}

// NewIncome builds the income page.
func NewIncome(c service.Collection[model.Income, model.IncomeDraft], logger *slog.Logger) *Resource[model.Income, model.IncomeDraft] {
	return NewResource(IncomeConfig, c, func() model.IncomeDraft {
		return model.IncomeDraft{Recurrence: model.RecurrenceNone}
	}, logger)
}

// NewPayroll builds the payroll page.
func NewPayroll(c service.Collection[model.Payroll, model.PayrollDraft], logger *slog.Logger) *Resource[model.Payroll, model.PayrollDraft] {
	return NewResource(PayrollConfig, c, func() model.PayrollDraft {
		return model.PayrollDraft{Status: model.PayrollPending}
	}, logger)
}

// NewGoals builds the goals page.
func NewGoals(c service.Collection[model.Goal, model.GoalDraft], logger *slog.Logger) *Resource[model.Goal, model.GoalDraft] {
	return NewResource(GoalsConfig, c, func() model.GoalDraft { return model.GoalDraft{} }, logger)
}

// NewInvitations builds the invitations page.
func NewInvitations(c service.Collection[model.Invitation, model.InvitationDraft], logger *slog.Logger) *Resource[model.Invitation, model.InvitationDraft] {
	return NewResource(InvitationsConfig, c, func() model.InvitationDraft {
		return model.InvitationDraft{Role: model.InvitationRoles[0]}
	}, logger)
}

// NewIntegrations builds the integrations page.
func NewIntegrations(c service.Collection[model.Integration, model.IntegrationDraft], logger *slog.Logger) *Resource[model.Integration, model.IntegrationDraft] {
	return NewResource(IntegrationsConfig, c, func() model.IntegrationDraft {
		return model.IntegrationDraft{Type: model.IntegrationTypes[0].Value, Config: map[string]any{}}
	}, logger)
}

// NewRoles builds the roles page.
func NewRoles(c service.Collection[model.Role, model.RoleDraft], logger *slog.Logger) *Resource[model.Role, model.RoleDraft] {
	return NewResource(RolesConfig, c, func() model.RoleDraft {
		return model.RoleDraft{Permissions: []string{}}
	}, logger)
}

// NewTenants builds the tenants page.
func NewTenants(c service.Collection[model.Tenant, model.TenantDraft], logger *slog.Logger) *Resource[model.Tenant, model.TenantDraft] {
	return NewResource(TenantsConfig, c, func() model.TenantDraft {
		return model.TenantDraft{Settings: model.DefaultTenantSettings()}
	}, logger)
}

// NewChannels builds the channels page.
func NewChannels(c service.Collection[model.Channel, model.ChannelDraft], logger *slog.Logger) *Resource[model.Channel, model.ChannelDraft] {
	return NewResource(ChannelsConfig, c, func() model.ChannelDraft { return model.ChannelDraft{} }, logger)
}

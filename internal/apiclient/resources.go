package apiclient

import "github.com/Veraticus/ledgerdeck/internal/model"

// Budgets returns the /api/budgets resource.
func (c *Client) Budgets() *Resource[model.Budget, model.BudgetDraft] {
	return NewResource[model.Budget, model.BudgetDraft](c, "/api/budgets")
}

// Expenses returns the /api/expenses resource.
func (c *Client) Expenses() *Resource[model.Expense, model.ExpenseDraft] {
	return NewResource[model.Expense, model.ExpenseDraft](c, "/api/expenses")
}

// Income returns the /api/income resource.
func (c *Client) Income() *Resource[model.Income, model.IncomeDraft] {
	return NewResource[model.Income, model.IncomeDraft](c, "/api/income")
}

// Payroll returns the /api/payroll resource.
func (c *Client) Payroll() *Resource[model.Payroll, model.PayrollDraft] {
	return NewResource[model.Payroll, model.PayrollDraft](c, "/api/payroll")
}

// Goals returns the /api/goals resource.
func (c *Client) Goals() *Resource[model.Goal, model.GoalDraft] {
	return NewResource[model.Goal, model.GoalDraft](c, "/api/goals")
}

// Invitations returns the invitation resource. Invitations are listed from
// /api/invite/all and addressed by email.
func (c *Client) Invitations() *Resource[model.Invitation, model.InvitationDraft] {
	return NewResource[model.Invitation, model.InvitationDraft](c, "/api/invite", WithListPath("/api/invite/all"))
}

// Integrations returns the /api/integrations resource.
func (c *Client) Integrations() *Resource[model.Integration, model.IntegrationDraft] {
	return NewResource[model.Integration, model.IntegrationDraft](c, "/api/integrations")
}

// Roles returns the /api/rbac/roles resource.
func (c *Client) Roles() *Resource[model.Role, model.RoleDraft] {
	return NewResource[model.Role, model.RoleDraft](c, "/api/rbac/roles")
}

// Tenants returns the /api/tenants resource.
func (c *Client) Tenants() *Resource[model.Tenant, model.TenantDraft] {
	return NewResource[model.Tenant, model.TenantDraft](c, "/api/tenants")
}

// Channels returns the communication channels resource.
func (c *Client) Channels() *Resource[model.Channel, model.ChannelDraft] {
	return NewResource[model.Channel, model.ChannelDraft](c, "/api/communications/channels", WithEnvelope())
}

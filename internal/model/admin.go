package model

import (
	"encoding/json"
	"sort"
	"strings"
)

// Invitation roles offered by the admin screen.
var InvitationRoles = []string{"Finance Officer", "Finance Manager", "Chief Accountant"}

// InvitationPending is the status of an invitation that has not been accepted.
const InvitationPending = "pending"

// Invitation is a pending or accepted user invitation. The backend keys
// invitations by email address.
type Invitation struct {
	ID        ID     `json:"id,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Token     string `json:"token,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// RecordID implements Record. Invitation item paths use the email.
func (i Invitation) RecordID() ID { return ID(i.Email) }

// Field implements Record.
func (i Invitation) Field(name string) string {
	switch name {
	case "id":
		return i.ID.String()
	case "email":
		return i.Email
	case "role":
		return i.Role
	case "status":
		return i.Status
	case "created_at":
		return i.CreatedAt
	}
	return ""
}

// IsPending reports whether the invitation can be resent.
func (i Invitation) IsPending() bool {
	return i.Status == InvitationPending
}

// InvitationDraft is the send-invitation form.
type InvitationDraft struct {
	Email string `json:"email" label:"Email" validate:"required,email"`
	Role  string `json:"role" label:"Role" validate:"required,oneof='Finance Officer' 'Finance Manager' 'Chief Accountant'"`
}

// ResendRequest is the body of an invitation resend.
type ResendRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// IntegrationType describes a supported external system.
type IntegrationType struct {
	Value       string
	Label       string
	Description string
}

// IntegrationTypes lists the integrations the backend knows how to sync.
var IntegrationTypes = []IntegrationType{
	{Value: "google_sheets", Label: "Google Sheets", Description: "Sync data with Google Sheets"},
	{Value: "quickbooks", Label: "QuickBooks", Description: "Integrate with QuickBooks accounting"},
	{Value: "excel", Label: "Excel", Description: "Import/Export Excel files"},
	{Value: "hr_system", Label: "HR System", Description: "Connect to HR management systems"},
	{Value: "crm", Label: "CRM", Description: "Integrate with CRM systems"},
}

// LookupIntegrationType returns the type info, falling back to the raw value.
func LookupIntegrationType(value string) IntegrationType {
	for _, t := range IntegrationTypes {
		if t.Value == value {
			return t
		}
	}
	return IntegrationType{Value: value, Label: value}
}

// Integration connects the finance system to an external tool.
type Integration struct {
	Config   map[string]any `json:"config,omitempty"`
	ID       ID             `json:"id"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Status   string         `json:"status,omitempty"`
	LastSync string         `json:"lastSync,omitempty"`
}

// RecordID implements Record.
func (i Integration) RecordID() ID { return i.ID }

// Field implements Record.
func (i Integration) Field(name string) string {
	switch name {
	case "id":
		return i.ID.String()
	case "name":
		return i.Name
	case "type":
		return i.Type
	case "type_label":
		return LookupIntegrationType(i.Type).Label
	case "status":
		return i.Status
	case "lastSync":
		return i.LastSync
	case "config":
		if len(i.Config) == 0 {
			return ""
		}
		b, err := json.Marshal(i.Config)
		if err != nil {
			return ""
		}
		return string(b)
	}
	return ""
}

// IntegrationDraft is the create/edit form for an integration.
type IntegrationDraft struct {
	Config map[string]any `json:"config" label:"Configuration (JSON)"`
	Name   string         `json:"name" label:"Integration Name" validate:"required"`
	Type   string         `json:"type" label:"Type" validate:"required,oneof=google_sheets quickbooks excel hr_system crm"`
}

// SyncResult is returned by an integration sync.
type SyncResult struct {
	SyncedRecords int `json:"syncedRecords"`
}

// Permissions is the catalog of grantable permissions.
var Permissions = []string{
	"budgets:read", "budgets:write", "budgets:delete",
	"expenses:read", "expenses:write", "expenses:delete",
	"income:read", "income:write", "income:delete",
	"payroll:read", "payroll:write", "payroll:delete",
	"goals:read", "goals:write", "goals:delete",
	"reports:read", "reports:write", "reports:delete",
	"users:read", "users:write", "users:delete",
}

// IsPermission reports whether p is in the catalog.
func IsPermission(p string) bool {
	for _, known := range Permissions {
		if known == p {
			return true
		}
	}
	return false
}

// Role is a named set of permissions.
type Role struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// RecordID implements Record.
func (r Role) RecordID() ID { return r.ID }

// Field implements Record.
func (r Role) Field(name string) string {
	switch name {
	case "id":
		return r.ID.String()
	case "name":
		return r.Name
	case "description":
		return r.Description
	case "permissions":
		return strings.Join(r.Permissions, " ")
	}
	return ""
}

// RoleDraft is the create/edit form for a role.
type RoleDraft struct {
	Name        string   `json:"name" label:"Role Name" validate:"required"`
	Description string   `json:"description" label:"Description" validate:"required"`
	Permissions []string `json:"permissions" label:"Permissions" validate:"dive,permission"`
}

// TogglePermission adds p when absent and removes it when present.
func (d *RoleDraft) TogglePermission(p string) {
	for i, existing := range d.Permissions {
		if existing == p {
			d.Permissions = append(d.Permissions[:i:i], d.Permissions[i+1:]...)
			return
		}
	}
	d.Permissions = append(d.Permissions, p)
	sort.Strings(d.Permissions)
}

// RoleAssignment assigns a role to a user.
type RoleAssignment struct {
	UserID string `json:"userId"`
	RoleID ID     `json:"roleId"`
}

// TenantSettings are per-organization presentation settings.
type TenantSettings struct {
	Currency     string `json:"currency" label:"Currency" validate:"omitempty,oneof=USD EUR GBP CAD"`
	Timezone     string `json:"timezone" label:"Timezone"`
	Logo         string `json:"logo" label:"Logo"`
	PrimaryColor string `json:"primaryColor" label:"Primary Color" validate:"omitempty,hexcolor"`
}

// DefaultTenantSettings returns the settings applied to new tenants.
func DefaultTenantSettings() TenantSettings {
	return TenantSettings{
		Currency:     "USD",
		Timezone:     "America/New_York",
		Logo:         "/logos/default-logo.png",
		PrimaryColor: "#4f46e5",
	}
}

// Tenant is an isolated organization.
type Tenant struct {
	ID        ID             `json:"id"`
	Name      string         `json:"name"`
	Domain    string         `json:"domain"`
	Status    string         `json:"status,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	Settings  TenantSettings `json:"settings"`
}

// RecordID implements Record.
func (t Tenant) RecordID() ID { return t.ID }

// Field implements Record.
func (t Tenant) Field(name string) string {
	switch name {
	case "id":
		return t.ID.String()
	case "name":
		return t.Name
	case "domain":
		return t.Domain
	case "status":
		return t.Status
	case "created_at":
		return t.CreatedAt
	case "currency", "settings.currency":
		return t.Settings.Currency
	case "timezone", "settings.timezone":
		return t.Settings.Timezone
	case "settings.primaryColor":
		return t.Settings.PrimaryColor
	}
	return ""
}

// Draft returns an edit draft pre-populated from the tenant.
func (t Tenant) Draft() TenantDraft {
	return TenantDraft{Name: t.Name, Domain: t.Domain, Settings: t.Settings}
}

// TenantDraft is the create/edit form for a tenant.
type TenantDraft struct {
	Name     string         `json:"name" label:"Company Name" validate:"required"`
	Domain   string         `json:"domain" label:"Domain" validate:"required"`
	Settings TenantSettings `json:"settings"`
}

// Draft returns an edit draft pre-populated from the integration.
func (i Integration) Draft() IntegrationDraft {
	return IntegrationDraft{Name: i.Name, Type: i.Type, Config: i.Config}
}

// Draft returns an edit draft pre-populated from the role.
func (r Role) Draft() RoleDraft {
	perms := append([]string(nil), r.Permissions...)
	return RoleDraft{Name: r.Name, Description: r.Description, Permissions: perms}
}

// Draft returns an edit draft pre-populated from the invitation.
func (i Invitation) Draft() InvitationDraft {
	return InvitationDraft{Email: i.Email, Role: i.Role}
}

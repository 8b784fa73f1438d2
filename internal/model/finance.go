package model

// Recurrence values accepted for expenses and income.
const (
	RecurrenceNone    = "None"
	RecurrenceWeekly  = "Weekly"
	RecurrenceMonthly = "Monthly"
	RecurrenceYearly  = "Yearly"
)

// Payroll statuses.
const (
	PayrollPending = "Pending"
	PayrollPaid    = "Paid"
)

// GoalAchieved is the goal status counted as reached on the dashboard.
const GoalAchieved = "Achieved"

// Budget is a planned spend for a department.
type Budget struct {
	ID            ID     `json:"id"`
	Department    string `json:"department"`
	Title         string `json:"title"`
	Status        string `json:"status,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	AmountPlanned Number `json:"amount_planned"`
}

// RecordID implements Record.
func (b Budget) RecordID() ID { return b.ID }

// Field implements Record.
func (b Budget) Field(name string) string {
	switch name {
	case "id":
		return b.ID.String()
	case "department":
		return b.Department
	case "title":
		return b.Title
	case "amount_planned":
		return b.AmountPlanned.String()
	case "status":
		return b.Status
	case "created_at":
		return b.CreatedAt
	}
	return ""
}

// BudgetDraft is the create form for a budget.
type BudgetDraft struct {
	Department    string   `json:"department" label:"Department" validate:"required"`
	Title         string   `json:"title" label:"Title" validate:"required"`
	AmountPlanned *float64 `json:"amount_planned" label:"Amount Planned" validate:"required"`
}

// Expense is money spent, optionally against a budget.
type Expense struct {
	ID            ID     `json:"id"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	Recurrence    string `json:"recurrence,omitempty"`
	RecurrenceEnd string `json:"recurrence_end,omitempty"`
	Status        string `json:"status,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	BudgetID      ID     `json:"budget_id,omitempty"`
	Amount        Number `json:"amount"`
}

// RecordID implements Record.
func (e Expense) RecordID() ID { return e.ID }

// Field implements Record.
func (e Expense) Field(name string) string {
	switch name {
	case "id":
		return e.ID.String()
	case "budget_id":
		return e.BudgetID.String()
	case "category":
		return e.Category
	case "amount":
		return e.Amount.String()
	case "description":
		return e.Description
	case "date":
		return e.Date
	case "recurrence":
		return e.Recurrence
	case "recurrence_end":
		return e.RecurrenceEnd
	case "status":
		return e.Status
	case "created_at":
		return e.CreatedAt
	}
	return ""
}

// ExpenseDraft is the create form for an expense.
type ExpenseDraft struct {
	Category      string   `json:"category" label:"Category" validate:"required"`
	Description   string   `json:"description" label:"Description" validate:"required"`
	Date          string   `json:"date" label:"Date" validate:"required,datetime=2006-01-02"`
	Recurrence    string   `json:"recurrence" label:"Recurrence" validate:"omitempty,oneof=None Weekly Monthly Yearly"`
	RecurrenceEnd string   `json:"recurrence_end" label:"Recurrence End" validate:"omitempty,datetime=2006-01-02"`
	BudgetID      ID       `json:"budget_id" label:"Budget ID" validate:"required"`
	Amount        *float64 `json:"amount" label:"Amount" validate:"required"`
}

// Income is money received.
type Income struct {
	ID            ID     `json:"id"`
	SourceName    string `json:"source_name"`
	Category      string `json:"category"`
	DateReceived  string `json:"date_received"`
	Notes         string `json:"notes,omitempty"`
	Recurrence    string `json:"recurrence,omitempty"`
	RecurrenceEnd string `json:"recurrence_end,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	Amount        Number `json:"amount"`
}

// RecordID implements Record.
func (i Income) RecordID() ID { return i.ID }

// Field implements Record.
func (i Income) Field(name string) string {
	switch name {
	case "id":
		return i.ID.String()
	case "source_name":
		return i.SourceName
	case "category":
		return i.Category
	case "amount":
		return i.Amount.String()
	case "date_received":
		return i.DateReceived
	case "notes":
		return i.Notes
	case "recurrence":
		return i.Recurrence
	case "recurrence_end":
		return i.RecurrenceEnd
	case "created_at":
		return i.CreatedAt
	}
	return ""
}

// IncomeDraft is the create form for an income entry.
type IncomeDraft struct {
	SourceName    string   `json:"source_name" label:"Source Name" validate:"required"`
	Category      string   `json:"category" label:"Category" validate:"required"`
	DateReceived  string   `json:"date_received" label:"Date Received" validate:"required,datetime=2006-01-02"`
	Notes         string   `json:"notes" label:"Notes"`
	Recurrence    string   `json:"recurrence" label:"Recurrence" validate:"omitempty,oneof=None Weekly Monthly Yearly"`
	RecurrenceEnd string   `json:"recurrence_end" label:"Recurrence End" validate:"omitempty,datetime=2006-01-02"`
	Amount        *float64 `json:"amount" label:"Amount" validate:"required"`
}

// Payroll is a salary payment for an employee and month.
type Payroll struct {
	ID          ID     `json:"id"`
	Month       string `json:"month"`
	Status      string `json:"status"`
	PaymentDate string `json:"payment_date"`
	CreatedAt   string `json:"created_at,omitempty"`
	EmployeeID  ID     `json:"employee_id"`
	AmountPaid  Number `json:"amount_paid"`
}

// RecordID implements Record.
func (p Payroll) RecordID() ID { return p.ID }

// Field implements Record.
func (p Payroll) Field(name string) string {
	switch name {
	case "id":
		return p.ID.String()
	case "employee_id":
		return p.EmployeeID.String()
	case "month":
		return p.Month
	case "amount_paid":
		return p.AmountPaid.String()
	case "status":
		return p.Status
	case "payment_date":
		return p.PaymentDate
	case "created_at":
		return p.CreatedAt
	}
	return ""
}

// PayrollDraft is the create form for a payroll entry.
type PayrollDraft struct {
	Month       string   `json:"month" label:"Month (e.g., January 2023)" validate:"required"`
	Status      string   `json:"status" label:"Status" validate:"omitempty,oneof=Pending Paid"`
	PaymentDate string   `json:"payment_date" label:"Payment Date" validate:"required,datetime=2006-01-02"`
	EmployeeID  ID       `json:"employee_id" label:"Employee ID" validate:"required"`
	AmountPaid  *float64 `json:"amount_paid" label:"Amount Paid" validate:"required"`
}

// Goal is a savings target.
type Goal struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	Deadline      string `json:"deadline"`
	Status        string `json:"status,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	TargetAmount  Number `json:"target_amount"`
	CurrentAmount Number `json:"current_amount"`
}

// RecordID implements Record.
func (g Goal) RecordID() ID { return g.ID }

// Field implements Record.
func (g Goal) Field(name string) string {
	switch name {
	case "id":
		return g.ID.String()
	case "name":
		return g.Name
	case "target_amount":
		return g.TargetAmount.String()
	case "current_amount":
		return g.CurrentAmount.String()
	case "deadline":
		return g.Deadline
	case "status":
		return g.Status
	case "created_at":
		return g.CreatedAt
	}
	return ""
}

// GoalDraft is the create form for a goal.
type GoalDraft struct {
	Name          string   `json:"name" label:"Goal Name" validate:"required"`
	Deadline      string   `json:"deadline" label:"Deadline" validate:"required,datetime=2006-01-02"`
	TargetAmount  *float64 `json:"target_amount" label:"Target Amount" validate:"required"`
	CurrentAmount *float64 `json:"current_amount,omitempty" label:"Current Amount"`
}

// GoalPatch updates a goal's saved amount.
type GoalPatch struct {
	CurrentAmount float64 `json:"current_amount"`
}

// Draft returns an edit draft pre-populated from the budget.
func (b Budget) Draft() BudgetDraft {
	return BudgetDraft{Department: b.Department, Title: b.Title, AmountPlanned: Float(b.AmountPlanned.Float())}
}

// Draft returns an edit draft pre-populated from the expense.
func (e Expense) Draft() ExpenseDraft {
	return ExpenseDraft{
		Category:      e.Category,
		Description:   e.Description,
		Date:          e.Date,
		Recurrence:    e.Recurrence,
		RecurrenceEnd: e.RecurrenceEnd,
		BudgetID:      e.BudgetID,
		Amount:        Float(e.Amount.Float()),
	}
}

// Draft returns an edit draft pre-populated from the income entry.
func (i Income) Draft() IncomeDraft {
	return IncomeDraft{
		SourceName:    i.SourceName,
		Category:      i.Category,
		DateReceived:  i.DateReceived,
		Notes:         i.Notes,
		Recurrence:    i.Recurrence,
		RecurrenceEnd: i.RecurrenceEnd,
		Amount:        Float(i.Amount.Float()),
	}
}

// Draft returns an edit draft pre-populated from the payroll entry.
func (p Payroll) Draft() PayrollDraft {
	return PayrollDraft{
		Month:       p.Month,
		Status:      p.Status,
		PaymentDate: p.PaymentDate,
		EmployeeID:  p.EmployeeID,
		AmountPaid:  Float(p.AmountPaid.Float()),
	}
}

// Draft returns an edit draft pre-populated from the goal.
func (g Goal) Draft() GoalDraft {
	return GoalDraft{
		Name:          g.Name,
		Deadline:      g.Deadline,
		TargetAmount:  Float(g.TargetAmount.Float()),
		CurrentAmount: Float(g.CurrentAmount.Float()),
	}
}

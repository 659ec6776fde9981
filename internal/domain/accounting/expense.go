package accounting

import (
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expense is an outgoing cost awaiting or holding approval
type Expense struct {
	shared.BaseEntity
	ExpenseNumber string
	Date          time.Time
	Vendor        string
	Category      string
	Description   string
	Amount        decimal.Decimal
	IsApproved    bool
	CreatedBy     *uint
}

// ExpenseDetails holds the fields accepted when recording an expense
type ExpenseDetails struct {
	ExpenseNumber string
	Date          time.Time
	Vendor        string
	Category      string
	Description   string
	Amount        decimal.Decimal
}

// NewExpense creates an unapproved expense
func NewExpense(d ExpenseDetails, createdBy *uint) (*Expense, error) {
	number := strings.TrimSpace(d.ExpenseNumber)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense number is required")
	}
	if d.Date.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense date is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense description is required")
	}
	if !d.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense amount must be positive")
	}
	return &Expense{
		BaseEntity:    shared.NewBaseEntity(),
		ExpenseNumber: number,
		Date:          d.Date,
		Vendor:        d.Vendor,
		Category:      d.Category,
		Description:   strings.TrimSpace(d.Description),
		Amount:        d.Amount.Round(2),
		CreatedBy:     createdBy,
	}, nil
}

// Approve marks the expense approved
func (e *Expense) Approve() error {
	if e.IsApproved {
		return shared.NewDomainError("INVALID_STATE", "Expense is already approved")
	}
	e.IsApproved = true
	e.Touch()
	return nil
}

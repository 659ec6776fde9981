package hr

import (
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Payroll is one employee's pay for a period. NetSalary = GrossSalary - Deductions.
type Payroll struct {
	shared.BaseEntity
	EmployeeID     uint
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	GrossSalary    decimal.Decimal
	Deductions     decimal.Decimal
	NetSalary      decimal.Decimal
	IsProcessed    bool
}

// NewPayroll creates an unprocessed payroll entry
func NewPayroll(employeeID uint, start, end time.Time, gross, deductions decimal.Decimal) (*Payroll, error) {
	if employeeID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payroll employee is required")
	}
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid pay period")
	}
	if gross.IsNegative() || deductions.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payroll amounts cannot be negative")
	}
	if deductions.GreaterThan(gross) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Deductions cannot exceed gross salary")
	}
	return &Payroll{
		BaseEntity:     shared.NewBaseEntity(),
		EmployeeID:     employeeID,
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		GrossSalary:    gross.Round(2),
		Deductions:     deductions.Round(2),
		NetSalary:      gross.Sub(deductions).Round(2),
	}, nil
}

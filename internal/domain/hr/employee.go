package hr

import (
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EmploymentStatus is the employment state of an employee
type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusInactive   EmploymentStatus = "inactive"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
	EmploymentStatusOnLeave    EmploymentStatus = "on_leave"
)

// IsValid reports whether s is a known employment status
func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentStatusActive, EmploymentStatusInactive, EmploymentStatusTerminated, EmploymentStatusOnLeave:
		return true
	}
	return false
}

// Employee is a person on the payroll. ManagerID points at another employee.
type Employee struct {
	shared.BaseEntity
	EmployeeID   string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DateOfBirth  *time.Time
	HireDate     time.Time
	DepartmentID *uint
	Position     string
	ManagerID    *uint
	Salary       decimal.Decimal
	Status       EmploymentStatus
	Address      string
}

// EmployeeDetails holds the fields accepted when hiring an employee
type EmployeeDetails struct {
	EmployeeID   string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DateOfBirth  *time.Time
	HireDate     time.Time
	DepartmentID *uint
	Position     string
	ManagerID    *uint
	Salary       decimal.Decimal
	Address      string
}

// NewEmployee creates an active employee
func NewEmployee(d EmployeeDetails) (*Employee, error) {
	code := strings.TrimSpace(d.EmployeeID)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee ID is required")
	}
	if strings.TrimSpace(d.FirstName) == "" || strings.TrimSpace(d.LastName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee first and last name are required")
	}
	email := strings.ToLower(strings.TrimSpace(d.Email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee email is required")
	}
	if d.HireDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Hire date is required")
	}
	if d.DateOfBirth != nil && !d.DateOfBirth.Before(d.HireDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Date of birth must be before hire date")
	}
	if d.Salary.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Salary cannot be negative")
	}
	return &Employee{
		BaseEntity:   shared.NewBaseEntity(),
		EmployeeID:   code,
		FirstName:    strings.TrimSpace(d.FirstName),
		LastName:     strings.TrimSpace(d.LastName),
		Email:        email,
		Phone:        d.Phone,
		DateOfBirth:  d.DateOfBirth,
		HireDate:     d.HireDate,
		DepartmentID: d.DepartmentID,
		Position:     d.Position,
		ManagerID:    d.ManagerID,
		Salary:       d.Salary.Round(2),
		Status:       EmploymentStatusActive,
		Address:      d.Address,
	}, nil
}

// FullName returns "first last"
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

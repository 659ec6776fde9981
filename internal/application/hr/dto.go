package hr

import (
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/hr"
	"github.com/shopspring/decimal"
)

// DepartmentRequest is the body for creating a department
type DepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Code        string `json:"code" binding:"required,max=20"`
	Description string `json:"description"`
	ManagerID   *uint  `json:"manager_id"`
}

// DepartmentResponse represents a department in API responses
type DepartmentResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	ManagerID   *uint     `json:"manager_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDepartmentResponse converts a domain department
func ToDepartmentResponse(d *hr.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		ManagerID:   d.ManagerID,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}

// EmployeeRequest is the body for hiring an employee
type EmployeeRequest struct {
	EmployeeID   string          `json:"employee_id" binding:"required,max=20"`
	FirstName    string          `json:"first_name" binding:"required,max=50"`
	LastName     string          `json:"last_name" binding:"required,max=50"`
	Email        string          `json:"email" binding:"required,email,max=100"`
	Phone        string          `json:"phone" binding:"omitempty,max=20"`
	DateOfBirth  *common.Date    `json:"date_of_birth"`
	HireDate     common.Date     `json:"hire_date"`
	DepartmentID *uint           `json:"department_id"`
	Position     string          `json:"position" binding:"omitempty,max=100"`
	ManagerID    *uint           `json:"manager_id"`
	Salary       decimal.Decimal `json:"salary"`
	Address      string          `json:"address"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID           uint            `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone,omitempty"`
	DateOfBirth  *common.Date    `json:"date_of_birth"`
	HireDate     common.Date     `json:"hire_date"`
	DepartmentID *uint           `json:"department_id"`
	Position     string          `json:"position,omitempty"`
	ManagerID    *uint           `json:"manager_id"`
	Salary       decimal.Decimal `json:"salary"`
	Status       string          `json:"status"`
	Address      string          `json:"address,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// EmployeeListQuery filters the employee listing
type EmployeeListQuery struct {
	common.PageQuery
	DepartmentID *uint  `form:"department_id"`
	Search       string `form:"search"`
}

// ToEmployeeResponse converts a domain employee
func ToEmployeeResponse(e *hr.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		DateOfBirth:  common.DatePtr(e.DateOfBirth),
		HireDate:     common.NewDate(e.HireDate),
		DepartmentID: e.DepartmentID,
		Position:     e.Position,
		ManagerID:    e.ManagerID,
		Salary:       e.Salary,
		Status:       string(e.Status),
		Address:      e.Address,
		CreatedAt:    e.CreatedAt,
	}
}

// AttendanceRequest is the body for recording attendance.
// Check-in and check-out are full timestamps.
type AttendanceRequest struct {
	EmployeeID uint        `json:"employee_id" binding:"required"`
	Date       common.Date `json:"date"`
	CheckIn    *time.Time  `json:"check_in"`
	CheckOut   *time.Time  `json:"check_out"`
	Status     string      `json:"status" binding:"omitempty,oneof=present absent late half_day"`
	Notes      string      `json:"notes"`
}

// AttendanceResponse represents an attendance record in API responses
type AttendanceResponse struct {
	ID         uint            `json:"id"`
	EmployeeID uint            `json:"employee_id"`
	Date       common.Date     `json:"date"`
	CheckIn    *time.Time      `json:"check_in"`
	CheckOut   *time.Time      `json:"check_out"`
	TotalHours decimal.Decimal `json:"total_hours"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AttendanceListQuery filters the attendance listing by employee and an
// inclusive date range.
type AttendanceListQuery struct {
	common.PageQuery
	EmployeeID *uint        `form:"employee_id"`
	From       *common.Date `form:"from"`
	To         *common.Date `form:"to"`
}

// ToAttendanceResponse converts a domain attendance record
func ToAttendanceResponse(a *hr.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       common.NewDate(a.Date),
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		TotalHours: a.TotalHours,
		Status:     string(a.Status),
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
	}
}

// LeaveRequestRequest is the body for requesting leave
type LeaveRequestRequest struct {
	EmployeeID uint        `json:"employee_id" binding:"required"`
	LeaveType  string      `json:"leave_type" binding:"required,oneof=annual sick personal maternity paternity emergency"`
	StartDate  common.Date `json:"start_date"`
	EndDate    common.Date `json:"end_date"`
	Reason     string      `json:"reason"`
}

// LeaveRequestResponse represents a leave request in API responses
type LeaveRequestResponse struct {
	ID            uint        `json:"id"`
	EmployeeID    uint        `json:"employee_id"`
	LeaveType     string      `json:"leave_type"`
	StartDate     common.Date `json:"start_date"`
	EndDate       common.Date `json:"end_date"`
	DaysRequested int         `json:"days_requested"`
	Reason        string      `json:"reason,omitempty"`
	Status        string      `json:"status"`
	ApprovedBy    *uint       `json:"approved_by"`
	ApprovedAt    *time.Time  `json:"approved_at"`
	CreatedAt     time.Time   `json:"created_at"`
}

// LeaveRequestListQuery filters the leave request listing
type LeaveRequestListQuery struct {
	common.PageQuery
	Status     string `form:"status"`
	EmployeeID *uint  `form:"employee_id"`
}

// ToLeaveRequestResponse converts a domain leave request
func ToLeaveRequestResponse(l *hr.LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:            l.ID,
		EmployeeID:    l.EmployeeID,
		LeaveType:     string(l.LeaveType),
		StartDate:     common.NewDate(l.StartDate),
		EndDate:       common.NewDate(l.EndDate),
		DaysRequested: l.DaysRequested,
		Reason:        l.Reason,
		Status:        string(l.Status),
		ApprovedBy:    l.ApprovedBy,
		ApprovedAt:    l.ApprovedAt,
		CreatedAt:     l.CreatedAt,
	}
}

// PayrollRequest is the body for creating a payroll entry
type PayrollRequest struct {
	EmployeeID     uint            `json:"employee_id" binding:"required"`
	PayPeriodStart common.Date     `json:"pay_period_start"`
	PayPeriodEnd   common.Date     `json:"pay_period_end"`
	GrossSalary    decimal.Decimal `json:"gross_salary"`
	Deductions     decimal.Decimal `json:"deductions"`
}

// PayrollResponse represents a payroll entry in API responses
type PayrollResponse struct {
	ID             uint            `json:"id"`
	EmployeeID     uint            `json:"employee_id"`
	PayPeriodStart common.Date     `json:"pay_period_start"`
	PayPeriodEnd   common.Date     `json:"pay_period_end"`
	GrossSalary    decimal.Decimal `json:"gross_salary"`
	Deductions     decimal.Decimal `json:"deductions"`
	NetSalary      decimal.Decimal `json:"net_salary"`
	IsProcessed    bool            `json:"is_processed"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PayrollListQuery filters the payroll listing
type PayrollListQuery struct {
	common.PageQuery
	EmployeeID  *uint `form:"employee_id"`
	IsProcessed *bool `form:"is_processed"`
}

// ToPayrollResponse converts a domain payroll entry
func ToPayrollResponse(p *hr.Payroll) PayrollResponse {
	return PayrollResponse{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		PayPeriodStart: common.NewDate(p.PayPeriodStart),
		PayPeriodEnd:   common.NewDate(p.PayPeriodEnd),
		GrossSalary:    p.GrossSalary,
		Deductions:     p.Deductions,
		NetSalary:      p.NetSalary,
		IsProcessed:    p.IsProcessed,
		CreatedAt:      p.CreatedAt,
	}
}

package hr

import (
	"context"

	"github.com/erp/erpapp/internal/domain/shared"
)

// Filter keys understood by the HR repositories
const (
	FilterStatus       = "status"
	FilterDepartmentID = "department_id"
	FilterEmployeeID   = "employee_id"
	FilterDateFrom     = "date_from"
	FilterDateTo       = "date_to"
	FilterIsProcessed  = "is_processed"
)

// DepartmentRepository persists departments
type DepartmentRepository interface {
	Create(ctx context.Context, department *Department) error
	FindByID(ctx context.Context, id uint) (*Department, error)
	ExistsByNameOrCode(ctx context.Context, name, code string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Department], error)
}

// EmployeeRepository persists employees
type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	FindByID(ctx context.Context, id uint) (*Employee, error)
	ExistsByCodeOrEmail(ctx context.Context, employeeID, email string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Employee], error)
}

// AttendanceRepository persists attendance records
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *Attendance) error
	FindByID(ctx context.Context, id uint) (*Attendance, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Attendance], error)
}

// LeaveRequestRepository persists leave requests
type LeaveRequestRepository interface {
	Create(ctx context.Context, request *LeaveRequest) error
	Update(ctx context.Context, request *LeaveRequest) error
	FindByID(ctx context.Context, id uint) (*LeaveRequest, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[LeaveRequest], error)
}

// PayrollRepository persists payroll entries
type PayrollRepository interface {
	Create(ctx context.Context, payroll *Payroll) error
	FindByID(ctx context.Context, id uint) (*Payroll, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Payroll], error)
}

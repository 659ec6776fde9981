package models

import (
	"time"

	"github.com/erp/erpapp/internal/domain/hr"
	"github.com/shopspring/decimal"
)

// DepartmentModel is the persistence model for departments
type DepartmentModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Code        string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	ManagerID   *uint  `gorm:"index"`
	IsActive    bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the model to a domain Department
func (m *DepartmentModel) ToDomain() *hr.Department {
	return &hr.Department{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Code:        m.Code,
		Description: m.Description,
		ManagerID:   m.ManagerID,
		IsActive:    m.IsActive,
	}
}

// DepartmentModelFromDomain creates a model from a domain Department
func DepartmentModelFromDomain(d *hr.Department) *DepartmentModel {
	m := &DepartmentModel{
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		ManagerID:   d.ManagerID,
		IsActive:    d.IsActive,
	}
	m.FromDomainBaseEntity(d.BaseEntity)
	return m
}

// EmployeeModel is the persistence model for employees
type EmployeeModel struct {
	BaseModel
	EmployeeID   string              `gorm:"column:employee_id;type:varchar(20);not null;uniqueIndex"`
	FirstName    string              `gorm:"type:varchar(50);not null"`
	LastName     string              `gorm:"type:varchar(50);not null"`
	Email        string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Phone        string              `gorm:"type:varchar(20)"`
	DateOfBirth  *time.Time          `gorm:"type:date"`
	HireDate     time.Time           `gorm:"type:date;not null"`
	DepartmentID *uint               `gorm:"index"`
	Position     string              `gorm:"type:varchar(100)"`
	ManagerID    *uint               `gorm:"index"`
	Salary       decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0"`
	Status       hr.EmploymentStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Address      string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the model to a domain Employee
func (m *EmployeeModel) ToDomain() *hr.Employee {
	return &hr.Employee{
		BaseEntity:   m.BaseModel.ToDomain(),
		EmployeeID:   m.EmployeeID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		DateOfBirth:  m.DateOfBirth,
		HireDate:     m.HireDate,
		DepartmentID: m.DepartmentID,
		Position:     m.Position,
		ManagerID:    m.ManagerID,
		Salary:       m.Salary,
		Status:       m.Status,
		Address:      m.Address,
	}
}

// EmployeeModelFromDomain creates a model from a domain Employee
func EmployeeModelFromDomain(e *hr.Employee) *EmployeeModel {
	m := &EmployeeModel{
		EmployeeID:   e.EmployeeID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		DateOfBirth:  e.DateOfBirth,
		HireDate:     e.HireDate,
		DepartmentID: e.DepartmentID,
		Position:     e.Position,
		ManagerID:    e.ManagerID,
		Salary:       e.Salary,
		Status:       e.Status,
		Address:      e.Address,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

// AttendanceModel is the persistence model for attendance records
type AttendanceModel struct {
	BaseModel
	EmployeeID uint                `gorm:"not null;index"`
	Date       time.Time           `gorm:"type:date;not null;index"`
	CheckIn    *time.Time
	CheckOut   *time.Time
	TotalHours decimal.Decimal     `gorm:"type:numeric(5,2);not null;default:0"`
	Status     hr.AttendanceStatus `gorm:"type:varchar(20);not null;default:'present'"`
	Notes      string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AttendanceModel) TableName() string {
	return "attendance"
}

// ToDomain converts the model to a domain Attendance
func (m *AttendanceModel) ToDomain() *hr.Attendance {
	return &hr.Attendance{
		BaseEntity: m.BaseModel.ToDomain(),
		EmployeeID: m.EmployeeID,
		Date:       m.Date,
		CheckIn:    m.CheckIn,
		CheckOut:   m.CheckOut,
		TotalHours: m.TotalHours,
		Status:     m.Status,
		Notes:      m.Notes,
	}
}

// AttendanceModelFromDomain creates a model from a domain Attendance
func AttendanceModelFromDomain(a *hr.Attendance) *AttendanceModel {
	m := &AttendanceModel{
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		TotalHours: a.TotalHours,
		Status:     a.Status,
		Notes:      a.Notes,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// LeaveRequestModel is the persistence model for leave requests
type LeaveRequestModel struct {
	BaseModel
	EmployeeID    uint           `gorm:"not null;index"`
	LeaveType     hr.LeaveType   `gorm:"type:varchar(20);not null"`
	StartDate     time.Time      `gorm:"type:date;not null"`
	EndDate       time.Time      `gorm:"type:date;not null"`
	DaysRequested int            `gorm:"not null"`
	Reason        string         `gorm:"type:text"`
	Status        hr.LeaveStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ApprovedBy    *uint
	ApprovedAt    *time.Time
}

// TableName returns the table name for GORM
func (LeaveRequestModel) TableName() string {
	return "leave_requests"
}

// ToDomain converts the model to a domain LeaveRequest
func (m *LeaveRequestModel) ToDomain() *hr.LeaveRequest {
	return &hr.LeaveRequest{
		BaseEntity:    m.BaseModel.ToDomain(),
		EmployeeID:    m.EmployeeID,
		LeaveType:     m.LeaveType,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		DaysRequested: m.DaysRequested,
		Reason:        m.Reason,
		Status:        m.Status,
		ApprovedBy:    m.ApprovedBy,
		ApprovedAt:    m.ApprovedAt,
	}
}

// LeaveRequestModelFromDomain creates a model from a domain LeaveRequest
func LeaveRequestModelFromDomain(l *hr.LeaveRequest) *LeaveRequestModel {
	m := &LeaveRequestModel{
		EmployeeID:    l.EmployeeID,
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate,
		EndDate:       l.EndDate,
		DaysRequested: l.DaysRequested,
		Reason:        l.Reason,
		Status:        l.Status,
		ApprovedBy:    l.ApprovedBy,
		ApprovedAt:    l.ApprovedAt,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// PayrollModel is the persistence model for payroll entries
type PayrollModel struct {
	BaseModel
	EmployeeID     uint            `gorm:"not null;index"`
	PayPeriodStart time.Time       `gorm:"type:date;not null"`
	PayPeriodEnd   time.Time       `gorm:"type:date;not null;index"`
	GrossSalary    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Deductions     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NetSalary      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsProcessed    bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PayrollModel) TableName() string {
	return "payroll"
}

// ToDomain converts the model to a domain Payroll
func (m *PayrollModel) ToDomain() *hr.Payroll {
	return &hr.Payroll{
		BaseEntity:     m.BaseModel.ToDomain(),
		EmployeeID:     m.EmployeeID,
		PayPeriodStart: m.PayPeriodStart,
		PayPeriodEnd:   m.PayPeriodEnd,
		GrossSalary:    m.GrossSalary,
		Deductions:     m.Deductions,
		NetSalary:      m.NetSalary,
		IsProcessed:    m.IsProcessed,
	}
}

// PayrollModelFromDomain creates a model from a domain Payroll
func PayrollModelFromDomain(p *hr.Payroll) *PayrollModel {
	m := &PayrollModel{
		EmployeeID:     p.EmployeeID,
		PayPeriodStart: p.PayPeriodStart,
		PayPeriodEnd:   p.PayPeriodEnd,
		GrossSalary:    p.GrossSalary,
		Deductions:     p.Deductions,
		NetSalary:      p.NetSalary,
		IsProcessed:    p.IsProcessed,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

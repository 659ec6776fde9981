package persistence

import (
	"context"
	"strings"

	"github.com/erp/erpapp/internal/domain/hr"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDepartmentRepository implements hr.DepartmentRepository using GORM
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Create persists a new department
func (r *GormDepartmentRepository) Create(ctx context.Context, department *hr.Department) error {
	model := models.DepartmentModelFromDomain(department)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Department name or code")
	}
	department.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// FindByID finds a department by its ID
func (r *GormDepartmentRepository) FindByID(ctx context.Context, id uint) (*hr.Department, error) {
	m, err := findOne[models.DepartmentModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByNameOrCode checks whether the department name or code is taken
func (r *GormDepartmentRepository) ExistsByNameOrCode(ctx context.Context, name, code string) (bool, error) {
	return exists[models.DepartmentModel](ctx, r.db, "name = ? OR code = ?", name, strings.ToUpper(code))
}

// FindAll lists active departments by name
func (r *GormDepartmentRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[hr.Department], error) {
	where := func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
	rows, total, err := findPage[models.DepartmentModel](ctx, r.db, filter, where,
		orderClause(filter, DepartmentSortFields, "name ASC"))
	if err != nil {
		return shared.Page[hr.Department]{}, err
	}
	return toPage(rows, total, filter, (*models.DepartmentModel).ToDomain), nil
}

// GormEmployeeRepository implements hr.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create persists a new employee
func (r *GormEmployeeRepository) Create(ctx context.Context, employee *hr.Employee) error {
	model := models.EmployeeModelFromDomain(employee)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Employee ID or email")
	}
	employee.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// FindByID finds an employee by its ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uint) (*hr.Employee, error) {
	m, err := findOne[models.EmployeeModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByCodeOrEmail checks whether the employee code or email is taken
func (r *GormEmployeeRepository) ExistsByCodeOrEmail(ctx context.Context, employeeID, email string) (bool, error) {
	return exists[models.EmployeeModel](ctx, r.db, "employee_id = ? OR email = ?", employeeID, strings.ToLower(email))
}

// FindAll lists active employees
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[hr.Employee], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = db.Where("status = ?", hr.EmploymentStatusActive)
		db = whereIfSet(db, filter, hr.FilterDepartmentID, "department_id")
		return containsFold(db, filter.Search, "first_name", "last_name", "email", "employee_id")
	}
	rows, total, err := findPage[models.EmployeeModel](ctx, r.db, filter, where,
		orderClause(filter, EmployeeSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[hr.Employee]{}, err
	}
	return toPage(rows, total, filter, (*models.EmployeeModel).ToDomain), nil
}

// GormAttendanceRepository implements hr.AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// Create persists a new attendance record
func (r *GormAttendanceRepository) Create(ctx context.Context, attendance *hr.Attendance) error {
	model := models.AttendanceModelFromDomain(attendance)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Attendance record")
	}
	attendance.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// FindByID finds an attendance record by its ID
func (r *GormAttendanceRepository) FindByID(ctx context.Context, id uint) (*hr.Attendance, error) {
	m, err := findOne[models.AttendanceModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists attendance records, latest day first. date_from and date_to
// bound the day inclusively.
func (r *GormAttendanceRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[hr.Attendance], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, hr.FilterEmployeeID, "employee_id")
		if from, ok := filter.Get(hr.FilterDateFrom); ok {
			db = db.Where("date >= ?", from)
		}
		if to, ok := filter.Get(hr.FilterDateTo); ok {
			db = db.Where("date <= ?", to)
		}
		return db
	}
	rows, total, err := findPage[models.AttendanceModel](ctx, r.db, filter, where,
		orderClause(filter, AttendanceSortFields, "date DESC"))
	if err != nil {
		return shared.Page[hr.Attendance]{}, err
	}
	return toPage(rows, total, filter, (*models.AttendanceModel).ToDomain), nil
}

// GormLeaveRequestRepository implements hr.LeaveRequestRepository using GORM
type GormLeaveRequestRepository struct {
	db *gorm.DB
}

// NewGormLeaveRequestRepository creates a new GormLeaveRequestRepository
func NewGormLeaveRequestRepository(db *gorm.DB) *GormLeaveRequestRepository {
	return &GormLeaveRequestRepository{db: db}
}

// Create persists a new leave request
func (r *GormLeaveRequestRepository) Create(ctx context.Context, request *hr.LeaveRequest) error {
	model := models.LeaveRequestModelFromDomain(request)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Leave request")
	}
	request.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// Update saves all fields of an existing leave request
func (r *GormLeaveRequestRepository) Update(ctx context.Context, request *hr.LeaveRequest) error {
	model := models.LeaveRequestModelFromDomain(request)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	request.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds a leave request by its ID
func (r *GormLeaveRequestRepository) FindByID(ctx context.Context, id uint) (*hr.LeaveRequest, error) {
	m, err := findOne[models.LeaveRequestModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists leave requests filtered by status and employee
func (r *GormLeaveRequestRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[hr.LeaveRequest], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, hr.FilterStatus, "status")
		return whereIfSet(db, filter, hr.FilterEmployeeID, "employee_id")
	}
	rows, total, err := findPage[models.LeaveRequestModel](ctx, r.db, filter, where,
		orderClause(filter, LeaveRequestSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[hr.LeaveRequest]{}, err
	}
	return toPage(rows, total, filter, (*models.LeaveRequestModel).ToDomain), nil
}

// GormPayrollRepository implements hr.PayrollRepository using GORM
type GormPayrollRepository struct {
	db *gorm.DB
}

// NewGormPayrollRepository creates a new GormPayrollRepository
func NewGormPayrollRepository(db *gorm.DB) *GormPayrollRepository {
	return &GormPayrollRepository{db: db}
}

// Create persists a new payroll entry
func (r *GormPayrollRepository) Create(ctx context.Context, payroll *hr.Payroll) error {
	model := models.PayrollModelFromDomain(payroll)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Payroll")
	}
	payroll.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// FindByID finds a payroll entry by its ID
func (r *GormPayrollRepository) FindByID(ctx context.Context, id uint) (*hr.Payroll, error) {
	m, err := findOne[models.PayrollModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists payroll entries, latest period first
func (r *GormPayrollRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[hr.Payroll], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, hr.FilterEmployeeID, "employee_id")
		return whereIfSet(db, filter, hr.FilterIsProcessed, "is_processed")
	}
	rows, total, err := findPage[models.PayrollModel](ctx, r.db, filter, where,
		orderClause(filter, PayrollSortFields, "pay_period_end DESC"))
	if err != nil {
		return shared.Page[hr.Payroll]{}, err
	}
	return toPage(rows, total, filter, (*models.PayrollModel).ToDomain), nil
}

var (
	_ hr.DepartmentRepository   = (*GormDepartmentRepository)(nil)
	_ hr.EmployeeRepository     = (*GormEmployeeRepository)(nil)
	_ hr.AttendanceRepository   = (*GormAttendanceRepository)(nil)
	_ hr.LeaveRequestRepository = (*GormLeaveRequestRepository)(nil)
	_ hr.PayrollRepository      = (*GormPayrollRepository)(nil)
)

package hr

import (
	"context"
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/hr"
	"github.com/erp/erpapp/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	errDepartmentExists = shared.NewDomainError("ALREADY_EXISTS", "Department name or code already exists")
	errEmployeeExists   = shared.NewDomainError("ALREADY_EXISTS", "Employee ID or email already exists")
)

// HRService manages departments, employees, attendance, leave and payroll
type HRService struct {
	departments hr.DepartmentRepository
	employees   hr.EmployeeRepository
	attendance  hr.AttendanceRepository
	leaves      hr.LeaveRequestRepository
	payrolls    hr.PayrollRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewHRService creates a new HR service
func NewHRService(
	departments hr.DepartmentRepository,
	employees hr.EmployeeRepository,
	attendance hr.AttendanceRepository,
	leaves hr.LeaveRequestRepository,
	payrolls hr.PayrollRepository,
	logger *zap.Logger,
) *HRService {
	return &HRService{
		departments: departments,
		employees:   employees,
		attendance:  attendance,
		leaves:      leaves,
		payrolls:    payrolls,
		logger:      logger,
		now:         time.Now,
	}
}

// ListDepartments lists active departments by name
func (s *HRService) ListDepartments(ctx context.Context, q common.PageQuery) (common.ListResponse[DepartmentResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[DepartmentResponse]{}, err
	}
	page, err := s.departments.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[DepartmentResponse]{}, err
	}
	return common.NewListResponse(page, ToDepartmentResponse), nil
}

// GetDepartment returns one department
func (s *HRService) GetDepartment(ctx context.Context, id uint) (*DepartmentResponse, error) {
	department, err := s.departments.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Department")
	}
	resp := ToDepartmentResponse(department)
	return &resp, nil
}

// CreateDepartment creates a department, optionally managed by an existing employee
func (s *HRService) CreateDepartment(ctx context.Context, req DepartmentRequest, actorID uint) (*DepartmentResponse, error) {
	department, err := hr.NewDepartment(req.Name, req.Code, req.Description, req.ManagerID)
	if err != nil {
		return nil, err
	}
	if department.ManagerID != nil {
		if _, err := s.employees.FindByID(ctx, *department.ManagerID); err != nil {
			return nil, common.TranslateNotFound(err, "Manager")
		}
	}
	exists, err := s.departments.ExistsByNameOrCode(ctx, department.Name, department.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errDepartmentExists
	}
	if err := s.departments.Create(ctx, department); err != nil {
		return nil, err
	}

	s.logger.Info("Department created", zap.Uint("department_id", department.ID), zap.Uint("actor_id", actorID))
	resp := ToDepartmentResponse(department)
	return &resp, nil
}

// ListEmployees lists active employees newest first
func (s *HRService) ListEmployees(ctx context.Context, q EmployeeListQuery) (common.ListResponse[EmployeeResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[EmployeeResponse]{}, err
	}
	if q.DepartmentID != nil {
		filter = filter.With(hr.FilterDepartmentID, *q.DepartmentID)
	}
	filter = filter.WithSearch(q.Search)

	page, err := s.employees.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[EmployeeResponse]{}, err
	}
	return common.NewListResponse(page, ToEmployeeResponse), nil
}

// GetEmployee returns one employee
func (s *HRService) GetEmployee(ctx context.Context, id uint) (*EmployeeResponse, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Employee")
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// CreateEmployee hires an employee into an optional department
func (s *HRService) CreateEmployee(ctx context.Context, req EmployeeRequest, actorID uint) (*EmployeeResponse, error) {
	employee, err := hr.NewEmployee(hr.EmployeeDetails{
		EmployeeID:   req.EmployeeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		DateOfBirth:  req.DateOfBirth.Ptr(),
		HireDate:     req.HireDate.Time,
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
		ManagerID:    req.ManagerID,
		Salary:       req.Salary,
		Address:      req.Address,
	})
	if err != nil {
		return nil, err
	}
	if employee.DepartmentID != nil {
		if _, err := s.departments.FindByID(ctx, *employee.DepartmentID); err != nil {
			return nil, common.TranslateNotFound(err, "Department")
		}
	}
	if employee.ManagerID != nil {
		if _, err := s.employees.FindByID(ctx, *employee.ManagerID); err != nil {
			return nil, common.TranslateNotFound(err, "Manager")
		}
	}
	exists, err := s.employees.ExistsByCodeOrEmail(ctx, employee.EmployeeID, employee.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errEmployeeExists
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("Employee created",
		zap.Uint("employee_id", employee.ID),
		zap.String("employee_code", employee.EmployeeID),
		zap.Uint("actor_id", actorID),
	)
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// ListAttendance lists attendance records by date, latest first
func (s *HRService) ListAttendance(ctx context.Context, q AttendanceListQuery) (common.ListResponse[AttendanceResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[AttendanceResponse]{}, err
	}
	if q.EmployeeID != nil {
		filter = filter.With(hr.FilterEmployeeID, *q.EmployeeID)
	}
	from, to := q.From.Ptr(), q.To.Ptr()
	if from != nil && to != nil && to.Before(*from) {
		return common.ListResponse[AttendanceResponse]{}, shared.NewDomainError("INVALID_INPUT", "'to' date cannot be before 'from' date")
	}
	if from != nil {
		filter = filter.With(hr.FilterDateFrom, *from)
	}
	if to != nil {
		filter = filter.With(hr.FilterDateTo, *to)
	}

	page, err := s.attendance.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[AttendanceResponse]{}, err
	}
	return common.NewListResponse(page, ToAttendanceResponse), nil
}

// GetAttendance returns one attendance record
func (s *HRService) GetAttendance(ctx context.Context, id uint) (*AttendanceResponse, error) {
	record, err := s.attendance.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Attendance record")
	}
	resp := ToAttendanceResponse(record)
	return &resp, nil
}

// RecordAttendance records one day of attendance for an existing employee
func (s *HRService) RecordAttendance(ctx context.Context, req AttendanceRequest, actorID uint) (*AttendanceResponse, error) {
	record, err := hr.NewAttendance(hr.AttendanceDetails{
		EmployeeID: req.EmployeeID,
		Date:       req.Date.Time,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Status:     hr.AttendanceStatus(req.Status),
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.employees.FindByID(ctx, record.EmployeeID); err != nil {
		return nil, common.TranslateNotFound(err, "Employee")
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("Attendance recorded",
		zap.Uint("attendance_id", record.ID),
		zap.Uint("employee_id", record.EmployeeID),
		zap.Uint("actor_id", actorID),
	)
	resp := ToAttendanceResponse(record)
	return &resp, nil
}

// ListLeaveRequests lists leave requests newest first
func (s *HRService) ListLeaveRequests(ctx context.Context, q LeaveRequestListQuery) (common.ListResponse[LeaveRequestResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[LeaveRequestResponse]{}, err
	}
	if q.Status != "" {
		filter = filter.With(hr.FilterStatus, q.Status)
	}
	if q.EmployeeID != nil {
		filter = filter.With(hr.FilterEmployeeID, *q.EmployeeID)
	}

	page, err := s.leaves.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[LeaveRequestResponse]{}, err
	}
	return common.NewListResponse(page, ToLeaveRequestResponse), nil
}

// GetLeaveRequest returns one leave request
func (s *HRService) GetLeaveRequest(ctx context.Context, id uint) (*LeaveRequestResponse, error) {
	request, err := s.leaves.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Leave request")
	}
	resp := ToLeaveRequestResponse(request)
	return &resp, nil
}

// CreateLeaveRequest files a pending leave request for an existing employee
func (s *HRService) CreateLeaveRequest(ctx context.Context, req LeaveRequestRequest, actorID uint) (*LeaveRequestResponse, error) {
	request, err := hr.NewLeaveRequest(req.EmployeeID, hr.LeaveType(req.LeaveType), req.StartDate.Time, req.EndDate.Time, req.Reason)
	if err != nil {
		return nil, err
	}
	if _, err := s.employees.FindByID(ctx, request.EmployeeID); err != nil {
		return nil, common.TranslateNotFound(err, "Employee")
	}
	if err := s.leaves.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("Leave request created",
		zap.Uint("leave_request_id", request.ID),
		zap.Int("days_requested", request.DaysRequested),
		zap.Uint("actor_id", actorID),
	)
	resp := ToLeaveRequestResponse(request)
	return &resp, nil
}

// ApproveLeaveRequest approves a pending leave request
func (s *HRService) ApproveLeaveRequest(ctx context.Context, id uint, actorID uint) (*LeaveRequestResponse, error) {
	return s.decideLeave(ctx, id, actorID, (*hr.LeaveRequest).Approve, "Leave request approved")
}

// RejectLeaveRequest rejects a pending leave request
func (s *HRService) RejectLeaveRequest(ctx context.Context, id uint, actorID uint) (*LeaveRequestResponse, error) {
	return s.decideLeave(ctx, id, actorID, (*hr.LeaveRequest).Reject, "Leave request rejected")
}

func (s *HRService) decideLeave(
	ctx context.Context,
	id, actorID uint,
	decide func(*hr.LeaveRequest, *uint, time.Time) error,
	msg string,
) (*LeaveRequestResponse, error) {
	request, err := s.leaves.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Leave request")
	}
	if err := decide(request, common.Uintp(actorID), s.now()); err != nil {
		return nil, err
	}
	if err := s.leaves.Update(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info(msg, zap.Uint("leave_request_id", request.ID), zap.Uint("actor_id", actorID))
	resp := ToLeaveRequestResponse(request)
	return &resp, nil
}

// ListPayrolls lists payroll entries by period end, latest first
func (s *HRService) ListPayrolls(ctx context.Context, q PayrollListQuery) (common.ListResponse[PayrollResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[PayrollResponse]{}, err
	}
	if q.EmployeeID != nil {
		filter = filter.With(hr.FilterEmployeeID, *q.EmployeeID)
	}
	if q.IsProcessed != nil {
		filter = filter.With(hr.FilterIsProcessed, *q.IsProcessed)
	}

	page, err := s.payrolls.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[PayrollResponse]{}, err
	}
	return common.NewListResponse(page, ToPayrollResponse), nil
}

// GetPayroll returns one payroll entry
func (s *HRService) GetPayroll(ctx context.Context, id uint) (*PayrollResponse, error) {
	payroll, err := s.payrolls.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Payroll")
	}
	resp := ToPayrollResponse(payroll)
	return &resp, nil
}

// CreatePayroll creates an unprocessed payroll entry for an existing employee
func (s *HRService) CreatePayroll(ctx context.Context, req PayrollRequest, actorID uint) (*PayrollResponse, error) {
	payroll, err := hr.NewPayroll(req.EmployeeID, req.PayPeriodStart.Time, req.PayPeriodEnd.Time, req.GrossSalary, req.Deductions)
	if err != nil {
		return nil, err
	}
	if _, err := s.employees.FindByID(ctx, payroll.EmployeeID); err != nil {
		return nil, common.TranslateNotFound(err, "Employee")
	}
	if err := s.payrolls.Create(ctx, payroll); err != nil {
		return nil, err
	}

	s.logger.Info("Payroll created",
		zap.Uint("payroll_id", payroll.ID),
		zap.String("net_salary", payroll.NetSalary.StringFixed(2)),
		zap.Uint("actor_id", actorID),
	)
	resp := ToPayrollResponse(payroll)
	return &resp, nil
}

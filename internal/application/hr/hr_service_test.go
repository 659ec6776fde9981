package hr

import (
	"context"
	"testing"
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/hr"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) Create(ctx context.Context, department *hr.Department) error {
	return m.Called(ctx, department).Error(0)
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id uint) (*hr.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.Department), args.Error(1)
}

func (m *MockDepartmentRepository) ExistsByNameOrCode(ctx context.Context, name, code string) (bool, error) {
	args := m.Called(ctx, name, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepartmentRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[hr.Department], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[hr.Department]), args.Error(1)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *hr.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uint) (*hr.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByCodeOrEmail(ctx context.Context, employeeID, email string) (bool, error) {
	args := m.Called(ctx, employeeID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[hr.Employee], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[hr.Employee]), args.Error(1)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, attendance *hr.Attendance) error {
	return m.Called(ctx, attendance).Error(0)
}

func (m *MockAttendanceRepository) FindByID(ctx context.Context, id uint) (*hr.Attendance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[hr.Attendance], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[hr.Attendance]), args.Error(1)
}

type MockLeaveRequestRepository struct {
	mock.Mock
}

func (m *MockLeaveRequestRepository) Create(ctx context.Context, request *hr.LeaveRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockLeaveRequestRepository) Update(ctx context.Context, request *hr.LeaveRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockLeaveRequestRepository) FindByID(ctx context.Context, id uint) (*hr.LeaveRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRequestRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[hr.LeaveRequest], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[hr.LeaveRequest]), args.Error(1)
}

type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) Create(ctx context.Context, payroll *hr.Payroll) error {
	return m.Called(ctx, payroll).Error(0)
}

func (m *MockPayrollRepository) FindByID(ctx context.Context, id uint) (*hr.Payroll, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.Payroll), args.Error(1)
}

func (m *MockPayrollRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[hr.Payroll], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[hr.Payroll]), args.Error(1)
}

type hrMocks struct {
	departments *MockDepartmentRepository
	employees   *MockEmployeeRepository
	attendance  *MockAttendanceRepository
	leaves      *MockLeaveRequestRepository
	payrolls    *MockPayrollRepository
}

func newTestHRService() (*HRService, hrMocks) {
	m := hrMocks{
		departments: new(MockDepartmentRepository),
		employees:   new(MockEmployeeRepository),
		attendance:  new(MockAttendanceRepository),
		leaves:      new(MockLeaveRequestRepository),
		payrolls:    new(MockPayrollRepository),
	}
	svc := NewHRService(m.departments, m.employees, m.attendance, m.leaves, m.payrolls, zap.NewNop())
	return svc, m
}

func date(y int, mo time.Month, d int) common.Date {
	return common.NewDate(time.Date(y, mo, d, 0, 0, 0, 0, time.UTC))
}

func TestHRService_CreateEmployee(t *testing.T) {
	ctx := context.Background()
	req := EmployeeRequest{
		EmployeeID: "E-100", FirstName: "Grace", LastName: "Hopper", Email: "Grace@Navy.mil",
		HireDate: date(2020, 1, 6), Salary: decimal.NewFromInt(90000),
	}

	t.Run("success", func(t *testing.T) {
		svc, m := newTestHRService()
		m.employees.On("ExistsByCodeOrEmail", mock.Anything, "E-100", "grace@navy.mil").Return(false, nil)
		m.employees.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.CreateEmployee(ctx, req, 1)
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, "2020-01-06", resp.HireDate.Format(common.DateLayout))
		assert.Nil(t, resp.DateOfBirth)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, m := newTestHRService()
		m.employees.On("ExistsByCodeOrEmail", mock.Anything, "E-100", "grace@navy.mil").Return(true, nil)

		_, err := svc.CreateEmployee(ctx, req, 1)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("unknown department", func(t *testing.T) {
		svc, m := newTestHRService()
		m.departments.On("FindByID", mock.Anything, uint(12)).Return(nil, shared.ErrNotFound)

		r := req
		deptID := uint(12)
		r.DepartmentID = &deptID
		_, err := svc.CreateEmployee(ctx, r, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Department not found")
	})
}

func TestHRService_CreateDepartment(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestHRService()

	m.departments.On("ExistsByNameOrCode", mock.Anything, "Engineering", "ENG").Return(false, nil)
	m.departments.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateDepartment(ctx, DepartmentRequest{Name: "Engineering", Code: "eng"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "ENG", resp.Code)
	assert.Nil(t, resp.ManagerID)
}

func TestHRService_RecordAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("derives hours", func(t *testing.T) {
		svc, m := newTestHRService()
		m.employees.On("FindByID", mock.Anything, uint(1)).Return(&hr.Employee{}, nil)
		m.attendance.On("Create", mock.Anything, mock.Anything).Return(nil)

		in := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
		out := time.Date(2026, 5, 4, 17, 30, 0, 0, time.UTC)
		resp, err := svc.RecordAttendance(ctx, AttendanceRequest{
			EmployeeID: 1, Date: date(2026, 5, 4), CheckIn: &in, CheckOut: &out,
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, "8.5", resp.TotalHours.String())
		assert.Equal(t, "present", resp.Status)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, m := newTestHRService()
		m.employees.On("FindByID", mock.Anything, uint(8)).Return(nil, shared.ErrNotFound)

		_, err := svc.RecordAttendance(ctx, AttendanceRequest{EmployeeID: 8, Date: date(2026, 5, 4)}, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Employee not found")
		m.attendance.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestHRService_ListAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("passes date range", func(t *testing.T) {
		svc, m := newTestHRService()
		from, to := date(2026, 5, 1), date(2026, 5, 31)
		m.attendance.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			gotFrom, ok1 := f.Get(hr.FilterDateFrom)
			gotTo, ok2 := f.Get(hr.FilterDateTo)
			return ok1 && ok2 && gotFrom.(time.Time).Equal(from.Time) && gotTo.(time.Time).Equal(to.Time)
		})).Return(shared.Page[hr.Attendance]{}, nil)

		_, err := svc.ListAttendance(ctx, AttendanceListQuery{From: &from, To: &to})
		require.NoError(t, err)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		svc, _ := newTestHRService()
		from, to := date(2026, 5, 31), date(2026, 5, 1)
		_, err := svc.ListAttendance(ctx, AttendanceListQuery{From: &from, To: &to})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestHRService_LeaveRequests(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	newPending := func(t *testing.T) *hr.LeaveRequest {
		t.Helper()
		lr, err := hr.NewLeaveRequest(3, hr.LeaveTypeAnnual,
			time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), "Holiday")
		require.NoError(t, err)
		lr.ID = 21
		return lr
	}

	t.Run("create counts inclusive days", func(t *testing.T) {
		svc, m := newTestHRService()
		m.employees.On("FindByID", mock.Anything, uint(3)).Return(&hr.Employee{}, nil)
		m.leaves.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.CreateLeaveRequest(ctx, LeaveRequestRequest{
			EmployeeID: 3, LeaveType: "sick", StartDate: date(2026, 6, 1), EndDate: date(2026, 6, 3),
		}, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, resp.DaysRequested)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("approve then reject fails", func(t *testing.T) {
		svc, m := newTestHRService()
		svc.now = func() time.Time { return now }
		lr := newPending(t)
		m.leaves.On("FindByID", mock.Anything, uint(21)).Return(lr, nil)
		m.leaves.On("Update", mock.Anything, lr).Return(nil).Once()

		resp, err := svc.ApproveLeaveRequest(ctx, 21, 5)
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		require.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, uint(5), *resp.ApprovedBy)
		assert.Equal(t, now, *resp.ApprovedAt)

		_, err = svc.RejectLeaveRequest(ctx, 21, 5)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		m.leaves.AssertExpectations(t)
	})

	t.Run("reject pending", func(t *testing.T) {
		svc, m := newTestHRService()
		lr := newPending(t)
		m.leaves.On("FindByID", mock.Anything, uint(21)).Return(lr, nil)
		m.leaves.On("Update", mock.Anything, lr).Return(nil)

		resp, err := svc.RejectLeaveRequest(ctx, 21, 5)
		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.Status)
	})

	t.Run("missing request", func(t *testing.T) {
		svc, m := newTestHRService()
		m.leaves.On("FindByID", mock.Anything, uint(99)).Return(nil, shared.ErrNotFound)

		_, err := svc.ApproveLeaveRequest(ctx, 99, 5)
		assert.Contains(t, err.Error(), "Leave request not found")
	})
}

func TestHRService_CreatePayroll(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestHRService()
	m.employees.On("FindByID", mock.Anything, uint(2)).Return(&hr.Employee{}, nil)
	m.payrolls.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreatePayroll(ctx, PayrollRequest{
		EmployeeID: 2, PayPeriodStart: date(2026, 5, 1), PayPeriodEnd: date(2026, 5, 31),
		GrossSalary: decimal.NewFromInt(5000), Deductions: decimal.RequireFromString("1234.5"),
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "3765.50", resp.NetSalary.StringFixed(2))
	assert.False(t, resp.IsProcessed)

	_, err = svc.CreatePayroll(ctx, PayrollRequest{
		EmployeeID: 2, PayPeriodStart: date(2026, 5, 1), PayPeriodEnd: date(2026, 5, 31),
		GrossSalary: decimal.NewFromInt(100), Deductions: decimal.NewFromInt(200),
	}, 1)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

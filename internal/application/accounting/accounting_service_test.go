package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/accounting"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *accounting.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uint) (*accounting.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[accounting.Customer], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[accounting.Customer]), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *accounting.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uint) (*accounting.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[accounting.Invoice], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[accounting.Invoice]), args.Error(1)
}

func (m *MockInvoiceRepository) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentLedger implements both the payment repository and the ledger
type MockPaymentLedger struct {
	mock.Mock
}

func (m *MockPaymentLedger) FindByID(ctx context.Context, id uint) (*accounting.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Payment), args.Error(1)
}

func (m *MockPaymentLedger) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentLedger) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[accounting.Payment], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[accounting.Payment]), args.Error(1)
}

func (m *MockPaymentLedger) RecordPayment(ctx context.Context, payment *accounting.Payment) (*accounting.Invoice, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Invoice), args.Error(1)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *accounting.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *accounting.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uint) (*accounting.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[accounting.Expense], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[accounting.Expense]), args.Error(1)
}

type accountingMocks struct {
	customers *MockCustomerRepository
	invoices  *MockInvoiceRepository
	payments  *MockPaymentLedger
	expenses  *MockExpenseRepository
}

func newTestAccountingService() (*AccountingService, accountingMocks) {
	m := accountingMocks{
		customers: new(MockCustomerRepository),
		invoices:  new(MockInvoiceRepository),
		payments:  new(MockPaymentLedger),
		expenses:  new(MockExpenseRepository),
	}
	svc := NewAccountingService(m.customers, m.invoices, m.payments, m.payments, m.expenses, zap.NewNop())
	return svc, m
}

func day(y int, mo time.Month, d int) common.Date {
	return common.NewDate(time.Date(y, mo, d, 0, 0, 0, 0, time.UTC))
}

func TestAccountingService_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("without number skips uniqueness check", func(t *testing.T) {
		svc, m := newTestAccountingService()
		m.customers.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.CreateCustomer(ctx, CustomerRequest{Name: "Acme", Email: "AP@Acme.io"}, 1)
		require.NoError(t, err)
		assert.Equal(t, "ap@acme.io", resp.Email)
		assert.True(t, resp.IsActive)
		m.customers.AssertNotCalled(t, "ExistsByNumber", mock.Anything, mock.Anything)
	})

	t.Run("duplicate number", func(t *testing.T) {
		svc, m := newTestAccountingService()
		m.customers.On("ExistsByNumber", mock.Anything, "C-001").Return(true, nil)

		_, err := svc.CreateCustomer(ctx, CustomerRequest{Name: "Acme", CustomerNumber: "C-001"}, 1)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestAccountingService_CreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("derives total and balance", func(t *testing.T) {
		svc, m := newTestAccountingService()
		m.customers.On("FindByID", mock.Anything, uint(3)).Return(&accounting.Customer{Name: "Acme"}, nil)
		m.invoices.On("ExistsByNumber", mock.Anything, "INV-1").Return(false, nil)
		m.invoices.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.CreateInvoice(ctx, InvoiceRequest{
			InvoiceNumber: "INV-1", CustomerID: 3,
			IssueDate: day(2026, 3, 1), DueDate: day(2026, 3, 31),
			Subtotal:       decimal.NewFromInt(100),
			TaxAmount:      decimal.NewFromInt(10),
			DiscountAmount: decimal.NewFromInt(5),
		}, 2)
		require.NoError(t, err)
		assert.Equal(t, "105.00", resp.TotalAmount.StringFixed(2))
		assert.True(t, resp.PaidAmount.IsZero())
		assert.Equal(t, "105.00", resp.BalanceDue.StringFixed(2))
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, "2026-03-31", resp.DueDate.Format(common.DateLayout))
	})

	t.Run("unknown customer", func(t *testing.T) {
		svc, m := newTestAccountingService()
		m.customers.On("FindByID", mock.Anything, uint(9)).Return(nil, shared.ErrNotFound)

		_, err := svc.CreateInvoice(ctx, InvoiceRequest{
			InvoiceNumber: "INV-2", CustomerID: 9,
			IssueDate: day(2026, 3, 1), DueDate: day(2026, 3, 2),
			TotalAmount: decimal.NewFromInt(1),
		}, 2)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Customer not found")
		m.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("due before issue", func(t *testing.T) {
		svc, _ := newTestAccountingService()
		_, err := svc.CreateInvoice(ctx, InvoiceRequest{
			InvoiceNumber: "INV-3", CustomerID: 1,
			IssueDate: day(2026, 3, 2), DueDate: day(2026, 3, 1),
		}, 2)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestAccountingService_RecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults payment date to now", func(t *testing.T) {
		svc, m := newTestAccountingService()
		now := time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return now }

		invoice := &accounting.Invoice{Status: accounting.InvoiceStatusPaid, BalanceDue: decimal.Zero}
		invoice.ID = 4
		m.payments.On("ExistsByNumber", mock.Anything, "PAY-1").Return(false, nil)
		m.payments.On("RecordPayment", mock.Anything, mock.MatchedBy(func(p *accounting.Payment) bool {
			return p.InvoiceID == 4 && p.PaymentDate.Equal(now) && p.Status == accounting.PaymentStatusCompleted
		})).Return(invoice, nil)

		resp, err := svc.RecordPayment(ctx, PaymentRequest{PaymentNumber: "PAY-1", InvoiceID: 4, Amount: decimal.NewFromInt(50)}, 1)
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, "other", resp.PaymentMethod)
		assert.Equal(t, "2026-04-02", resp.PaymentDate.Format(common.DateLayout))
	})

	t.Run("missing invoice", func(t *testing.T) {
		svc, m := newTestAccountingService()
		m.payments.On("ExistsByNumber", mock.Anything, "PAY-2").Return(false, nil)
		m.payments.On("RecordPayment", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := svc.RecordPayment(ctx, PaymentRequest{PaymentNumber: "PAY-2", InvoiceID: 77, Amount: decimal.NewFromInt(1)}, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Invoice not found")
	})

	t.Run("overpayment passes through", func(t *testing.T) {
		svc, m := newTestAccountingService()
		m.payments.On("ExistsByNumber", mock.Anything, "PAY-3").Return(false, nil)
		m.payments.On("RecordPayment", mock.Anything, mock.Anything).Return(nil, shared.ErrOverpayment)

		_, err := svc.RecordPayment(ctx, PaymentRequest{PaymentNumber: "PAY-3", InvoiceID: 1, Amount: decimal.NewFromInt(1000)}, 1)
		assert.ErrorIs(t, err, shared.ErrOverpayment)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		svc, m := newTestAccountingService()
		_, err := svc.RecordPayment(ctx, PaymentRequest{PaymentNumber: "PAY-4", InvoiceID: 1, Amount: decimal.Zero}, 1)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		m.payments.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything)
	})
}

func TestAccountingService_ApproveExpense(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestAccountingService()

	expense, err := accounting.NewExpense(accounting.ExpenseDetails{
		ExpenseNumber: "EXP-1", Date: time.Now(), Description: "Taxi", Amount: decimal.NewFromInt(20),
	}, nil)
	require.NoError(t, err)
	expense.ID = 6

	m.expenses.On("FindByID", mock.Anything, uint(6)).Return(expense, nil)
	m.expenses.On("Update", mock.Anything, expense).Return(nil).Once()

	resp, err := svc.ApproveExpense(ctx, 6, 1)
	require.NoError(t, err)
	assert.True(t, resp.IsApproved)

	_, err = svc.ApproveExpense(ctx, 6, 1)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	m.expenses.On("FindByID", mock.Anything, uint(60)).Return(nil, shared.ErrNotFound)
	_, err = svc.ApproveExpense(ctx, 60, 1)
	assert.Contains(t, err.Error(), "Expense not found")
}

func TestAccountingService_ListExpenses(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestAccountingService()

	approved := true
	m.expenses.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		c, _ := f.Get(accounting.FilterCategory)
		a, _ := f.Get(accounting.FilterIsApproved)
		return c == "travel" && a == true
	})).Return(shared.Page[accounting.Expense]{Total: 0, Limit: 100}, nil)

	resp, err := svc.ListExpenses(ctx, ExpenseListQuery{Category: "travel", IsApproved: &approved})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Total)
}

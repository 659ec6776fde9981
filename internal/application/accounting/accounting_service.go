package accounting

import (
	"context"
	"strings"
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/accounting"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var (
	errCustomerNumberExists = shared.NewDomainError("ALREADY_EXISTS", "Customer number already exists")
	errInvoiceNumberExists  = shared.NewDomainError("ALREADY_EXISTS", "Invoice number already exists")
	errPaymentNumberExists  = shared.NewDomainError("ALREADY_EXISTS", "Payment number already exists")
	errExpenseNumberExists  = shared.NewDomainError("ALREADY_EXISTS", "Expense number already exists")
)

// AccountingService manages customers, invoices, payments and expenses
type AccountingService struct {
	customers accounting.CustomerRepository
	invoices  accounting.InvoiceRepository
	payments  accounting.PaymentRepository
	ledger    accounting.PaymentLedger
	expenses  accounting.ExpenseRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewAccountingService creates a new accounting service
func NewAccountingService(
	customers accounting.CustomerRepository,
	invoices accounting.InvoiceRepository,
	payments accounting.PaymentRepository,
	ledger accounting.PaymentLedger,
	expenses accounting.ExpenseRepository,
	logger *zap.Logger,
) *AccountingService {
	return &AccountingService{
		customers: customers,
		invoices:  invoices,
		payments:  payments,
		ledger:    ledger,
		expenses:  expenses,
		logger:    logger,
		now:       time.Now,
	}
}

// ListCustomers lists active customers newest first
func (s *AccountingService) ListCustomers(ctx context.Context, q CustomerListQuery) (common.ListResponse[CustomerResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[CustomerResponse]{}, err
	}
	filter = filter.WithSearch(q.Search)

	page, err := s.customers.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[CustomerResponse]{}, err
	}
	return common.NewListResponse(page, ToCustomerResponse), nil
}

// GetCustomer returns one customer
func (s *AccountingService) GetCustomer(ctx context.Context, id uint) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Customer")
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// CreateCustomer creates a customer; the customer number is optional but
// unique when given.
func (s *AccountingService) CreateCustomer(ctx context.Context, req CustomerRequest, actorID uint) (*CustomerResponse, error) {
	customer, err := accounting.NewCustomer(accounting.CustomerDetails{
		CustomerNumber: req.CustomerNumber,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		TaxNumber:      req.TaxNumber,
		CreditLimit:    req.CreditLimit,
		PaymentTerms:   req.PaymentTerms,
	})
	if err != nil {
		return nil, err
	}
	if customer.CustomerNumber != "" {
		exists, err := s.customers.ExistsByNumber(ctx, customer.CustomerNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errCustomerNumberExists
		}
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer created", zap.Uint("customer_id", customer.ID), zap.Uint("actor_id", actorID))
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// ListInvoices lists invoices newest first
func (s *AccountingService) ListInvoices(ctx context.Context, q InvoiceListQuery) (common.ListResponse[InvoiceResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[InvoiceResponse]{}, err
	}
	if q.Status != "" {
		filter = filter.With(accounting.FilterStatus, q.Status)
	}
	if q.CustomerID != nil {
		filter = filter.With(accounting.FilterCustomerID, *q.CustomerID)
	}

	page, err := s.invoices.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[InvoiceResponse]{}, err
	}
	return common.NewListResponse(page, ToInvoiceResponse), nil
}

// GetInvoice returns one invoice
func (s *AccountingService) GetInvoice(ctx context.Context, id uint) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Invoice")
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// CreateInvoice issues an invoice to an existing customer
func (s *AccountingService) CreateInvoice(ctx context.Context, req InvoiceRequest, actorID uint) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "accounting", "create_invoice")
	defer span.End()

	invoice, err := accounting.NewInvoice(accounting.InvoiceDetails{
		InvoiceNumber:  req.InvoiceNumber,
		CustomerID:     req.CustomerID,
		IssueDate:      req.IssueDate.Time,
		DueDate:        req.DueDate.Time,
		Subtotal:       req.Subtotal,
		TaxAmount:      req.TaxAmount,
		DiscountAmount: req.DiscountAmount,
		TotalAmount:    req.TotalAmount,
		Status:         accounting.InvoiceStatus(req.Status),
		Notes:          req.Notes,
	}, common.Uintp(actorID))
	if err != nil {
		return nil, err
	}
	if _, err := s.customers.FindByID(ctx, invoice.CustomerID); err != nil {
		return nil, common.TranslateNotFound(err, "Customer")
	}
	exists, err := s.invoices.ExistsByNumber(ctx, invoice.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errInvoiceNumberExists
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Invoice created",
		zap.Uint("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("total_amount", invoice.TotalAmount.StringFixed(2)),
		zap.Uint("actor_id", actorID),
	)
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// ListPayments lists payments newest first
func (s *AccountingService) ListPayments(ctx context.Context, q PaymentListQuery) (common.ListResponse[PaymentResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[PaymentResponse]{}, err
	}
	if q.InvoiceID != nil {
		filter = filter.With(accounting.FilterInvoiceID, *q.InvoiceID)
	}
	if q.Status != "" {
		filter = filter.With(accounting.FilterStatus, q.Status)
	}

	page, err := s.payments.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[PaymentResponse]{}, err
	}
	return common.NewListResponse(page, ToPaymentResponse), nil
}

// GetPayment returns one payment
func (s *AccountingService) GetPayment(ctx context.Context, id uint) (*PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Payment")
	}
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// RecordPayment stores a payment against an invoice. A completed payment
// reduces the invoice balance in the same transaction; paying more than the
// balance fails with OVERPAYMENT.
func (s *AccountingService) RecordPayment(ctx context.Context, req PaymentRequest, actorID uint) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "accounting", "record_payment")
	defer span.End()

	paymentDate := s.now()
	if d := req.PaymentDate.Ptr(); d != nil {
		paymentDate = *d
	}
	payment, err := accounting.NewPayment(accounting.PaymentDetails{
		PaymentNumber: req.PaymentNumber,
		InvoiceID:     req.InvoiceID,
		Amount:        req.Amount,
		PaymentDate:   paymentDate,
		PaymentMethod: accounting.PaymentMethod(req.PaymentMethod),
		Reference:     req.Reference,
		Status:        accounting.PaymentStatus(req.Status),
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}

	telemetry.SetAttributes(span,
		"invoice_id", int(payment.InvoiceID),
		"amount", payment.Amount.String(),
		"status", string(payment.Status),
	)

	exists, err := s.payments.ExistsByNumber(ctx, payment.PaymentNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errPaymentNumberExists
	}

	invoice, err := s.ledger.RecordPayment(ctx, payment)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, common.TranslateNotFound(err, "Invoice")
	}

	s.logger.Info("Payment recorded",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("invoice_id", invoice.ID),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("balance_due", invoice.BalanceDue.StringFixed(2)),
		zap.String("invoice_status", string(invoice.Status)),
		zap.Uint("actor_id", actorID),
	)
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// ListExpenses lists expenses by date, latest first
func (s *AccountingService) ListExpenses(ctx context.Context, q ExpenseListQuery) (common.ListResponse[ExpenseResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[ExpenseResponse]{}, err
	}
	if c := strings.TrimSpace(q.Category); c != "" {
		filter = filter.With(accounting.FilterCategory, c)
	}
	if q.IsApproved != nil {
		filter = filter.With(accounting.FilterIsApproved, *q.IsApproved)
	}

	page, err := s.expenses.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[ExpenseResponse]{}, err
	}
	return common.NewListResponse(page, ToExpenseResponse), nil
}

// GetExpense returns one expense
func (s *AccountingService) GetExpense(ctx context.Context, id uint) (*ExpenseResponse, error) {
	expense, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Expense")
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// CreateExpense records an unapproved expense
func (s *AccountingService) CreateExpense(ctx context.Context, req ExpenseRequest, actorID uint) (*ExpenseResponse, error) {
	expense, err := accounting.NewExpense(accounting.ExpenseDetails{
		ExpenseNumber: req.ExpenseNumber,
		Date:          req.Date.Time,
		Vendor:        req.Vendor,
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount,
	}, common.Uintp(actorID))
	if err != nil {
		return nil, err
	}
	exists, err := s.expenses.ExistsByNumber(ctx, expense.ExpenseNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errExpenseNumberExists
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("Expense created", zap.Uint("expense_id", expense.ID), zap.Uint("actor_id", actorID))
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// ApproveExpense marks an expense approved
func (s *AccountingService) ApproveExpense(ctx context.Context, id uint, actorID uint) (*ExpenseResponse, error) {
	expense, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Expense")
	}
	if err := expense.Approve(); err != nil {
		return nil, err
	}
	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("Expense approved", zap.Uint("expense_id", expense.ID), zap.Uint("actor_id", actorID))
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

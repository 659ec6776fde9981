package accounting

import (
	"context"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
)

// Filter keys understood by the accounting repositories
const (
	FilterStatus     = "status"
	FilterCustomerID = "customer_id"
	FilterInvoiceID  = "invoice_id"
	FilterCategory   = "category"
	FilterIsApproved = "is_approved"
)

// CustomerRepository persists customers
type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Customer], error)
}

// InvoiceRepository persists invoices
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id uint) (*Invoice, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Invoice], error)
	// MarkOverdue flips sent invoices due before the given day to overdue
	// and returns how many changed.
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
}

// PaymentRepository persists payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*Payment, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Payment], error)
}

// PaymentLedger stores a payment and, when it settles the invoice, the
// updated invoice balance in one transaction.
type PaymentLedger interface {
	RecordPayment(ctx context.Context, payment *Payment) (*Invoice, error)
}

// ExpenseRepository persists expenses
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	Update(ctx context.Context, expense *Expense) error
	FindByID(ctx context.Context, id uint) (*Expense, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Expense], error)
}

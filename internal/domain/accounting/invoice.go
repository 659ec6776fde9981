package accounting

import (
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid reports whether s is a known invoice status
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// OutstandingStatuses are the statuses whose balance counts as receivable
var OutstandingStatuses = []InvoiceStatus{InvoiceStatusSent, InvoiceStatusOverdue}

// Invoice is a bill issued to a customer.
// BalanceDue is always TotalAmount - PaidAmount.
type Invoice struct {
	shared.BaseEntity
	InvoiceNumber  string
	CustomerID     uint
	IssueDate      time.Time
	DueDate        time.Time
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	BalanceDue     decimal.Decimal
	Status         InvoiceStatus
	Notes          string
	CreatedBy      *uint
}

// InvoiceDetails holds the fields accepted when creating an invoice.
// A zero TotalAmount is derived as Subtotal + TaxAmount - DiscountAmount.
type InvoiceDetails struct {
	InvoiceNumber  string
	CustomerID     uint
	IssueDate      time.Time
	DueDate        time.Time
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Status         InvoiceStatus
	Notes          string
}

// NewInvoice creates an unpaid invoice
func NewInvoice(d InvoiceDetails, createdBy *uint) (*Invoice, error) {
	number := strings.TrimSpace(d.InvoiceNumber)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice number is required")
	}
	if d.CustomerID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice customer is required")
	}
	if d.IssueDate.IsZero() || d.DueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Issue date and due date are required")
	}
	if d.DueDate.Before(d.IssueDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Due date cannot be before issue date")
	}
	if d.Subtotal.IsNegative() || d.TaxAmount.IsNegative() || d.DiscountAmount.IsNegative() || d.TotalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice amounts cannot be negative")
	}
	if d.Status == "" {
		d.Status = InvoiceStatusDraft
	}
	if !d.Status.IsValid() || d.Status == InvoiceStatusPaid {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid initial invoice status")
	}

	total := d.TotalAmount
	if total.IsZero() {
		total = d.Subtotal.Add(d.TaxAmount).Sub(d.DiscountAmount)
		if total.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Discount exceeds invoice amount")
		}
	}

	inv := &Invoice{
		BaseEntity:     shared.NewBaseEntity(),
		InvoiceNumber:  number,
		CustomerID:     d.CustomerID,
		IssueDate:      d.IssueDate,
		DueDate:        d.DueDate,
		Subtotal:       d.Subtotal.Round(2),
		TaxAmount:      d.TaxAmount.Round(2),
		DiscountAmount: d.DiscountAmount.Round(2),
		TotalAmount:    total.Round(2),
		PaidAmount:     decimal.Zero,
		Status:         d.Status,
		Notes:          d.Notes,
		CreatedBy:      createdBy,
	}
	inv.recalculateBalance()
	return inv, nil
}

func (i *Invoice) recalculateBalance() {
	i.BalanceDue = i.TotalAmount.Sub(i.PaidAmount)
}

// ApplyPayment adds amount to the paid total. The invoice becomes paid once
// nothing is left to pay.
func (i *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	if i.Status == InvoiceStatusCancelled || i.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Invoice cannot accept payments in status "+string(i.Status))
	}
	if amount.GreaterThan(i.BalanceDue) {
		return shared.ErrOverpayment
	}

	i.PaidAmount = i.PaidAmount.Add(amount).Round(2)
	i.recalculateBalance()
	if !i.BalanceDue.IsPositive() {
		i.Status = InvoiceStatusPaid
	}
	i.Touch()
	return nil
}

// IsOverdueAt reports whether a sent invoice is past its due date on day
func (i *Invoice) IsOverdueAt(day time.Time) bool {
	if i.Status != InvoiceStatusSent {
		return false
	}
	y, m, d := day.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return i.DueDate.Before(startOfDay)
}

package accounting

import (
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheck, PaymentMethodBankTransfer, PaymentMethodCreditCard, PaymentMethodOther:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// IsValid reports whether s is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment is money received against an invoice
type Payment struct {
	shared.BaseEntity
	PaymentNumber string
	InvoiceID     uint
	Amount        decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod PaymentMethod
	Reference     string
	Status        PaymentStatus
	Notes         string
}

// PaymentDetails holds the fields accepted when recording a payment
type PaymentDetails struct {
	PaymentNumber string
	InvoiceID     uint
	Amount        decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod PaymentMethod
	Reference     string
	Status        PaymentStatus
	Notes         string
}

// NewPayment creates a payment record. Status defaults to completed.
func NewPayment(d PaymentDetails) (*Payment, error) {
	number := strings.TrimSpace(d.PaymentNumber)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment number is required")
	}
	if d.InvoiceID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment invoice is required")
	}
	if !d.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	if d.PaymentMethod == "" {
		d.PaymentMethod = PaymentMethodOther
	}
	if !d.PaymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment method")
	}
	if d.Status == "" {
		d.Status = PaymentStatusCompleted
	}
	if !d.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment status")
	}
	if d.PaymentDate.IsZero() {
		d.PaymentDate = time.Now().UTC()
	}
	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		PaymentNumber: number,
		InvoiceID:     d.InvoiceID,
		Amount:        d.Amount.Round(2),
		PaymentDate:   d.PaymentDate,
		PaymentMethod: d.PaymentMethod,
		Reference:     d.Reference,
		Status:        d.Status,
		Notes:         d.Notes,
	}, nil
}

// SettlesInvoice reports whether the payment counts against the invoice balance
func (p *Payment) SettlesInvoice() bool {
	return p.Status == PaymentStatusCompleted
}

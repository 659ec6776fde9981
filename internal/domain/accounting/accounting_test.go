package accounting

import (
	"testing"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newInvoice(t *testing.T, total string) *Invoice {
	t.Helper()
	issue := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	inv, err := NewInvoice(InvoiceDetails{
		InvoiceNumber: "INV-1",
		CustomerID:    1,
		IssueDate:     issue,
		DueDate:       issue.AddDate(0, 0, 30),
		TotalAmount:   d(total),
		Status:        InvoiceStatusSent,
	}, nil)
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("balance equals total minus paid", func(t *testing.T) {
		inv := newInvoice(t, "250.00")
		assert.True(t, inv.PaidAmount.IsZero())
		assert.True(t, inv.BalanceDue.Equal(inv.TotalAmount.Sub(inv.PaidAmount)))
		assert.Equal(t, "250.00", inv.BalanceDue.StringFixed(2))
	})

	t.Run("derives total from components", func(t *testing.T) {
		issue := time.Now()
		inv, err := NewInvoice(InvoiceDetails{
			InvoiceNumber:  "INV-2",
			CustomerID:     1,
			IssueDate:      issue,
			DueDate:        issue,
			Subtotal:       d("100"),
			TaxAmount:      d("10"),
			DiscountAmount: d("5"),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "105.00", inv.TotalAmount.StringFixed(2))
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
	})

	t.Run("validates", func(t *testing.T) {
		now := time.Now()
		cases := []InvoiceDetails{
			{CustomerID: 1, IssueDate: now, DueDate: now},
			{InvoiceNumber: "X", IssueDate: now, DueDate: now},
			{InvoiceNumber: "X", CustomerID: 1},
			{InvoiceNumber: "X", CustomerID: 1, IssueDate: now, DueDate: now.AddDate(0, 0, -1)},
			{InvoiceNumber: "X", CustomerID: 1, IssueDate: now, DueDate: now, Status: InvoiceStatusPaid},
			{InvoiceNumber: "X", CustomerID: 1, IssueDate: now, DueDate: now, Subtotal: d("1"), DiscountAmount: d("2")},
		}
		for _, c := range cases {
			_, err := NewInvoice(c, nil)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		}
	})
}

func TestInvoice_ApplyPayment(t *testing.T) {
	t.Run("partial then full payment", func(t *testing.T) {
		inv := newInvoice(t, "100.00")

		require.NoError(t, inv.ApplyPayment(d("40")))
		assert.Equal(t, "60.00", inv.BalanceDue.StringFixed(2))
		assert.Equal(t, InvoiceStatusSent, inv.Status)

		require.NoError(t, inv.ApplyPayment(d("60")))
		assert.True(t, inv.BalanceDue.IsZero())
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.True(t, inv.BalanceDue.Equal(inv.TotalAmount.Sub(inv.PaidAmount)))
	})

	t.Run("overpayment is rejected", func(t *testing.T) {
		inv := newInvoice(t, "100.00")
		assert.ErrorIs(t, inv.ApplyPayment(d("100.01")), shared.ErrOverpayment)
		assert.True(t, inv.PaidAmount.IsZero())
	})

	t.Run("cancelled invoice rejects payment", func(t *testing.T) {
		inv := newInvoice(t, "100.00")
		inv.Status = InvoiceStatusCancelled
		assert.ErrorIs(t, inv.ApplyPayment(d("1")), shared.ErrInvalidState)
	})
}

func TestInvoice_IsOverdueAt(t *testing.T) {
	inv := newInvoice(t, "10")
	due := inv.DueDate

	assert.False(t, inv.IsOverdueAt(due))
	assert.True(t, inv.IsOverdueAt(due.AddDate(0, 0, 1)))

	inv.Status = InvoiceStatusDraft
	assert.False(t, inv.IsOverdueAt(due.AddDate(0, 0, 1)))
}

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(PaymentDetails{PaymentNumber: "PAY-1", InvoiceID: 3, Amount: d("10")})
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusCompleted, p.Status)
	assert.Equal(t, PaymentMethodOther, p.PaymentMethod)
	assert.True(t, p.SettlesInvoice())
	assert.False(t, p.PaymentDate.IsZero())

	_, err = NewPayment(PaymentDetails{PaymentNumber: "PAY-1", InvoiceID: 3})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = NewPayment(PaymentDetails{PaymentNumber: "PAY-1", InvoiceID: 3, Amount: d("1"), PaymentMethod: "barter"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	pending, err := NewPayment(PaymentDetails{PaymentNumber: "PAY-2", InvoiceID: 3, Amount: d("1"), Status: PaymentStatusPending})
	require.NoError(t, err)
	assert.False(t, pending.SettlesInvoice())
}

func TestExpense_Approve(t *testing.T) {
	e, err := NewExpense(ExpenseDetails{ExpenseNumber: "EXP-1", Date: time.Now(), Description: "Paper", Amount: d("12.5")}, nil)
	require.NoError(t, err)
	assert.False(t, e.IsApproved)

	require.NoError(t, e.Approve())
	assert.True(t, e.IsApproved)
	assert.ErrorIs(t, e.Approve(), shared.ErrInvalidState)

	_, err = NewExpense(ExpenseDetails{ExpenseNumber: "EXP-2", Date: time.Now(), Description: "x"}, nil)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer(CustomerDetails{Name: " Acme ", Email: "A@Acme.com"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "a@acme.com", c.Email)
	assert.True(t, c.IsActive)

	_, err = NewCustomer(CustomerDetails{})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/erp/erpapp/internal/domain/accounting"
	"github.com/erp/erpapp/internal/domain/crm"
	"github.com/erp/erpapp/internal/domain/hr"
	"github.com/erp/erpapp/internal/domain/inventory"
	"github.com/erp/erpapp/internal/domain/sales"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustLead(t *testing.T, repo *GormLeadRepository, first, last, email, company string, status crm.LeadStatus) *crm.Lead {
	t.Helper()
	lead, err := crm.NewLead(crm.LeadDetails{
		FirstName: first, LastName: last, Email: email, Company: company, Status: status,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), lead))
	return lead
}

func TestGormLeadRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := NewGormLeadRepository(db)

	mustLead(t, repo, "Ada", "Lovelace", "ada@example.com", "Analytical Engines", crm.LeadStatusNew)
	mustLead(t, repo, "Grace", "Hopper", "", "Navy", crm.LeadStatusQualified)
	mustLead(t, repo, "Alan", "Turing", "", "Bletchley", crm.LeadStatusNew)

	t.Run("empty emails do not collide", func(t *testing.T) {
		page, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		lead, err := crm.NewLead(crm.LeadDetails{FirstName: "A", LastName: "B", Email: "ada@example.com"}, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, lead), shared.ErrAlreadyExists)

		taken, err := repo.ExistsByEmail(ctx, "ADA@example.com", 0)
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("filters by status", func(t *testing.T) {
		page, err := repo.FindAll(ctx, shared.DefaultFilter().With(crm.FilterStatus, "new"))
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("company filter is case insensitive substring", func(t *testing.T) {
		page, err := repo.FindAll(ctx, shared.DefaultFilter().With(crm.FilterCompany, "ENGINE"))
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Ada", page.Items[0].FirstName)
	})

	t.Run("search spans names", func(t *testing.T) {
		page, err := repo.FindAll(ctx, shared.DefaultFilter().WithSearch("hop"))
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Grace", page.Items[0].FirstName)
	})

	t.Run("total counts before pagination", func(t *testing.T) {
		f, err := shared.NewFilter(1, 1)
		require.NoError(t, err)
		page, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 1, page.Skip)
		assert.Equal(t, 1, page.Limit)
	})

	t.Run("find missing returns not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockMovementRepository_RecordMovement(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	products := NewGormProductRepository(db)
	ledger := NewGormStockMovementRepository(db)

	product, err := inventory.NewProduct(inventory.ProductDetails{
		SKU: "sku-1", Name: "Widget", TrackInventory: true, ReorderLevel: 5,
	})
	require.NoError(t, err)
	require.NoError(t, products.Create(ctx, product))

	t.Run("in adds stock", func(t *testing.T) {
		m, p, err := ledger.RecordMovement(ctx, product.ID, inventory.MovementRequest{
			MovementType: inventory.MovementTypeIn, Quantity: 10,
		})
		require.NoError(t, err)
		assert.NotZero(t, m.ID)
		assert.Equal(t, 0, m.QuantityBefore)
		assert.Equal(t, 10, m.QuantityAfter)
		assert.Equal(t, 10, p.CurrentStock)
	})

	t.Run("out beyond stock is rejected and nothing is written", func(t *testing.T) {
		_, _, err := ledger.RecordMovement(ctx, product.ID, inventory.MovementRequest{
			MovementType: inventory.MovementTypeOut, Quantity: 100,
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		stored, err := products.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, stored.CurrentStock)

		page, err := ledger.FindAll(ctx, shared.DefaultFilter().With(inventory.FilterProductID, product.ID))
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("adjustment sets counted stock", func(t *testing.T) {
		m, p, err := ledger.RecordMovement(ctx, product.ID, inventory.MovementRequest{
			MovementType: inventory.MovementTypeAdjustment, Quantity: 3, Reason: "stock take",
		})
		require.NoError(t, err)
		assert.Equal(t, -7, m.Quantity)
		assert.Equal(t, 3, p.CurrentStock)
		assert.True(t, m.IsConsistent())
	})

	t.Run("unknown product", func(t *testing.T) {
		_, _, err := ledger.RecordMovement(ctx, 999, inventory.MovementRequest{
			MovementType: inventory.MovementTypeIn, Quantity: 1,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func createInvoice(t *testing.T, db *gorm.DB, number string, total decimal.Decimal, status accounting.InvoiceStatus, issue, due time.Time) *accounting.Invoice {
	t.Helper()
	inv, err := accounting.NewInvoice(accounting.InvoiceDetails{
		InvoiceNumber: number, CustomerID: 1, IssueDate: issue, DueDate: due,
		TotalAmount: total, Status: status,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, NewGormInvoiceRepository(db).Create(context.Background(), inv))
	return inv
}

func newPayment(t *testing.T, number string, invoiceID uint, amount string, status accounting.PaymentStatus) *accounting.Payment {
	t.Helper()
	p, err := accounting.NewPayment(accounting.PaymentDetails{
		PaymentNumber: number, InvoiceID: invoiceID, Amount: decimal.RequireFromString(amount),
		PaymentMethod: accounting.PaymentMethodCash, Status: status,
	})
	require.NoError(t, err)
	return p
}

func TestGormPaymentRepository_RecordPayment(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	ledger := NewGormPaymentRepository(db)
	invoices := NewGormInvoiceRepository(db)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	inv := createInvoice(t, db, "INV-1", decimal.NewFromInt(100), accounting.InvoiceStatusSent, today, today.AddDate(0, 0, 30))

	t.Run("partial payment lowers balance", func(t *testing.T) {
		updated, err := ledger.RecordPayment(ctx, newPayment(t, "PAY-1", inv.ID, "40", ""))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(60).Equal(updated.BalanceDue))
		assert.Equal(t, accounting.InvoiceStatusSent, updated.Status)
	})

	t.Run("pending payment leaves balance", func(t *testing.T) {
		updated, err := ledger.RecordPayment(ctx, newPayment(t, "PAY-2", inv.ID, "10", accounting.PaymentStatusPending))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(60).Equal(updated.BalanceDue))
	})

	t.Run("overpayment rolls back", func(t *testing.T) {
		_, err := ledger.RecordPayment(ctx, newPayment(t, "PAY-3", inv.ID, "70", ""))
		assert.ErrorIs(t, err, shared.ErrOverpayment)

		exists, err := ledger.ExistsByNumber(ctx, "PAY-3")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("settling payment marks invoice paid", func(t *testing.T) {
		_, err := ledger.RecordPayment(ctx, newPayment(t, "PAY-4", inv.ID, "60", ""))
		require.NoError(t, err)

		stored, err := invoices.FindByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, accounting.InvoiceStatusPaid, stored.Status)
		assert.True(t, stored.BalanceDue.IsZero())
		assert.True(t, stored.TotalAmount.Equal(stored.PaidAmount.Add(stored.BalanceDue)))
	})

	t.Run("duplicate payment number", func(t *testing.T) {
		other := createInvoice(t, db, "INV-2", decimal.NewFromInt(50), accounting.InvoiceStatusSent, today, today)
		_, err := ledger.RecordPayment(ctx, newPayment(t, "PAY-1", other.ID, "5", ""))
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		_, err := ledger.RecordPayment(ctx, newPayment(t, "PAY-9", 999, "5", ""))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormInvoiceRepository_MarkOverdue(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	past := createInvoice(t, db, "INV-OLD", decimal.NewFromInt(10), accounting.InvoiceStatusSent, today.AddDate(0, -2, 0), today.AddDate(0, -1, 0))
	createInvoice(t, db, "INV-DRAFT", decimal.NewFromInt(10), accounting.InvoiceStatusDraft, today.AddDate(0, -2, 0), today.AddDate(0, -1, 0))
	createInvoice(t, db, "INV-NEW", decimal.NewFromInt(10), accounting.InvoiceStatusSent, today, today.AddDate(0, 0, 10))

	n, err := repo.MarkOverdue(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stored, err := repo.FindByID(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, accounting.InvoiceStatusOverdue, stored.Status)

	page, err := repo.FindAll(ctx, shared.DefaultFilter().With(accounting.FilterStatus, "overdue"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestGormQuoteRepository_ItemsRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := NewGormQuoteRepository(db)

	item1, err := sales.NewLineItem(1, "Widget", 2, decimal.NewFromInt(50), decimal.Zero, decimal.NewFromInt(10))
	require.NoError(t, err)
	item2, err := sales.NewLineItem(2, "Gadget", 1, decimal.NewFromInt(20), decimal.NewFromInt(50), decimal.Zero)
	require.NoError(t, err)

	quote, err := sales.NewQuote(sales.QuoteDetails{
		QuoteNumber: "Q-1", CustomerID: 1, ValidUntil: time.Now().AddDate(0, 1, 0),
		Items: []sales.LineItem{item1, item2},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, quote))
	require.NotZero(t, quote.ID)
	require.Len(t, quote.Items, 2)
	assert.NotZero(t, quote.Items[0].ID)

	stored, err := repo.FindByID(ctx, quote.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "Widget", stored.Items[0].Description)
	assert.True(t, quote.TotalAmount.Equal(stored.TotalAmount))

	page, err := repo.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Len(t, page.Items[0].Items, 2)

	dup, err := sales.NewQuote(sales.QuoteDetails{QuoteNumber: "Q-1", CustomerID: 1, ValidUntil: time.Now()}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)
}

func TestGormEmployeeRepository_ListsActiveOnly(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := NewGormEmployeeRepository(db)

	hire := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, code := range []string{"E1", "E2"} {
		e, err := hr.NewEmployee(hr.EmployeeDetails{
			EmployeeID: code, FirstName: "Emp", LastName: code, Email: code + "@example.com", HireDate: hire,
		})
		require.NoError(t, err)
		if i == 1 {
			e.Status = hr.EmploymentStatusTerminated
		}
		require.NoError(t, repo.Create(ctx, e))
	}

	page, err := repo.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "E1", page.Items[0].EmployeeID)

	taken, err := repo.ExistsByCodeOrEmail(ctx, "E9", "E2@EXAMPLE.com")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestGormAttendanceRepository_DateRange(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := NewGormAttendanceRepository(db)

	for day := 1; day <= 5; day++ {
		a, err := hr.NewAttendance(hr.AttendanceDetails{
			EmployeeID: 1, Date: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, a))
	}

	f := shared.DefaultFilter().
		With(hr.FilterDateFrom, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)).
		With(hr.FilterDateTo, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	page, err := repo.FindAll(ctx, f)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, 4, page.Items[0].Date.Day())
	assert.Equal(t, 2, page.Items[2].Date.Day())
}

package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/erpapp/internal/domain/accounting"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements accounting.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Create persists a new customer
func (r *GormCustomerRepository) Create(ctx context.Context, customer *accounting.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Customer number")
	}
	customer.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uint) (*accounting.Customer, error) {
	m, err := findOne[models.CustomerModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByNumber checks whether a customer number is taken
func (r *GormCustomerRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	if number == "" {
		return false, nil
	}
	return exists[models.CustomerModel](ctx, r.db, "customer_number = ?", number)
}

// FindAll lists active customers
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[accounting.Customer], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_active = ?", true)
		return containsFold(db, filter.Search, "name", "email", "customer_number")
	}
	rows, total, err := findPage[models.CustomerModel](ctx, r.db, filter, where,
		orderClause(filter, CustomerSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[accounting.Customer]{}, err
	}
	return toPage(rows, total, filter, (*models.CustomerModel).ToDomain), nil
}

// GormInvoiceRepository implements accounting.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create persists a new invoice
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *accounting.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Invoice number")
	}
	invoice.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uint) (*accounting.Invoice, error) {
	m, err := findOne[models.InvoiceModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByNumber checks whether an invoice number is taken
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return exists[models.InvoiceModel](ctx, r.db, "invoice_number = ?", number)
}

// FindAll lists invoices filtered by status and customer
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[accounting.Invoice], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, accounting.FilterStatus, "status")
		return whereIfSet(db, filter, accounting.FilterCustomerID, "customer_id")
	}
	rows, total, err := findPage[models.InvoiceModel](ctx, r.db, filter, where,
		orderClause(filter, InvoiceSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[accounting.Invoice]{}, err
	}
	return toPage(rows, total, filter, (*models.InvoiceModel).ToDomain), nil
}

// MarkOverdue flips sent invoices due before the given day to overdue
func (r *GormInvoiceRepository) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("status = ? AND due_date < ?", accounting.InvoiceStatusSent, before).
		Updates(map[string]interface{}{
			"status":     accounting.InvoiceStatusOverdue,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("mark overdue invoices: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// GormPaymentRepository implements accounting.PaymentRepository and
// accounting.PaymentLedger using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uint) (*accounting.Payment, error) {
	m, err := findOne[models.PaymentModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByNumber checks whether a payment number is taken
func (r *GormPaymentRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return exists[models.PaymentModel](ctx, r.db, "payment_number = ?", number)
}

// FindAll lists payments filtered by invoice and status
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[accounting.Payment], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, accounting.FilterInvoiceID, "invoice_id")
		return whereIfSet(db, filter, accounting.FilterStatus, "status")
	}
	rows, total, err := findPage[models.PaymentModel](ctx, r.db, filter, where,
		orderClause(filter, PaymentSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[accounting.Payment]{}, err
	}
	return toPage(rows, total, filter, (*models.PaymentModel).ToDomain), nil
}

// RecordPayment stores the payment and, when it settles the invoice, the
// invoice's new paid amount, balance and status. Both writes share one
// transaction.
func (r *GormPaymentRepository) RecordPayment(ctx context.Context, payment *accounting.Payment) (*accounting.Invoice, error) {
	var invoice *accounting.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var im models.InvoiceModel
		if err := forUpdate(tx).Where("id = ?", payment.InvoiceID).First(&im).Error; err != nil {
			return translateReadError(err)
		}
		invoice = im.ToDomain()

		if payment.SettlesInvoice() {
			if err := invoice.ApplyPayment(payment.Amount); err != nil {
				return err
			}
			if err := tx.Model(&models.InvoiceModel{}).
				Where("id = ?", invoice.ID).
				Updates(map[string]interface{}{
					"paid_amount": invoice.PaidAmount,
					"balance_due": invoice.BalanceDue,
					"status":      invoice.Status,
					"updated_at":  invoice.UpdatedAt,
				}).Error; err != nil {
				return fmt.Errorf("update invoice balance: %w", err)
			}
		}

		pm := models.PaymentModelFromDomain(payment)
		if err := tx.Create(pm).Error; err != nil {
			return translateWriteError(err, "Payment number")
		}
		payment.BaseEntity = pm.BaseModel.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// GormExpenseRepository implements accounting.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Create persists a new expense
func (r *GormExpenseRepository) Create(ctx context.Context, expense *accounting.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Expense number")
	}
	expense.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// Update saves all fields of an existing expense
func (r *GormExpenseRepository) Update(ctx context.Context, expense *accounting.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	expense.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uint) (*accounting.Expense, error) {
	m, err := findOne[models.ExpenseModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByNumber checks whether an expense number is taken
func (r *GormExpenseRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return exists[models.ExpenseModel](ctx, r.db, "expense_number = ?", number)
}

// FindAll lists expenses, most recent date first
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[accounting.Expense], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, accounting.FilterCategory, "category")
		return whereIfSet(db, filter, accounting.FilterIsApproved, "is_approved")
	}
	rows, total, err := findPage[models.ExpenseModel](ctx, r.db, filter, where,
		orderClause(filter, ExpenseSortFields, "date DESC"))
	if err != nil {
		return shared.Page[accounting.Expense]{}, err
	}
	return toPage(rows, total, filter, (*models.ExpenseModel).ToDomain), nil
}

var (
	_ accounting.CustomerRepository = (*GormCustomerRepository)(nil)
	_ accounting.InvoiceRepository  = (*GormInvoiceRepository)(nil)
	_ accounting.PaymentRepository  = (*GormPaymentRepository)(nil)
	_ accounting.PaymentLedger      = (*GormPaymentRepository)(nil)
	_ accounting.ExpenseRepository  = (*GormExpenseRepository)(nil)
)

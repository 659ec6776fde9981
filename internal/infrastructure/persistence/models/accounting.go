package models

import (
	"time"

	"github.com/erp/erpapp/internal/domain/accounting"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for billing customers
type CustomerModel struct {
	BaseModel
	CustomerNumber *string         `gorm:"type:varchar(50);uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Email          string          `gorm:"type:varchar(100);index"`
	Phone          string          `gorm:"type:varchar(20)"`
	Address        string          `gorm:"type:text"`
	TaxNumber      string          `gorm:"type:varchar(50)"`
	CreditLimit    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	PaymentTerms   string          `gorm:"type:varchar(50)"`
	IsActive       bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain Customer
func (m *CustomerModel) ToDomain() *accounting.Customer {
	return &accounting.Customer{
		BaseEntity:     m.BaseModel.ToDomain(),
		CustomerNumber: deref(m.CustomerNumber),
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		Address:        m.Address,
		TaxNumber:      m.TaxNumber,
		CreditLimit:    m.CreditLimit,
		PaymentTerms:   m.PaymentTerms,
		IsActive:       m.IsActive,
	}
}

// CustomerModelFromDomain creates a model from a domain Customer
func CustomerModelFromDomain(c *accounting.Customer) *CustomerModel {
	m := &CustomerModel{
		CustomerNumber: nullable(c.CustomerNumber),
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		TaxNumber:      c.TaxNumber,
		CreditLimit:    c.CreditLimit,
		PaymentTerms:   c.PaymentTerms,
		IsActive:       c.IsActive,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// InvoiceModel is the persistence model for invoices
type InvoiceModel struct {
	BaseModel
	InvoiceNumber  string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID     uint                     `gorm:"not null;index"`
	IssueDate      time.Time                `gorm:"type:date;not null;index"`
	DueDate        time.Time                `gorm:"type:date;not null"`
	Subtotal       decimal.Decimal          `gorm:"type:numeric(12,2);not null;default:0"`
	TaxAmount      decimal.Decimal          `gorm:"type:numeric(12,2);not null;default:0"`
	DiscountAmount decimal.Decimal          `gorm:"type:numeric(12,2);not null;default:0"`
	TotalAmount    decimal.Decimal          `gorm:"type:numeric(12,2);not null;default:0"`
	PaidAmount     decimal.Decimal          `gorm:"type:numeric(12,2);not null;default:0"`
	BalanceDue     decimal.Decimal          `gorm:"type:numeric(12,2);not null;default:0"`
	Status         accounting.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Notes          string                   `gorm:"type:text"`
	CreatedBy      *uint                    `gorm:"index"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the model to a domain Invoice
func (m *InvoiceModel) ToDomain() *accounting.Invoice {
	return &accounting.Invoice{
		BaseEntity:     m.BaseModel.ToDomain(),
		InvoiceNumber:  m.InvoiceNumber,
		CustomerID:     m.CustomerID,
		IssueDate:      m.IssueDate,
		DueDate:        m.DueDate,
		Subtotal:       m.Subtotal,
		TaxAmount:      m.TaxAmount,
		DiscountAmount: m.DiscountAmount,
		TotalAmount:    m.TotalAmount,
		PaidAmount:     m.PaidAmount,
		BalanceDue:     m.BalanceDue,
		Status:         m.Status,
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
	}
}

// InvoiceModelFromDomain creates a model from a domain Invoice
func InvoiceModelFromDomain(i *accounting.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		InvoiceNumber:  i.InvoiceNumber,
		CustomerID:     i.CustomerID,
		IssueDate:      i.IssueDate,
		DueDate:        i.DueDate,
		Subtotal:       i.Subtotal,
		TaxAmount:      i.TaxAmount,
		DiscountAmount: i.DiscountAmount,
		TotalAmount:    i.TotalAmount,
		PaidAmount:     i.PaidAmount,
		BalanceDue:     i.BalanceDue,
		Status:         i.Status,
		Notes:          i.Notes,
		CreatedBy:      i.CreatedBy,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// PaymentModel is the persistence model for invoice payments
type PaymentModel struct {
	BaseModel
	PaymentNumber string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	InvoiceID     uint                     `gorm:"not null;index"`
	Amount        decimal.Decimal          `gorm:"type:numeric(12,2);not null"`
	PaymentDate   time.Time                `gorm:"type:date;not null"`
	PaymentMethod accounting.PaymentMethod `gorm:"type:varchar(20);not null"`
	Reference     string                   `gorm:"type:varchar(100)"`
	Status        accounting.PaymentStatus `gorm:"type:varchar(20);not null;default:'completed';index"`
	Notes         string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the model to a domain Payment
func (m *PaymentModel) ToDomain() *accounting.Payment {
	return &accounting.Payment{
		BaseEntity:    m.BaseModel.ToDomain(),
		PaymentNumber: m.PaymentNumber,
		InvoiceID:     m.InvoiceID,
		Amount:        m.Amount,
		PaymentDate:   m.PaymentDate,
		PaymentMethod: m.PaymentMethod,
		Reference:     m.Reference,
		Status:        m.Status,
		Notes:         m.Notes,
	}
}

// PaymentModelFromDomain creates a model from a domain Payment
func PaymentModelFromDomain(p *accounting.Payment) *PaymentModel {
	m := &PaymentModel{
		PaymentNumber: p.PaymentNumber,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		Reference:     p.Reference,
		Status:        p.Status,
		Notes:         p.Notes,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ExpenseModel is the persistence model for expenses
type ExpenseModel struct {
	BaseModel
	ExpenseNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Date          time.Time       `gorm:"type:date;not null;index"`
	Vendor        string          `gorm:"type:varchar(200)"`
	Category      string          `gorm:"type:varchar(50);index"`
	Description   string          `gorm:"type:text"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsApproved    bool            `gorm:"not null;default:false"`
	CreatedBy     *uint           `gorm:"index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the model to a domain Expense
func (m *ExpenseModel) ToDomain() *accounting.Expense {
	return &accounting.Expense{
		BaseEntity:    m.BaseModel.ToDomain(),
		ExpenseNumber: m.ExpenseNumber,
		Date:          m.Date,
		Vendor:        m.Vendor,
		Category:      m.Category,
		Description:   m.Description,
		Amount:        m.Amount,
		IsApproved:    m.IsApproved,
		CreatedBy:     m.CreatedBy,
	}
}

// ExpenseModelFromDomain creates a model from a domain Expense
func ExpenseModelFromDomain(e *accounting.Expense) *ExpenseModel {
	m := &ExpenseModel{
		ExpenseNumber: e.ExpenseNumber,
		Date:          e.Date,
		Vendor:        e.Vendor,
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		IsApproved:    e.IsApproved,
		CreatedBy:     e.CreatedBy,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

package accounting

import (
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/accounting"
	"github.com/shopspring/decimal"
)

// CustomerRequest is the body for creating a customer
type CustomerRequest struct {
	CustomerNumber string          `json:"customer_number" binding:"omitempty,max=20"`
	Name           string          `json:"name" binding:"required,max=200"`
	Email          string          `json:"email" binding:"omitempty,email,max=100"`
	Phone          string          `json:"phone" binding:"omitempty,max=20"`
	Address        string          `json:"address"`
	TaxNumber      string          `json:"tax_number" binding:"omitempty,max=50"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	PaymentTerms   string          `json:"payment_terms" binding:"omitempty,max=50"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             uint            `json:"id"`
	CustomerNumber string          `json:"customer_number,omitempty"`
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Address        string          `json:"address,omitempty"`
	TaxNumber      string          `json:"tax_number,omitempty"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	PaymentTerms   string          `json:"payment_terms,omitempty"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CustomerListQuery filters the customer listing
type CustomerListQuery struct {
	common.PageQuery
	Search string `form:"search"`
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *accounting.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		CustomerNumber: c.CustomerNumber,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		TaxNumber:      c.TaxNumber,
		CreditLimit:    c.CreditLimit,
		PaymentTerms:   c.PaymentTerms,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

// InvoiceRequest is the body for creating an invoice.
// A zero total_amount is derived from subtotal, tax and discount.
type InvoiceRequest struct {
	InvoiceNumber  string          `json:"invoice_number" binding:"required,max=20"`
	CustomerID     uint            `json:"customer_id" binding:"required"`
	IssueDate      common.Date     `json:"issue_date"`
	DueDate        common.Date     `json:"due_date"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         string          `json:"status" binding:"omitempty,oneof=draft sent overdue cancelled"`
	Notes          string          `json:"notes"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID             uint            `json:"id"`
	InvoiceNumber  string          `json:"invoice_number"`
	CustomerID     uint            `json:"customer_id"`
	IssueDate      common.Date     `json:"issue_date"`
	DueDate        common.Date     `json:"due_date"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	BalanceDue     decimal.Decimal `json:"balance_due"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	CreatedBy      *uint           `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// InvoiceListQuery filters the invoice listing
type InvoiceListQuery struct {
	common.PageQuery
	Status     string `form:"status"`
	CustomerID *uint  `form:"customer_id"`
}

// ToInvoiceResponse converts a domain invoice
func ToInvoiceResponse(i *accounting.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:             i.ID,
		InvoiceNumber:  i.InvoiceNumber,
		CustomerID:     i.CustomerID,
		IssueDate:      common.NewDate(i.IssueDate),
		DueDate:        common.NewDate(i.DueDate),
		Subtotal:       i.Subtotal,
		TaxAmount:      i.TaxAmount,
		DiscountAmount: i.DiscountAmount,
		TotalAmount:    i.TotalAmount,
		PaidAmount:     i.PaidAmount,
		BalanceDue:     i.BalanceDue,
		Status:         string(i.Status),
		Notes:          i.Notes,
		CreatedBy:      i.CreatedBy,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

// PaymentRequest is the body for recording a payment
type PaymentRequest struct {
	PaymentNumber string          `json:"payment_number" binding:"required,max=20"`
	InvoiceID     uint            `json:"invoice_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   *common.Date    `json:"payment_date"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=cash check bank_transfer credit_card other"`
	Reference     string          `json:"reference" binding:"omitempty,max=100"`
	Status        string          `json:"status" binding:"omitempty,oneof=pending completed failed refunded"`
	Notes         string          `json:"notes"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            uint            `json:"id"`
	PaymentNumber string          `json:"payment_number"`
	InvoiceID     uint            `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   common.Date     `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference,omitempty"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PaymentListQuery filters the payment listing
type PaymentListQuery struct {
	common.PageQuery
	InvoiceID *uint  `form:"invoice_id"`
	Status    string `form:"status"`
}

// ToPaymentResponse converts a domain payment
func ToPaymentResponse(p *accounting.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		PaymentNumber: p.PaymentNumber,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		PaymentDate:   common.NewDate(p.PaymentDate),
		PaymentMethod: string(p.PaymentMethod),
		Reference:     p.Reference,
		Status:        string(p.Status),
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}

// ExpenseRequest is the body for recording an expense
type ExpenseRequest struct {
	ExpenseNumber string          `json:"expense_number" binding:"required,max=20"`
	Date          common.Date     `json:"date"`
	Vendor        string          `json:"vendor" binding:"omitempty,max=200"`
	Category      string          `json:"category" binding:"omitempty,max=100"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            uint            `json:"id"`
	ExpenseNumber string          `json:"expense_number"`
	Date          common.Date     `json:"date"`
	Vendor        string          `json:"vendor,omitempty"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	IsApproved    bool            `json:"is_approved"`
	CreatedBy     *uint           `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ExpenseListQuery filters the expense listing
type ExpenseListQuery struct {
	common.PageQuery
	Category   string `form:"category"`
	IsApproved *bool  `form:"is_approved"`
}

// ToExpenseResponse converts a domain expense
func ToExpenseResponse(e *accounting.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		ExpenseNumber: e.ExpenseNumber,
		Date:          common.NewDate(e.Date),
		Vendor:        e.Vendor,
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		IsApproved:    e.IsApproved,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
	}
}

package accounting

import (
	"strings"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer is a billable party. The same store backs the CRM customer list.
type Customer struct {
	shared.BaseEntity
	CustomerNumber string
	Name           string
	Email          string
	Phone          string
	Address        string
	TaxNumber      string
	CreditLimit    decimal.Decimal
	PaymentTerms   string
	IsActive       bool
}

// CustomerDetails holds the fields accepted when creating a customer
type CustomerDetails struct {
	CustomerNumber string
	Name           string
	Email          string
	Phone          string
	Address        string
	TaxNumber      string
	CreditLimit    decimal.Decimal
	PaymentTerms   string
}

// NewCustomer creates an active customer
func NewCustomer(d CustomerDetails) (*Customer, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name cannot exceed 200 characters")
	}
	if d.CreditLimit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Credit limit cannot be negative")
	}
	return &Customer{
		BaseEntity:     shared.NewBaseEntity(),
		CustomerNumber: strings.TrimSpace(d.CustomerNumber),
		Name:           name,
		Email:          strings.ToLower(strings.TrimSpace(d.Email)),
		Phone:          d.Phone,
		Address:        d.Address,
		TaxNumber:      d.TaxNumber,
		CreditLimit:    d.CreditLimit.Round(2),
		PaymentTerms:   d.PaymentTerms,
		IsActive:       true,
	}, nil
}

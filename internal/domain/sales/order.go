package sales

import (
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a sales order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// SalesOrder is a confirmed sale to a customer
type SalesOrder struct {
	shared.BaseEntity
	OrderNumber          string
	CustomerID           uint
	QuoteID              *uint
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	Totals
	ShippingCost    decimal.Decimal
	Status          OrderStatus
	ShippingAddress string
	Notes           string
	Items           []LineItem
	CreatedBy       *uint
}

// OrderDetails holds the fields accepted when creating an order
type OrderDetails struct {
	OrderNumber          string
	CustomerID           uint
	QuoteID              *uint
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	Totals               Totals
	ShippingCost         decimal.Decimal
	Status               OrderStatus
	ShippingAddress      string
	Notes                string
	Items                []LineItem
}

// NewSalesOrder creates an order. Shipping cost is added on top of the item
// or caller totals.
func NewSalesOrder(d OrderDetails, createdBy *uint) (*SalesOrder, error) {
	number := strings.TrimSpace(d.OrderNumber)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order number is required")
	}
	if d.CustomerID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order customer is required")
	}
	if d.OrderDate.IsZero() {
		d.OrderDate = time.Now().UTC()
	}
	if d.ExpectedDeliveryDate != nil && d.ExpectedDeliveryDate.Before(d.OrderDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expected delivery cannot be before order date")
	}
	if d.ShippingCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shipping cost cannot be negative")
	}
	if d.Status == "" {
		d.Status = OrderStatusPending
	}
	if !d.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid order status")
	}

	callerTotal := !d.Totals.TotalAmount.IsZero() && len(d.Items) == 0
	totals, err := resolveTotals(d.Items, d.Totals)
	if err != nil {
		return nil, err
	}
	if !callerTotal {
		totals.TotalAmount = totals.TotalAmount.Add(d.ShippingCost).Round(2)
	}

	return &SalesOrder{
		BaseEntity:           shared.NewBaseEntity(),
		OrderNumber:          number,
		CustomerID:           d.CustomerID,
		QuoteID:              d.QuoteID,
		OrderDate:            d.OrderDate,
		ExpectedDeliveryDate: d.ExpectedDeliveryDate,
		Totals:               totals,
		ShippingCost:         d.ShippingCost.Round(2),
		Status:               d.Status,
		ShippingAddress:      d.ShippingAddress,
		Notes:                d.Notes,
		Items:                d.Items,
		CreatedBy:            createdBy,
	}, nil
}

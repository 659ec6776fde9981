package sales

import (
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one product line on a quote or order
type LineItemRequest struct {
	ProductID       uint            `json:"product_id" binding:"required"`
	Description     string          `json:"description"`
	Quantity        int             `json:"quantity" binding:"required,min=1"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ID              uint            `json:"id"`
	ProductID       uint            `json:"product_id"`
	Description     string          `json:"description,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

func toLineItemResponses(items []sales.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, LineItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			Description:     it.Description,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			TaxRate:         it.TaxRate,
			LineTotal:       it.LineTotal,
		})
	}
	return out
}

// QuoteRequest is the body for creating a quote. When items are present the
// money columns are derived from them and only discount_amount is read.
type QuoteRequest struct {
	QuoteNumber    string            `json:"quote_number" binding:"required,max=20"`
	CustomerID     uint              `json:"customer_id" binding:"required"`
	QuoteDate      *common.Date      `json:"quote_date"`
	ValidUntil     common.Date       `json:"valid_until"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	TaxAmount      decimal.Decimal   `json:"tax_amount"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	Status         string            `json:"status" binding:"omitempty,oneof=draft sent accepted rejected expired"`
	Notes          string            `json:"notes"`
	Items          []LineItemRequest `json:"items" binding:"omitempty,dive"`
}

// QuoteResponse represents a quote in API responses
type QuoteResponse struct {
	ID             uint               `json:"id"`
	QuoteNumber    string             `json:"quote_number"`
	CustomerID     uint               `json:"customer_id"`
	QuoteDate      common.Date        `json:"quote_date"`
	ValidUntil     common.Date        `json:"valid_until"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	Status         string             `json:"status"`
	Notes          string             `json:"notes,omitempty"`
	Items          []LineItemResponse `json:"items"`
	CreatedBy      *uint              `json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ToQuoteResponse converts a domain quote
func ToQuoteResponse(q *sales.Quote) QuoteResponse {
	return QuoteResponse{
		ID:             q.ID,
		QuoteNumber:    q.QuoteNumber,
		CustomerID:     q.CustomerID,
		QuoteDate:      common.NewDate(q.QuoteDate),
		ValidUntil:     common.NewDate(q.ValidUntil),
		Subtotal:       q.Subtotal,
		TaxAmount:      q.TaxAmount,
		DiscountAmount: q.DiscountAmount,
		TotalAmount:    q.TotalAmount,
		Status:         string(q.Status),
		Notes:          q.Notes,
		Items:          toLineItemResponses(q.Items),
		CreatedBy:      q.CreatedBy,
		CreatedAt:      q.CreatedAt,
	}
}

// OrderRequest is the body for creating a sales order
type OrderRequest struct {
	OrderNumber          string            `json:"order_number" binding:"required,max=20"`
	CustomerID           uint              `json:"customer_id" binding:"required"`
	QuoteID              *uint             `json:"quote_id"`
	OrderDate            *common.Date      `json:"order_date"`
	ExpectedDeliveryDate *common.Date      `json:"expected_delivery_date"`
	Subtotal             decimal.Decimal   `json:"subtotal"`
	TaxAmount            decimal.Decimal   `json:"tax_amount"`
	DiscountAmount       decimal.Decimal   `json:"discount_amount"`
	ShippingCost         decimal.Decimal   `json:"shipping_cost"`
	TotalAmount          decimal.Decimal   `json:"total_amount"`
	Status               string            `json:"status" binding:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	ShippingAddress      string            `json:"shipping_address"`
	Notes                string            `json:"notes"`
	Items                []LineItemRequest `json:"items" binding:"omitempty,dive"`
}

// OrderResponse represents a sales order in API responses
type OrderResponse struct {
	ID                   uint               `json:"id"`
	OrderNumber          string             `json:"order_number"`
	CustomerID           uint               `json:"customer_id"`
	QuoteID              *uint              `json:"quote_id"`
	OrderDate            common.Date        `json:"order_date"`
	ExpectedDeliveryDate *common.Date       `json:"expected_delivery_date"`
	Subtotal             decimal.Decimal    `json:"subtotal"`
	TaxAmount            decimal.Decimal    `json:"tax_amount"`
	DiscountAmount       decimal.Decimal    `json:"discount_amount"`
	ShippingCost         decimal.Decimal    `json:"shipping_cost"`
	TotalAmount          decimal.Decimal    `json:"total_amount"`
	Status               string             `json:"status"`
	ShippingAddress      string             `json:"shipping_address,omitempty"`
	Notes                string             `json:"notes,omitempty"`
	Items                []LineItemResponse `json:"items"`
	CreatedBy            *uint              `json:"created_by"`
	CreatedAt            time.Time          `json:"created_at"`
}

// ToOrderResponse converts a domain sales order
func ToOrderResponse(o *sales.SalesOrder) OrderResponse {
	return OrderResponse{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		CustomerID:           o.CustomerID,
		QuoteID:              o.QuoteID,
		OrderDate:            common.NewDate(o.OrderDate),
		ExpectedDeliveryDate: common.DatePtr(o.ExpectedDeliveryDate),
		Subtotal:             o.Subtotal,
		TaxAmount:            o.TaxAmount,
		DiscountAmount:       o.DiscountAmount,
		ShippingCost:         o.ShippingCost,
		TotalAmount:          o.TotalAmount,
		Status:               string(o.Status),
		ShippingAddress:      o.ShippingAddress,
		Notes:                o.Notes,
		Items:                toLineItemResponses(o.Items),
		CreatedBy:            o.CreatedBy,
		CreatedAt:            o.CreatedAt,
	}
}

// SalesListQuery filters the quote and order listings
type SalesListQuery struct {
	common.PageQuery
	Status     string `form:"status"`
	CustomerID *uint  `form:"customer_id"`
}

// ShipmentRequest is the body for creating a shipment
type ShipmentRequest struct {
	ShipmentNumber string       `json:"shipment_number" binding:"required,max=20"`
	OrderID        uint         `json:"order_id" binding:"required"`
	WarehouseID    *uint        `json:"warehouse_id"`
	ShipDate       *common.Date `json:"ship_date"`
	Carrier        string       `json:"carrier" binding:"omitempty,max=100"`
	TrackingNumber string       `json:"tracking_number" binding:"omitempty,max=100"`
	Status         string       `json:"status" binding:"omitempty,oneof=pending shipped in_transit delivered"`
	Notes          string       `json:"notes"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID             uint         `json:"id"`
	ShipmentNumber string       `json:"shipment_number"`
	OrderID        uint         `json:"order_id"`
	WarehouseID    *uint        `json:"warehouse_id"`
	ShipDate       *common.Date `json:"ship_date"`
	Carrier        string       `json:"carrier,omitempty"`
	TrackingNumber string       `json:"tracking_number,omitempty"`
	Status         string       `json:"status"`
	Notes          string       `json:"notes,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// ShipmentListQuery filters the shipment listing
type ShipmentListQuery struct {
	common.PageQuery
	OrderID *uint  `form:"order_id"`
	Status  string `form:"status"`
}

// ToShipmentResponse converts a domain shipment
func ToShipmentResponse(s *sales.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:             s.ID,
		ShipmentNumber: s.ShipmentNumber,
		OrderID:        s.OrderID,
		WarehouseID:    s.WarehouseID,
		ShipDate:       common.DatePtr(s.ShipDate),
		Carrier:        s.Carrier,
		TrackingNumber: s.TrackingNumber,
		Status:         string(s.Status),
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
	}
}

package models

import (
	"time"

	"github.com/erp/erpapp/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// LineItemColumns are the columns shared by quote and order items
type LineItemColumns struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"`
	ProductID       uint            `gorm:"not null;index"`
	Description     string          `gorm:"type:text"`
	Quantity        int             `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	TaxRate         decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	LineTotal       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (c LineItemColumns) toDomain() sales.LineItem {
	return sales.LineItem{
		ID:              c.ID,
		ProductID:       c.ProductID,
		Description:     c.Description,
		Quantity:        c.Quantity,
		UnitPrice:       c.UnitPrice,
		DiscountPercent: c.DiscountPercent,
		TaxRate:         c.TaxRate,
		LineTotal:       c.LineTotal,
	}
}

func lineItemColumns(l sales.LineItem) LineItemColumns {
	return LineItemColumns{
		ID:              l.ID,
		ProductID:       l.ProductID,
		Description:     l.Description,
		Quantity:        l.Quantity,
		UnitPrice:       l.UnitPrice,
		DiscountPercent: l.DiscountPercent,
		TaxRate:         l.TaxRate,
		LineTotal:       l.LineTotal,
	}
}

// TotalsColumns are the monetary columns shared by quotes and orders
type TotalsColumns struct {
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
}

func totalsColumns(t sales.Totals) TotalsColumns {
	return TotalsColumns(t)
}

// QuoteModel is the persistence model for quotes
type QuoteModel struct {
	BaseModel
	QuoteNumber string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID  uint      `gorm:"not null;index"`
	QuoteDate   time.Time `gorm:"type:date;not null"`
	ValidUntil  time.Time `gorm:"type:date;not null"`
	TotalsColumns
	Status    sales.QuoteStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Notes     string            `gorm:"type:text"`
	CreatedBy *uint             `gorm:"index"`
	Items     []QuoteItemModel  `gorm:"foreignKey:QuoteID"`
}

// TableName returns the table name for GORM
func (QuoteModel) TableName() string {
	return "quotes"
}

// QuoteItemModel is one line of a quote
type QuoteItemModel struct {
	LineItemColumns
	QuoteID uint `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (QuoteItemModel) TableName() string {
	return "quote_items"
}

// ToDomain converts the model to a domain Quote
func (m *QuoteModel) ToDomain() *sales.Quote {
	items := make([]sales.LineItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, it.toDomain())
	}
	return &sales.Quote{
		BaseEntity:  m.BaseModel.ToDomain(),
		QuoteNumber: m.QuoteNumber,
		CustomerID:  m.CustomerID,
		QuoteDate:   m.QuoteDate,
		ValidUntil:  m.ValidUntil,
		Totals:      sales.Totals(m.TotalsColumns),
		Status:      m.Status,
		Notes:       m.Notes,
		Items:       items,
		CreatedBy:   m.CreatedBy,
	}
}

// QuoteModelFromDomain creates a model from a domain Quote
func QuoteModelFromDomain(q *sales.Quote) *QuoteModel {
	m := &QuoteModel{
		QuoteNumber:   q.QuoteNumber,
		CustomerID:    q.CustomerID,
		QuoteDate:     q.QuoteDate,
		ValidUntil:    q.ValidUntil,
		TotalsColumns: totalsColumns(q.Totals),
		Status:        q.Status,
		Notes:         q.Notes,
		CreatedBy:     q.CreatedBy,
	}
	for _, it := range q.Items {
		m.Items = append(m.Items, QuoteItemModel{LineItemColumns: lineItemColumns(it), QuoteID: q.ID})
	}
	m.FromDomainBaseEntity(q.BaseEntity)
	return m
}

// SalesOrderModel is the persistence model for sales orders
type SalesOrderModel struct {
	BaseModel
	OrderNumber          string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID           uint       `gorm:"not null;index"`
	QuoteID              *uint      `gorm:"index"`
	OrderDate            time.Time  `gorm:"type:date;not null"`
	ExpectedDeliveryDate *time.Time `gorm:"type:date"`
	TotalsColumns
	ShippingCost    decimal.Decimal       `gorm:"type:numeric(12,2);not null;default:0"`
	Status          sales.OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ShippingAddress string                `gorm:"type:text"`
	Notes           string                `gorm:"type:text"`
	CreatedBy       *uint                 `gorm:"index"`
	Items           []SalesOrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// SalesOrderItemModel is one line of a sales order
type SalesOrderItemModel struct {
	LineItemColumns
	OrderID uint `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SalesOrderItemModel) TableName() string {
	return "sales_order_items"
}

// ToDomain converts the model to a domain SalesOrder
func (m *SalesOrderModel) ToDomain() *sales.SalesOrder {
	items := make([]sales.LineItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, it.toDomain())
	}
	return &sales.SalesOrder{
		BaseEntity:           m.BaseModel.ToDomain(),
		OrderNumber:          m.OrderNumber,
		CustomerID:           m.CustomerID,
		QuoteID:              m.QuoteID,
		OrderDate:            m.OrderDate,
		ExpectedDeliveryDate: m.ExpectedDeliveryDate,
		Totals:               sales.Totals(m.TotalsColumns),
		ShippingCost:         m.ShippingCost,
		Status:               m.Status,
		ShippingAddress:      m.ShippingAddress,
		Notes:                m.Notes,
		Items:                items,
		CreatedBy:            m.CreatedBy,
	}
}

// SalesOrderModelFromDomain creates a model from a domain SalesOrder
func SalesOrderModelFromDomain(o *sales.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{
		OrderNumber:          o.OrderNumber,
		CustomerID:           o.CustomerID,
		QuoteID:              o.QuoteID,
		OrderDate:            o.OrderDate,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		TotalsColumns:        totalsColumns(o.Totals),
		ShippingCost:         o.ShippingCost,
		Status:               o.Status,
		ShippingAddress:      o.ShippingAddress,
		Notes:                o.Notes,
		CreatedBy:            o.CreatedBy,
	}
	for _, it := range o.Items {
		m.Items = append(m.Items, SalesOrderItemModel{LineItemColumns: lineItemColumns(it), OrderID: o.ID})
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	return m
}

// ShipmentModel is the persistence model for shipments
type ShipmentModel struct {
	BaseModel
	ShipmentNumber string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID        uint                 `gorm:"not null;index"`
	WarehouseID    *uint                `gorm:"index"`
	ShipDate       *time.Time           `gorm:"type:date"`
	Carrier        string               `gorm:"type:varchar(100)"`
	TrackingNumber string               `gorm:"type:varchar(100)"`
	Status         sales.ShipmentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes          string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the model to a domain Shipment
func (m *ShipmentModel) ToDomain() *sales.Shipment {
	return &sales.Shipment{
		BaseEntity:     m.BaseModel.ToDomain(),
		ShipmentNumber: m.ShipmentNumber,
		OrderID:        m.OrderID,
		WarehouseID:    m.WarehouseID,
		ShipDate:       m.ShipDate,
		Carrier:        m.Carrier,
		TrackingNumber: m.TrackingNumber,
		Status:         m.Status,
		Notes:          m.Notes,
	}
}

// ShipmentModelFromDomain creates a model from a domain Shipment
func ShipmentModelFromDomain(s *sales.Shipment) *ShipmentModel {
	m := &ShipmentModel{
		ShipmentNumber: s.ShipmentNumber,
		OrderID:        s.OrderID,
		WarehouseID:    s.WarehouseID,
		ShipDate:       s.ShipDate,
		Carrier:        s.Carrier,
		TrackingNumber: s.TrackingNumber,
		Status:         s.Status,
		Notes:          s.Notes,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

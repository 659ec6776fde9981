package inventory

import (
	"strings"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductType classifies what is being sold
type ProductType string

const (
	ProductTypeGoods   ProductType = "goods"
	ProductTypeService ProductType = "service"
	ProductTypeDigital ProductType = "digital"
)

// IsValid reports whether t is a known product type
func (t ProductType) IsValid() bool {
	return t == ProductTypeGoods || t == ProductTypeService || t == ProductTypeDigital
}

// Product is a sellable item. Stock levels are only maintained when
// TrackInventory is set.
type Product struct {
	shared.BaseEntity
	SKU            string
	Name           string
	Description    string
	Type           ProductType
	CategoryID     *uint
	Brand          string
	CostPrice      decimal.Decimal
	SellingPrice   decimal.Decimal
	TrackInventory bool
	CurrentStock   int
	MinimumStock   int
	ReorderLevel   int
	IsActive       bool
}

// ProductDetails holds the fields accepted when creating a product
type ProductDetails struct {
	SKU            string
	Name           string
	Description    string
	Type           ProductType
	CategoryID     *uint
	Brand          string
	CostPrice      decimal.Decimal
	SellingPrice   decimal.Decimal
	TrackInventory bool
	MinimumStock   int
	ReorderLevel   int
}

// NewProduct creates an active product with zero stock
func NewProduct(d ProductDetails) (*Product, error) {
	sku := strings.ToUpper(strings.TrimSpace(d.SKU))
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product SKU is required")
	}
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if d.Type == "" {
		d.Type = ProductTypeGoods
	}
	if !d.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product type")
	}
	if d.CostPrice.IsNegative() || d.SellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Prices cannot be negative")
	}
	if d.MinimumStock < 0 || d.ReorderLevel < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock thresholds cannot be negative")
	}

	return &Product{
		BaseEntity:     shared.NewBaseEntity(),
		SKU:            sku,
		Name:           name,
		Description:    d.Description,
		Type:           d.Type,
		CategoryID:     d.CategoryID,
		Brand:          d.Brand,
		CostPrice:      d.CostPrice.Round(2),
		SellingPrice:   d.SellingPrice.Round(2),
		TrackInventory: d.TrackInventory,
		MinimumStock:   d.MinimumStock,
		ReorderLevel:   d.ReorderLevel,
		IsActive:       true,
	}, nil
}

// IsLowStock reports whether a tracked product is at or below its reorder level
func (p *Product) IsLowStock() bool {
	return p.TrackInventory && p.CurrentStock <= p.ReorderLevel
}

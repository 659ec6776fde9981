package models

import (
	"github.com/erp/erpapp/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for product categories
type CategoryModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	ParentID    *uint  `gorm:"index"`
	IsActive    bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the model to a domain Category
func (m *CategoryModel) ToDomain() *inventory.Category {
	return &inventory.Category{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		ParentID:    m.ParentID,
		IsActive:    m.IsActive,
	}
}

// CategoryModelFromDomain creates a model from a domain Category
func CategoryModelFromDomain(c *inventory.Category) *CategoryModel {
	m := &CategoryModel{
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ProductModel is the persistence model for products
type ProductModel struct {
	BaseModel
	SKU            string                `gorm:"column:sku;type:varchar(50);not null;uniqueIndex"`
	Name           string                `gorm:"type:varchar(200);not null"`
	Description    string                `gorm:"type:text"`
	Type           inventory.ProductType `gorm:"column:product_type;type:varchar(20);not null;default:'goods'"`
	CategoryID     *uint                 `gorm:"index"`
	Brand          string                `gorm:"type:varchar(100)"`
	CostPrice      decimal.Decimal       `gorm:"type:numeric(12,2);not null;default:0"`
	SellingPrice   decimal.Decimal       `gorm:"type:numeric(12,2);not null;default:0"`
	TrackInventory bool                  `gorm:"not null"`
	CurrentStock   int                   `gorm:"not null;default:0"`
	MinimumStock   int                   `gorm:"not null;default:0"`
	ReorderLevel   int                   `gorm:"not null;default:0"`
	IsActive       bool                  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() *inventory.Product {
	return &inventory.Product{
		BaseEntity:     m.BaseModel.ToDomain(),
		SKU:            m.SKU,
		Name:           m.Name,
		Description:    m.Description,
		Type:           m.Type,
		CategoryID:     m.CategoryID,
		Brand:          m.Brand,
		CostPrice:      m.CostPrice,
		SellingPrice:   m.SellingPrice,
		TrackInventory: m.TrackInventory,
		CurrentStock:   m.CurrentStock,
		MinimumStock:   m.MinimumStock,
		ReorderLevel:   m.ReorderLevel,
		IsActive:       m.IsActive,
	}
}

// ProductModelFromDomain creates a model from a domain Product
func ProductModelFromDomain(p *inventory.Product) *ProductModel {
	m := &ProductModel{
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Type:           p.Type,
		CategoryID:     p.CategoryID,
		Brand:          p.Brand,
		CostPrice:      p.CostPrice,
		SellingPrice:   p.SellingPrice,
		TrackInventory: p.TrackInventory,
		CurrentStock:   p.CurrentStock,
		MinimumStock:   p.MinimumStock,
		ReorderLevel:   p.ReorderLevel,
		IsActive:       p.IsActive,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// WarehouseModel is the persistence model for warehouses
type WarehouseModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null"`
	Code        string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Address     string `gorm:"type:text"`
	City        string `gorm:"type:varchar(50)"`
	ManagerName string `gorm:"type:varchar(100)"`
	IsActive    bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the model to a domain Warehouse
func (m *WarehouseModel) ToDomain() *inventory.Warehouse {
	return &inventory.Warehouse{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Code:        m.Code,
		Address:     m.Address,
		City:        m.City,
		ManagerName: m.ManagerName,
		IsActive:    m.IsActive,
	}
}

// WarehouseModelFromDomain creates a model from a domain Warehouse
func WarehouseModelFromDomain(w *inventory.Warehouse) *WarehouseModel {
	m := &WarehouseModel{
		Name:        w.Name,
		Code:        w.Code,
		Address:     w.Address,
		City:        w.City,
		ManagerName: w.ManagerName,
		IsActive:    w.IsActive,
	}
	m.FromDomainBaseEntity(w.BaseEntity)
	return m
}

// StockMovementModel is the persistence model for stock movements
type StockMovementModel struct {
	BaseModel
	ProductID       uint                   `gorm:"not null;index"`
	WarehouseID     *uint                  `gorm:"index"`
	MovementType    inventory.MovementType `gorm:"type:varchar(20);not null;index"`
	Quantity        int                    `gorm:"not null"`
	QuantityBefore  int                    `gorm:"not null"`
	QuantityAfter   int                    `gorm:"not null"`
	ReferenceNumber string                 `gorm:"type:varchar(100)"`
	Reason          string                 `gorm:"type:varchar(200)"`
	CreatedBy       *uint                  `gorm:"index"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the model to a domain StockMovement
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	return &inventory.StockMovement{
		BaseEntity:      m.BaseModel.ToDomain(),
		ProductID:       m.ProductID,
		WarehouseID:     m.WarehouseID,
		MovementType:    m.MovementType,
		Quantity:        m.Quantity,
		QuantityBefore:  m.QuantityBefore,
		QuantityAfter:   m.QuantityAfter,
		ReferenceNumber: m.ReferenceNumber,
		Reason:          m.Reason,
		CreatedBy:       m.CreatedBy,
	}
}

// StockMovementModelFromDomain creates a model from a domain StockMovement
func StockMovementModelFromDomain(s *inventory.StockMovement) *StockMovementModel {
	m := &StockMovementModel{
		ProductID:       s.ProductID,
		WarehouseID:     s.WarehouseID,
		MovementType:    s.MovementType,
		Quantity:        s.Quantity,
		QuantityBefore:  s.QuantityBefore,
		QuantityAfter:   s.QuantityAfter,
		ReferenceNumber: s.ReferenceNumber,
		Reason:          s.Reason,
		CreatedBy:       s.CreatedBy,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

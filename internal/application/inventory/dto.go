package inventory

import (
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CategoryRequest is the body for creating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ParentID    *uint     `json:"parent_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryListQuery filters the category listing
type CategoryListQuery struct {
	common.PageQuery
	ParentID *uint `form:"parent_id"`
}

// ToCategoryResponse converts a domain category
func ToCategoryResponse(c *inventory.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

// ProductRequest is the body for creating a product.
// TrackInventory defaults to true when omitted.
type ProductRequest struct {
	SKU            string          `json:"sku" binding:"required,max=50"`
	Name           string          `json:"name" binding:"required,max=200"`
	Description    string          `json:"description"`
	Type           string          `json:"type" binding:"omitempty,oneof=goods service digital"`
	CategoryID     *uint           `json:"category_id"`
	Brand          string          `json:"brand" binding:"omitempty,max=100"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	TrackInventory *bool           `json:"track_inventory"`
	MinimumStock   int             `json:"minimum_stock" binding:"min=0"`
	ReorderLevel   int             `json:"reorder_level" binding:"min=0"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uint            `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Type           string          `json:"type"`
	CategoryID     *uint           `json:"category_id"`
	Brand          string          `json:"brand,omitempty"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	TrackInventory bool            `json:"track_inventory"`
	CurrentStock   int             `json:"current_stock"`
	MinimumStock   int             `json:"minimum_stock"`
	ReorderLevel   int             `json:"reorder_level"`
	IsLowStock     bool            `json:"is_low_stock"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListQuery filters the product listing
type ProductListQuery struct {
	common.PageQuery
	CategoryID *uint  `form:"category_id"`
	Search     string `form:"search"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *inventory.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Type:           string(p.Type),
		CategoryID:     p.CategoryID,
		Brand:          p.Brand,
		CostPrice:      p.CostPrice,
		SellingPrice:   p.SellingPrice,
		TrackInventory: p.TrackInventory,
		CurrentStock:   p.CurrentStock,
		MinimumStock:   p.MinimumStock,
		ReorderLevel:   p.ReorderLevel,
		IsLowStock:     p.IsLowStock(),
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// WarehouseRequest is the body for creating a warehouse
type WarehouseRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Code        string `json:"code" binding:"required,max=20"`
	Address     string `json:"address"`
	City        string `json:"city" binding:"omitempty,max=50"`
	ManagerName string `json:"manager_name" binding:"omitempty,max=100"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	ManagerName string    `json:"manager_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToWarehouseResponse converts a domain warehouse
func ToWarehouseResponse(w *inventory.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:          w.ID,
		Name:        w.Name,
		Code:        w.Code,
		Address:     w.Address,
		City:        w.City,
		ManagerName: w.ManagerName,
		IsActive:    w.IsActive,
		CreatedAt:   w.CreatedAt,
	}
}

// StockMovementRequest is the body for recording a stock movement.
// For adjustments Quantity is the counted stock level.
type StockMovementRequest struct {
	ProductID       uint   `json:"product_id" binding:"required"`
	WarehouseID     *uint  `json:"warehouse_id"`
	MovementType    string `json:"movement_type" binding:"required,oneof=in out adjustment"`
	Quantity        int    `json:"quantity" binding:"min=0"`
	ReferenceNumber string `json:"reference_number" binding:"omitempty,max=50"`
	Reason          string `json:"reason"`
}

// StockMovementResponse represents a stock movement in API responses
type StockMovementResponse struct {
	ID              uint      `json:"id"`
	ProductID       uint      `json:"product_id"`
	WarehouseID     *uint     `json:"warehouse_id"`
	MovementType    string    `json:"movement_type"`
	Quantity        int       `json:"quantity"`
	QuantityBefore  int       `json:"quantity_before"`
	QuantityAfter   int       `json:"quantity_after"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	Reason          string    `json:"reason,omitempty"`
	CreatedBy       *uint     `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// StockMovementListQuery filters the stock movement listing
type StockMovementListQuery struct {
	common.PageQuery
	ProductID    *uint  `form:"product_id"`
	WarehouseID  *uint  `form:"warehouse_id"`
	MovementType string `form:"movement_type" binding:"omitempty,oneof=in out adjustment"`
}

// ToStockMovementResponse converts a domain stock movement
func ToStockMovementResponse(m *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		WarehouseID:     m.WarehouseID,
		MovementType:    string(m.MovementType),
		Quantity:        m.Quantity,
		QuantityBefore:  m.QuantityBefore,
		QuantityAfter:   m.QuantityAfter,
		ReferenceNumber: m.ReferenceNumber,
		Reason:          m.Reason,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}

package inventory

import (
	"context"

	"github.com/erp/erpapp/internal/domain/shared"
)

// Filter keys understood by the inventory repositories
const (
	FilterCategoryID   = "category_id"
	FilterParentID     = "parent_id"
	FilterProductID    = "product_id"
	FilterWarehouseID  = "warehouse_id"
	FilterMovementType = "movement_type"
)

// CategoryRepository persists categories
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Category], error)
}

// ProductRepository persists products
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Product], error)
}

// WarehouseRepository persists warehouses
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *Warehouse) error
	FindByID(ctx context.Context, id uint) (*Warehouse, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Warehouse], error)
}

// StockMovementRepository persists stock movements
type StockMovementRepository interface {
	FindByID(ctx context.Context, id uint) (*StockMovement, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[StockMovement], error)
}

// StockLedger records a movement and the product's new stock level in one
// transaction.
type StockLedger interface {
	RecordMovement(ctx context.Context, productID uint, req MovementRequest) (*StockMovement, *Product, error)
}

package persistence

import (
	"context"
	"fmt"

	"github.com/erp/erpapp/internal/domain/inventory"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository implements inventory.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create persists a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *inventory.Category) error {
	model := models.CategoryModelFromDomain(category)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Category")
	}
	category.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uint) (*inventory.Category, error) {
	m, err := findOne[models.CategoryModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByName checks whether a category name is taken
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists[models.CategoryModel](ctx, r.db, "name = ?", name)
}

// FindAll lists active categories by name
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[inventory.Category], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_active = ?", true)
		return whereIfSet(db, filter, inventory.FilterParentID, "parent_id")
	}
	rows, total, err := findPage[models.CategoryModel](ctx, r.db, filter, where,
		orderClause(filter, CategorySortFields, "name ASC"))
	if err != nil {
		return shared.Page[inventory.Category]{}, err
	}
	return toPage(rows, total, filter, (*models.CategoryModel).ToDomain), nil
}

// GormProductRepository implements inventory.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create persists a new product
func (r *GormProductRepository) Create(ctx context.Context, product *inventory.Product) error {
	model := models.ProductModelFromDomain(product)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Product with this SKU")
	}
	product.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// Update saves all fields of an existing product
func (r *GormProductRepository) Update(ctx context.Context, product *inventory.Product) error {
	model := models.ProductModelFromDomain(product)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translateWriteError(err, "Product with this SKU")
	}
	product.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*inventory.Product, error) {
	m, err := findOne[models.ProductModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsBySKU checks whether a SKU is taken
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	return exists[models.ProductModel](ctx, r.db, "sku = ?", sku)
}

// FindAll lists active products
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[inventory.Product], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_active = ?", true)
		db = whereIfSet(db, filter, inventory.FilterCategoryID, "category_id")
		return containsFold(db, filter.Search, "sku", "name")
	}
	rows, total, err := findPage[models.ProductModel](ctx, r.db, filter, where,
		orderClause(filter, ProductSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[inventory.Product]{}, err
	}
	return toPage(rows, total, filter, (*models.ProductModel).ToDomain), nil
}

// GormWarehouseRepository implements inventory.WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// Create persists a new warehouse
func (r *GormWarehouseRepository) Create(ctx context.Context, warehouse *inventory.Warehouse) error {
	model := models.WarehouseModelFromDomain(warehouse)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Warehouse code")
	}
	warehouse.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uint) (*inventory.Warehouse, error) {
	m, err := findOne[models.WarehouseModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByCode checks whether a warehouse code is taken
func (r *GormWarehouseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return exists[models.WarehouseModel](ctx, r.db, "code = ?", code)
}

// FindAll lists active warehouses by name
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[inventory.Warehouse], error) {
	where := func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
	rows, total, err := findPage[models.WarehouseModel](ctx, r.db, filter, where,
		orderClause(filter, WarehouseSortFields, "name ASC"))
	if err != nil {
		return shared.Page[inventory.Warehouse]{}, err
	}
	return toPage(rows, total, filter, (*models.WarehouseModel).ToDomain), nil
}

// GormStockMovementRepository implements inventory.StockMovementRepository
// and inventory.StockLedger using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// FindByID finds a stock movement by its ID
func (r *GormStockMovementRepository) FindByID(ctx context.Context, id uint) (*inventory.StockMovement, error) {
	m, err := findOne[models.StockMovementModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists stock movements, newest first
func (r *GormStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[inventory.StockMovement], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, inventory.FilterProductID, "product_id")
		db = whereIfSet(db, filter, inventory.FilterWarehouseID, "warehouse_id")
		return whereIfSet(db, filter, inventory.FilterMovementType, "movement_type")
	}
	rows, total, err := findPage[models.StockMovementModel](ctx, r.db, filter, where,
		orderClause(filter, StockMovementSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[inventory.StockMovement]{}, err
	}
	return toPage(rows, total, filter, (*models.StockMovementModel).ToDomain), nil
}

// RecordMovement loads the product under a row lock, applies the movement
// and stores both the movement and the new stock level in one transaction.
func (r *GormStockMovementRepository) RecordMovement(ctx context.Context, productID uint, req inventory.MovementRequest) (*inventory.StockMovement, *inventory.Product, error) {
	var (
		movement *inventory.StockMovement
		product  *inventory.Product
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pm models.ProductModel
		if err := forUpdate(tx).Where("id = ?", productID).First(&pm).Error; err != nil {
			return translateReadError(err)
		}
		product = pm.ToDomain()

		var err error
		movement, err = product.ApplyMovement(req)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.ProductModel{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"current_stock": product.CurrentStock,
				"updated_at":    product.UpdatedAt,
			}).Error; err != nil {
			return fmt.Errorf("update product stock: %w", err)
		}

		mm := models.StockMovementModelFromDomain(movement)
		if err := tx.Create(mm).Error; err != nil {
			return fmt.Errorf("insert stock movement: %w", err)
		}
		movement.BaseEntity = mm.BaseModel.ToDomain()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return movement, product, nil
}

// forUpdate adds SELECT ... FOR UPDATE on dialects that support row locks
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

var (
	_ inventory.CategoryRepository      = (*GormCategoryRepository)(nil)
	_ inventory.ProductRepository       = (*GormProductRepository)(nil)
	_ inventory.WarehouseRepository     = (*GormWarehouseRepository)(nil)
	_ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
	_ inventory.StockLedger             = (*GormStockMovementRepository)(nil)
)

package inventory

import (
	"context"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/inventory"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var (
	errCategoryExists  = shared.NewDomainError("ALREADY_EXISTS", "Category name already exists")
	errSKUExists       = shared.NewDomainError("ALREADY_EXISTS", "Product SKU already exists")
	errWarehouseExists = shared.NewDomainError("ALREADY_EXISTS", "Warehouse code already exists")
)

// InventoryService manages the product catalogue, warehouses and stock levels
type InventoryService struct {
	categories inventory.CategoryRepository
	products   inventory.ProductRepository
	warehouses inventory.WarehouseRepository
	movements  inventory.StockMovementRepository
	ledger     inventory.StockLedger
	logger     *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	categories inventory.CategoryRepository,
	products inventory.ProductRepository,
	warehouses inventory.WarehouseRepository,
	movements inventory.StockMovementRepository,
	ledger inventory.StockLedger,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		categories: categories,
		products:   products,
		warehouses: warehouses,
		movements:  movements,
		ledger:     ledger,
		logger:     logger,
	}
}

// ListCategories lists active categories by name
func (s *InventoryService) ListCategories(ctx context.Context, q CategoryListQuery) (common.ListResponse[CategoryResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[CategoryResponse]{}, err
	}
	if q.ParentID != nil {
		filter = filter.With(inventory.FilterParentID, *q.ParentID)
	}
	page, err := s.categories.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[CategoryResponse]{}, err
	}
	return common.NewListResponse(page, ToCategoryResponse), nil
}

// GetCategory returns one category
func (s *InventoryService) GetCategory(ctx context.Context, id uint) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Category")
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// CreateCategory creates a category under an optional existing parent
func (s *InventoryService) CreateCategory(ctx context.Context, req CategoryRequest, actorID uint) (*CategoryResponse, error) {
	category, err := inventory.NewCategory(req.Name, req.Description, req.ParentID)
	if err != nil {
		return nil, err
	}
	if category.ParentID != nil {
		if _, err := s.categories.FindByID(ctx, *category.ParentID); err != nil {
			return nil, common.TranslateNotFound(err, "Parent category")
		}
	}
	exists, err := s.categories.ExistsByName(ctx, category.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errCategoryExists
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created", zap.Uint("category_id", category.ID), zap.Uint("actor_id", actorID))
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// ListProducts lists active products newest first
func (s *InventoryService) ListProducts(ctx context.Context, q ProductListQuery) (common.ListResponse[ProductResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[ProductResponse]{}, err
	}
	if q.CategoryID != nil {
		filter = filter.With(inventory.FilterCategoryID, *q.CategoryID)
	}
	filter = filter.WithSearch(q.Search)

	page, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[ProductResponse]{}, err
	}
	return common.NewListResponse(page, ToProductResponse), nil
}

// GetProduct returns one product
func (s *InventoryService) GetProduct(ctx context.Context, id uint) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Product")
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// CreateProduct creates a product with zero stock
func (s *InventoryService) CreateProduct(ctx context.Context, req ProductRequest, actorID uint) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "create_product")
	defer span.End()

	track := true
	if req.TrackInventory != nil {
		track = *req.TrackInventory
	}
	product, err := inventory.NewProduct(inventory.ProductDetails{
		SKU:            req.SKU,
		Name:           req.Name,
		Description:    req.Description,
		Type:           inventory.ProductType(req.Type),
		CategoryID:     req.CategoryID,
		Brand:          req.Brand,
		CostPrice:      req.CostPrice,
		SellingPrice:   req.SellingPrice,
		TrackInventory: track,
		MinimumStock:   req.MinimumStock,
		ReorderLevel:   req.ReorderLevel,
	})
	if err != nil {
		return nil, err
	}
	if product.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *product.CategoryID); err != nil {
			return nil, common.TranslateNotFound(err, "Category")
		}
	}
	exists, err := s.products.ExistsBySKU(ctx, product.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errSKUExists
	}
	if err := s.products.Create(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("sku", product.SKU),
		zap.Uint("actor_id", actorID),
	)
	resp := ToProductResponse(product)
	return &resp, nil
}

// ListWarehouses lists active warehouses by name
func (s *InventoryService) ListWarehouses(ctx context.Context, q common.PageQuery) (common.ListResponse[WarehouseResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[WarehouseResponse]{}, err
	}
	page, err := s.warehouses.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[WarehouseResponse]{}, err
	}
	return common.NewListResponse(page, ToWarehouseResponse), nil
}

// GetWarehouse returns one warehouse
func (s *InventoryService) GetWarehouse(ctx context.Context, id uint) (*WarehouseResponse, error) {
	warehouse, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Warehouse")
	}
	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// CreateWarehouse creates a warehouse with a unique code
func (s *InventoryService) CreateWarehouse(ctx context.Context, req WarehouseRequest, actorID uint) (*WarehouseResponse, error) {
	warehouse, err := inventory.NewWarehouse(req.Name, req.Code, req.Address, req.City, req.ManagerName)
	if err != nil {
		return nil, err
	}
	exists, err := s.warehouses.ExistsByCode(ctx, warehouse.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errWarehouseExists
	}
	if err := s.warehouses.Create(ctx, warehouse); err != nil {
		return nil, err
	}

	s.logger.Info("Warehouse created", zap.Uint("warehouse_id", warehouse.ID), zap.Uint("actor_id", actorID))
	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// ListStockMovements lists movements newest first
func (s *InventoryService) ListStockMovements(ctx context.Context, q StockMovementListQuery) (common.ListResponse[StockMovementResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[StockMovementResponse]{}, err
	}
	if q.ProductID != nil {
		filter = filter.With(inventory.FilterProductID, *q.ProductID)
	}
	if q.WarehouseID != nil {
		filter = filter.With(inventory.FilterWarehouseID, *q.WarehouseID)
	}
	if q.MovementType != "" {
		filter = filter.With(inventory.FilterMovementType, q.MovementType)
	}

	page, err := s.movements.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[StockMovementResponse]{}, err
	}
	return common.NewListResponse(page, ToStockMovementResponse), nil
}

// GetStockMovement returns one movement
func (s *InventoryService) GetStockMovement(ctx context.Context, id uint) (*StockMovementResponse, error) {
	movement, err := s.movements.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Stock movement")
	}
	resp := ToStockMovementResponse(movement)
	return &resp, nil
}

// RecordStockMovement applies a movement to the product's stock level.
// The movement and the new level are committed together by the ledger.
func (s *InventoryService) RecordStockMovement(ctx context.Context, req StockMovementRequest, actorID uint) (*StockMovementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "record_stock_movement")
	defer span.End()

	telemetry.SetAttributes(span,
		"product_id", int(req.ProductID),
		"movement_type", req.MovementType,
		"quantity", req.Quantity,
	)

	if req.WarehouseID != nil {
		if _, err := s.warehouses.FindByID(ctx, *req.WarehouseID); err != nil {
			return nil, common.TranslateNotFound(err, "Warehouse")
		}
	}

	movement, product, err := s.ledger.RecordMovement(ctx, req.ProductID, inventory.MovementRequest{
		WarehouseID:     req.WarehouseID,
		MovementType:    inventory.MovementType(req.MovementType),
		Quantity:        req.Quantity,
		ReferenceNumber: req.ReferenceNumber,
		Reason:          req.Reason,
		CreatedBy:       common.Uintp(actorID),
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, common.TranslateNotFound(err, "Product")
	}

	s.logger.Info("Stock movement recorded",
		zap.Uint("movement_id", movement.ID),
		zap.Uint("product_id", product.ID),
		zap.String("movement_type", string(movement.MovementType)),
		zap.Int("quantity_before", movement.QuantityBefore),
		zap.Int("quantity_after", movement.QuantityAfter),
		zap.Uint("actor_id", actorID),
	)
	if product.IsLowStock() {
		s.logger.Warn("Product at or below reorder level",
			zap.Uint("product_id", product.ID),
			zap.Int("current_stock", product.CurrentStock),
			zap.Int("reorder_level", product.ReorderLevel),
		)
	}

	resp := ToStockMovementResponse(movement)
	return &resp, nil
}

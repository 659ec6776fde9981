package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/inventory"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *inventory.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*inventory.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[inventory.Category], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[inventory.Category]), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *inventory.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *inventory.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*inventory.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[inventory.Product], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[inventory.Product]), args.Error(1)
}

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) Create(ctx context.Context, warehouse *inventory.Warehouse) error {
	return m.Called(ctx, warehouse).Error(0)
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uint) (*inventory.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[inventory.Warehouse], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[inventory.Warehouse]), args.Error(1)
}

// MockStockLedger implements both the movement repository and the ledger
type MockStockLedger struct {
	mock.Mock
}

func (m *MockStockLedger) FindByID(ctx context.Context, id uint) (*inventory.StockMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockMovement), args.Error(1)
}

func (m *MockStockLedger) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[inventory.StockMovement], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[inventory.StockMovement]), args.Error(1)
}

func (m *MockStockLedger) RecordMovement(ctx context.Context, productID uint, req inventory.MovementRequest) (*inventory.StockMovement, *inventory.Product, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*inventory.StockMovement), args.Get(1).(*inventory.Product), args.Error(2)
}

type inventoryMocks struct {
	categories *MockCategoryRepository
	products   *MockProductRepository
	warehouses *MockWarehouseRepository
	ledger     *MockStockLedger
}

func newTestInventoryService() (*InventoryService, inventoryMocks) {
	m := inventoryMocks{
		categories: new(MockCategoryRepository),
		products:   new(MockProductRepository),
		warehouses: new(MockWarehouseRepository),
		ledger:     new(MockStockLedger),
	}
	svc := NewInventoryService(m.categories, m.products, m.warehouses, m.ledger, m.ledger, zap.NewNop())
	return svc, m
}

func newTrackedProduct(t *testing.T, stock, reorder int) *inventory.Product {
	t.Helper()
	p, err := inventory.NewProduct(inventory.ProductDetails{
		SKU: "wid-1", Name: "Widget", TrackInventory: true, ReorderLevel: reorder,
	})
	require.NoError(t, err)
	p.ID = 1
	p.CurrentStock = stock
	return p
}

func TestInventoryService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults track inventory and upper-cases sku", func(t *testing.T) {
		svc, m := newTestInventoryService()
		m.products.On("ExistsBySKU", mock.Anything, "WID-1").Return(false, nil)
		m.products.On("Create", mock.Anything, mock.AnythingOfType("*inventory.Product")).Return(nil)

		resp, err := svc.CreateProduct(ctx, ProductRequest{
			SKU: "wid-1", Name: "Widget", SellingPrice: decimal.RequireFromString("9.999"),
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, "WID-1", resp.SKU)
		assert.Equal(t, "goods", resp.Type)
		assert.True(t, resp.TrackInventory)
		assert.Equal(t, 0, resp.CurrentStock)
		assert.Equal(t, "10.00", resp.SellingPrice.StringFixed(2))
	})

	t.Run("respects explicit track_inventory false", func(t *testing.T) {
		svc, m := newTestInventoryService()
		m.products.On("ExistsBySKU", mock.Anything, "SVC-1").Return(false, nil)
		m.products.On("Create", mock.Anything, mock.Anything).Return(nil)

		off := false
		resp, err := svc.CreateProduct(ctx, ProductRequest{SKU: "svc-1", Name: "Consulting", Type: "service", TrackInventory: &off}, 1)
		require.NoError(t, err)
		assert.False(t, resp.TrackInventory)
	})

	t.Run("duplicate sku", func(t *testing.T) {
		svc, m := newTestInventoryService()
		m.products.On("ExistsBySKU", mock.Anything, "WID-1").Return(true, nil)

		_, err := svc.CreateProduct(ctx, ProductRequest{SKU: "WID-1", Name: "Widget"}, 1)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, m := newTestInventoryService()
		m.categories.On("FindByID", mock.Anything, uint(42)).Return(nil, shared.ErrNotFound)

		categoryID := uint(42)
		_, err := svc.CreateProduct(ctx, ProductRequest{SKU: "A", Name: "B", CategoryID: &categoryID}, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Category not found")
		m.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_CreateCategory(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestInventoryService()

	m.categories.On("ExistsByName", mock.Anything, "Tools").Return(true, nil)
	_, err := svc.CreateCategory(ctx, CategoryRequest{Name: " Tools "}, 1)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	parentID := uint(3)
	m.categories.On("FindByID", mock.Anything, parentID).Return(nil, shared.ErrNotFound)
	_, err = svc.CreateCategory(ctx, CategoryRequest{Name: "Hand tools", ParentID: &parentID}, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Contains(t, err.Error(), "Parent category not found")
}

func TestInventoryService_CreateWarehouse(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestInventoryService()

	m.warehouses.On("ExistsByCode", mock.Anything, "WH-01").Return(false, nil)
	m.warehouses.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateWarehouse(ctx, WarehouseRequest{Name: "Main", Code: "wh-01", City: "Oslo"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "WH-01", resp.Code)
	assert.True(t, resp.IsActive)
}

func TestInventoryService_RecordStockMovement(t *testing.T) {
	ctx := context.Background()

	t.Run("passes actor and returns snapshot", func(t *testing.T) {
		svc, m := newTestInventoryService()
		product := newTrackedProduct(t, 10, 0)
		movement, err := product.ApplyMovement(inventory.MovementRequest{MovementType: inventory.MovementTypeOut, Quantity: 4})
		require.NoError(t, err)

		m.ledger.On("RecordMovement", mock.Anything, uint(1), mock.MatchedBy(func(r inventory.MovementRequest) bool {
			return r.MovementType == inventory.MovementTypeOut && r.Quantity == 4 && r.CreatedBy != nil && *r.CreatedBy == 9
		})).Return(movement, product, nil)

		resp, err := svc.RecordStockMovement(ctx, StockMovementRequest{ProductID: 1, MovementType: "out", Quantity: 4}, 9)
		require.NoError(t, err)
		assert.Equal(t, 10, resp.QuantityBefore)
		assert.Equal(t, 6, resp.QuantityAfter)
		assert.Equal(t, 4, resp.Quantity)
	})

	t.Run("missing product", func(t *testing.T) {
		svc, m := newTestInventoryService()
		m.ledger.On("RecordMovement", mock.Anything, uint(5), mock.Anything).Return(nil, nil, shared.ErrNotFound)

		_, err := svc.RecordStockMovement(ctx, StockMovementRequest{ProductID: 5, MovementType: "in", Quantity: 1}, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Product not found")
	})

	t.Run("missing warehouse", func(t *testing.T) {
		svc, m := newTestInventoryService()
		m.warehouses.On("FindByID", mock.Anything, uint(2)).Return(nil, shared.ErrNotFound)

		warehouseID := uint(2)
		_, err := svc.RecordStockMovement(ctx, StockMovementRequest{ProductID: 1, WarehouseID: &warehouseID, MovementType: "in", Quantity: 1}, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		m.ledger.AssertNotCalled(t, "RecordMovement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("insufficient stock surfaces", func(t *testing.T) {
		svc, m := newTestInventoryService()
		m.ledger.On("RecordMovement", mock.Anything, uint(1), mock.Anything).Return(nil, nil, shared.ErrInsufficientStock)

		_, err := svc.RecordStockMovement(ctx, StockMovementRequest{ProductID: 1, MovementType: "out", Quantity: 100}, 1)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	})
}

func TestInventoryService_ListStockMovements(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestInventoryService()

	productID := uint(1)
	m.ledger.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		p, _ := f.Get(inventory.FilterProductID)
		mt, _ := f.Get(inventory.FilterMovementType)
		_, hasWarehouse := f.Get(inventory.FilterWarehouseID)
		return p == uint(1) && mt == "adjustment" && !hasWarehouse
	})).Return(shared.Page[inventory.StockMovement]{Items: []inventory.StockMovement{}, Limit: 100}, nil)

	resp, err := svc.ListStockMovements(ctx, StockMovementListQuery{ProductID: &productID, MovementType: "adjustment"})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Limit)
	assert.Empty(t, resp.Items)

	skip := -1
	_, err = svc.ListStockMovements(ctx, StockMovementListQuery{PageQuery: common.PageQuery{Skip: &skip}})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

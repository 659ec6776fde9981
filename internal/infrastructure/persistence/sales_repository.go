package persistence

import (
	"context"

	"github.com/erp/erpapp/internal/domain/sales"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// preloadItems loads line items in insertion order
func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

// GormQuoteRepository implements sales.QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// Create persists a quote and its line items in one transaction
func (r *GormQuoteRepository) Create(ctx context.Context, quote *sales.Quote) error {
	model := models.QuoteModelFromDomain(quote)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		return translateWriteError(err, "Quote number")
	}
	*quote = *model.ToDomain()
	return nil
}

// FindByID finds a quote with its line items
func (r *GormQuoteRepository) FindByID(ctx context.Context, id uint) (*sales.Quote, error) {
	m, err := findOne[models.QuoteModel](ctx, r.db.Scopes(preloadItems), "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByNumber checks whether a quote number is taken
func (r *GormQuoteRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return exists[models.QuoteModel](ctx, r.db, "quote_number = ?", number)
}

// FindAll lists quotes filtered by status and customer
func (r *GormQuoteRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[sales.Quote], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, sales.FilterStatus, "status")
		return whereIfSet(db, filter, sales.FilterCustomerID, "customer_id")
	}
	rows, total, err := findPage[models.QuoteModel](ctx, r.db, filter, where,
		orderClause(filter, QuoteSortFields, "created_at DESC"), preloadItems)
	if err != nil {
		return shared.Page[sales.Quote]{}, err
	}
	return toPage(rows, total, filter, (*models.QuoteModel).ToDomain), nil
}

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists a sales order and its line items in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, order *sales.SalesOrder) error {
	model := models.SalesOrderModelFromDomain(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		return translateWriteError(err, "Order number")
	}
	*order = *model.ToDomain()
	return nil
}

// FindByID finds a sales order with its line items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*sales.SalesOrder, error) {
	m, err := findOne[models.SalesOrderModel](ctx, r.db.Scopes(preloadItems), "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByNumber checks whether an order number is taken
func (r *GormOrderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return exists[models.SalesOrderModel](ctx, r.db, "order_number = ?", number)
}

// FindAll lists sales orders filtered by status and customer
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[sales.SalesOrder], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, sales.FilterStatus, "status")
		return whereIfSet(db, filter, sales.FilterCustomerID, "customer_id")
	}
	rows, total, err := findPage[models.SalesOrderModel](ctx, r.db, filter, where,
		orderClause(filter, OrderSortFields, "created_at DESC"), preloadItems)
	if err != nil {
		return shared.Page[sales.SalesOrder]{}, err
	}
	return toPage(rows, total, filter, (*models.SalesOrderModel).ToDomain), nil
}

// GormShipmentRepository implements sales.ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Create persists a new shipment
func (r *GormShipmentRepository) Create(ctx context.Context, shipment *sales.Shipment) error {
	model := models.ShipmentModelFromDomain(shipment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Shipment number")
	}
	shipment.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uint) (*sales.Shipment, error) {
	m, err := findOne[models.ShipmentModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByNumber checks whether a shipment number is taken
func (r *GormShipmentRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return exists[models.ShipmentModel](ctx, r.db, "shipment_number = ?", number)
}

// FindAll lists shipments filtered by order and status
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[sales.Shipment], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, sales.FilterOrderID, "order_id")
		return whereIfSet(db, filter, sales.FilterStatus, "status")
	}
	rows, total, err := findPage[models.ShipmentModel](ctx, r.db, filter, where,
		orderClause(filter, ShipmentSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[sales.Shipment]{}, err
	}
	return toPage(rows, total, filter, (*models.ShipmentModel).ToDomain), nil
}

var (
	_ sales.QuoteRepository    = (*GormQuoteRepository)(nil)
	_ sales.OrderRepository    = (*GormOrderRepository)(nil)
	_ sales.ShipmentRepository = (*GormShipmentRepository)(nil)
)

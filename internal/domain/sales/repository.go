package sales

import (
	"context"

	"github.com/erp/erpapp/internal/domain/shared"
)

// Filter keys understood by the sales repositories
const (
	FilterStatus     = "status"
	FilterCustomerID = "customer_id"
	FilterOrderID    = "order_id"
)

// QuoteRepository persists quotes together with their line items
type QuoteRepository interface {
	Create(ctx context.Context, quote *Quote) error
	FindByID(ctx context.Context, id uint) (*Quote, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Quote], error)
}

// OrderRepository persists sales orders together with their line items
type OrderRepository interface {
	Create(ctx context.Context, order *SalesOrder) error
	FindByID(ctx context.Context, id uint) (*SalesOrder, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[SalesOrder], error)
}

// ShipmentRepository persists shipments
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *Shipment) error
	FindByID(ctx context.Context, id uint) (*Shipment, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Shipment], error)
}

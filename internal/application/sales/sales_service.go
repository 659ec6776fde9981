package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/accounting"
	"github.com/erp/erpapp/internal/domain/inventory"
	"github.com/erp/erpapp/internal/domain/sales"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var (
	errQuoteNumberExists    = shared.NewDomainError("ALREADY_EXISTS", "Quote number already exists")
	errOrderNumberExists    = shared.NewDomainError("ALREADY_EXISTS", "Order number already exists")
	errShipmentNumberExists = shared.NewDomainError("ALREADY_EXISTS", "Shipment number already exists")
)

// SalesService manages quotes, sales orders and shipments
type SalesService struct {
	quotes    sales.QuoteRepository
	orders    sales.OrderRepository
	shipments sales.ShipmentRepository
	customers accounting.CustomerRepository
	products  inventory.ProductRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewSalesService creates a new sales service
func NewSalesService(
	quotes sales.QuoteRepository,
	orders sales.OrderRepository,
	shipments sales.ShipmentRepository,
	customers accounting.CustomerRepository,
	products inventory.ProductRepository,
	logger *zap.Logger,
) *SalesService {
	return &SalesService{
		quotes:    quotes,
		orders:    orders,
		shipments: shipments,
		customers: customers,
		products:  products,
		logger:    logger,
		now:       time.Now,
	}
}

// buildItems validates each requested line and checks that every referenced
// product exists.
func (s *SalesService) buildItems(ctx context.Context, reqs []LineItemRequest) ([]sales.LineItem, error) {
	items := make([]sales.LineItem, 0, len(reqs))
	seen := make(map[uint]struct{}, len(reqs))
	for i, r := range reqs {
		item, err := sales.NewLineItem(r.ProductID, r.Description, r.Quantity, r.UnitPrice, r.DiscountPercent, r.TaxRate)
		if err != nil {
			de, ok := shared.AsDomainError(err)
			if !ok {
				return nil, err
			}
			return nil, shared.NewDomainError(de.Code, fmt.Sprintf("items[%d]: %s", i, de.Message))
		}
		if _, ok := seen[item.ProductID]; !ok {
			if _, err := s.products.FindByID(ctx, item.ProductID); err != nil {
				return nil, common.TranslateNotFound(err, "Product")
			}
			seen[item.ProductID] = struct{}{}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *SalesService) ensureCustomer(ctx context.Context, id uint) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		return common.TranslateNotFound(err, "Customer")
	}
	return nil
}

func (s *SalesService) dateOrToday(d *common.Date) time.Time {
	if t := d.Ptr(); t != nil {
		return *t
	}
	y, m, day := s.now().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func listFilter(q SalesListQuery) (shared.Filter, error) {
	filter, err := q.ToFilter()
	if err != nil {
		return shared.Filter{}, err
	}
	if q.Status != "" {
		filter = filter.With(sales.FilterStatus, q.Status)
	}
	if q.CustomerID != nil {
		filter = filter.With(sales.FilterCustomerID, *q.CustomerID)
	}
	return filter, nil
}

// ListQuotes lists quotes newest first
func (s *SalesService) ListQuotes(ctx context.Context, q SalesListQuery) (common.ListResponse[QuoteResponse], error) {
	filter, err := listFilter(q)
	if err != nil {
		return common.ListResponse[QuoteResponse]{}, err
	}
	page, err := s.quotes.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[QuoteResponse]{}, err
	}
	return common.NewListResponse(page, ToQuoteResponse), nil
}

// GetQuote returns one quote with its items
func (s *SalesService) GetQuote(ctx context.Context, id uint) (*QuoteResponse, error) {
	quote, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Quote")
	}
	resp := ToQuoteResponse(quote)
	return &resp, nil
}

// CreateQuote creates a quote for an existing customer
func (s *SalesService) CreateQuote(ctx context.Context, req QuoteRequest, actorID uint) (*QuoteResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales", "create_quote")
	defer span.End()

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	quote, err := sales.NewQuote(sales.QuoteDetails{
		QuoteNumber: req.QuoteNumber,
		CustomerID:  req.CustomerID,
		QuoteDate:   s.dateOrToday(req.QuoteDate),
		ValidUntil:  req.ValidUntil.Time,
		Totals: sales.Totals{
			Subtotal:       req.Subtotal,
			TaxAmount:      req.TaxAmount,
			DiscountAmount: req.DiscountAmount,
			TotalAmount:    req.TotalAmount,
		},
		Status: sales.QuoteStatus(req.Status),
		Notes:  req.Notes,
		Items:  items,
	}, common.Uintp(actorID))
	if err != nil {
		return nil, err
	}
	if err := s.ensureCustomer(ctx, quote.CustomerID); err != nil {
		return nil, err
	}
	exists, err := s.quotes.ExistsByNumber(ctx, quote.QuoteNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errQuoteNumberExists
	}
	if err := s.quotes.Create(ctx, quote); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Quote created",
		zap.Uint("quote_id", quote.ID),
		zap.Int("items", len(quote.Items)),
		zap.String("total_amount", quote.TotalAmount.StringFixed(2)),
		zap.Uint("actor_id", actorID),
	)
	resp := ToQuoteResponse(quote)
	return &resp, nil
}

// ListOrders lists sales orders newest first
func (s *SalesService) ListOrders(ctx context.Context, q SalesListQuery) (common.ListResponse[OrderResponse], error) {
	filter, err := listFilter(q)
	if err != nil {
		return common.ListResponse[OrderResponse]{}, err
	}
	page, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[OrderResponse]{}, err
	}
	return common.NewListResponse(page, ToOrderResponse), nil
}

// GetOrder returns one sales order with its items
func (s *SalesService) GetOrder(ctx context.Context, id uint) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Order")
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// CreateOrder creates a sales order for an existing customer, optionally
// from an existing quote.
func (s *SalesService) CreateOrder(ctx context.Context, req OrderRequest, actorID uint) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales", "create_order")
	defer span.End()

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	order, err := sales.NewSalesOrder(sales.OrderDetails{
		OrderNumber:          req.OrderNumber,
		CustomerID:           req.CustomerID,
		QuoteID:              req.QuoteID,
		OrderDate:            s.dateOrToday(req.OrderDate),
		ExpectedDeliveryDate: req.ExpectedDeliveryDate.Ptr(),
		Totals: sales.Totals{
			Subtotal:       req.Subtotal,
			TaxAmount:      req.TaxAmount,
			DiscountAmount: req.DiscountAmount,
			TotalAmount:    req.TotalAmount,
		},
		ShippingCost:    req.ShippingCost,
		Status:          sales.OrderStatus(req.Status),
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		Items:           items,
	}, common.Uintp(actorID))
	if err != nil {
		return nil, err
	}
	if err := s.ensureCustomer(ctx, order.CustomerID); err != nil {
		return nil, err
	}
	if order.QuoteID != nil {
		if _, err := s.quotes.FindByID(ctx, *order.QuoteID); err != nil {
			return nil, common.TranslateNotFound(err, "Quote")
		}
	}
	exists, err := s.orders.ExistsByNumber(ctx, order.OrderNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errOrderNumberExists
	}
	if err := s.orders.Create(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Sales order created",
		zap.Uint("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
		zap.Uint("actor_id", actorID),
	)
	resp := ToOrderResponse(order)
	return &resp, nil
}

// ListShipments lists shipments newest first
func (s *SalesService) ListShipments(ctx context.Context, q ShipmentListQuery) (common.ListResponse[ShipmentResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[ShipmentResponse]{}, err
	}
	if q.OrderID != nil {
		filter = filter.With(sales.FilterOrderID, *q.OrderID)
	}
	if q.Status != "" {
		filter = filter.With(sales.FilterStatus, q.Status)
	}

	page, err := s.shipments.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[ShipmentResponse]{}, err
	}
	return common.NewListResponse(page, ToShipmentResponse), nil
}

// GetShipment returns one shipment
func (s *SalesService) GetShipment(ctx context.Context, id uint) (*ShipmentResponse, error) {
	shipment, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Shipment")
	}
	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

// CreateShipment creates a shipment for an existing order
func (s *SalesService) CreateShipment(ctx context.Context, req ShipmentRequest, actorID uint) (*ShipmentResponse, error) {
	shipment, err := sales.NewShipment(sales.ShipmentDetails{
		ShipmentNumber: req.ShipmentNumber,
		OrderID:        req.OrderID,
		WarehouseID:    req.WarehouseID,
		ShipDate:       req.ShipDate.Ptr(),
		Carrier:        req.Carrier,
		TrackingNumber: req.TrackingNumber,
		Status:         sales.ShipmentStatus(req.Status),
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.orders.FindByID(ctx, shipment.OrderID); err != nil {
		return nil, common.TranslateNotFound(err, "Order")
	}
	exists, err := s.shipments.ExistsByNumber(ctx, shipment.ShipmentNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errShipmentNumberExists
	}
	if err := s.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}

	s.logger.Info("Shipment created",
		zap.Uint("shipment_id", shipment.ID),
		zap.Uint("order_id", shipment.OrderID),
		zap.Uint("actor_id", actorID),
	)
	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

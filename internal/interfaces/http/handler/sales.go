package handler

import (
	salesapp "github.com/erp/erpapp/internal/application/sales"
	"github.com/gin-gonic/gin"
)

// SalesHandler serves /api/sales
type SalesHandler struct {
	BaseHandler
	salesService *salesapp.SalesService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(salesService *salesapp.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// ListQuotes handles GET /api/sales/quotes
func (h *SalesHandler) ListQuotes(c *gin.Context) {
	var q salesapp.SalesListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.salesService.ListQuotes(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetQuote handles GET /api/sales/quotes/:id
func (h *SalesHandler) GetQuote(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.salesService.GetQuote(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateQuote handles POST /api/sales/quotes
func (h *SalesHandler) CreateQuote(c *gin.Context) {
	var req salesapp.QuoteRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.salesService.CreateQuote(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListOrders handles GET /api/sales/orders
func (h *SalesHandler) ListOrders(c *gin.Context) {
	var q salesapp.SalesListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.salesService.ListOrders(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetOrder handles GET /api/sales/orders/:id
func (h *SalesHandler) GetOrder(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.salesService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateOrder handles POST /api/sales/orders
func (h *SalesHandler) CreateOrder(c *gin.Context) {
	var req salesapp.OrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.salesService.CreateOrder(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListShipments handles GET /api/sales/shipments
func (h *SalesHandler) ListShipments(c *gin.Context) {
	var q salesapp.ShipmentListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.salesService.ListShipments(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetShipment handles GET /api/sales/shipments/:id
func (h *SalesHandler) GetShipment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.salesService.GetShipment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateShipment handles POST /api/sales/shipments
func (h *SalesHandler) CreateShipment(c *gin.Context) {
	var req salesapp.ShipmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.salesService.CreateShipment(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

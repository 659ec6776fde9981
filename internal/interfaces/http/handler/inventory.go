package handler

import (
	"github.com/erp/erpapp/internal/application/common"
	inventoryapp "github.com/erp/erpapp/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// InventoryHandler serves /api/inventory
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// ListCategories handles GET /api/inventory/categories
func (h *InventoryHandler) ListCategories(c *gin.Context) {
	var q inventoryapp.CategoryListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.inventoryService.ListCategories(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetCategory handles GET /api/inventory/categories/:id
func (h *InventoryHandler) GetCategory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.inventoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateCategory handles POST /api/inventory/categories
func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	var req inventoryapp.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.inventoryService.CreateCategory(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListProducts handles GET /api/inventory/products
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	var q inventoryapp.ProductListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.inventoryService.ListProducts(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetProduct handles GET /api/inventory/products/:id
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.inventoryService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateProduct handles POST /api/inventory/products
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req inventoryapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.inventoryService.CreateProduct(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListWarehouses handles GET /api/inventory/warehouses
func (h *InventoryHandler) ListWarehouses(c *gin.Context) {
	var q common.PageQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.inventoryService.ListWarehouses(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetWarehouse handles GET /api/inventory/warehouses/:id
func (h *InventoryHandler) GetWarehouse(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.inventoryService.GetWarehouse(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateWarehouse handles POST /api/inventory/warehouses
func (h *InventoryHandler) CreateWarehouse(c *gin.Context) {
	var req inventoryapp.WarehouseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.inventoryService.CreateWarehouse(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListStockMovements handles GET /api/inventory/stock-movements
func (h *InventoryHandler) ListStockMovements(c *gin.Context) {
	var q inventoryapp.StockMovementListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.inventoryService.ListStockMovements(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetStockMovement handles GET /api/inventory/stock-movements/:id
func (h *InventoryHandler) GetStockMovement(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.inventoryService.GetStockMovement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// RecordStockMovement handles POST /api/inventory/stock-movements
func (h *InventoryHandler) RecordStockMovement(c *gin.Context) {
	var req inventoryapp.StockMovementRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.inventoryService.RecordStockMovement(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

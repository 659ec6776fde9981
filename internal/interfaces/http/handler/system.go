package handler

import (
	systemapp "github.com/erp/erpapp/internal/application/system"
	"github.com/gin-gonic/gin"
)

// SystemHandler serves the health and metrics endpoints. Every response is
// 200; a failing dependency shows in the body.
type SystemHandler struct {
	BaseHandler
	systemService *systemapp.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *systemapp.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	h.OK(c, h.systemService.Health())
}

// DetailedHealth handles GET /api/health/detailed
func (h *SystemHandler) DetailedHealth(c *gin.Context) {
	h.OK(c, h.systemService.DetailedHealth(c.Request.Context()))
}

// Metrics handles GET /api/metrics
func (h *SystemHandler) Metrics(c *gin.Context) {
	h.OK(c, h.systemService.Metrics(c.Request.Context()))
}

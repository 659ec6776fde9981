package handler

import (
	dashboardapp "github.com/erp/erpapp/internal/application/dashboard"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves /api/dashboard
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboardapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	resp, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// RecentActivities handles GET /api/dashboard/recent-activities?limit=10
func (h *DashboardHandler) RecentActivities(c *gin.Context) {
	limit, ok := h.queryInt(c, "limit", dashboardapp.DefaultActivityLimit)
	if !ok {
		return
	}
	resp, err := h.dashboardService.RecentActivities(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// RevenueChart handles GET /api/dashboard/charts/revenue?months=12
func (h *DashboardHandler) RevenueChart(c *gin.Context) {
	months, ok := h.queryInt(c, "months", dashboardapp.DefaultChartMonths)
	if !ok {
		return
	}
	resp, err := h.dashboardService.RevenueChart(c.Request.Context(), months)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// SalesPipeline handles GET /api/dashboard/charts/sales-pipeline
func (h *DashboardHandler) SalesPipeline(c *gin.Context) {
	resp, err := h.dashboardService.SalesPipeline(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

package router

import (
	"net/http"

	"github.com/erp/erpapp/internal/infrastructure/config"
	"github.com/erp/erpapp/internal/infrastructure/logger"
	"github.com/erp/erpapp/internal/infrastructure/telemetry"
	"github.com/erp/erpapp/internal/interfaces/http/dto"
	"github.com/erp/erpapp/internal/interfaces/http/handler"
	"github.com/erp/erpapp/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles one handler per module
type Handlers struct {
	Auth       *handler.AuthHandler
	CRM        *handler.CRMHandler
	Inventory  *handler.InventoryHandler
	Accounting *handler.AccountingHandler
	HR         *handler.HRHandler
	Sales      *handler.SalesHandler
	Dashboard  *handler.DashboardHandler
	System     *handler.SystemHandler
}

// EngineOptions carries the optional collaborators of the engine
type EngineOptions struct {
	// Authenticator resolves bearer tokens; required
	Authenticator middleware.Authenticator
	// Limiter enables per-client rate limiting when set
	Limiter middleware.Limiter
	// MeterProvider enables the HTTP metrics middleware when enabled
	MeterProvider *telemetry.MeterProvider
	// MetricsHandler serves the Prometheus scrape endpoint when set
	MetricsHandler http.Handler
}

// NewEngine builds the gin engine with the global middleware stack and the
// full route table.
func NewEngine(cfg *config.Config, h Handlers, opts EngineOptions, log *zap.Logger) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.SpanAttributes())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(opts.MeterProvider, log))
	engine.Use(middleware.Profiling(cfg.Profiling.Enabled))
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if opts.Limiter != nil {
		engine.Use(middleware.RateLimit(opts.Limiter))
		log.Info("Rate limiting enabled",
			zap.String("backend", cfg.HTTP.RateLimitBackend),
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, "Not Found", middleware.GetRequestID(c)))
	})

	engine.GET("/health", h.System.Health)
	if opts.MetricsHandler != nil {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(opts.MetricsHandler))
	}

	r := NewRouter(engine)
	for _, group := range apiGroups(h, middleware.JWTAuthMiddleware(opts.Authenticator)) {
		r.Register(group)
	}
	r.Setup()

	return engine
}

// apiGroups returns the /api route table. Only registration, login, the
// detailed health check and the entity metrics are public.
func apiGroups(h Handlers, auth gin.HandlerFunc) []*DomainGroup {
	public := NewDomainGroup("public", "")
	public.POST("/auth/register", h.Auth.Register)
	public.POST("/auth/login", h.Auth.Login)
	public.GET("/health/detailed", h.System.DetailedHealth)
	public.GET("/metrics", h.System.Metrics)

	authRoutes := NewDomainGroup("auth", "/auth").Use(auth)
	authRoutes.GET("/me", h.Auth.Me)
	authRoutes.POST("/refresh", h.Auth.Refresh)
	authRoutes.POST("/logout", h.Auth.Logout)

	crmRoutes := NewDomainGroup("crm", "/crm").Use(auth)
	crmRoutes.Resource("/leads", h.CRM.ListLeads, h.CRM.CreateLead, h.CRM.GetLead)
	crmRoutes.PUT("/leads/:id", h.CRM.UpdateLead)
	crmRoutes.Resource("/contacts", h.CRM.ListContacts, h.CRM.CreateContact, h.CRM.GetContact)
	crmRoutes.Resource("/deals", h.CRM.ListDeals, h.CRM.CreateDeal, h.CRM.GetDeal)
	crmRoutes.Resource("/activities", h.CRM.ListActivities, h.CRM.CreateActivity, h.CRM.GetActivity)
	crmRoutes.POST("/activities/:id/complete", h.CRM.CompleteActivity)
	crmRoutes.Resource("/customers", h.CRM.ListCustomers, h.CRM.CreateCustomer, h.CRM.GetCustomer)

	inventoryRoutes := NewDomainGroup("inventory", "/inventory").Use(auth)
	inventoryRoutes.Resource("/products", h.Inventory.ListProducts, h.Inventory.CreateProduct, h.Inventory.GetProduct)
	inventoryRoutes.Resource("/categories", h.Inventory.ListCategories, h.Inventory.CreateCategory, h.Inventory.GetCategory)
	inventoryRoutes.Resource("/warehouses", h.Inventory.ListWarehouses, h.Inventory.CreateWarehouse, h.Inventory.GetWarehouse)
	inventoryRoutes.Resource("/stock-movements", h.Inventory.ListStockMovements, h.Inventory.RecordStockMovement, h.Inventory.GetStockMovement)

	accountingRoutes := NewDomainGroup("accounting", "/accounting").Use(auth)
	accountingRoutes.Resource("/invoices", h.Accounting.ListInvoices, h.Accounting.CreateInvoice, h.Accounting.GetInvoice)
	accountingRoutes.Resource("/customers", h.Accounting.ListCustomers, h.Accounting.CreateCustomer, h.Accounting.GetCustomer)
	accountingRoutes.Resource("/payments", h.Accounting.ListPayments, h.Accounting.RecordPayment, h.Accounting.GetPayment)
	accountingRoutes.Resource("/expenses", h.Accounting.ListExpenses, h.Accounting.CreateExpense, h.Accounting.GetExpense)
	accountingRoutes.POST("/expenses/:id/approve", h.Accounting.ApproveExpense)

	hrRoutes := NewDomainGroup("hr", "/hr").Use(auth)
	hrRoutes.Resource("/employees", h.HR.ListEmployees, h.HR.CreateEmployee, h.HR.GetEmployee)
	hrRoutes.Resource("/departments", h.HR.ListDepartments, h.HR.CreateDepartment, h.HR.GetDepartment)
	hrRoutes.Resource("/attendance", h.HR.ListAttendance, h.HR.RecordAttendance, h.HR.GetAttendance)
	hrRoutes.Resource("/leave-requests", h.HR.ListLeaveRequests, h.HR.CreateLeaveRequest, h.HR.GetLeaveRequest)
	hrRoutes.POST("/leave-requests/:id/approve", h.HR.ApproveLeaveRequest)
	hrRoutes.POST("/leave-requests/:id/reject", h.HR.RejectLeaveRequest)
	hrRoutes.Resource("/payrolls", h.HR.ListPayrolls, h.HR.CreatePayroll, h.HR.GetPayroll)

	salesRoutes := NewDomainGroup("sales", "/sales").Use(auth)
	salesRoutes.Resource("/quotes", h.Sales.ListQuotes, h.Sales.CreateQuote, h.Sales.GetQuote)
	salesRoutes.Resource("/orders", h.Sales.ListOrders, h.Sales.CreateOrder, h.Sales.GetOrder)
	salesRoutes.Resource("/shipments", h.Sales.ListShipments, h.Sales.CreateShipment, h.Sales.GetShipment)

	dashboardRoutes := NewDomainGroup("dashboard", "/dashboard").Use(auth)
	dashboardRoutes.GET("/stats", h.Dashboard.Stats)
	dashboardRoutes.GET("/recent-activities", h.Dashboard.RecentActivities)
	dashboardRoutes.GET("/charts/revenue", h.Dashboard.RevenueChart)
	dashboardRoutes.GET("/charts/sales-pipeline", h.Dashboard.SalesPipeline)

	return []*DomainGroup{
		public, authRoutes, crmRoutes, inventoryRoutes, accountingRoutes,
		hrRoutes, salesRoutes, dashboardRoutes,
	}
}

// Command server runs the ERP HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	accountingapp "github.com/erp/erpapp/internal/application/accounting"
	crmapp "github.com/erp/erpapp/internal/application/crm"
	dashboardapp "github.com/erp/erpapp/internal/application/dashboard"
	hrapp "github.com/erp/erpapp/internal/application/hr"
	identityapp "github.com/erp/erpapp/internal/application/identity"
	inventoryapp "github.com/erp/erpapp/internal/application/inventory"
	salesapp "github.com/erp/erpapp/internal/application/sales"
	systemapp "github.com/erp/erpapp/internal/application/system"
	"github.com/erp/erpapp/internal/infrastructure/auth"
	"github.com/erp/erpapp/internal/infrastructure/cache"
	"github.com/erp/erpapp/internal/infrastructure/config"
	"github.com/erp/erpapp/internal/infrastructure/logger"
	"github.com/erp/erpapp/internal/infrastructure/migration"
	"github.com/erp/erpapp/internal/infrastructure/persistence"
	"github.com/erp/erpapp/internal/infrastructure/scheduler"
	"github.com/erp/erpapp/internal/infrastructure/telemetry"
	"github.com/erp/erpapp/internal/interfaces/http/handler"
	"github.com/erp/erpapp/internal/interfaces/http/middleware"
	"github.com/erp/erpapp/internal/interfaces/http/router"
	"github.com/erp/erpapp/migrations"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ERP server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
		zap.String("port", cfg.App.Port),
	)
	if cfg.JWT.Secret == config.DevelopmentJWTSecret {
		log.Warn("Using the development JWT secret; set JWT_SECRET before deploying")
	}
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, cfg.App.Version, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, cfg.App.Version, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Profiling, cfg.App.Name, log)
	if err != nil {
		log.Warn("Continuous profiling disabled", zap.Error(err))
	}

	// Database
	db, err := persistence.NewDatabase(cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := migrateSchema(cfg, db, log); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbSystem := "postgresql"
		if db.Driver() == "sqlite" {
			dbSystem = "sqlite"
		}
		if err := telemetry.NewDBTracingPlugin(cfg.Telemetry, dbSystem, log).Register(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected", zap.String("driver", db.Driver()))

	// Redis
	var redisClient *redis.Client
	var checkers []systemapp.Checker
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		checkers = append(checkers, cache.NewRedisChecker(redisClient))
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	dealRepo := persistence.NewGormDealRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	attendanceRepo := persistence.NewGormAttendanceRepository(db.DB)
	leaveRepo := persistence.NewGormLeaveRequestRepository(db.DB)
	payrollRepo := persistence.NewGormPayrollRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)

	// Application services
	authService := identityapp.NewAuthService(
		userRepo,
		auth.NewJWTSigner(cfg.JWT),
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		identityapp.AuthServiceConfig{
			MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
			LockDuration:     cfg.Auth.LockDuration,
			AccessTokenTTL:   cfg.JWT.AccessTokenExpiration,
		},
		log,
	)
	crmService := crmapp.NewCRMService(leadRepo, contactRepo, dealRepo, activityRepo, log)
	accountingService := accountingapp.NewAccountingService(customerRepo, invoiceRepo, paymentRepo, paymentRepo, expenseRepo, log)
	inventoryService := inventoryapp.NewInventoryService(categoryRepo, productRepo, warehouseRepo, movementRepo, movementRepo, log)
	hrService := hrapp.NewHRService(departmentRepo, employeeRepo, attendanceRepo, leaveRepo, payrollRepo, log)
	salesService := salesapp.NewSalesService(quoteRepo, orderRepo, shipmentRepo, customerRepo, productRepo, log)
	dashboardService := dashboardapp.NewDashboardService(dashboardRepo, log)
	systemService := systemapp.NewSystemService(db, dashboardRepo, cfg.App.Version, log, checkers...)

	// Background jobs
	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.New(cfg.Scheduler, log)
		if err := jobs.Register(cfg.Scheduler.OverdueInvoiceCron, scheduler.NewOverdueInvoiceSweeper(invoiceRepo, log)); err != nil {
			log.Fatal("Failed to schedule overdue invoice sweep", zap.Error(err))
		}
		jobs.Start()
	}

	// HTTP
	opts := router.EngineOptions{
		Authenticator: authService,
		Limiter:       newRateLimiter(ctx, cfg, redisClient, log),
		MeterProvider: meterProvider,
	}
	if cfg.Metrics.PrometheusEnabled {
		registry := telemetry.NewPrometheusRegistry(dashboardRepo, log)
		opts.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}
	engine := router.NewEngine(cfg, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		CRM:        handler.NewCRMHandler(crmService, accountingService),
		Inventory:  handler.NewInventoryHandler(inventoryService),
		Accounting: handler.NewAccountingHandler(accountingService),
		HR:         handler.NewHRHandler(hrService),
		Sales:      handler.NewSalesHandler(salesService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		System:     handler.NewSystemHandler(systemService),
	}, opts, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if jobs != nil {
		if err := jobs.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping scheduler", zap.Error(err))
		}
	}
	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrateSchema creates the schema. SQLite and auto_migrate use the model
// definitions; PostgreSQL otherwise applies the embedded migrations.
func migrateSchema(cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if db.Driver() == "sqlite" || cfg.Database.AutoMigrate {
		return db.AutoMigrate()
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.NewFromFS(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	// closing the migrator would close the shared connection pool
	return m.Up()
}

// newRateLimiter picks the configured limiter backend. It returns nil when
// rate limiting is off.
func newRateLimiter(ctx context.Context, cfg *config.Config, redisClient *redis.Client, log *zap.Logger) middleware.Limiter {
	if !cfg.HTTP.RateLimitEnabled {
		return nil
	}
	if cfg.HTTP.RateLimitBackend == "redis" {
		if redisClient != nil {
			return cache.NewRedisRateLimiter(redisClient, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		}
		log.Warn("Redis rate limiting requested but Redis is disabled; using memory backend")
	}

	limiter := cache.NewMemoryRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
	go limiter.Run(ctx)
	return limiter
}

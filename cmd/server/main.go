package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	boardapp "github.com/bizgrid/backend/internal/application/board"
	catalogapp "github.com/bizgrid/backend/internal/application/catalog"
	dashboardapp "github.com/bizgrid/backend/internal/application/dashboard"
	financeapp "github.com/bizgrid/backend/internal/application/finance"
	identityapp "github.com/bizgrid/backend/internal/application/identity"
	inventoryapp "github.com/bizgrid/backend/internal/application/inventory"
	taskapp "github.com/bizgrid/backend/internal/application/task"
	workforceapp "github.com/bizgrid/backend/internal/application/workforce"
	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/infrastructure/auth"
	"github.com/bizgrid/backend/internal/infrastructure/config"
	"github.com/bizgrid/backend/internal/infrastructure/logger"
	"github.com/bizgrid/backend/internal/infrastructure/persistence"
	"github.com/bizgrid/backend/internal/infrastructure/telemetry"
	"github.com/bizgrid/backend/internal/interfaces/http/handler"
	"github.com/bizgrid/backend/internal/interfaces/http/middleware"
	"github.com/bizgrid/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting BizGrid Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry providers: no-ops unless enabled in config
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:  gormLog,
		Tracing: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	financeReportRepo := persistence.NewGormFinanceReportRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	boardRepo := persistence.NewGormBoardRepository(db.DB)

	// Token blacklist: Redis when reachable, in-memory fallback so a
	// single-node deployment works without Redis
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		log.Info("Redis token blacklist connected")
		blacklist = redisBlacklist
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	hasher := auth.NewBcryptHasher()

	// Business metrics are optional and ride on the meter provider
	var businessMetrics *telemetry.BusinessMetrics
	if meterProvider.IsEnabled() {
		businessMetrics, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:             meterProvider.Meter("bizgrid.business"),
			Logger:            log,
			InventoryProvider: inventoryRepo,
		})
		if err != nil {
			log.Error("Failed to initialize business metrics", zap.Error(err))
			businessMetrics = nil
		} else {
			businessMetrics.StartPeriodicCollection(ctx, orgRepo, 5*time.Minute)
		}
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, orgRepo, jwtService, hasher, blacklist, businessMetrics, log)
	userService := identityapp.NewUserService(userRepo, hasher, blacklist, jwtService.GetRefreshTokenExpiration())
	orgService := identityapp.NewOrganizationService(orgRepo, log)
	employeeService := workforceapp.NewEmployeeService(employeeRepo)
	productService := catalogapp.NewProductService(productRepo)
	productImportService := catalogapp.NewProductImportService(productRepo)
	inventoryService := inventoryapp.NewInventoryService(inventoryRepo, adjustmentRepo, productRepo, businessMetrics, log)
	transactionService := financeapp.NewTransactionService(transactionRepo, businessMetrics)
	categoryService := financeapp.NewCategoryService(categoryRepo)
	reportService := financeapp.NewReportService(financeReportRepo)
	taskService := taskapp.NewTaskService(taskRepo, boardRepo)
	boardService := boardapp.NewBoardService(boardRepo)
	dashboardService := dashboardapp.NewDashboardService(inventoryRepo, financeReportRepo, taskRepo, employeeRepo)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	productHandler := handler.NewProductHandler(productService, productImportService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	reportHandler := handler.NewReportHandler(reportService)
	taskHandler := handler.NewTaskHandler(taskService)
	boardHandler := handler.NewBoardHandler(boardService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.App.Env)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order: request ID, panic recovery, request
	// logging, security headers, CORS, body limit, tracing, HTTP metrics,
	// then the optional global rate limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       meterProvider.IsEnabled(),
	}))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check stays outside API versioning and authentication
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))
	// Span enrichment needs the claims, so it goes after authentication
	r.Use(middleware.TracingAttributeInjector())

	adminOnly := middleware.RequireRole(string(identity.RoleAdmin))
	adminOrManager := middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleManager))

	// Auth endpoints; the credential ones get their own tighter limiter
	authRoutes := router.NewDomainGroup("/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authGuard := middleware.RateLimit(authLimiter)
		authRoutes.POST("/register", authGuard, authHandler.Register)
		authRoutes.POST("/login", authGuard, authHandler.Login)
	} else {
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)

	// Organization endpoints; mutations are admin-only
	orgRoutes := router.NewDomainGroup("/orgs")
	orgRoutes.GET("/current", orgHandler.GetCurrent)
	orgRoutes.PATCH("/:id", adminOnly, orgHandler.Update)
	orgRoutes.DELETE("/:id", adminOnly, orgHandler.Delete)

	// User management; mutations are admin-only
	userRoutes := router.NewDomainGroup("/users")
	userRoutes.POST("", adminOnly, userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.GetByID)
	userRoutes.PATCH("/:id", adminOnly, userHandler.Update)
	userRoutes.DELETE("/:id", adminOnly, userHandler.Delete)

	// Employee records; mutations need admin or manager
	employeeRoutes := router.NewDomainGroup("/employees")
	employeeRoutes.POST("", adminOrManager, employeeHandler.Create)
	employeeRoutes.GET("", employeeHandler.List)
	employeeRoutes.GET("/:id", employeeHandler.GetByID)
	employeeRoutes.PATCH("/:id", adminOrManager, employeeHandler.Update)
	employeeRoutes.DELETE("/:id", adminOrManager, employeeHandler.Delete)

	// Product catalog; mutations need admin or manager
	productRoutes := router.NewDomainGroup("/products")
	productRoutes.POST("", adminOrManager, productHandler.Create)
	productRoutes.POST("/import", adminOrManager, productHandler.Import)
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/:id", productHandler.GetByID)
	productRoutes.PATCH("/:id", adminOrManager, productHandler.Update)
	productRoutes.DELETE("/:id", adminOrManager, productHandler.Delete)

	// Inventory items and their adjustment audit trail
	inventoryRoutes := router.NewDomainGroup("/inventory")
	inventoryRoutes.POST("", inventoryHandler.Create)
	inventoryRoutes.GET("", inventoryHandler.List)
	inventoryRoutes.GET("/low-stock", inventoryHandler.ListLowStock)
	inventoryRoutes.GET("/:id", inventoryHandler.GetByID)
	inventoryRoutes.PATCH("/:id", inventoryHandler.Adjust)
	inventoryRoutes.GET("/:id/adjustments", inventoryHandler.GetAdjustments)
	inventoryRoutes.DELETE("/:id", inventoryHandler.Delete)

	// Finance: transactions, categories, reports
	financeRoutes := router.NewDomainGroup("/finance")
	financeRoutes.POST("/transactions", transactionHandler.Create)
	financeRoutes.GET("/transactions", transactionHandler.List)
	financeRoutes.GET("/transactions/:id", transactionHandler.GetByID)
	financeRoutes.PATCH("/transactions/:id", transactionHandler.Update)
	financeRoutes.DELETE("/transactions/:id", transactionHandler.Delete)
	financeRoutes.POST("/categories", categoryHandler.Create)
	financeRoutes.GET("/categories", categoryHandler.List)
	financeRoutes.GET("/categories/:id", categoryHandler.GetByID)
	financeRoutes.PATCH("/categories/:id", categoryHandler.Update)
	financeRoutes.DELETE("/categories/:id", categoryHandler.Delete)
	financeRoutes.GET("/summary", reportHandler.Summary)
	financeRoutes.GET("/charts/revenue-vs-expense", reportHandler.RevenueVsExpense)
	financeRoutes.GET("/charts/profit-trend", reportHandler.ProfitTrend)
	financeRoutes.GET("/charts/category-breakdown", reportHandler.CategoryBreakdown)

	// Tasks
	taskRoutes := router.NewDomainGroup("/tasks")
	taskRoutes.POST("", taskHandler.Create)
	taskRoutes.GET("", taskHandler.List)
	taskRoutes.GET("/:id", taskHandler.GetByID)
	taskRoutes.PATCH("/:id", taskHandler.Update)
	taskRoutes.DELETE("/:id", taskHandler.Delete)

	// Kanban boards with column and card sub-resources
	boardRoutes := router.NewDomainGroup("/boards")
	boardRoutes.POST("", boardHandler.Create)
	boardRoutes.GET("", boardHandler.List)
	boardRoutes.GET("/:id", boardHandler.GetByID)
	boardRoutes.PATCH("/:id", boardHandler.Update)
	boardRoutes.DELETE("/:id", boardHandler.Delete)
	boardRoutes.POST("/:id/columns", boardHandler.AddColumn)
	boardRoutes.PATCH("/:id/columns/:columnId", boardHandler.UpdateColumn)
	boardRoutes.DELETE("/:id/columns/:columnId", boardHandler.RemoveColumn)
	boardRoutes.POST("/:id/columns/:columnId/cards", boardHandler.AddCard)
	boardRoutes.PATCH("/:id/columns/:columnId/cards/:cardId", boardHandler.UpdateCard)
	boardRoutes.DELETE("/:id/columns/:columnId/cards/:cardId", boardHandler.RemoveCard)
	boardRoutes.PATCH("/:id/cards/:cardId/move", boardHandler.MoveCard)

	// Dashboard
	dashboardRoutes := router.NewDomainGroup("/dashboard")
	dashboardRoutes.GET("/summary", dashboardHandler.Summary)

	// Unauthenticated service endpoints
	systemRoutes := router.NewDomainGroup("/system")
	systemRoutes.GET("/info", systemHandler.Info)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(orgRoutes).
		Register(userRoutes).
		Register(employeeRoutes).
		Register(productRoutes).
		Register(inventoryRoutes).
		Register(financeRoutes).
		Register(taskRoutes).
		Register(boardRoutes).
		Register(dashboardRoutes).
		Register(systemRoutes)

	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

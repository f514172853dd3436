package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/clinic/backend/internal/application/billing"
	catalogapp "github.com/clinic/backend/internal/application/catalog"
	clinicplanapp "github.com/clinic/backend/internal/application/clinicplan"
	patientapp "github.com/clinic/backend/internal/application/patient"
	"github.com/clinic/backend/internal/infrastructure/auth"
	"github.com/clinic/backend/internal/infrastructure/config"
	"github.com/clinic/backend/internal/infrastructure/logger"
	"github.com/clinic/backend/internal/infrastructure/persistence"
	"github.com/clinic/backend/internal/interfaces/http/handler"
	"github.com/clinic/backend/internal/interfaces/http/middleware"
	"github.com/clinic/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting Clinic Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	patientRepo := persistence.NewGormPatientRepository(db.DB)
	treatmentRepo := persistence.NewGormTreatmentRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	chargeRepo := persistence.NewGormTreatmentChargeRepository(db.DB)
	visitRepo := persistence.NewGormVisitRepository(db.DB)
	saleRepo := persistence.NewGormProductSaleRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize application services
	patientService := patientapp.NewPatientService(patientRepo)
	treatmentService := catalogapp.NewTreatmentService(treatmentRepo)
	planService := clinicplanapp.NewPlanService(planRepo)
	ledgerService := billingapp.NewLedgerService(chargeRepo, visitRepo, saleRepo, patientRepo)
	syncService := billingapp.NewSyncService(chargeRepo, planRepo, treatmentRepo, log)
	summaryService := billingapp.NewSummaryService(chargeRepo, visitRepo, saleRepo, paymentRepo)
	paymentService := billingapp.NewPaymentService(paymentRepo, chargeRepo, visitRepo, saleRepo, patientRepo)

	// Initialize HTTP handlers
	patientHandler := handler.NewPatientHandler(patientService)
	treatmentHandler := handler.NewTreatmentCatalogHandler(treatmentService)
	planHandler := handler.NewPlanHandler(planService)
	billingHandler := handler.NewBillingHandler(ledgerService, syncService, summaryService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Treatment catalog
	treatmentRoutes := router.NewDomainGroup("treatments", "/treatments")
	treatmentRoutes.POST("", treatmentHandler.Create)
	treatmentRoutes.GET("", treatmentHandler.List)
	treatmentRoutes.GET("/active", treatmentHandler.ListActive)
	treatmentRoutes.GET("/price", treatmentHandler.LookupPrice)
	treatmentRoutes.GET("/:id", treatmentHandler.GetByID)
	treatmentRoutes.PATCH("/:id", treatmentHandler.Update)
	treatmentRoutes.POST("/:id/deactivate", treatmentHandler.Deactivate)

	// Patient directory, treatment plans and the billing ledger
	patientRoutes := router.NewDomainGroup("patients", "/patients")
	patientRoutes.POST("", patientHandler.Create)
	patientRoutes.GET("", patientHandler.List)
	patientRoutes.GET("/:id", patientHandler.GetByID)
	patientRoutes.PATCH("/:id", patientHandler.Update)
	patientRoutes.POST("/:id/deactivate", patientHandler.Deactivate)
	// Treatment plan
	patientRoutes.PUT("/:id/plan", planHandler.SavePlan)
	patientRoutes.GET("/:id/plan", planHandler.GetActivePlan)
	patientRoutes.DELETE("/:id/plan", planHandler.DeleteAllForPatient)
	patientRoutes.GET("/:id/plan/instances", planHandler.GetActiveInstances)
	// Ledger
	patientRoutes.POST("/:id/visits", billingHandler.AddVisit)
	patientRoutes.GET("/:id/visits", billingHandler.GetPatientVisits)
	patientRoutes.GET("/:id/visit-billing", billingHandler.GetVisitBilling)
	patientRoutes.POST("/:id/charges", billingHandler.AddCharge)
	patientRoutes.GET("/:id/charges", billingHandler.GetPatientCharges)
	patientRoutes.POST("/:id/charges/sync", billingHandler.SyncCharges)
	patientRoutes.POST("/:id/products", billingHandler.AddProductSale)
	patientRoutes.GET("/:id/products", billingHandler.GetPatientProductSales)
	patientRoutes.POST("/:id/payments", paymentHandler.AddPayment)
	patientRoutes.GET("/:id/payments", paymentHandler.GetPatientPayments)
	patientRoutes.POST("/:id/ledger-items/:item_id/payments", paymentHandler.RecordItemPayment)
	patientRoutes.GET("/:id/summary", billingHandler.GetPatientSummary)

	// Plan treatment instances addressed directly
	planTreatmentRoutes := router.NewDomainGroup("plan-treatments", "/plan-treatments")
	planTreatmentRoutes.PATCH("/:id", planHandler.UpdateStatus)
	planTreatmentRoutes.DELETE("/:id", planHandler.DeleteTreatment)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(treatmentRoutes).
		Register(patientRoutes).
		Register(planTreatmentRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
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

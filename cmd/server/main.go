package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	capitalapp "github.com/companies-office/backend/internal/application/capital"
	registryapp "github.com/companies-office/backend/internal/application/registry"
	"github.com/companies-office/backend/internal/infrastructure/audit"
	"github.com/companies-office/backend/internal/infrastructure/auth"
	"github.com/companies-office/backend/internal/infrastructure/config"
	"github.com/companies-office/backend/internal/infrastructure/logger"
	"github.com/companies-office/backend/internal/infrastructure/persistence"
	"github.com/companies-office/backend/internal/infrastructure/telemetry"
	"github.com/companies-office/backend/internal/interfaces/http/handler"
	"github.com/companies-office/backend/internal/interfaces/http/middleware"
	"github.com/companies-office/backend/internal/interfaces/http/router"
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

	log.Info("Starting Companies Register",
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

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled,
		DBName:     cfg.Database.DBName,
		LogFullSQL: cfg.Telemetry.LogFullSQL,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	shareholderRepo := persistence.NewGormShareholderRepository(db.DB)
	shareClassRepo := persistence.NewGormShareClassRepository(db.DB)
	allocationRepo := persistence.NewGormShareAllocationRepository(db.DB)

	// Audit trail sink
	auditSink := audit.NewZapSink(log)

	// Initialize application services
	companyService := registryapp.NewCompanyService(companyRepo, auditSink)
	shareholderService := registryapp.NewShareholderService(companyRepo, shareholderRepo, auditSink)
	shareClassService := capitalapp.NewShareClassService(companyRepo, shareClassRepo, allocationRepo, auditSink)
	allocationService := capitalapp.NewAllocationService(companyRepo, shareholderRepo, shareClassRepo, allocationRepo, auditSink)
	capTableService := capitalapp.NewCapTableService(companyRepo, shareholderRepo, shareClassRepo, allocationRepo)

	// Authentication
	jwtService := auth.NewJWTService(cfg.JWT)
	authn := middleware.JWTAuth(jwtService)

	// Initialize HTTP handlers
	companyHandler := handler.NewCompanyHandler(companyService, authn)
	shareholderHandler := handler.NewShareholderHandler(shareholderService, authn)
	shareClassHandler := handler.NewShareClassHandler(shareClassService, capTableService, authn)
	allocationHandler := handler.NewAllocationHandler(allocationService, capTableService, authn)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report validation failures using JSON field names
	middleware.SetupValidator()

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
	// 3. Tracing - OpenTelemetry spans (when enabled)
	// 4. Logger - Log requests
	// 5. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(companyHandler).
		Register(shareholderHandler).
		Register(shareClassHandler).
		Register(allocationHandler)
	r.Setup()

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

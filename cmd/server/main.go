package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	anticipationapp "github.com/anticipay/backend/internal/application/anticipation"
	"github.com/anticipay/backend/internal/infrastructure/config"
	"github.com/anticipay/backend/internal/infrastructure/event"
	"github.com/anticipay/backend/internal/infrastructure/logger"
	"github.com/anticipay/backend/internal/infrastructure/persistence"
	"github.com/anticipay/backend/internal/infrastructure/telemetry"
	"github.com/anticipay/backend/internal/interfaces/http/handler"
	"github.com/anticipay/backend/internal/interfaces/http/middleware"
	"github.com/anticipay/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/anticipay/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Anticipay Backend API
//	@version		1.0
//	@description	Creator payment anticipation API. Creators request early payout of their receivables and a fixed-rate fee is withheld from the amount paid out.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/anticipay/backend
//	@contact.email	support@anticipay.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	ctx := context.Background()

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

	// OTLP log export: tee zap output through the OTEL logger provider so log
	// records reach the collector correlated with traces
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down log exporter", zap.Error(err))
		}
	}()
	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          logger.ParseLevel(cfg.Log.Level),
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore)
	}

	log.Info("Starting Anticipay Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Distributed tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    "1.0.0",
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Metrics export
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
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Continuous profiling. A failed profiler start is not fatal: the service
	// is still fully functional without it
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.Profiling.ApplicationName,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
	}, log)
	if err != nil {
		log.Warn("Failed to start profiler, continuing without profiling", zap.Error(err))
	} else {
		defer profiler.Stop()
		if profiler.IsEnabled() && tracerProvider.IsEnabled() {
			if err := tracerProvider.EnableSpanProfiles(); err != nil {
				log.Warn("Failed to link span profiles", zap.Error(err))
			}
		}
	}
	profilingEnabled := profiler != nil && profiler.IsEnabled()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// SQL-level tracing: every query becomes a child span of the request span
	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBName:          cfg.Database.DBName,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing plugin", zap.Error(err))
		}
	}

	// SQL-level metrics: query latency, error and slow-query counters, pool stats
	if meterProvider.IsEnabled() {
		dbMetricsCfg := telemetry.DefaultDBMetricsConfig()
		dbMetricsCfg.SlowQueryThreshold = cfg.Telemetry.DBSlowQueryThresh
		dbMetrics, err := telemetry.NewDBMetrics(meterProvider.Meter("db.client"), dbMetricsCfg, log)
		if err != nil {
			log.Warn("Failed to initialize database metrics", zap.Error(err))
		} else {
			if err := telemetry.NewDBMetricsPlugin(dbMetrics, log).Initialize(db.DB); err != nil {
				log.Warn("Failed to register database metrics plugin", zap.Error(err))
			}
			if sqlDB, err := db.DB.DB(); err == nil {
				dbMetrics.SetSQLDB(sqlDB)
				dbMetrics.StartPoolStatsCollection(ctx)
			}
			defer dbMetrics.Stop()
		}
	}

	// Initialize repositories
	anticipationRepo := persistence.NewGormAnticipationRequestRepository(db.DB)

	// Initialize application services
	anticipationService := anticipationapp.NewAnticipationService(anticipationRepo, log)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Audit trail: every anticipation lifecycle event lands in the log
	auditHandler := anticipationapp.NewAnticipationAuditHandler(log)
	eventBus.Subscribe(auditHandler)

	log.Info("Event handlers registered",
		zap.Strings("anticipation_audit_events", auditHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	anticipationService.SetEventPublisher(eventBus)

	// The purge capability exists only when explicitly enabled; without it the
	// cleanup endpoint is never mounted and the service rejects purge calls
	if cfg.Admin.CleanupEnabled {
		anticipationService.SetPurger(anticipationRepo)
		log.Warn("Admin cleanup enabled: anticipation requests can be purged by creator")
	}

	// Business metrics: lifecycle counters plus a periodic status-count gauge
	// sampled through the repository
	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:          meterProvider.Meter("business"),
			Logger:         log,
			StatusProvider: anticipationRepo,
		})
		if err != nil {
			log.Warn("Failed to initialize business metrics", zap.Error(err))
		} else {
			anticipationService.SetBusinessMetrics(businessMetrics)
			businessMetrics.StartPeriodicCollection(ctx, 5*time.Minute)
			defer businessMetrics.Stop()
		}
	}

	// Initialize HTTP handlers
	anticipationHandler := handler.NewAnticipationHandler(anticipationService)
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
	// 7. Tracing - One server span per request, with route/request attributes
	// 8. HTTPMetrics - Request counters and latency histograms
	// 9. Profiling - Tag CPU samples with route labels
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Request tracing and metrics
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.Enabled,
	}))

	// Profiling labels
	profilingCfg := middleware.DefaultProfilingConfig()
	profilingCfg.Enabled = profilingEnabled
	engine.Use(middleware.ProfilingWithConfig(profilingCfg))

	// Health check endpoint (outside API versioning, never rate limited)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Rate limiting applies to the API group only, keeping /health and the
	// docs routes unthrottled
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		r.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Anticipation domain routes
	anticipationRoutes := router.NewDomainGroup("anticipation", "/anticipations")
	anticipationRoutes.POST("", anticipationHandler.Create)
	anticipationRoutes.GET("", anticipationHandler.List)
	anticipationRoutes.GET("/simulate", anticipationHandler.Simulate)
	anticipationRoutes.POST("/:id/approve", anticipationHandler.Approve)
	anticipationRoutes.POST("/:id/reject", anticipationHandler.Reject)
	if cfg.Admin.CleanupEnabled {
		anticipationRoutes.DELETE("/cleanup", anticipationHandler.Cleanup)
	}

	// System routes with swagger-documented handlers
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(anticipationRoutes).
		Register(systemRoutes)

	// Setup routes
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
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

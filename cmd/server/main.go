package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	competencyapp "github.com/competency/backend/internal/application/competency"
	"github.com/competency/backend/internal/infrastructure/config"
	"github.com/competency/backend/internal/infrastructure/logger"
	"github.com/competency/backend/internal/infrastructure/persistence"
	"github.com/competency/backend/internal/infrastructure/telemetry"
	"github.com/competency/backend/internal/interfaces/http/handler"
	"github.com/competency/backend/internal/interfaces/http/middleware"
	"github.com/competency/backend/internal/interfaces/http/router"
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

	log.Info("Starting Competency Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Select the durable key-value store backend
	store, cleanup, err := buildStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer cleanup()

	// Seed and load the catalog
	catalogRepo := persistence.NewKVCatalogRepository(store, cfg.Competency.CatalogKey)
	if err := catalogRepo.SeedFromFile(ctx, cfg.Competency.CatalogPath); err != nil {
		log.Fatal("Failed to seed catalog", zap.Error(err))
	}
	catalog, err := catalogRepo.Load(ctx)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}
	log.Info("Catalog loaded", zap.Int("items", catalog.Len()))

	// Initialize application services
	activityRepo := persistence.NewKVActivityRepository(store, cfg.Competency.ActivitiesKey)
	target := decimal.NewFromFloat(cfg.Competency.ProgressionTarget)
	activityService := competencyapp.NewActivityService(catalog, activityRepo, target, log)
	if err := activityService.Load(ctx); err != nil {
		log.Fatal("Failed to restore activity collection", zap.Error(err))
	}
	catalogService := competencyapp.NewCatalogService(catalog)

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService)
	activityHandler := handler.NewActivityHandler(activityService)
	scoreHandler := handler.NewScoreHandler(activityService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(store, cfg.Competency.CatalogKey))

	// Register domain route groups
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	competencyRoutes := router.NewDomainGroup("competency", "/competency")
	competencyRoutes.GET("/items", catalogHandler.List)
	competencyRoutes.GET("/items/:id", catalogHandler.GetByID)
	competencyRoutes.GET("/activities", activityHandler.List)
	competencyRoutes.POST("/activities", activityHandler.Register)
	competencyRoutes.PATCH("/activities/:id/status", activityHandler.UpdateStatus)
	competencyRoutes.DELETE("/activities/:id", activityHandler.Delete)
	competencyRoutes.GET("/scores", scoreHandler.Get)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(competencyRoutes).Register(systemRoutes)
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

// buildStore creates the configured KeyValueStore backend and a cleanup
// function for its resources
func buildStore(cfg *config.Config, log *zap.Logger) (persistence.KeyValueStore, func(), error) {
	switch cfg.Store.Driver {
	case "redis":
		store, err := persistence.NewRedisStore(&cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using Redis store", zap.String("addr", cfg.Redis.Addr()))
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error("Error closing Redis store", zap.Error(err))
			}
		}, nil

	case "database":
		db, err := persistence.NewDatabase(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		store := persistence.NewGormStore(db.DB)
		if err := store.AutoMigrate(); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("Using database store", zap.String("driver", cfg.Database.Driver))
		return store, func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}, nil

	default:
		log.Warn("Using in-memory store; data will not survive a restart")
		return persistence.NewMemoryStore(), func() {}, nil
	}
}

// healthHandler reports liveness of the process and the durable store.
// The catalog key doubles as the readiness probe: the service is unusable
// without it.
func healthHandler(store persistence.KeyValueStore, catalogKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if _, _, err := store.Get(c.Request.Context(), catalogKey); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
				"store":  "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  "ok",
		})
	}
}

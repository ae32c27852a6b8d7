package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/orderpad/backend/internal/application/catalog"
	orderingapp "github.com/orderpad/backend/internal/application/ordering"
	"github.com/orderpad/backend/internal/domain/shared"
	"github.com/orderpad/backend/internal/infrastructure/auth"
	"github.com/orderpad/backend/internal/infrastructure/cache"
	"github.com/orderpad/backend/internal/infrastructure/config"
	csvimport "github.com/orderpad/backend/internal/infrastructure/import"
	"github.com/orderpad/backend/internal/infrastructure/logger"
	"github.com/orderpad/backend/internal/infrastructure/persistence"
	"github.com/orderpad/backend/internal/infrastructure/printing"
	"github.com/orderpad/backend/internal/infrastructure/spreadsheet"
	"github.com/orderpad/backend/internal/infrastructure/storage"
	"github.com/orderpad/backend/internal/infrastructure/telemetry"
	"github.com/orderpad/backend/internal/interfaces/http/handler"
	"github.com/orderpad/backend/internal/interfaces/http/middleware"
	"github.com/orderpad/backend/internal/interfaces/http/router"
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
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting orderpad backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("catalog", cfg.Catalog.Path),
	)

	ctx := context.Background()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Meter provider shutdown failed", zap.Error(err))
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer provider shutdown failed", zap.Error(err))
		}
	}()

	var orderingMetrics *telemetry.OrderingMetrics
	if meterProvider.IsEnabled() {
		orderingMetrics, err = telemetry.NewOrderingMetrics(meterProvider.Meter(telemetry.TracerName))
		if err != nil {
			log.Warn("Ordering metrics disabled", zap.Error(err))
		}
	}

	// Override store
	storeFactory := cache.NewKeyValueStoreFactory(cfg.Store, cfg.Redis,
		cache.WithLogger(log),
		cache.WithSQLStore(func() (shared.KeyValueStore, error) {
			db, err := openDatabase(cfg, log)
			if err != nil {
				return nil, err
			}
			return persistence.NewDatabaseKeyValueStore(db, cfg.Store.KeyPrefix), nil
		}),
	)
	store, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create override store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing override store", zap.Error(err))
		}
	}()

	// Application services
	source := csvimport.NewFileSource(cfg.Catalog.Path, log)
	overrides := persistence.NewKVOverrideRepository(store, log)
	setupService := catalogapp.NewSetupService(source, overrides, orderingMetrics, log)
	if _, err := setupService.Catalog(ctx); err != nil {
		log.Fatal("Failed to load catalog", zap.String("path", cfg.Catalog.Path), zap.Error(err))
	}
	sessionService := orderingapp.NewSessionService(setupService, orderingMetrics, log)

	renderer, err := printing.NewChromedpRenderer(printing.ChromedpConfigFrom(cfg.PDF, log))
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		_ = renderer.Close()
	}()

	archive, err := storage.NewArchiveStorage(ctx, cfg.Archive, log)
	if err != nil {
		log.Fatal("Failed to initialize export archive", zap.Error(err))
	}
	exportService := orderingapp.NewExportService(setupService,
		printing.NewOrderDocumentWriter(renderer, printing.WithWriterLogger(log)),
		spreadsheet.NewFullInventoryWriter(),
		orderingapp.WithArchive(archive, cfg.Archive.Prefix),
		orderingapp.WithExportMetrics(orderingMetrics),
		orderingapp.WithExportLogger(log),
	)

	authorizer, err := auth.NewAuthorizer(cfg.Gate)
	if err != nil {
		log.Fatal("Failed to configure passphrase gate", zap.Error(err))
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to set up request validation", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request ID must exist before logging and tracing read it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))
	if meterProvider.IsEnabled() {
		engine.Use(middleware.HTTPMetrics(meterProvider.Meter("http.server")))
	}
	securityConfig := middleware.DefaultSecurityConfig()
	securityConfig.HSTSEnabled = cfg.HTTP.HSTSEnabled
	engine.Use(middleware.SecureWithConfig(securityConfig))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterAPI(r, router.Handlers{
		Gate:     handler.NewGateHandler(authorizer),
		Catalog:  handler.NewCatalogHandler(setupService, cfg.App.Name),
		Sessions: handler.NewSessionHandler(sessionService),
		Exports:  handler.NewExportHandler(exportService),
		Setup:    handler.NewSetupHandler(setupService),
	}, authorizer)
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully")
}

// openDatabase connects the sql override store, with query tracing when enabled
func openDatabase(cfg *config.Config, log *zap.Logger) (*persistence.Database, error) {
	opts := []persistence.DatabaseOption{
		persistence.WithGormLogger(logger.NewGormLogger(log, logger.GormLogLevel(cfg.Log.Level), cfg.Database.SlowQueryThreshold)),
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		tracingCfg := telemetry.DefaultDBTracingConfig()
		tracingCfg.Enabled = true
		if cfg.Database.Driver == config.DatabaseDriverSQLite {
			tracingCfg.DBSystem = "sqlite"
		}
		if cfg.Database.SlowQueryThreshold > 0 {
			tracingCfg.SlowQueryThresh = cfg.Database.SlowQueryThreshold
		}
		opts = append(opts, persistence.WithPlugins(telemetry.NewDBTracingPlugin(tracingCfg, log)))
	}

	db, err := persistence.NewDatabase(&cfg.Database, opts...)
	if err != nil {
		return nil, err
	}
	log.Info("Database connected", zap.String("driver", db.Driver()))
	return db, nil
}

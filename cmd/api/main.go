// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/wsvendas/motostock/internal/adapters/db"
	redis_a "github.com/wsvendas/motostock/internal/adapters/redis_adapter"
	"github.com/wsvendas/motostock/internal/adapters/storage"
	"github.com/wsvendas/motostock/internal/core/ports"
	"github.com/wsvendas/motostock/internal/core/services"
	"github.com/wsvendas/motostock/internal/handlers"
	"github.com/wsvendas/motostock/internal/handlers/middleware"
	"github.com/wsvendas/motostock/internal/pkg/config"
	"github.com/wsvendas/motostock/internal/pkg/logger"
	"github.com/wsvendas/motostock/internal/workers"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json").Logger

	slogger.Info("starting motostock api",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	if err := loadSecrets(ctx, cfg, slogger); err != nil {
		slogger.Error("failed to load secrets", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Admin.Password == "" {
		slogger.Warn("ADMIN_PASSWORD is empty, admin login is disabled")
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			if cfg.IsProduction() {
				os.Exit(1)
			}
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.ServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	cache          ports.CacheRepository
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector
	rateLimiter    *middleware.RateLimiter
	gate           *middleware.AdminGate
	uploadsDir     string

	catalogHandler   *handlers.CatalogHandler
	adminHandler     *handlers.AdminHandler
	dashboardHandler *handlers.DashboardHandler
	exportHandler    *handlers.ExportHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.rateLimiter != nil {
		d.rateLimiter.Stop()
	}
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func loadSecrets(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	var sm config.SecretsManager = config.EnvSecretsManager{}
	if cfg.Storage.SecretsName != "" {
		aws, err := config.NewAWSSecretsManager(ctx, cfg.Storage.Region, cfg.Storage.SecretsName, logger)
		if err != nil {
			return err
		}
		sm = aws
	}
	return config.ApplySecrets(ctx, cfg, sm)
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	// The catalog works without Redis, only slower.
	logger.Info("connecting to Redis", slog.String("addr", cfg.RedisAddress()))
	redisClient := redis_a.NewClient(cfg.Redis)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", slog.String("error", err.Error()))
		redisClient.Close()
	} else {
		deps.redisClient = redisClient
		deps.cache = redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)
	}

	var enqueuer workers.Enqueuer
	if cfg.Asynq.Enabled && deps.redisClient != nil {
		asynqRedisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Asynq.RedisAddr,
			Password: cfg.Asynq.RedisPassword,
			DB:       cfg.Asynq.RedisDB,
		}
		deps.asynqClient = asynq.NewClient(asynqRedisOpt)
		deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)
		enqueuer = deps.asynqClient
	}

	photoStore, err := newPhotoStore(ctx, cfg, deps, logger)
	if err != nil {
		return nil, err
	}

	repo := db.NewMotorcycleRepository(database, logger)
	feed := services.NewNotificationFeed(cfg.Admin.NotificationBuffer, logger)
	catalog := services.NewCatalogService(repo, deps.cache, cfg.Catalog.CacheTTL, logger)
	invalidator := workers.NewAsyncInvalidator(enqueuer, catalog, logger)
	admin := services.NewAdminSession(repo, feed, invalidator, logger,
		services.WithReorderMode(cfg.Admin.ReorderMode))
	photos := services.NewPhotoService(photoStore, feed, logger)
	dashboard := services.NewDashboardService(repo, deps.cache, cfg.Catalog.CacheTTL, logger)
	importer := services.NewImporter(admin, logger)

	deps.gate = middleware.NewAdminGate(cfg.Admin.Password, cfg.Admin.CookieName)
	maxUpload := int64(cfg.Uploads.MaxSizeMB) << 20

	deps.catalogHandler = handlers.NewCatalogHandler(catalog, cfg.App.PublicURL, cfg.Catalog.PageSize, logger)
	deps.adminHandler = handlers.NewAdminHandler(admin, photos, feed, deps.gate, maxUpload,
		cfg.Server.TLSEnabled || cfg.IsProduction(), logger)
	deps.dashboardHandler = handlers.NewDashboardHandler(dashboard, logger)
	deps.exportHandler = handlers.NewExportHandler(admin, importer, enqueuer, maxUpload, cfg.Uploads.TempDir, logger)

	var inspector handlers.QueueInspector
	if deps.asynqInspector != nil {
		inspector = deps.asynqInspector
	}
	deps.healthHandler = handlers.NewHealthHandler(database, deps.cache, inspector,
		Version, cfg.App.Environment, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func newPhotoStore(ctx context.Context, cfg *config.Config, deps *dependencies, logger *slog.Logger) (ports.PhotoStore, error) {
	if cfg.Storage.Driver == config.StorageLocal {
		local, err := storage.NewLocalStorage(cfg.Storage.LocalDir, cfg.Storage.LocalBaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		deps.uploadsDir = local.Dir()
		return local, nil
	}

	s3Store, err := storage.NewS3Storage(ctx, &storage.S3Config{
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Endpoint:        cfg.Storage.Endpoint,
		UsePathStyle:    cfg.Storage.UsePathStyle,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
	}
	return s3Store, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps)

	mws := []func(http.Handler) http.Handler{
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Recovery(logger),
		middleware.Logger(logger),
	}
	if cfg.Security.SecureHeaders {
		mws = append(mws, middleware.SecureHeaders)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		mws = append(mws, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.RateLimitRequests > 0 {
		deps.rateLimiter = middleware.NewRateLimiter(
			cfg.Security.RateLimitRequests,
			cfg.Security.RateLimitDuration,
			cfg.Security.RateLimitBurst,
		)
		mws = append(mws, deps.rateLimiter.Middleware)
	}
	mws = append(mws, middleware.Compression)
	if cfg.Server.RequestTimeout > 0 {
		mws = append(mws, middleware.Timeout(cfg.Server.RequestTimeout))
	}

	return &http.Server{
		Addr:           cfg.ServerAddress(),
		Handler:        middleware.Chain(mux, mws...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies) {
	const apiV1 = "/api/v1"

	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)

	// Public catalog
	mux.HandleFunc("GET "+apiV1+"/catalog", deps.catalogHandler.ListStock)
	mux.HandleFunc("GET "+apiV1+"/catalog/search", deps.catalogHandler.Search)
	mux.HandleFunc("GET "+apiV1+"/catalog/sold", deps.catalogHandler.Sold)
	mux.HandleFunc("GET "+apiV1+"/catalog/{id}", deps.catalogHandler.Detail)
	mux.HandleFunc("GET /sitemap.xml", deps.catalogHandler.Sitemap)
	mux.HandleFunc("GET /robots.txt", deps.catalogHandler.Robots)

	if deps.uploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.uploadsDir))))
	}

	// Admin
	mux.HandleFunc("POST "+apiV1+"/admin/login", deps.adminHandler.Login)
	mux.HandleFunc("POST "+apiV1+"/admin/logout", deps.adminHandler.Logout)

	admin := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, deps.gate.Require(h))
	}
	admin("GET "+apiV1+"/admin/motorcycles", deps.adminHandler.List)
	admin("POST "+apiV1+"/admin/motorcycles", deps.adminHandler.Create)
	admin("POST "+apiV1+"/admin/motorcycles/reorder", deps.adminHandler.Reorder)
	admin("PUT "+apiV1+"/admin/motorcycles/{id}", deps.adminHandler.Update)
	admin("DELETE "+apiV1+"/admin/motorcycles/{id}", deps.adminHandler.Delete)
	admin("POST "+apiV1+"/admin/motorcycles/{id}/toggle-sold", deps.adminHandler.ToggleSold)
	admin("POST "+apiV1+"/admin/photos", deps.adminHandler.UploadPhoto)
	admin("GET "+apiV1+"/admin/notifications", deps.adminHandler.Notifications)
	admin("GET "+apiV1+"/admin/dashboard", deps.dashboardHandler.GetDashboard)
	admin("GET "+apiV1+"/admin/export.xlsx", deps.exportHandler.ExportExcel)
	admin("GET "+apiV1+"/admin/export.json", deps.exportHandler.ExportJSON)
	admin("POST "+apiV1+"/admin/import.xlsx", deps.exportHandler.ImportExcel)
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	return db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
		DatabaseURL: cfg.DatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
		UseEmbedded: cfg.Database.MigrationPath == "",
		TableName:   "schema_migrations",
	}, logger, 3)
}

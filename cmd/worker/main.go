// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/wsvendas/motostock/internal/adapters/db"
	redis_a "github.com/wsvendas/motostock/internal/adapters/redis_adapter"
	"github.com/wsvendas/motostock/internal/core/ports"
	"github.com/wsvendas/motostock/internal/core/services"
	"github.com/wsvendas/motostock/internal/pkg/config"
	"github.com/wsvendas/motostock/internal/pkg/logger"
	"github.com/wsvendas/motostock/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json").Logger

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()
	if err := config.ApplySecrets(ctx, cfg, config.EnvSecretsManager{}); err != nil {
		slogger.Error("failed to load secrets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	database, err := initDatabase(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	redisClient := redis_a.NewClient(cfg.Redis)
	defer redisClient.Close()
	var cache ports.CacheRepository
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slogger.Warn("redis cache unavailable", slog.String("error", err.Error()))
	} else {
		cache = redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)
	}

	// The worker keeps its own list manager for imports. Invalidation runs
	// inline here since this process drains the queue.
	repo := db.NewMotorcycleRepository(database, slogger)
	catalog := services.NewCatalogService(repo, cache, cfg.Catalog.CacheTTL, slogger)
	feed := services.NewNotificationFeed(cfg.Admin.NotificationBuffer, slogger)
	admin := services.NewAdminSession(repo, feed, catalog, slogger,
		services.WithReorderMode(cfg.Admin.ReorderMode))
	importer := services.NewImporter(admin, slogger)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     cfg.Asynq.Concurrency,
		Queues:          cfg.Asynq.Queues,
		StrictPriority:  cfg.Asynq.StrictPriority,
		ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
		RetryDelayFunc:  exponentialBackoff,
		ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
		HealthCheckFunc: healthCheck,
		Logger:          newAsynqLogger(slogger),
	})

	mux := asynq.NewServeMux()

	catalogProcessor := workers.NewCatalogProcessor(catalog, slogger)
	mux.HandleFunc(workers.TypeCatalogInvalidate, catalogProcessor.Invalidate)
	mux.HandleFunc(workers.TypeCatalogRefresh, catalogProcessor.Refresh)

	importProcessor := workers.NewImportProcessor(importer, slogger)
	mux.HandleFunc(workers.TypeInventoryImport, importProcessor.ProcessImport)

	cleanupProcessor := workers.NewCleanupProcessor(cfg.Uploads.TempDir, cfg.Uploads.MaxTempAge, slogger)
	mux.HandleFunc(workers.TypeCleanupTempFiles, cleanupProcessor.CleanupTempFiles)

	client := asynq.NewClient(redisOpt)
	defer client.Close()

	scheduler := workers.NewScheduler(client, slogger)
	if err := scheduler.Schedule(cfg.Uploads.CleanupSchedule, "cleanup_temp_files", workers.NewCleanupTempFilesTask); err != nil {
		slogger.Error("failed to schedule cleanup", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := scheduler.Schedule(cfg.Uploads.RefreshSchedule, "catalog_refresh", workers.NewCatalogRefreshTask); err != nil {
		slogger.Error("failed to schedule catalog refresh", slog.String("error", err.Error()))
		os.Exit(1)
	}
	scheduler.Start()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.Int("scheduled_jobs", scheduler.Entries()))

	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Stop()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.Database, error) {
	return db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     4,
		MinConnections:     1,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.String("payload", string(task.Payload())),
		slog.String("error", err.Error()))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.String("error", err.Error()))
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}

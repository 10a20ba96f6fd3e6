// test/helpers/test_helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wsvendas/motostock/internal/adapters/db"
	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB starts a PostgreSQL container and applies the embedded migrations
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Could not connect to Docker: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("Docker is not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_motostock",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_motostock",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	pool.MaxWait = 2 * time.Minute
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	err = db.RunMigrationsWithRetry(context.Background(), &db.MigrationConfig{
		DatabaseURL: dbConfig.URL(),
		UseEmbedded: true,
		TableName:   "schema_migrations",
	}, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates an in-memory Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
			PublicURL:   "https://wsvendas.test",
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_motostock",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Storage: config.StorageConfig{
			Driver:       config.StorageLocal,
			Bucket:       "motos",
			LocalDir:     os.TempDir(),
			LocalBaseURL: "http://localhost:8080/uploads",
		},
		Admin: config.AdminConfig{
			Password:           "moto123",
			CookieName:         "motostock_admin",
			ReorderMode:        config.ReorderAtomic,
			NotificationBuffer: 20,
		},
		Catalog: config.CatalogConfig{
			CacheTTL: time.Minute,
			PageSize: domain.DefaultPageSize,
		},
		Uploads: config.UploadConfig{
			MaxSizeMB:       5,
			TempDir:         os.TempDir(),
			MaxTempAge:      time.Hour,
			CleanupSchedule: "@hourly",
			RefreshSchedule: "@every 30m",
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			RateLimitBurst:    20,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
			RequestIDHeader:   "X-Request-ID",
		},
		Server: config.ServerConfig{
			Host:           "localhost",
			Port:           "8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			RequestTimeout: 10 * time.Second,
		},
	}
}

// CreateTestForm returns a valid admin form
func CreateTestForm(overrides ...func(*domain.MotorcycleForm)) domain.MotorcycleForm {
	form := domain.MotorcycleForm{
		Brand:        "Honda",
		Model:        "CG 160 Fan",
		Year:         "2022/2023",
		Color:        "Vermelha",
		Transmission: domain.TransmissionManual,
		Fuel:         domain.FuelFlex,
		StartType:    domain.StartElectric,
		PlateEnd:     "7",
		Km:           12500,
		Price:        decimal.RequireFromString("15900.00"),
		Displacement: 160,
		Images:       []string{"https://cdn.test/motos/1700000000000-a1.jpg"},
		Observations: "Único dono",
	}

	for _, override := range overrides {
		override(&form)
	}
	return form
}

// CreateTestMotorcycle returns a stored-looking motorcycle built from CreateTestForm
func CreateTestMotorcycle(overrides ...func(*domain.Motorcycle)) *domain.Motorcycle {
	form := CreateTestForm()
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Motorcycle{
		ID:           uuid.New(),
		Brand:        form.Brand,
		Model:        form.Model,
		Year:         form.Year,
		Color:        form.Color,
		Transmission: form.Transmission,
		Fuel:         form.Fuel,
		StartType:    form.StartType,
		PlateEnd:     form.PlateEnd,
		Km:           form.Km,
		Price:        form.Price,
		Displacement: form.Displacement,
		Images:       form.Images,
		Observations: form.Observations,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, override := range overrides {
		override(m)
	}
	return m
}

// CreateTestMotorcycles returns count motorcycles with display order 0..count-1
func CreateTestMotorcycles(count int) []domain.Motorcycle {
	brands := []string{"Honda", "Yamaha", "Shineray", "Suzuki", "Kawasaki"}

	items := make([]domain.Motorcycle, count)
	for i := 0; i < count; i++ {
		items[i] = *CreateTestMotorcycle(func(m *domain.Motorcycle) {
			m.Brand = brands[i%len(brands)]
			m.Model = fmt.Sprintf("Model %d", i+1)
			m.Price = decimal.NewFromInt(int64(10000 + i*1000))
			m.Km = i * 1000
			m.DisplayOrder = i
		})
	}
	return items
}

// TruncateMotorcycles removes every row from the motorcycles table
func TruncateMotorcycles(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	_, err := db.Exec(context.Background(), "TRUNCATE TABLE motorcycles")
	require.NoError(t, err, "Failed to truncate motorcycles")
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// CreateTempFile creates a temporary file for testing
func CreateTempFile(t *testing.T, dir string, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp(dir, fmt.Sprintf("test-*%s", extension))
	require.NoError(t, err, "Failed to create temp file")

	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")

	file.Close()

	t.Cleanup(func() {
		os.Remove(file.Name())
	})

	return file.Name()
}

package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"catalog-api/internal/config"
	"catalog-api/internal/database"
	"catalog-api/internal/handler"
	"catalog-api/internal/repository"
	"catalog-api/internal/router"
	"catalog-api/internal/seed"
	"catalog-api/internal/service"
	"catalog-api/internal/validation"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testAPIKey = "test-api-key"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a migrated PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPoolFromURL(ctx, connStr, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if _, err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// NewServer wires the full handler stack against pool, guarded by testAPIKey.
func NewServer(t *testing.T, pool *pgxpool.Pool) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	validator := validation.New()

	categoryService := service.NewCategoryService(repository.NewCategoryRepository(pool, logger), validator, logger)
	productService := service.NewProductService(repository.NewProductRepository(pool, logger), validator, logger)
	tagService := service.NewTagService(repository.NewTagRepository(pool, logger), logger)

	return router.New(router.Handlers{
		Category: handler.NewCategoryHandler(categoryService, logger),
		Product:  handler.NewProductHandler(productService, logger),
		Tag:      handler.NewTagHandler(tagService, logger),
	}, router.Options{APIKey: testAPIKey}, logger)
}

// SeedCatalog replaces the catalogue with the default bundle.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	logger := zerolog.Nop()
	seeder := seed.NewSeeder(seed.NewFileLoader(logger), repository.NewCatalogRepository(pool, logger), logger)
	if _, err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("failed to seed catalogue: %v", err)
	}
}

// CleanupDB removes all catalogue rows and resets ID sequences.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"TRUNCATE product_tag, products, tags, categories RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to clean catalogue tables: %v", err)
	}
}

package integration

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a migrated test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL test container, applies the embedded
// migrations and opens a pool against it.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

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

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	if err := database.Migrate(connStr, logger); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	pool, err := database.NewPoolFromURL(ctx, connStr, database.DefaultPoolSettings, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
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

// CleanupDB removes all rows from the application tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "TRUNCATE content_objects, orders"); err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

// CountOrders returns the number of orders recorded for a payment session.
func CountOrders(t *testing.T, pool *pgxpool.Pool, sessionID string) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM orders WHERE payment_session_id = $1", sessionID).Scan(&n)
	if err != nil {
		t.Fatalf("failed to count orders: %v", err)
	}
	return n
}

// SampleCatalog is a small CMS export: two products, a service and a testimonial.
var SampleCatalog = []map[string]any{
	{
		"id": "prod-lamp", "type": "products", "slug": "desk-lamp", "title": "Desk Lamp",
		"metadata": map[string]any{
			"product_name": "Desk Lamp",
			"description":  "Warm light",
			"price":        19.99,
			"images":       []map[string]any{{"url": "https://cdn.example.com/lamp.jpg", "imgix_url": "https://imgix.example.com/lamp.jpg"}},
		},
	},
	{
		"id": "prod-chair", "type": "products", "slug": "chair", "title": "Chair",
		"metadata": map[string]any{"product_name": "Chair", "price": 120},
	},
	{
		"id": "svc-web", "type": "services", "slug": "web-design", "title": "Web Design",
		"metadata": map[string]any{"service_name": "Web Design", "short_description": "Sites"},
	},
	{
		"id": "tst-1", "type": "testimonials", "slug": "happy-client", "title": "Happy Client",
		"metadata": map[string]any{"client_name": "Ann", "rating": map[string]any{"key": "5", "value": "5 Stars"}},
	},
}

// WriteCatalogExport writes objects as a gzipped JSON-lines export named name
// inside dir.
func WriteCatalogExport(t *testing.T, dir, name string, objects []map[string]any) {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create export: %v", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	w := bufio.NewWriter(gz)
	enc := json.NewEncoder(w)
	for _, obj := range objects {
		if err := enc.Encode(obj); err != nil {
			t.Fatalf("failed to encode export line: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("failed to flush export: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close export: %v", err)
	}
}

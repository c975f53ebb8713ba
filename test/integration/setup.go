package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cucinanostrard/internal/gateway"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and
// the products schema with its notification trigger.
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

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := gateway.EnsureSchema(ctx, pool, gateway.DefaultChannel); err != nil {
		t.Fatalf("failed to create schema: %v", err)
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

// SeedProducts inserts test catalogue documents into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	docs := []map[string]interface{}{
		{
			"name":             "Tarta Sacher",
			"description":      "Tarta vienesa de chocolate y albaricoque",
			"shortDescription": "Tarta Sacher vienesa",
			"price":            38.0,
			"category":         "tartas",
			"images":           []string{"/images/sacher.jpg"},
			"featured":         true,
			"available":        true,
			"popularityScore":  90,
			"tags":             []string{"chocolate", "vienesa"},
		},
		{
			"name":             "Croissants de Mantequilla",
			"description":      "Croissants hojaldrados horneados cada mañana",
			"shortDescription": "Croissants artesanales",
			"price":            3.5,
			"category":         "bolleria",
			"images":           []string{"/images/croissant.jpg"},
			"featured":         false,
			"available":        true,
			"popularityScore":  75,
			"tags":             []string{"desayuno"},
		},
		{
			"name":             "Pan de Centeno",
			"description":      "Hogaza de centeno con masa madre",
			"shortDescription": "Pan de centeno",
			"price":            6.0,
			"category":         "panes",
			"images":           []string{"/images/centeno.jpg"},
			"featured":         true,
			"available":        false,
			"popularityScore":  60,
			"tags":             []string{"masa madre"},
		},
	}

	for i, doc := range docs {
		raw, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("failed to encode seed document %d: %v", i, err)
		}
		id := []string{"seed-sacher", "seed-croissants", "seed-centeno"}[i]
		_, err = pool.Exec(ctx,
			"INSERT INTO products (id, doc, created_at) VALUES ($1, $2, now() - ($3 || ' minutes')::interval)",
			id, raw, i,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", id, err)
		}
	}
}

// CleanupDB removes all catalogue rows.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM products"); err != nil {
		t.Logf("failed to clean products table: %v", err)
	}
}

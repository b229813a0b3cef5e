package integration

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"prodexa/internal/archive"
	"prodexa/internal/auth"
	"prodexa/internal/catalog"
	"prodexa/internal/config"
	"prodexa/internal/database"
	"prodexa/internal/export"
	"prodexa/internal/handler"
	"prodexa/internal/metrics"
	"prodexa/internal/model"
	"prodexa/internal/router"
	"prodexa/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testAPIKey   = "test-api-key"
	testUser     = "admin"
	testPassword = "admin123"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool with
// the catalogue schema in place.
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

	parsed, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            parsed.ConnConfig.Host,
		Port:            int(parsed.ConnConfig.Port),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPool(ctx, dbConfig, zerolog.Nop())
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

// CleanupDB removes every catalogue row.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM catalog_products"); err != nil {
		t.Logf("failed to clean catalog_products: %v", err)
	}
}

// SeedProducts writes the sample catalogue through store.
func SeedProducts(t *testing.T, store catalog.Store) {
	t.Helper()

	products := []model.Product{
		{Name: "Soap", Price: decimal.RequireFromString("50.00"), Stock: 10, Category: "Grocery"},
		{Name: "Oil", Price: decimal.RequireFromString("250.00"), Stock: 4, Category: "Grocery"},
		{Name: "Notebook", Price: decimal.RequireFromString("35.50"), Stock: 0, Category: "Stationery"},
	}
	if err := store.Save(context.Background(), products); err != nil {
		t.Fatalf("failed to seed products: %v", err)
	}
}

// TestServer is a fully wired API over a catalogue store.
type TestServer struct {
	Handler    http.Handler
	InvoiceDir string
	Metrics    *metrics.Metrics
}

// NewTestServer wires the services, handlers and router the same way the API
// binary does, with invoices written to a temporary directory.
func NewTestServer(t *testing.T, store catalog.Store) *TestServer {
	t.Helper()

	logger := zerolog.Nop()
	ctx := context.Background()
	dir := t.TempDir()

	manager := catalog.NewManager(store, logger)
	if _, err := manager.Refresh(ctx); err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	usersFile := filepath.Join(dir, "users.json")
	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := auth.SaveUsers(usersFile, map[string]string{testUser: hash}); err != nil {
		t.Fatalf("failed to write users file: %v", err)
	}
	authenticator := auth.NewAuthenticator(usersFile, "integration-secret", time.Hour, logger)

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("prodexa", reg, reg)

	invoiceDir := filepath.Join(dir, "invoices")
	productService := service.NewProductService(manager, m, logger)
	billingService := service.NewBillingService(manager, archive.NewLocalArchiver(logger), service.InvoiceSettings{
		Shop: export.Shop{Name: "Test Store", Address: "1 Market Road", Phone: "0000000000"},
		Dir:  invoiceDir,
	}, m, logger)
	reportService := service.NewReportService(manager, logger)

	handlers := router.Handlers{
		Product: handler.NewProductHandler(productService, logger),
		Bill:    handler.NewBillHandler(billingService, logger),
		Report:  handler.NewReportHandler(reportService, logger),
		Auth:    handler.NewAuthHandler(authenticator, logger),
	}

	return &TestServer{
		Handler:    router.New(handlers, m, testAPIKey, authenticator, []string{"*"}, logger),
		InvoiceDir: invoiceDir,
		Metrics:    m,
	}
}

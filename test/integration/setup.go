package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
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

// SetupTestDB creates a PostgreSQL test container, a connection pool and the
// application schema.
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

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
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

// CleanupDB removes all rows and restarts the order number sequence so every
// test starts from order number 1.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_products", "orders", "customers", "products"}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	if _, err := pool.Exec(ctx, "ALTER SEQUENCE order_number_seq RESTART WITH 1"); err != nil {
		t.Logf("failed to restart order number sequence: %v", err)
	}
}

func amount(v float64) *float64 {
	return &v
}

// SeedProducts inserts a fixed catalogue and returns it. The gift wrap entry
// deliberately has no price.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) []model.Product {
	t.Helper()

	ctx := context.Background()

	products := []model.Product{
		{ID: uuid.New(), Title: "Enamel Mug", Category: "kitchen", Price: amount(12.50)},
		{ID: uuid.New(), Title: "Travel Mug", Category: "kitchen", Price: amount(18.00)},
		{ID: uuid.New(), Title: "Wool Blanket", Category: "home", Price: amount(45.00)},
		{ID: uuid.New(), Title: "Desk Lamp", Category: "home", Price: amount(30.00)},
		{ID: uuid.New(), Title: "Gift Wrap", Category: "extras", Price: nil},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, title, category, price) VALUES ($1, $2, $3, $4)",
			p.ID, p.Title, p.Category, p.Price,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.Title, err)
		}
	}

	return products
}

// SeedCustomer inserts a customer with zeroed aggregates and returns its ID.
func SeedCustomer(t *testing.T, pool *pgxpool.Pool, name, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO customers (id, name, email) VALUES ($1, $2, $3)",
		id, name, email,
	)
	if err != nil {
		t.Fatalf("failed to seed customer %s: %v", name, err)
	}

	return id
}

// orderSeed describes a directly inserted order row.
type orderSeed struct {
	Status    model.OrderStatus
	Total     float64
	Address   string
	Customer  uuid.UUID
	Products  []uuid.UUID
	CreatedAt time.Time
}

// SeedOrder inserts an order row with its product references, bypassing the
// creation flow so tests control status, totals and timestamps. The sequence
// assigns the order number.
func SeedOrder(t *testing.T, pool *pgxpool.Pool, seed orderSeed) int64 {
	t.Helper()

	ctx := context.Background()

	if seed.Status == "" {
		seed.Status = model.StatusNew
	}
	if seed.CreatedAt.IsZero() {
		seed.CreatedAt = time.Now()
	}

	id := uuid.New()
	var orderNumber int64
	err := pool.QueryRow(ctx, `
		INSERT INTO orders (id, status, total_amount, delivery_address, payment, email, phone, customer_id, created_at)
		VALUES ($1, $2, $3, $4, 'card', 'test@example.com', '+100000000', $5, $6)
		RETURNING order_number
	`, id, seed.Status, seed.Total, seed.Address, seed.Customer, seed.CreatedAt).Scan(&orderNumber)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	for i, productID := range seed.Products {
		_, err := pool.Exec(ctx,
			"INSERT INTO order_products (order_id, product_id, position) VALUES ($1, $2, $3)",
			id, productID, i,
		)
		if err != nil {
			t.Fatalf("failed to seed order product: %v", err)
		}
	}

	return orderNumber
}

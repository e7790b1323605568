package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the storefront schema. last_order_id carries no foreign key
// because customers and orders reference each other.
const Schema = `
CREATE TABLE IF NOT EXISTS customers (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL DEFAULT '',
	phone VARCHAR(50) NOT NULL DEFAULT '',
	order_count INTEGER NOT NULL DEFAULT 0,
	total_amount DECIMAL(12, 2) NOT NULL DEFAULT 0,
	last_order_id UUID,
	last_order_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category VARCHAR(100) NOT NULL DEFAULT '',
	image VARCHAR(255) NOT NULL DEFAULT '',
	price DECIMAL(12, 2),
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE SEQUENCE IF NOT EXISTS order_number_seq START 1;

CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	order_number BIGINT NOT NULL UNIQUE DEFAULT nextval('order_number_seq'),
	status VARCHAR(20) NOT NULL DEFAULT 'new',
	total_amount DECIMAL(12, 2) NOT NULL,
	delivery_address TEXT NOT NULL,
	payment VARCHAR(20) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(50) NOT NULL,
	comment TEXT NOT NULL DEFAULT '',
	customer_id UUID NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS order_products (
	order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id UUID NOT NULL REFERENCES products(id),
	position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
CREATE INDEX IF NOT EXISTS idx_order_products_order_id ON order_products(order_id);
CREATE INDEX IF NOT EXISTS idx_order_products_product_id ON order_products(product_id);
`

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database schema is up to date")
	return nil
}

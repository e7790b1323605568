package repository

import (
	"context"
	"fmt"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderWithCustomerColumns = `
	o.id, o.order_number, o.status, o.total_amount, o.delivery_address,
	o.payment, o.email, o.phone, o.comment, o.customer_id, o.created_at,
	c.id, c.name, c.email, c.phone, c.order_count, c.total_amount,
	c.last_order_id, c.last_order_date, c.created_at`

func scanOrderWithCustomer(row pgx.Row) (model.Order, error) {
	var o model.Order
	var c model.Customer
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.Status, &o.TotalAmount, &o.DeliveryAddress,
		&o.Payment, &o.Email, &o.Phone, &o.Comment, &o.CustomerID, &o.CreatedAt,
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.OrderCount, &c.TotalAmount,
		&c.LastOrderID, &c.LastOrderDate, &c.CreatedAt,
	)
	if err != nil {
		return model.Order{}, err
	}
	o.Customer = &c
	return o, nil
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order within the provided transaction. The sequence
// assigns the order number; both it and the creation time are filled in on
// the passed order.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	sql := `
		INSERT INTO orders (id, status, total_amount, delivery_address, payment, email, phone, comment, customer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING order_number, created_at
	`

	err := tx.QueryRow(ctx, sql,
		order.ID, order.Status, order.TotalAmount, order.DeliveryAddress,
		order.Payment, order.Email, order.Phone, order.Comment, order.CustomerID,
	).Scan(&order.OrderNumber, &order.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Int64("order_number", order.OrderNumber).
		Msg("order created successfully")

	return nil
}

// SetProducts records the order's product references within the provided
// transaction, preserving their submitted order.
func (r *orderRepository) SetProducts(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}

	sql := `
		INSERT INTO order_products (order_id, product_id, position)
		VALUES ($1, $2, $3)
	`

	batch := &pgx.Batch{}
	for i, productID := range productIDs {
		batch.Queue(sql, orderID, productID, i)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(productIDs); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", orderID.String()).
				Str("product_id", productIDs[i].String()).
				Msg("failed to record order product")
			return fmt.Errorf("failed to record order product: %w", err)
		}
	}

	r.logger.Debug().
		Str("order_id", orderID.String()).
		Int("count", len(productIDs)).
		Msg("order products recorded")

	return nil
}

// List retrieves one page of distinct orders matching the filter. The page of
// orders is selected first; products are joined onto that page, so page
// boundaries always align with Count.
func (r *orderRepository) List(ctx context.Context, f query.OrderFilter, sort query.Sort, limit, offset int) ([]model.Order, error) {
	conds := orderConds(f)
	args := append(conds.args, limit, offset)

	sql := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		%s
		%s
		LIMIT $%d OFFSET $%d
	`,
		orderWithCustomerColumns,
		conds.clause(),
		orderBy(sort, orderSortColumns, "o.id"),
		len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrderWithCustomer(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := attachProducts(ctx, r.pool, orders); err != nil {
		r.logger.Error().Err(err).Msg("failed to expand order products")
		return nil, err
	}

	return orders, nil
}

// Count returns the number of distinct orders matching the filter.
func (r *orderRepository) Count(ctx context.Context, f query.OrderFilter) (int, error) {
	conds := orderConds(f)

	sql := fmt.Sprintf("SELECT COUNT(*) FROM orders o %s", conds.clause())

	var count int
	if err := r.pool.QueryRow(ctx, sql, conds.args...).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// GetByNumber retrieves an expanded order by its order number.
func (r *orderRepository) GetByNumber(ctx context.Context, orderNumber int64) (*model.Order, error) {
	return r.getOne(ctx, "o.order_number = $1", strconv.FormatInt(orderNumber, 10), orderNumber)
}

// getOne fetches a single expanded order by an identifying predicate.
func (r *orderRepository) getOne(ctx context.Context, cond, label string, arg any) (*model.Order, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE %s
	`, orderWithCustomerColumns, cond)

	o, err := scanOrderWithCustomer(r.pool.QueryRow(ctx, sql, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order", label).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order", label).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	orders := []model.Order{o}
	if err := attachProducts(ctx, r.pool, orders); err != nil {
		r.logger.Error().Err(err).Str("order", label).Msg("failed to expand order products")
		return nil, err
	}

	return &orders[0], nil
}

// ListByCustomer retrieves all of a customer's orders, expanded, in creation
// order.
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at ASC, o.id ASC
	`, orderWithCustomerColumns)

	rows, err := r.pool.Query(ctx, sql, customerID)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to query customer orders")
		return nil, fmt.Errorf("failed to query customer orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrderWithCustomer(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := attachProducts(ctx, r.pool, orders); err != nil {
		r.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to expand order products")
		return nil, err
	}

	return orders, nil
}

// UpdateStatus sets the status of the order with the given number.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderNumber int64, status model.OrderStatus) (*model.Order, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE orders SET status = $1 WHERE order_number = $2",
		status, orderNumber,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_number", orderNumber).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("order_number", orderNumber).Msg("order not found")
		return nil, nil
	}

	return r.GetByNumber(ctx, orderNumber)
}

// Delete removes an order by ID, returning the deleted expanded order.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := r.getOne(ctx, "o.id = $1", id.String(), id)
	if err != nil || order == nil {
		return order, err
	}

	if _, err := r.pool.Exec(ctx, "DELETE FROM orders WHERE id = $1", id); err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}

	r.logger.Debug().Str("order_id", id.String()).Msg("order deleted")
	return order, nil
}

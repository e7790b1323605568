package repository

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

const customerColumns = `
	c.id, c.name, c.email, c.phone, c.order_count, c.total_amount,
	c.last_order_id, c.last_order_date, c.created_at`

func scanCustomer(row pgx.Row, c *model.Customer) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.OrderCount, &c.TotalAmount,
		&c.LastOrderID, &c.LastOrderDate, &c.CreatedAt,
	)
}

// List retrieves one page of customers matching the filter, with their orders
// and last order expanded.
func (r *customerRepository) List(ctx context.Context, f query.CustomerFilter, sort query.Sort, limit, offset int) ([]model.Customer, error) {
	conds := customerConds(f)
	args := append(conds.args, limit, offset)

	sql := fmt.Sprintf(`
		SELECT %s
		FROM customers c
		%s
		%s
		LIMIT $%d OFFSET $%d
	`,
		customerColumns,
		conds.clause(),
		orderBy(sort, customerSortColumns, "c.id"),
		len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := scanCustomer(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan customer row")
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating customer rows")
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	if err := r.expandOrders(ctx, customers); err != nil {
		return nil, err
	}

	return customers, nil
}

// Count returns the number of customers matching the filter.
func (r *customerRepository) Count(ctx context.Context, f query.CustomerFilter) (int, error) {
	conds := customerConds(f)

	sql := fmt.Sprintf("SELECT COUNT(*) FROM customers c %s", conds.clause())

	var count int
	if err := r.pool.QueryRow(ctx, sql, conds.args...).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count customers")
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}

	return count, nil
}

// GetByID retrieves an expanded customer.
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	sql := fmt.Sprintf("SELECT %s FROM customers c WHERE c.id = $1", customerColumns)

	var c model.Customer
	if err := scanCustomer(r.pool.QueryRow(ctx, sql, id), &c); err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	customers := []model.Customer{c}
	if err := r.expandOrders(ctx, customers); err != nil {
		return nil, err
	}

	return &customers[0], nil
}

// Create inserts a new customer.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	sql := `
		INSERT INTO customers (id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, sql,
		customer.ID, customer.Name, customer.Email, customer.Phone,
	).Scan(&customer.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", customer.ID.String()).Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().Str("customer_id", customer.ID.String()).Msg("customer created successfully")
	return nil
}

// Update applies the whitelisted fields, returning the updated expanded
// customer.
func (r *customerRepository) Update(ctx context.Context, id uuid.UUID, upd *model.CustomerUpdate) (*model.Customer, error) {
	sql := `
		UPDATE customers
		SET name = COALESCE($2, name),
			phone = COALESCE($3, phone)
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, sql, id, upd.Name, upd.Phone)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to update customer")
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// Delete removes a customer, returning the deleted row.
func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	sql := fmt.Sprintf(`
		DELETE FROM customers c0
		WHERE c0.id = $1
		RETURNING %s
	`, "c0.id, c0.name, c0.email, c0.phone, c0.order_count, c0.total_amount, c0.last_order_id, c0.last_order_date, c0.created_at")

	var c model.Customer
	if err := scanCustomer(r.pool.QueryRow(ctx, sql, id), &c); err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to delete customer")
		return nil, fmt.Errorf("failed to delete customer: %w", err)
	}

	r.logger.Debug().Str("customer_id", id.String()).Msg("customer deleted")
	return &c, nil
}

// ApplyOrder updates the customer's derived aggregates for a newly created
// order within the provided transaction.
func (r *customerRepository) ApplyOrder(ctx context.Context, tx pgx.Tx, customerID, orderID uuid.UUID, amount float64, orderedAt time.Time) error {
	sql := `
		UPDATE customers
		SET order_count = order_count + 1,
			total_amount = total_amount + $2,
			last_order_id = $3,
			last_order_date = $4
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, sql, customerID, amount, orderID, orderedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to apply order to customer")
		return fmt.Errorf("failed to apply order to customer: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("customer_id", customerID.String()).Msg("customer not found while applying order")
		return model.ErrCustomerNotFound
	}

	return nil
}

// expandOrders loads each customer's orders (with products) and resolves the
// last order reference.
func (r *customerRepository) expandOrders(ctx context.Context, customers []model.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(customers))
	index := make(map[uuid.UUID]*model.Customer, len(customers))
	for i := range customers {
		ids[i] = customers[i].ID
		index[customers[i].ID] = &customers[i]
	}

	sql := `
		SELECT o.id, o.order_number, o.status, o.total_amount, o.delivery_address,
			o.payment, o.email, o.phone, o.comment, o.customer_id, o.created_at
		FROM orders o
		WHERE o.customer_id = ANY($1)
		ORDER BY o.created_at ASC, o.id ASC
	`

	rows, err := r.pool.Query(ctx, sql, uuidStrings(ids))
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customer orders")
		return fmt.Errorf("failed to query customer orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.Status, &o.TotalAmount, &o.DeliveryAddress,
			&o.Payment, &o.Email, &o.Phone, &o.Comment, &o.CustomerID, &o.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return fmt.Errorf("error iterating orders: %w", err)
	}

	if err := attachProducts(ctx, r.pool, orders); err != nil {
		r.logger.Error().Err(err).Msg("failed to expand order products")
		return err
	}

	for i := range orders {
		c, ok := index[orders[i].CustomerID]
		if !ok {
			continue
		}
		c.Orders = append(c.Orders, orders[i])
		if c.LastOrderID != nil && *c.LastOrderID == orders[i].ID {
			c.LastOrder = &orders[i]
		}
	}

	return nil
}

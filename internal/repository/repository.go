package repository

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// Count returns the total number of products.
	Count(ctx context.Context) (int, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// FindIDsByTitle returns the IDs of products whose title matches the
	// given term as a case-insensitive literal substring.
	FindIDsByTitle(ctx context.Context, term string) ([]uuid.UUID, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update applies the non-nil fields of req to the product, returning the
	// updated row or nil when the product does not exist.
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product, returning the deleted row or nil when the
	// product does not exist.
	Delete(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// OrderRepository defines the interface for order data access operations.
// Listing reads return orders with their products and customer expanded.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction and fills
	// in the assigned order number and creation time.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// SetProducts records the order's product references within the provided
	// transaction, preserving their submitted order.
	SetProducts(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, productIDs []uuid.UUID) error

	// List retrieves one page of distinct orders matching the filter, with
	// products and customer expanded.
	List(ctx context.Context, f query.OrderFilter, sort query.Sort, limit, offset int) ([]model.Order, error)

	// Count returns the number of distinct orders matching the filter.
	Count(ctx context.Context, f query.OrderFilter) (int, error)

	// GetByNumber retrieves an expanded order by its order number, or nil
	// when it does not exist.
	GetByNumber(ctx context.Context, orderNumber int64) (*model.Order, error)

	// ListByCustomer retrieves all of a customer's orders, expanded, in
	// creation order.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)

	// UpdateStatus sets the status of the order with the given number,
	// returning the updated expanded order or nil when it does not exist.
	UpdateStatus(ctx context.Context, orderNumber int64, status model.OrderStatus) (*model.Order, error)

	// Delete removes an order by ID, returning the deleted expanded order or
	// nil when it does not exist.
	Delete(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// CustomerRepository defines the interface for customer data access
// operations. Listing reads return customers with orders and last order
// expanded.
type CustomerRepository interface {
	// List retrieves one page of customers matching the filter.
	List(ctx context.Context, f query.CustomerFilter, sort query.Sort, limit, offset int) ([]model.Customer, error)

	// Count returns the number of customers matching the filter.
	Count(ctx context.Context, f query.CustomerFilter) (int, error)

	// GetByID retrieves an expanded customer, or nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// Create inserts a new customer.
	Create(ctx context.Context, customer *model.Customer) error

	// Update applies the non-nil whitelisted fields, returning the updated
	// expanded customer or nil when the customer does not exist.
	Update(ctx context.Context, id uuid.UUID, upd *model.CustomerUpdate) (*model.Customer, error)

	// Delete removes a customer, returning the deleted row or nil when the
	// customer does not exist.
	Delete(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// ApplyOrder updates the customer's derived aggregates for a newly
	// created order within the provided transaction. Returns
	// model.ErrCustomerNotFound when the customer does not exist.
	ApplyOrder(ctx context.Context, tx pgx.Tx, customerID, orderID uuid.UUID, amount float64, orderedAt time.Time) error
}

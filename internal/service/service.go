package service

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/query"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves one page of the catalogue.
	List(ctx context.Context, page, pageSize int) (*model.ProductList, error)

	// GetByID retrieves a single product.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create adds a product to the catalogue.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update applies the non-nil fields of req to the product.
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product, returning the deleted row.
	Delete(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// Create validates and creates a new order, updating the customer's
	// aggregates in the same transaction. The returned order is expanded.
	Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// List retrieves one page of orders matching the filter.
	List(ctx context.Context, f query.OrderFilter, sortBy query.Sort, page, pageSize int) (*model.OrderList, error)

	// GetByNumber retrieves an expanded order by its order number.
	GetByNumber(ctx context.Context, orderNumber int64) (*model.Order, error)

	// ListForCustomer retrieves one page of a single customer's orders,
	// filtered, sorted and paginated in memory.
	ListForCustomer(ctx context.Context, customerID uuid.UUID, f query.OrderFilter, sortBy query.Sort, page, pageSize int) (*model.OrderList, error)

	// GetForCustomer retrieves one of the customer's orders by number. An
	// order belonging to a different customer is reported as not found.
	GetForCustomer(ctx context.Context, customerID uuid.UUID, orderNumber int64) (*model.Order, error)

	// UpdateStatus transitions an order to the given status.
	UpdateStatus(ctx context.Context, orderNumber int64, status string) (*model.Order, error)

	// Delete removes an order by ID, returning the deleted expanded order.
	Delete(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// CustomerService defines operations for customer management.
type CustomerService interface {
	// List retrieves one page of customers matching the filter.
	List(ctx context.Context, f query.CustomerFilter, sortBy query.Sort, page, pageSize int) (*model.CustomerList, error)

	// GetByID retrieves an expanded customer.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// Update applies the whitelisted fields, returning the updated customer.
	Update(ctx context.Context, id uuid.UUID, upd *model.CustomerUpdate) (*model.Customer, error)

	// Delete removes a customer, returning the deleted row.
	Delete(ctx context.Context, id uuid.UUID) (*model.Customer, error)
}

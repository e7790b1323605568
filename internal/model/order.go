package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusDelivering OrderStatus = "delivering"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusNew, StatusDelivering, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order represents a customer order. OrderNumber is sequential and unique,
// assigned at creation. Products and Customer are populated on reads that
// expand references.
type Order struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	OrderNumber     int64       `json:"orderNumber" db:"order_number"`
	Status          OrderStatus `json:"status" db:"status"`
	TotalAmount     float64     `json:"totalAmount" db:"total_amount"`
	DeliveryAddress string      `json:"deliveryAddress" db:"delivery_address"`
	Payment         string      `json:"payment" db:"payment"`
	Email           string      `json:"email" db:"email"`
	Phone           string      `json:"phone" db:"phone"`
	Comment         string      `json:"comment,omitempty" db:"comment"`
	CustomerID      uuid.UUID   `json:"-" db:"customer_id"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`

	Products []Product `json:"products,omitempty"`
	Customer *Customer `json:"customer,omitempty"`
}

// OrderRequest represents the payload for creating an order. Total must equal
// the sum of the referenced products' prices.
type OrderRequest struct {
	Items      []uuid.UUID `json:"items"`
	Total      float64     `json:"total"`
	Address    string      `json:"address"`
	Payment    string      `json:"payment"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Comment    string      `json:"comment,omitempty"`
	CustomerID uuid.UUID   `json:"customer"`
}

// OrderStatusRequest represents the payload for updating an order's status.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// Pagination describes one page of a listing response.
type Pagination struct {
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// OrderList is the envelope for paginated order listings.
type OrderList struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

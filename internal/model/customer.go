package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a registered customer. OrderCount, TotalAmount,
// LastOrderID and LastOrderDate are aggregates derived from the customer's
// orders and maintained when orders are created. Orders and LastOrder are
// populated on reads that expand references.
type Customer struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Email         string     `json:"email,omitempty" db:"email"`
	Phone         string     `json:"phone,omitempty" db:"phone"`
	OrderCount    int        `json:"orderCount" db:"order_count"`
	TotalAmount   float64    `json:"totalAmount" db:"total_amount"`
	LastOrderID   *uuid.UUID `json:"-" db:"last_order_id"`
	LastOrderDate *time.Time `json:"lastOrderDate,omitempty" db:"last_order_date"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`

	Orders    []Order `json:"orders,omitempty"`
	LastOrder *Order  `json:"lastOrder,omitempty"`
}

// CustomerUpdate carries the only customer fields an admin may change.
type CustomerUpdate struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// CustomerList is the envelope for paginated customer listings.
type CustomerList struct {
	Customers  []Customer `json:"customers"`
	Pagination Pagination `json:"pagination"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents an item in the storefront catalogue.
// A nil Price means the product is not for sale.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Category    string    `json:"category,omitempty" db:"category"`
	Image       string    `json:"image,omitempty" db:"image"`
	Price       *float64  `json:"price" db:"price"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ProductList is the envelope for paginated product listings.
type ProductList struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// ProductRequest represents the payload for creating or updating a product.
// Pointer fields distinguish "absent" from "set to zero value" on updates.
// RemovePrice clears the price, withdrawing the product from sale; it wins
// over Price when both are set.
type ProductRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	RemovePrice bool     `json:"removePrice,omitempty"`
}

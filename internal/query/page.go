// Package query turns raw listing query parameters into normalized
// pagination, sort and filter values. Pagination and sort inputs never fail:
// anything malformed collapses to a safe default. Filter inputs are strict and
// reject malformed values so they can never reach the database unvalidated.
package query

import (
	"math"
	"strconv"
)

const (
	// DefaultPage is used when the page parameter is absent or malformed.
	DefaultPage = 1
	// DefaultPageSize is used when the limit parameter is absent or malformed.
	DefaultPageSize = 10
	// MaxPageSize caps the page size so no request can produce an unbounded
	// result set.
	MaxPageSize = 10
	// MaxPage caps the page number. Converting a float beyond the integer
	// range would overflow into a negative page.
	MaxPage = math.MaxInt32
)

// Page normalizes a raw page parameter: non-numeric, non-finite or < 1
// becomes DefaultPage, values above MaxPage are clamped, fractional values
// are floored.
func Page(raw string) int {
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) || num < 1 {
		return DefaultPage
	}
	if num > MaxPage {
		return MaxPage
	}
	return int(math.Floor(num))
}

// PageSize normalizes a raw limit parameter: non-numeric, non-finite or < 1
// becomes DefaultPageSize, values above MaxPageSize are clamped, fractional
// values are floored.
func PageSize(raw string) int {
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) || num < 1 {
		return DefaultPageSize
	}
	if num > MaxPageSize {
		return MaxPageSize
	}
	return int(math.Floor(num))
}

// TotalPages computes the number of pages covering total items; zero items
// means zero pages.
func TotalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Direction is a normalized sort direction.
type Direction int

const (
	Descending Direction = iota
	Ascending
)

// Sort is a whitelisted sort field plus direction.
type Sort struct {
	Field     string
	Direction Direction
}

// CustomerSortFields is the whitelist for the customer listing.
var CustomerSortFields = []string{
	"createdAt",
	"totalAmount",
	"orderCount",
	"lastOrderDate",
	"name",
}

// OrderSortFields is the whitelist for the order listing.
var OrderSortFields = []string{
	"createdAt",
	"totalAmount",
	"orderNumber",
	"status",
}

// SortField whitelists a raw sort field; anything outside allowed defaults to
// createdAt.
func SortField(raw string, allowed []string) string {
	for _, f := range allowed {
		if raw == f {
			return raw
		}
	}
	return "createdAt"
}

// SortDirection maps "asc" to Ascending and anything else to Descending.
func SortDirection(raw string) Direction {
	if raw == "asc" {
		return Ascending
	}
	return Descending
}

// NewSort builds a normalized Sort from raw field and direction values.
func NewSort(rawField, rawDirection string, allowed []string) Sort {
	return Sort{
		Field:     SortField(rawField, allowed),
		Direction: SortDirection(rawDirection),
	}
}

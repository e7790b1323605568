package query

import (
	"math"
	"net/url"
	"strconv"
	"time"

	"storefront/internal/model"
)

// CustomerFilter is the typed criteria for the customer listing. Nil fields
// mean the predicate is absent.
type CustomerFilter struct {
	RegisteredFrom  *time.Time
	RegisteredTo    *time.Time
	LastOrderFrom   *time.Time
	LastOrderTo     *time.Time
	TotalAmountFrom *float64
	TotalAmountTo   *float64
	OrderCountFrom  *float64
	OrderCountTo    *float64
	Search          string
}

// OrderFilter is the typed criteria for the order listing.
type OrderFilter struct {
	Statuses        []model.OrderStatus
	TotalAmountFrom *float64
	TotalAmountTo   *float64
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
	Search          string
}

// ParseCustomerFilter builds a CustomerFilter from raw query parameters.
// Malformed dates, amounts or search terms are rejected.
func ParseCustomerFilter(values url.Values) (CustomerFilter, error) {
	var f CustomerFilter
	var err error

	if f.RegisteredFrom, err = parseDate(values.Get("registrationDateFrom"), false); err != nil {
		return CustomerFilter{}, err
	}
	if f.RegisteredTo, err = parseDate(values.Get("registrationDateTo"), true); err != nil {
		return CustomerFilter{}, err
	}
	if f.LastOrderFrom, err = parseDate(values.Get("lastOrderDateFrom"), false); err != nil {
		return CustomerFilter{}, err
	}
	if f.LastOrderTo, err = parseDate(values.Get("lastOrderDateTo"), true); err != nil {
		return CustomerFilter{}, err
	}
	if f.TotalAmountFrom, err = parseAmount(values.Get("totalAmountFrom")); err != nil {
		return CustomerFilter{}, err
	}
	if f.TotalAmountTo, err = parseAmount(values.Get("totalAmountTo")); err != nil {
		return CustomerFilter{}, err
	}
	if f.OrderCountFrom, err = parseAmount(values.Get("orderCountFrom")); err != nil {
		return CustomerFilter{}, err
	}
	if f.OrderCountTo, err = parseAmount(values.Get("orderCountTo")); err != nil {
		return CustomerFilter{}, err
	}
	if f.Search, err = Search(values.Get("search")); err != nil {
		return CustomerFilter{}, err
	}

	return f, nil
}

// ParseOrderFilter builds an OrderFilter from raw query parameters. A single
// status value is an exact match, repeated values a set-membership match;
// unknown status values are rejected.
func ParseOrderFilter(values url.Values) (OrderFilter, error) {
	var f OrderFilter
	var err error

	for _, s := range values["status"] {
		if !model.ValidStatus(s) {
			return OrderFilter{}, model.ErrInvalidStatus
		}
		f.Statuses = append(f.Statuses, model.OrderStatus(s))
	}

	if f.TotalAmountFrom, err = parseAmount(values.Get("totalAmountFrom")); err != nil {
		return OrderFilter{}, err
	}
	if f.TotalAmountTo, err = parseAmount(values.Get("totalAmountTo")); err != nil {
		return OrderFilter{}, err
	}
	if f.CreatedFrom, err = parseDate(values.Get("orderDateFrom"), false); err != nil {
		return OrderFilter{}, err
	}
	if f.CreatedTo, err = parseDate(values.Get("orderDateTo"), true); err != nil {
		return OrderFilter{}, err
	}
	if f.Search, err = Search(values.Get("search")); err != nil {
		return OrderFilter{}, err
	}

	return f, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses an optional date parameter. "To" bounds are inclusive
// through the end of the day (23:59:59.999 local time).
func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err != nil {
			continue
		}
		if endOfDay {
			t = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
		}
		return &t, nil
	}
	return nil, model.ErrInvalidDate
}

// parseAmount parses an optional numeric parameter, rejecting non-finite
// values.
func parseAmount(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return nil, model.ErrInvalidAmount
	}
	return &num, nil
}

package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/model"
	"storefront/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Whitelisted sort fields mapped to their columns. The normalizer guarantees
// the field is a whitelist member before it gets here; an unknown field still
// falls back to created_at rather than reaching the SQL text.
var customerSortColumns = map[string]string{
	"createdAt":     "c.created_at",
	"totalAmount":   "c.total_amount",
	"orderCount":    "c.order_count",
	"lastOrderDate": "c.last_order_date",
	"name":          "c.name",
}

var orderSortColumns = map[string]string{
	"createdAt":   "o.created_at",
	"totalAmount": "o.total_amount",
	"orderNumber": "o.order_number",
	"status":      "o.status",
}

// orderBy renders an ORDER BY clause with a primary-key tie-break so paging
// is deterministic.
func orderBy(sort query.Sort, columns map[string]string, tieBreak string) string {
	col, ok := columns[sort.Field]
	if !ok {
		col = columns["createdAt"]
	}
	dir := "DESC"
	if sort.Direction == query.Ascending {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, %s ASC", col, dir, tieBreak)
}

// condSet accumulates WHERE predicates with positional arguments.
type condSet struct {
	parts []string
	args  []any
}

// add appends a predicate whose %s placeholders are replaced with the
// positional parameters of the given values.
func (c *condSet) add(cond string, values ...any) {
	placeholders := make([]any, len(values))
	for i, v := range values {
		c.args = append(c.args, v)
		placeholders[i] = "$" + strconv.Itoa(len(c.args))
	}
	c.parts = append(c.parts, fmt.Sprintf(cond, placeholders...))
}

// clause renders the accumulated predicates as a WHERE clause, or an empty
// string when there are none.
func (c *condSet) clause() string {
	if len(c.parts) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(c.parts, " AND ")
}

// customerConds translates a CustomerFilter into SQL predicates. The search
// term matches the customer's name, or customers whose last order's delivery
// address matches.
func customerConds(f query.CustomerFilter) *condSet {
	c := &condSet{}

	if f.RegisteredFrom != nil {
		c.add("c.created_at >= %s", *f.RegisteredFrom)
	}
	if f.RegisteredTo != nil {
		c.add("c.created_at <= %s", *f.RegisteredTo)
	}
	if f.LastOrderFrom != nil {
		c.add("c.last_order_date >= %s", *f.LastOrderFrom)
	}
	if f.LastOrderTo != nil {
		c.add("c.last_order_date <= %s", *f.LastOrderTo)
	}
	if f.TotalAmountFrom != nil {
		c.add("c.total_amount >= %s", *f.TotalAmountFrom)
	}
	if f.TotalAmountTo != nil {
		c.add("c.total_amount <= %s", *f.TotalAmountTo)
	}
	if f.OrderCountFrom != nil {
		c.add("c.order_count >= %s", *f.OrderCountFrom)
	}
	if f.OrderCountTo != nil {
		c.add("c.order_count <= %s", *f.OrderCountTo)
	}
	if f.Search != "" {
		pattern := query.LikePattern(f.Search)
		c.add(
			`(c.name ILIKE %s OR c.last_order_id IN (SELECT o.id FROM orders o WHERE o.delivery_address ILIKE %s))`,
			pattern, pattern,
		)
	}

	return c
}

// orderConds translates an OrderFilter into SQL predicates. The search term
// matches joined product titles, or the order number when the term is
// numeric.
func orderConds(f query.OrderFilter) *condSet {
	c := &condSet{}

	switch len(f.Statuses) {
	case 0:
	case 1:
		c.add("o.status = %s", string(f.Statuses[0]))
	default:
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		c.add("o.status = ANY(%s)", statuses)
	}

	if f.TotalAmountFrom != nil {
		c.add("o.total_amount >= %s", *f.TotalAmountFrom)
	}
	if f.TotalAmountTo != nil {
		c.add("o.total_amount <= %s", *f.TotalAmountTo)
	}
	if f.CreatedFrom != nil {
		c.add("o.created_at >= %s", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		c.add("o.created_at <= %s", *f.CreatedTo)
	}

	if f.Search != "" {
		titleMatch := `EXISTS (SELECT 1 FROM order_products op JOIN products p ON p.id = op.product_id WHERE op.order_id = o.id AND p.title ILIKE %s)`
		if number, err := strconv.ParseInt(f.Search, 10, 64); err == nil {
			c.add("("+titleMatch+" OR o.order_number = %s)", query.LikePattern(f.Search), number)
		} else {
			c.add(titleMatch, query.LikePattern(f.Search))
		}
	}

	return c
}

// uuidStrings renders UUIDs as text for ANY() parameters.
func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// attachProducts loads the referenced products for each order, preserving
// the order in which they were submitted.
func attachProducts(ctx context.Context, pool *pgxpool.Pool, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]*model.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = &orders[i]
	}

	sql := `
		SELECT op.order_id, p.id, p.title, p.description, p.category, p.image, p.price, p.created_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = ANY($1)
		ORDER BY op.order_id, op.position
	`

	rows, err := pool.Query(ctx, sql, uuidStrings(ids))
	if err != nil {
		return fmt.Errorf("failed to query order products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		var p model.Product
		err := rows.Scan(&orderID, &p.ID, &p.Title, &p.Description, &p.Category, &p.Image, &p.Price, &p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan order product: %w", err)
		}
		if o, ok := index[orderID]; ok {
			o.Products = append(o.Products, p)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating order products: %w", err)
	}

	return nil
}

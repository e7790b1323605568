package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = "id, title, description, category, image, price, created_at"

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Image, &p.Price, &p.CreatedAt)
}

// GetAll retrieves products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	sql := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY title, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, sql, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the total number of products.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	sql := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, sql, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	sql := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1)
		ORDER BY title, id
	`

	rows, err := r.pool.Query(ctx, sql, uuidStrings(ids))
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// FindIDsByTitle returns the IDs of products whose title contains the term,
// matched case-insensitively as an escaped literal.
func (r *productRepository) FindIDsByTitle(ctx context.Context, term string) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id FROM products WHERE title ILIKE $1",
		query.LikePattern(term),
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to search products by title")
		return nil, fmt.Errorf("failed to search products by title: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product id")
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product ids")
		return nil, fmt.Errorf("error iterating product ids: %w", err)
	}

	return ids, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	sql := `
		INSERT INTO products (id, title, description, category, image, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, sql,
		product.ID, product.Title, product.Description, product.Category, product.Image, product.Price,
	).Scan(&product.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Msg("product created successfully")
	return nil
}

// Update applies the non-nil fields of req to the product. RemovePrice sets
// the price to NULL, which COALESCE alone could never do.
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	sql := `
		UPDATE products
		SET title = COALESCE($2, title),
			description = COALESCE($3, description),
			category = COALESCE($4, category),
			image = COALESCE($5, image),
			price = CASE WHEN $7 THEN NULL ELSE COALESCE($6, price) END
		WHERE id = $1
		RETURNING ` + productColumns + `
	`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, sql, id, req.Title, req.Description, req.Category, req.Image, req.Price, req.RemovePrice), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &p, nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	sql := `
		DELETE FROM products
		WHERE id = $1
		RETURNING ` + productColumns + `
	`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, sql, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().Str("product_id", id.String()).Msg("product deleted")
	return &p, nil
}

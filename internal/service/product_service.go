package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves one page of the catalogue.
func (s *productService) List(ctx context.Context, page, pageSize int) (*model.ProductList, error) {
	total, err := s.productRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count products")
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * pageSize
	products, err := s.productRepo.GetAll(ctx, pageSize, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", page).
			Int("page_size", pageSize).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("page", page).
		Msg("retrieved products")

	return &model.ProductList{
		Products: products,
		Pagination: model.Pagination{
			Total:       total,
			TotalPages:  query.TotalPages(total, pageSize),
			CurrentPage: page,
			PageSize:    pageSize,
		},
	}, nil
}

// GetByID retrieves a single product.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create adds a product to the catalogue. Title is required; a nil price
// marks the product as not for sale.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if req == nil || req.Title == nil || *req.Title == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Product title is required")
	}

	product := &model.Product{
		ID:    uuid.New(),
		Title: *req.Title,
		Price: req.Price,
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Image != nil {
		product.Image = *req.Image
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("title", product.Title).
		Msg("product created")

	return product, nil
}

// Update applies the non-nil fields of req to the product.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	product, err := s.productRepo.Update(ctx, id, req)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Delete removes a product, returning the deleted row.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return product, nil
}

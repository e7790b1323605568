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

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

// List retrieves one page of customers matching the filter.
func (s *customerService) List(ctx context.Context, f query.CustomerFilter, sortBy query.Sort, page, pageSize int) (*model.CustomerList, error) {
	total, err := s.customerRepo.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	offset := (page - 1) * pageSize
	customers, err := s.customerRepo.List(ctx, f, sortBy, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	if customers == nil {
		customers = []model.Customer{}
	}

	s.logger.Debug().
		Int("count", len(customers)).
		Int("total", total).
		Int("page", page).
		Msg("retrieved customers")

	return &model.CustomerList{
		Customers: customers,
		Pagination: model.Pagination{
			Total:       total,
			TotalPages:  query.TotalPages(total, pageSize),
			CurrentPage: page,
			PageSize:    pageSize,
		},
	}, nil
}

// GetByID retrieves an expanded customer.
func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer == nil {
		s.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
		return nil, model.ErrCustomerNotFound
	}

	return customer, nil
}

// Update applies the whitelisted fields, returning the updated customer.
func (s *customerService) Update(ctx context.Context, id uuid.UUID, upd *model.CustomerUpdate) (*model.Customer, error) {
	if upd == nil || (upd.Name == nil && upd.Phone == nil) {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "No updatable fields provided")
	}
	if upd.Name != nil && *upd.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Customer name cannot be empty")
	}

	customer, err := s.customerRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	if customer == nil {
		s.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
		return nil, model.ErrCustomerNotFound
	}

	s.logger.Info().Str("customer_id", id.String()).Msg("customer updated")
	return customer, nil
}

// Delete removes a customer, returning the deleted row.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete customer: %w", err)
	}

	if customer == nil {
		s.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
		return nil, model.ErrCustomerNotFound
	}

	s.logger.Info().Str("customer_id", id.String()).Msg("customer deleted")
	return customer, nil
}

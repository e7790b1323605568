package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// Create validates and creates a new order. Every referenced product must
// exist and carry a price, and the submitted total must equal the sum of
// those prices. The order row, its product references and the customer's
// aggregates are written in one transaction.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	products, err := s.productRepo.GetByIDs(ctx, req.Items)
	if err != nil {
		s.logger.Error().Err(err).Int("item_count", len(req.Items)).Msg("failed to load order products")
		return nil, fmt.Errorf("failed to load order products: %w", err)
	}

	prices := make(map[uuid.UUID]*float64, len(products))
	for i := range products {
		prices[products[i].ID] = products[i].Price
	}

	var sum float64
	for _, id := range req.Items {
		price, ok := prices[id]
		if !ok {
			s.logger.Warn().Str("product_id", id.String()).Msg("order references unknown product")
			return nil, model.ErrProductMissing(id)
		}
		if price == nil {
			s.logger.Warn().Str("product_id", id.String()).Msg("order references product without price")
			return nil, model.ErrProductNotForSale(id)
		}
		sum += *price
	}

	if sum != req.Total {
		s.logger.Warn().
			Float64("submitted", req.Total).
			Float64("computed", sum).
			Msg("order total mismatch")
		return nil, model.ErrTotalMismatch
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order := &model.Order{
		ID:              uuid.New(),
		Status:          model.StatusNew,
		TotalAmount:     req.Total,
		DeliveryAddress: req.Address,
		Payment:         req.Payment,
		Email:           req.Email,
		Phone:           req.Phone,
		Comment:         req.Comment,
		CustomerID:      req.CustomerID,
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.SetProducts(ctx, tx, order.ID, req.Items); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.customerRepo.ApplyOrder(ctx, tx, req.CustomerID, order.ID, order.TotalAmount, order.CreatedAt); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int64("order_number", order.OrderNumber).
		Int("item_count", len(req.Items)).
		Msg("order created successfully")

	// The reload error stays separate from err so the deferred rollback never
	// fires on an already committed transaction.
	created, readErr := s.orderRepo.GetByNumber(ctx, order.OrderNumber)
	if readErr != nil {
		return nil, fmt.Errorf("failed to load created order: %w", readErr)
	}
	return created, nil
}

// List retrieves one page of orders matching the filter. The page is selected
// over distinct orders before product expansion, so totals and page contents
// always agree.
func (s *orderService) List(ctx context.Context, f query.OrderFilter, sortBy query.Sort, page, pageSize int) (*model.OrderList, error) {
	total, err := s.orderRepo.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * pageSize
	orders, err := s.orderRepo.List(ctx, f, sortBy, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	if orders == nil {
		orders = []model.Order{}
	}

	s.logger.Debug().
		Int("count", len(orders)).
		Int("total", total).
		Int("page", page).
		Msg("retrieved orders")

	return &model.OrderList{
		Orders: orders,
		Pagination: model.Pagination{
			Total:       total,
			TotalPages:  query.TotalPages(total, pageSize),
			CurrentPage: page,
			PageSize:    pageSize,
		},
	}, nil
}

// GetByNumber retrieves an expanded order by its order number.
func (s *orderService) GetByNumber(ctx context.Context, orderNumber int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Int64("order_number", orderNumber).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

// ListForCustomer retrieves one page of a single customer's orders. The
// customer's orders are loaded in full and filtered, sorted and paginated in
// memory. This path is intentionally separate from List: it pages over an
// already materialized slice rather than pushing predicates into SQL.
func (s *orderService) ListForCustomer(ctx context.Context, customerID uuid.UUID, f query.OrderFilter, sortBy query.Sort, page, pageSize int) (*model.OrderList, error) {
	all, err := s.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer orders: %w", err)
	}

	// An empty result is ambiguous: the customer may not exist at all.
	if len(all) == 0 {
		customer, err := s.customerRepo.GetByID(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get customer: %w", err)
		}
		if customer == nil {
			s.logger.Debug().Str("customer_id", customerID.String()).Msg("customer not found")
			return nil, model.ErrCustomerNotFound
		}
	}

	orders, err := s.filterOrders(ctx, all, f)
	if err != nil {
		return nil, err
	}

	sortOrders(orders, sortBy)

	total := len(orders)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	s.logger.Debug().
		Str("customer_id", customerID.String()).
		Int("total", total).
		Int("page", page).
		Msg("retrieved customer orders")

	return &model.OrderList{
		Orders: orders[start:end],
		Pagination: model.Pagination{
			Total:       total,
			TotalPages:  query.TotalPages(total, pageSize),
			CurrentPage: page,
			PageSize:    pageSize,
		},
	}, nil
}

// GetForCustomer retrieves one of the customer's orders by number. An order
// belonging to a different customer is indistinguishable from a missing one.
func (s *orderService) GetForCustomer(ctx context.Context, customerID uuid.UUID, orderNumber int64) (*model.Order, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		s.logger.Debug().Str("customer_id", customerID.String()).Msg("customer not found")
		return nil, model.ErrCustomerNotFound
	}

	order, err := s.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil || order.CustomerID != customerID {
		s.logger.Debug().
			Str("customer_id", customerID.String()).
			Int64("order_number", orderNumber).
			Msg("order not found for customer")
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

// UpdateStatus transitions an order to the given status.
func (s *orderService) UpdateStatus(ctx context.Context, orderNumber int64, status string) (*model.Order, error) {
	if !model.ValidStatus(status) {
		s.logger.Warn().Str("status", status).Msg("invalid order status")
		return nil, model.ErrInvalidStatus
	}

	order, err := s.orderRepo.UpdateStatus(ctx, orderNumber, model.OrderStatus(status))
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if order == nil {
		s.logger.Debug().Int64("order_number", orderNumber).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Int64("order_number", orderNumber).
		Str("status", status).
		Msg("order status updated")

	return order, nil
}

// Delete removes an order by ID, returning the deleted expanded order.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	return order, nil
}

// validateOrderRequest validates the order creation payload.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "Order payload is required")
	}
	if len(req.Items) == 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Order must contain at least one item")
	}
	if req.Address == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Delivery address is required")
	}
	if req.Email == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Email is required")
	}
	if req.CustomerID == uuid.Nil {
		return model.NewDomainError(model.ErrCodeMissingField, "Customer is required")
	}
	return nil
}

// filterOrders applies the filter to an in-memory slice of orders. The search
// term matches product titles through the same escaped lookup the SQL path
// uses, or the order number when the term is numeric.
func (s *orderService) filterOrders(ctx context.Context, orders []model.Order, f query.OrderFilter) ([]model.Order, error) {
	var titleMatches map[uuid.UUID]bool
	var numberMatch int64
	var hasNumber bool

	if f.Search != "" {
		ids, err := s.productRepo.FindIDsByTitle(ctx, f.Search)
		if err != nil {
			return nil, fmt.Errorf("failed to search products: %w", err)
		}
		titleMatches = make(map[uuid.UUID]bool, len(ids))
		for _, id := range ids {
			titleMatches[id] = true
		}
		if n, err := strconv.ParseInt(f.Search, 10, 64); err == nil {
			numberMatch, hasNumber = n, true
		}
	}

	filtered := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, o.Status) {
			continue
		}
		if f.TotalAmountFrom != nil && o.TotalAmount < *f.TotalAmountFrom {
			continue
		}
		if f.TotalAmountTo != nil && o.TotalAmount > *f.TotalAmountTo {
			continue
		}
		if f.CreatedFrom != nil && o.CreatedAt.Before(*f.CreatedFrom) {
			continue
		}
		if f.CreatedTo != nil && o.CreatedAt.After(*f.CreatedTo) {
			continue
		}
		if f.Search != "" && !matchesSearch(o, titleMatches, numberMatch, hasNumber) {
			continue
		}
		filtered = append(filtered, o)
	}

	return filtered, nil
}

func containsStatus(statuses []model.OrderStatus, s model.OrderStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func matchesSearch(o model.Order, titleMatches map[uuid.UUID]bool, number int64, hasNumber bool) bool {
	if hasNumber && o.OrderNumber == number {
		return true
	}
	for _, p := range o.Products {
		if titleMatches[p.ID] {
			return true
		}
	}
	return false
}

// sortOrders sorts in place by the whitelisted field. Ties break on the ID in
// ascending order regardless of direction, matching the SQL listing, so
// paging over equal keys is deterministic.
func sortOrders(orders []model.Order, sortBy query.Sort) {
	compare := func(a, b model.Order) int {
		switch sortBy.Field {
		case "totalAmount":
			switch {
			case a.TotalAmount < b.TotalAmount:
				return -1
			case a.TotalAmount > b.TotalAmount:
				return 1
			}
		case "orderNumber":
			switch {
			case a.OrderNumber < b.OrderNumber:
				return -1
			case a.OrderNumber > b.OrderNumber:
				return 1
			}
		case "status":
			if c := strings.Compare(string(a.Status), string(b.Status)); c != 0 {
				return c
			}
		default:
			switch {
			case a.CreatedAt.Before(b.CreatedAt):
				return -1
			case a.CreatedAt.After(b.CreatedAt):
				return 1
			}
		}
		return 0
	}

	sort.SliceStable(orders, func(i, j int) bool {
		c := compare(orders[i], orders[j])
		if sortBy.Direction == query.Descending {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return strings.Compare(orders[i].ID.String(), orders[j].ID.String()) < 0
	})
}

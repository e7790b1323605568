package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CustomerHandler handles customer HTTP requests.
type CustomerHandler struct {
	customers service.CustomerService
	orders    service.OrderService
	logger    zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customers service.CustomerService, orders service.OrderService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		orders:    orders,
		logger:    logger.With().Str("handler", "customer").Logger(),
	}
}

// List handles GET /api/customers requests.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	filter, err := query.ParseCustomerFilter(params)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	page := query.Page(params.Get("page"))
	pageSize := query.PageSize(params.Get("limit"))
	sortBy := query.NewSort(params.Get("sortField"), params.Get("sortOrder"), query.CustomerSortFields)

	list, err := h.customers.List(r.Context(), filter, sortBy, page, pageSize)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// GetByID handles GET /api/customers/{id} requests.
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid customer ID format", h.logger)
		return
	}

	customer, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Update handles PATCH /api/customers/{id} requests.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid customer ID format", h.logger)
		return
	}

	var req model.CustomerUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	customer, err := h.customers.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Delete handles DELETE /api/customers/{id} requests.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid customer ID format", h.logger)
		return
	}

	customer, err := h.customers.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// ListOrders handles GET /api/customers/{id}/orders requests.
func (h *CustomerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid customer ID format", h.logger)
		return
	}

	params := r.URL.Query()

	filter, err := query.ParseOrderFilter(params)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	page := query.Page(params.Get("page"))
	pageSize := query.PageSize(params.Get("limit"))
	sortBy := query.NewSort(params.Get("sortField"), params.Get("sortOrder"), query.OrderSortFields)

	list, err := h.orders.ListForCustomer(r.Context(), id, filter, sortBy, page, pageSize)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// GetOrder handles GET /api/customers/{id}/orders/{orderNumber} requests.
func (h *CustomerHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid customer ID format", h.logger)
		return
	}

	orderNumber, err := strconv.ParseInt(chi.URLParam(r, "orderNumber"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid order number", h.logger)
		return
	}

	order, err := h.orders.GetForCustomer(r.Context(), id, orderNumber)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

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

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	filter, err := query.ParseOrderFilter(params)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	page := query.Page(params.Get("page"))
	pageSize := query.PageSize(params.Get("limit"))
	sortBy := query.NewSort(params.Get("sortField"), params.Get("sortOrder"), query.OrderSortFields)

	list, err := h.service.List(r.Context(), filter, sortBy, page, pageSize)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByNumber handles GET /api/orders/{orderNumber} requests.
func (h *OrderHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	orderNumber, err := strconv.ParseInt(chi.URLParam(r, "orderNumber"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid order number", h.logger)
		return
	}

	order, err := h.service.GetByNumber(r.Context(), orderNumber)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/orders/{orderNumber} requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderNumber, err := strconv.ParseInt(chi.URLParam(r, "orderNumber"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid order number", h.logger)
		return
	}

	var req model.OrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderNumber, req.Status)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /api/orders/{id} requests.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

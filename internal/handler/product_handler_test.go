package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductRouter(svc *MockProductService) *chi.Mux {
	h := NewProductHandler(svc, zerolog.Nop())

	r := chi.NewRouter()
	r.Get("/api/products", h.List)
	r.Post("/api/products", h.Create)
	r.Get("/api/products/{id}", h.GetByID)
	r.Patch("/api/products/{id}", h.Update)
	r.Delete("/api/products/{id}", h.Delete)
	return r
}

func productPrice(v float64) *float64 {
	return &v
}

func TestProductHandler_List(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		expectedPage int
		expectedSize int
	}{
		{
			name:         "Defaults",
			target:       "/api/products",
			expectedPage: 1,
			expectedSize: 10,
		},
		{
			name:         "Explicit page",
			target:       "/api/products?page=3&limit=5",
			expectedPage: 3,
			expectedSize: 5,
		},
		{
			name:         "Oversized limit clamps",
			target:       "/api/products?limit=1000",
			expectedPage: 1,
			expectedSize: 10,
		},
		{
			name:         "Garbage pagination falls back",
			target:       "/api/products?page=abc&limit=-4",
			expectedPage: 1,
			expectedSize: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			router := newProductRouter(svc)

			list := &model.ProductList{
				Products: []model.Product{},
				Pagination: model.Pagination{
					CurrentPage: tt.expectedPage,
					PageSize:    tt.expectedSize,
				},
			}
			svc.On("List", mock.Anything, tt.expectedPage, tt.expectedSize).Return(list, nil)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockProductService)
		router := newProductRouter(svc)

		id := uuid.New()
		product := &model.Product{ID: id, Title: "Enamel Mug", Price: productPrice(12.50)}
		svc.On("GetByID", mock.Anything, id).Return(product, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products/"+id.String(), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp model.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Enamel Mug", resp.Title)
	})

	t.Run("Not found", func(t *testing.T) {
		svc := new(MockProductService)
		router := newProductRouter(svc)

		id := uuid.New()
		svc.On("GetByID", mock.Anything, id).Return(nil, model.ErrProductNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/products/"+id.String(), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		svc := new(MockProductService)
		router := newProductRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.ErrCodeInvalidID, resp.Code)
		svc.AssertNotCalled(t, "GetByID")
	})
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockProductService)
		router := newProductRouter(svc)

		title := "Enamel Mug"
		reqBody := model.ProductRequest{Title: &title, Price: productPrice(12.50)}

		created := &model.Product{ID: uuid.New(), Title: title, Price: productPrice(12.50)}
		svc.On("Create", mock.Anything, &reqBody).Return(created, nil)

		body, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Missing title", func(t *testing.T) {
		svc := new(MockProductService)
		router := newProductRouter(svc)

		reqBody := model.ProductRequest{Price: productPrice(12.50)}
		svc.On("Create", mock.Anything, &reqBody).
			Return(nil, model.NewDomainError(model.ErrCodeMissingField, "Product title is required"))

		body, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Update(t *testing.T) {
	svc := new(MockProductService)
	router := newProductRouter(svc)

	id := uuid.New()
	reqBody := model.ProductRequest{Price: productPrice(15.00)}

	updated := &model.Product{ID: id, Title: "Enamel Mug", Price: productPrice(15.00)}
	svc.On("Update", mock.Anything, id, &reqBody).Return(updated, nil)

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPatch, "/api/products/"+id.String(), bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Price)
	assert.Equal(t, 15.00, *resp.Price)
}

func TestProductHandler_Delete(t *testing.T) {
	svc := new(MockProductService)
	router := newProductRouter(svc)

	id := uuid.New()
	deleted := &model.Product{ID: id, Title: "Enamel Mug"}
	svc.On("Delete", mock.Anything, id).Return(deleted, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/"+id.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

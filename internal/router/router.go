package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/ratelimit"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// Everything under /api requires the API key; the customer listing is
// additionally rate limited.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	customerHandler *handler.CustomerHandler,
	uploadHandler *handler.UploadHandler,
	limiter ratelimit.Limiter,
	uploadDir string,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Stored images are served as-is.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.APIKeyAuth(apiKey, logger))

		api.Route("/products", func(products chi.Router) {
			products.Get("/", productHandler.List)
			products.Post("/", productHandler.Create)
			products.Get("/{id}", productHandler.GetByID)
			products.Patch("/{id}", productHandler.Update)
			products.Delete("/{id}", productHandler.Delete)
		})

		api.Route("/orders", func(orders chi.Router) {
			orders.Get("/", orderHandler.List)
			orders.Post("/", orderHandler.Create)
			orders.Get("/{orderNumber}", orderHandler.GetByNumber)
			orders.Patch("/{orderNumber}", orderHandler.UpdateStatus)
			orders.Delete("/{id}", orderHandler.Delete)
		})

		api.Route("/customers", func(customers chi.Router) {
			customers.With(middleware.RateLimit(limiter, logger)).Get("/", customerHandler.List)
			customers.Get("/{id}", customerHandler.GetByID)
			customers.Patch("/{id}", customerHandler.Update)
			customers.Delete("/{id}", customerHandler.Delete)
			customers.Get("/{id}/orders", customerHandler.ListOrders)
			customers.Get("/{id}/orders/{orderNumber}", customerHandler.GetOrder)
		})

		api.Post("/upload", uploadHandler.Create)
	})

	return r
}

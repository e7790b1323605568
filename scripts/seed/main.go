// Seeds the development database with a small catalogue and a few customers
// with orders. Run it against an empty database:
//
//	API_KEY=dev go run ./scripts/seed
package main

import (
	"context"
	"fmt"
	"os"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func price(v float64) *float64 {
	return &v
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)
	orders := service.NewOrderService(orderRepo, productRepo, customerRepo, logger)

	products := []model.Product{
		{ID: uuid.New(), Title: "Enamel Mug", Description: "Classic 350ml enamel mug", Category: "kitchen", Price: price(12.50)},
		{ID: uuid.New(), Title: "Travel Mug", Description: "Insulated 450ml travel mug", Category: "kitchen", Price: price(18.00)},
		{ID: uuid.New(), Title: "Wool Blanket", Description: "Lambswool throw, 130x180cm", Category: "home", Price: price(45.00)},
		{ID: uuid.New(), Title: "Desk Lamp", Description: "Adjustable brass desk lamp", Category: "home", Price: price(30.00)},
		{ID: uuid.New(), Title: "Linen Apron", Description: "Stonewashed linen apron", Category: "kitchen", Price: price(24.00)},
		{ID: uuid.New(), Title: "Gift Wrap", Description: "Added to gift orders at the counter", Category: "extras"},
	}
	for i := range products {
		if err := productRepo.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", products[i].Title, err)
		}
	}
	logger.Info().Int("count", len(products)).Msg("products seeded")

	customers := []model.Customer{
		{ID: uuid.New(), Name: "Nora Lind", Email: "nora@example.com", Phone: "+4740000001"},
		{ID: uuid.New(), Name: "Tom Waits", Email: "tom@example.com", Phone: "+4740000002"},
		{ID: uuid.New(), Name: "Ada Byron", Email: "ada@example.com"},
	}
	for i := range customers {
		if err := customerRepo.Create(ctx, &customers[i]); err != nil {
			return fmt.Errorf("failed to seed customer %q: %w", customers[i].Name, err)
		}
	}
	logger.Info().Int("count", len(customers)).Msg("customers seeded")

	// Orders go through the service so customer aggregates stay consistent.
	requests := []model.OrderRequest{
		{
			Items:      []uuid.UUID{products[0].ID, products[2].ID},
			Total:      57.50,
			Address:    "12 Harbour Street, Bergen",
			Payment:    "card",
			Email:      customers[0].Email,
			Phone:      customers[0].Phone,
			CustomerID: customers[0].ID,
		},
		{
			Items:      []uuid.UUID{products[1].ID},
			Total:      18.00,
			Address:    "7 Nordstrand Lane, Oslo",
			Payment:    "cash",
			Email:      customers[1].Email,
			Phone:      customers[1].Phone,
			Comment:    "Leave with the neighbour",
			CustomerID: customers[1].ID,
		},
		{
			Items:      []uuid.UUID{products[3].ID, products[4].ID},
			Total:      54.00,
			Address:    "12 Harbour Street, Bergen",
			Payment:    "card",
			Email:      customers[0].Email,
			Phone:      customers[0].Phone,
			CustomerID: customers[0].ID,
		},
	}
	for _, req := range requests {
		order, err := orders.Create(ctx, &req)
		if err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}
		logger.Info().Int64("order_number", order.OrderNumber).Msg("order seeded")
	}

	logger.Info().Msg("seeding complete")
	return nil
}

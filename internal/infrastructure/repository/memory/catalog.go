package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mrops-br/cart-ledger-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Catalog is the in-memory, read-only implementation of
// domain.ProductRepository. Seeded once at construction; the cart core
// only ever reads from it.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewCatalog creates a catalog holding the given products, preserving
// their order for listings.
func NewCatalog(products []*domain.Product, tracer trace.Tracer, logger *slog.Logger) *Catalog {
	byID := make(map[string]*domain.Product, len(products))
	order := make([]string, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		order = append(order, p.ID)
	}

	logger.Info("Catalog seeded", slog.Int("products", len(products)))

	return &Catalog{
		products: byID,
		order:    order,
		tracer:   tracer,
		logger:   logger,
	}
}

// FindByID retrieves a product by ID
func (c *Catalog) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := c.tracer.Start(ctx, "Catalog.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	c.mu.RLock()
	defer c.mu.RUnlock()

	product, exists := c.products[id]
	if !exists {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		c.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		return nil, domain.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "Product found")
	return product, nil
}

// FindAll retrieves all products in seed order
func (c *Catalog) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := c.tracer.Start(ctx, "Catalog.FindAll")
	defer span.End()

	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]*domain.Product, 0, len(c.order))
	for _, id := range c.order {
		products = append(products, c.products[id])
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))

	c.logger.DebugContext(ctx, "Products retrieved from catalog",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// FindByCategory retrieves products matching the category tag
func (c *Catalog) FindByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	ctx, span := c.tracer.Start(ctx, "Catalog.FindByCategory")
	defer span.End()

	span.SetAttributes(attribute.String("product.category", category))

	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]*domain.Product, 0)
	for _, id := range c.order {
		if c.products[id].Category == category {
			products = append(products, c.products[id])
		}
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))

	c.logger.DebugContext(ctx, "Products retrieved by category",
		slog.String("category", category),
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

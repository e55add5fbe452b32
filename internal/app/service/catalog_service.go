package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/cart-ledger-api/internal/app/dto"
	"github.com/mrops-br/cart-ledger-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CatalogService handles read-only product catalog use cases
type CatalogService struct {
	repo              domain.ProductRepository
	tracer            trace.Tracer
	logger            *slog.Logger
	catalogOperations metric.Int64Counter
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CatalogService {
	catalogOperations, _ := meter.Int64Counter(
		"catalog.operations",
		metric.WithDescription("Total number of catalog operations"),
	)

	return &CatalogService{
		repo:              repo,
		tracer:            tracer,
		logger:            logger,
		catalogOperations: catalogOperations,
	}
}

// GetProductByID retrieves a product by ID
func (s *CatalogService) GetProductByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		s.catalogOperations.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("operation", "read"),
				attribute.String("result", "not_found"),
			),
		)
		return nil, err
	}

	s.catalogOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", "read"),
			attribute.String("result", "success"),
		),
	)

	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductResponse(product), nil
}

// ListProducts retrieves the catalog, optionally filtered by category
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	var (
		products []*domain.Product
		err      error
	)
	if category != "" {
		span.SetAttributes(attribute.String("product.category", category))
		products, err = s.repo.FindByCategory(ctx, category)
	} else {
		products, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve products")
		s.logger.ErrorContext(ctx, "Failed to list products",
			slog.String("error", err.Error()),
		)
		s.catalogOperations.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("operation", "list"),
				attribute.String("result", "failure"),
			),
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))

	s.catalogOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", "list"),
			attribute.String("result", "success"),
		),
	)

	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductResponseList(products), nil
}

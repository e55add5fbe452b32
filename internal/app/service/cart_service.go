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

// CartService handles cart use cases: it resolves products against the
// catalog, drives the ledger, and derives the pricing quote.
type CartService struct {
	ledger         *domain.Ledger
	catalog        domain.ProductRepository
	calc           domain.Calculator
	tracer         trace.Tracer
	logger         *slog.Logger
	cartOperations metric.Int64Counter
	itemsAdded     metric.Int64Counter
	cartValue      metric.Float64Histogram
}

// NewCartService creates a new cart service
func NewCartService(
	ledger *domain.Ledger,
	catalog domain.ProductRepository,
	calc domain.Calculator,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CartService {
	// Initialize metrics
	cartOperations, _ := meter.Int64Counter(
		"cart.operations",
		metric.WithDescription("Total number of cart operations"),
	)

	itemsAdded, _ := meter.Int64Counter(
		"cart.items.added",
		metric.WithDescription("Total units added to the cart"),
	)

	cartValue, _ := meter.Float64Histogram(
		"cart.value",
		metric.WithDescription("Cart grand total after each operation"),
		metric.WithUnit("{currency}"),
	)

	return &CartService{
		ledger:         ledger,
		catalog:        catalog,
		calc:           calc,
		tracer:         tracer,
		logger:         logger,
		cartOperations: cartOperations,
		itemsAdded:     itemsAdded,
		cartValue:      cartValue,
	}
}

// GetCart returns the current line items with derived totals
func (s *CartService) GetCart(ctx context.Context) *dto.CartResponse {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart")
	defer span.End()

	resp := s.snapshot()

	span.SetAttributes(attribute.Int("cart.item_count", resp.ItemCount))
	span.SetStatus(codes.Ok, "Cart retrieved")

	s.cartOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", "get"),
			attribute.String("result", "success"),
		),
	)

	return resp
}

// AddItem resolves the product and adds the requested quantity to the
// ledger (merging with an existing line item if present). Stock is not
// enforced here; the catalog's stock field travels with the response so
// callers can enforce their own limit.
func (s *CartService) AddItem(ctx context.Context, req *dto.AddItemRequest) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", req.ProductID),
		attribute.Int("cart.quantity", req.Quantity),
	)

	if req.Quantity < 1 {
		span.RecordError(domain.ErrInvalidQuantity)
		span.SetStatus(codes.Error, "Invalid quantity")
		s.recordOperation(ctx, "add", "invalid")
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.FindByID(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Cannot add unknown product",
			slog.String("product_id", req.ProductID),
		)
		s.recordOperation(ctx, "add", "not_found")
		return nil, err
	}

	merged, err := s.ledger.AddItem(ctx, *product, req.Quantity)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to add item")
		s.recordOperation(ctx, "add", "failure")
		return nil, err
	}

	span.SetAttributes(attribute.Bool("cart.merged", merged))

	s.itemsAdded.Add(ctx, int64(req.Quantity),
		metric.WithAttributes(attribute.String("product.id", product.ID)),
	)
	s.recordOperation(ctx, "add", "success")

	s.logger.InfoContext(ctx, "Item added to cart",
		slog.String("product_id", product.ID),
		slog.Int("quantity", req.Quantity),
		slog.Bool("merged", merged),
	)

	resp := s.snapshot()
	s.recordValue(ctx)

	span.SetStatus(codes.Ok, "Item added")
	return resp, nil
}

// UpdateQuantity sets a line item's quantity to an absolute value.
// Zero or negative removes the item; an absent product ID is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) *dto.CartResponse {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateQuantity")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	)

	s.ledger.UpdateQuantity(ctx, productID, quantity)
	s.recordOperation(ctx, "update", "success")

	s.logger.InfoContext(ctx, "Cart quantity updated",
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	resp := s.snapshot()
	s.recordValue(ctx)

	span.SetStatus(codes.Ok, "Quantity updated")
	return resp
}

// RemoveItem deletes a line item; absent IDs are a no-op.
func (s *CartService) RemoveItem(ctx context.Context, productID string) *dto.CartResponse {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", productID))

	s.ledger.RemoveItem(ctx, productID)
	s.recordOperation(ctx, "remove", "success")

	s.logger.InfoContext(ctx, "Item removed from cart",
		slog.String("product_id", productID),
	)

	resp := s.snapshot()
	s.recordValue(ctx)

	span.SetStatus(codes.Ok, "Item removed")
	return resp
}

// ClearCart empties the ledger.
func (s *CartService) ClearCart(ctx context.Context) *dto.CartResponse {
	ctx, span := s.tracer.Start(ctx, "CartService.ClearCart")
	defer span.End()

	s.ledger.Clear(ctx)
	s.recordOperation(ctx, "clear", "success")

	s.logger.InfoContext(ctx, "Cart cleared")

	span.SetStatus(codes.Ok, "Cart cleared")
	return s.snapshot()
}

func (s *CartService) snapshot() *dto.CartResponse {
	items := s.ledger.Items()
	quote := s.calc.QuoteItems(items)
	return dto.ToCartResponse(items, s.ledger.ItemCount(), quote)
}

func (s *CartService) recordOperation(ctx context.Context, operation, result string) {
	s.cartOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

func (s *CartService) recordValue(ctx context.Context) {
	total, _ := s.calc.QuoteItems(s.ledger.Items()).Total.Float64()
	s.cartValue.Record(ctx, total)
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/cart-ledger-api/internal/app/service"
	"github.com/mrops-br/cart-ledger-api/internal/domain"
	"github.com/mrops-br/cart-ledger-api/internal/infrastructure/config"
	"github.com/mrops-br/cart-ledger-api/internal/infrastructure/http"
	"github.com/mrops-br/cart-ledger-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/cart-ledger-api/internal/infrastructure/notify"
	"github.com/mrops-br/cart-ledger-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/cart-ledger-api/internal/infrastructure/store"
	"github.com/mrops-br/cart-ledger-api/internal/infrastructure/telemetry"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize OpenTelemetry
	telem, err := telemetry.NewTelemetry(&cfg.OTLP)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ensure telemetry is shutdown on exit
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	// Get tracer, meter, and logger instances
	tracer := telem.TracerProvider.Tracer("cart-ledger-api")
	meter := telem.MeterProvider.Meter("cart-ledger-api")
	logger := telem.Logger

	logger.Info("Starting Cart Ledger API")

	// Seed the read-only product catalog
	products := memory.DefaultSeed()
	if cfg.Catalog.SeedFile != "" {
		products, err = memory.LoadSeed(cfg.Catalog.SeedFile)
		if err != nil {
			log.Fatalf("Failed to load catalog seed: %v", err)
		}
	}
	catalog := memory.NewCatalog(products, tracer, logger)

	// Select the cart store backend
	var cartStore domain.CartStore
	switch cfg.Cart.Backend {
	case "redis":
		redisStore, err := store.NewRedisStore(cfg.Cart.RedisAddr, cfg.Cart.RedisDB, cfg.Cart.StorageKey, tracer, logger)
		if err != nil {
			log.Fatalf("Failed to initialize redis cart store: %v", err)
		}
		defer redisStore.Close()
		cartStore = redisStore
	case "memory":
		cartStore = store.NewMemoryStore()
	default:
		cartStore = store.NewFileStore(cfg.Cart.FilePath, tracer, logger)
	}

	// Hydrate the ledger from the store; the ledger is the single
	// writer for its key for the lifetime of the process.
	notifier := notify.NewLogNotifier(logger)
	ledger := domain.NewLedger(ctx, cartStore, notifier, logger)

	calc := domain.Calculator{
		FreeShippingOver: cfg.Pricing.FreeShippingOver,
		FlatShippingFee:  cfg.Pricing.FlatShippingFee,
		TaxRate:          cfg.Pricing.TaxRate,
	}

	// Initialize services
	catalogService := service.NewCatalogService(catalog, tracer, meter, logger)
	cartService := service.NewCartService(ledger, catalog, calc, tracer, meter, logger)

	// Initialize handlers
	productHandler := handler.NewProductHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)

	// Initialize HTTP server
	server := http.NewServer(&cfg.Server, productHandler, cartHandler, tracer, logger, telem)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", "error", err.Error())
			cancel()
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	logger.Info("Server stopped")
}

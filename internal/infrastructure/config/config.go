package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	Server  ServerConfig
	OTLP    OTLPConfig
	Catalog CatalogConfig
	Cart    CartConfig
	Pricing PricingConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type OTLPConfig struct {
	Endpoint    string
	ServiceName string
	Environment string
}

type CatalogConfig struct {
	// SeedFile optionally points at a JSON array of products; when
	// empty the built-in seed catalog is used.
	SeedFile string
}

type CartConfig struct {
	// Backend selects the cart store: "file", "redis", or "memory".
	Backend string
	// FilePath is where the file backend keeps the serialized cart.
	FilePath string
	// RedisAddr and RedisDB configure the redis backend.
	RedisAddr string
	RedisDB   int
	// StorageKey is the single key the cart document lives under.
	StorageKey string
}

type PricingConfig struct {
	TaxRate          decimal.Decimal
	FlatShippingFee  decimal.Decimal
	FreeShippingOver decimal.Decimal
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		OTLP: OTLPConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "cart-ledger-api"),
			Environment: getEnv("OTEL_ENVIRONMENT", "development"),
		},
		Catalog: CatalogConfig{
			SeedFile: getEnv("CATALOG_SEED_FILE", ""),
		},
		Cart: CartConfig{
			Backend:    getEnv("CART_STORE_BACKEND", "file"),
			FilePath:   getEnv("CART_STORE_FILE", "cart.json"),
			RedisAddr:  getEnv("CART_STORE_REDIS_ADDR", "localhost:6379"),
			RedisDB:    getIntEnv("CART_STORE_REDIS_DB", 0),
			StorageKey: getEnv("CART_STORAGE_KEY", "cart:items"),
		},
		Pricing: PricingConfig{
			TaxRate:          getDecimalEnv("PRICING_TAX_RATE", "0.07"),
			FlatShippingFee:  getDecimalEnv("PRICING_FLAT_SHIPPING_FEE", "10"),
			FreeShippingOver: getDecimalEnv("PRICING_FREE_SHIPPING_OVER", "100"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDecimalEnv(key, defaultValue string) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(defaultValue)
}

package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mrops-br/cart-ledger-api/internal/domain"
	"github.com/shopspring/decimal"
)

// LoadSeed reads a JSON array of products from path. Products in the
// file are validated; an ID is generated when the file omits one.
func LoadSeed(path string) ([]*domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog seed: %w", err)
	}

	var products []*domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed: %w", err)
	}

	for _, p := range products {
		if p.ID == "" {
			seeded, err := domain.NewProduct(p.Name, p.Category, p.Price, p.Stock)
			if err != nil {
				return nil, fmt.Errorf("invalid product %q in seed: %w", p.Name, err)
			}
			p.ID = seeded.ID
		} else if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid product %q in seed: %w", p.Name, err)
		}
	}

	return products, nil
}

// DefaultSeed returns the built-in demo catalog used when no seed file
// is configured.
func DefaultSeed() []*domain.Product {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	orig := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	return []*domain.Product{
		{ID: "1", Name: "Wireless Headphones", Price: price("129.99"), OriginalPrice: orig("159.99"), Category: "electronics", Stock: 12, Color: "black"},
		{ID: "2", Name: "Smart Watch Band", Price: price("49.99"), Category: "electronics", Stock: 30, Color: "midnight", Size: "m"},
		{ID: "3", Name: "Canvas Backpack", Price: price("89.50"), Category: "accessories", Stock: 8, Color: "olive"},
		{ID: "4", Name: "Ceramic Mug", Price: price("18.00"), Category: "home", Stock: 45},
		{ID: "5", Name: "Desk Lamp", Price: price("64.25"), OriginalPrice: orig("79.00"), Category: "home", Stock: 5},
		{ID: "6", Name: "Running Shoes", Price: price("110.00"), Category: "apparel", Stock: 17, Color: "white", Size: "42"},
	}
}

package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProductName  = errors.New("product name is required")
	ErrInvalidProductPrice = errors.New("product price must be positive")
	ErrInvalidProductStock = errors.New("product stock must not be negative")
)

// Product represents a read-only catalog entry. The cart stores a
// denormalized copy of it, so every field here is also what gets
// persisted inside a LineItem.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Category      string           `json:"category"`
	Stock         int              `json:"stock"`
	Color         string           `json:"color,omitempty"`
	Size          string           `json:"size,omitempty"`
}

// NewProduct creates a new catalog product with validation
func NewProduct(name, category string, price decimal.Decimal, stock int) (*Product, error) {
	product := &Product{
		ID:       uuid.New().String(),
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidProductName
	}
	if !p.Price.IsPositive() {
		return ErrInvalidProductPrice
	}
	if p.Stock < 0 {
		return ErrInvalidProductStock
	}
	return nil
}

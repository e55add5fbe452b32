package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// ProductRepository defines the contract for the read-only product catalog
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	FindByCategory(ctx context.Context, category string) ([]*Product, error)
}

// CartStore persists the full ledger as one serialized document under a
// single well-known key. Load must fail soft: missing or malformed
// stored data comes back as an empty slice with a nil error, never as
// an error the ledger has to handle.
type CartStore interface {
	Load(ctx context.Context) ([]LineItem, error)
	Save(ctx context.Context, items []LineItem) error
}

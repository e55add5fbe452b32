package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrops-br/cart-ledger-api/internal/domain"
)

func TestNewProduct(t *testing.T) {
	p, err := domain.NewProduct("Headphones", "electronics", decimal.RequireFromString("129.99"), 12)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Headphones", p.Name)
	assert.Equal(t, 12, p.Stock)
}

func TestProductValidation(t *testing.T) {
	tests := []struct {
		name    string
		product domain.Product
		wantErr error
	}{
		{
			name:    "missing name",
			product: domain.Product{Price: decimal.RequireFromString("10")},
			wantErr: domain.ErrInvalidProductName,
		},
		{
			name:    "zero price",
			product: domain.Product{Name: "Mug", Price: decimal.Zero},
			wantErr: domain.ErrInvalidProductPrice,
		},
		{
			name:    "negative price",
			product: domain.Product{Name: "Mug", Price: decimal.RequireFromString("-1")},
			wantErr: domain.ErrInvalidProductPrice,
		},
		{
			name:    "negative stock",
			product: domain.Product{Name: "Mug", Price: decimal.RequireFromString("10"), Stock: -1},
			wantErr: domain.ErrInvalidProductStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.product.Validate(), tt.wantErr)
		})
	}
}

func TestLineTotal(t *testing.T) {
	item := domain.LineItem{
		Product:  testProduct("p1", "Band", "49.99"),
		Quantity: 3,
	}
	assert.Equal(t, "149.97", item.LineTotal().StringFixed(2))
}

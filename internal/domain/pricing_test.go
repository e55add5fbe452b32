package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mrops-br/cart-ledger-api/internal/domain"
)

func defaultCalculator() domain.Calculator {
	return domain.Calculator{
		FreeShippingOver: decimal.RequireFromString("100"),
		FlatShippingFee:  decimal.RequireFromString("10"),
		TaxRate:          decimal.RequireFromString("0.07"),
	}
}

func TestShippingBoundaries(t *testing.T) {
	calc := defaultCalculator()

	tests := []struct {
		name     string
		subtotal string
		want     string
	}{
		{"empty cart ships free", "0.00", "0.00"},
		{"below threshold pays flat fee", "50.00", "10.00"},
		{"exactly at threshold still pays", "100.00", "10.00"},
		{"just above threshold ships free", "100.01", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal := decimal.RequireFromString(tt.subtotal)
			assert.Equal(t, tt.want, calc.Shipping(subtotal).StringFixed(2))
		})
	}
}

func TestTaxRate(t *testing.T) {
	calc := defaultCalculator()

	tax := calc.Tax(decimal.RequireFromString("100.00"))
	assert.Equal(t, "7.00", tax.StringFixed(2))
}

func TestTotalAtThreshold(t *testing.T) {
	calc := defaultCalculator()
	items := []domain.LineItem{
		{Product: testProduct("p1", "Shoes", "50.00"), Quantity: 2},
	}

	quote := calc.QuoteItems(items)
	assert.Equal(t, "100.00", quote.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", quote.Shipping.StringFixed(2))
	assert.Equal(t, "7.00", quote.Tax.StringFixed(2))
	assert.Equal(t, "117.00", quote.Total.StringFixed(2))
}

func TestQuoteEmptyCart(t *testing.T) {
	calc := defaultCalculator()

	quote := calc.QuoteItems(nil)
	assert.True(t, quote.Subtotal.IsZero())
	assert.True(t, quote.Shipping.IsZero())
	assert.True(t, quote.Tax.IsZero())
	assert.True(t, quote.Total.IsZero())
}

func TestSubtotalSumsBeforeRounding(t *testing.T) {
	// Three items at a third of a cent each must not accumulate
	// per-line rounding error.
	items := []domain.LineItem{
		{Product: testProduct("a", "A", "0.333"), Quantity: 1},
		{Product: testProduct("b", "B", "0.333"), Quantity: 1},
		{Product: testProduct("c", "C", "0.334"), Quantity: 1},
	}

	assert.Equal(t, "1.00", domain.Subtotal(items).StringFixed(2))
}

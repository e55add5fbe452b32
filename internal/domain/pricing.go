package domain

import "github.com/shopspring/decimal"

// Calculator derives shipping, tax, and the grand total from a
// subtotal. All functions are pure; amounts stay exact decimals and are
// only rounded at the presentation edge.
type Calculator struct {
	// FreeShippingOver is the subtotal above which (strictly greater
	// than) shipping is free.
	FreeShippingOver decimal.Decimal
	// FlatShippingFee applies whenever shipping is not free.
	FlatShippingFee decimal.Decimal
	// TaxRate is applied to the subtotal, e.g. 0.07 for 7%.
	TaxRate decimal.Decimal
}

// Quote is the derived pricing breakdown for a cart.
type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Subtotal sums price times quantity over the line items before any
// rounding takes place.
func Subtotal(items []LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// Shipping is zero for an empty cart and for subtotals strictly above
// the free-shipping threshold; otherwise the flat fee applies. A
// subtotal exactly at the threshold still pays shipping.
func (c Calculator) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() || subtotal.GreaterThan(c.FreeShippingOver) {
		return decimal.Zero
	}
	return c.FlatShippingFee
}

// Tax applies the configured rate to the subtotal.
func (c Calculator) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.TaxRate)
}

// QuoteItems computes the full breakdown for a set of line items.
func (c Calculator) QuoteItems(items []LineItem) Quote {
	subtotal := Subtotal(items)
	shipping := c.Shipping(subtotal)
	tax := c.Tax(subtotal)

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

package dto

import (
	"github.com/mrops-br/cart-ledger-api/internal/domain"
)

// AddItemRequest represents the request to add a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityRequest sets a line item's quantity to an absolute value
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// LineItemResponse is one cart line with its snapshot fields
type LineItemResponse struct {
	Product   ProductResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal string          `json:"line_total"`
}

// CartResponse is the full cart view: line items plus derived totals.
// All money values are rounded to 2 decimal places for display.
type CartResponse struct {
	Items     []LineItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  string             `json:"subtotal"`
	Shipping  string             `json:"shipping"`
	Tax       string             `json:"tax"`
	Total     string             `json:"total"`
}

// ToCartResponse converts ledger items and a pricing quote into the
// response shape.
func ToCartResponse(items []domain.LineItem, itemCount int, quote domain.Quote) *CartResponse {
	lines := make([]LineItemResponse, len(items))
	for i, item := range items {
		product := item.Product
		lines[i] = LineItemResponse{
			Product:   *ToProductResponse(&product),
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal().StringFixed(2),
		}
	}

	return &CartResponse{
		Items:     lines,
		ItemCount: itemCount,
		Subtotal:  quote.Subtotal.StringFixed(2),
		Shipping:  quote.Shipping.StringFixed(2),
		Tax:       quote.Tax.StringFixed(2),
		Total:     quote.Total.StringFixed(2),
	}
}

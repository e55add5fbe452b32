package dto

import (
	"github.com/mrops-br/cart-ledger-api/internal/domain"
)

// ProductResponse represents the product response. Money fields are
// rendered as 2-decimal strings; exact values stay in the domain.
type ProductResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	OriginalPrice *string `json:"original_price,omitempty"`
	Category      string  `json:"category"`
	Stock         int     `json:"stock"`
	Color         string  `json:"color,omitempty"`
	Size          string  `json:"size,omitempty"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.StringFixed(2),
		Category: p.Category,
		Stock:    p.Stock,
		Color:    p.Color,
		Size:     p.Size,
	}
	if p.OriginalPrice != nil {
		original := p.OriginalPrice.StringFixed(2)
		resp.OriginalPrice = &original
	}
	return resp
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}

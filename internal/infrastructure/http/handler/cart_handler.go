package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/cart-ledger-api/internal/app/dto"
	"github.com/mrops-br/cart-ledger-api/internal/app/service"
	"github.com/mrops-br/cart-ledger-api/internal/domain"
	"github.com/mrops-br/cart-ledger-api/internal/infrastructure/http/response"
)

// CartHandler handles HTTP requests for the cart
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.service.GetCart(r.Context()))
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	cart, err := h.service.AddItem(r.Context(), &req)
	if err != nil {
		switch err {
		case domain.ErrInvalidQuantity:
			response.Error(w, http.StatusBadRequest, err)
		case domain.ErrProductNotFound:
			response.Error(w, http.StatusNotFound, err)
		default:
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.JSON(w, http.StatusCreated, cart)
}

// UpdateQuantity handles PUT /cart/items/{id}. Quantity <= 0 removes
// the item; an unknown id is a no-op, not an error.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	cart := h.service.UpdateQuantity(r.Context(), id, req.Quantity)
	response.JSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cart := h.service.RemoveItem(r.Context(), id)
	response.JSON(w, http.StatusOK, cart)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart := h.service.ClearCart(r.Context())
	response.JSON(w, http.StatusOK, cart)
}

package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// LineItem is one product-quantity pairing in the cart: a denormalized
// snapshot of the product plus the quantity. Quantity is always >= 1
// while the item is in the ledger.
type LineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns unit price times quantity, exact (no rounding).
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// EventKind classifies cart mutations for the notification sink.
type EventKind string

const (
	EventItemAdded       EventKind = "item_added"
	EventQuantityUpdated EventKind = "quantity_updated"
	EventItemRemoved     EventKind = "item_removed"
	EventCartCleared     EventKind = "cart_cleared"
)

// CartEvent is what the ledger hands to the Notifier after a mutation.
// Message is a short human-readable string suitable for a toast.
type CartEvent struct {
	Kind        EventKind
	ProductID   string
	ProductName string
	Quantity    int
	Message     string
}

// Notifier receives cart events synchronously after each mutation.
// Implementations must not block for long and must not fail the
// mutation; the ledger treats Notify as fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, event CartEvent)
}

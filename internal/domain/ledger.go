package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
)

// Ledger is the cart aggregate: an ordered list of line items plus the
// mutation operations on it. It is hydrated from its CartStore at
// construction, persists the full list after every mutation, and hands
// one CartEvent to its Notifier per mutation.
//
// The ledger is the single writer for its store key. A second process
// writing the same key can desynchronize this instance; there is no
// reload-on-external-change mechanism.
type Ledger struct {
	mu       sync.RWMutex
	items    []LineItem
	store    CartStore
	notifier Notifier
	logger   *slog.Logger
}

// NewLedger creates a ledger hydrated from the store. A load failure is
// logged and treated as an empty cart.
func NewLedger(ctx context.Context, store CartStore, notifier Notifier, logger *slog.Logger) *Ledger {
	items, err := store.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Failed to load persisted cart, starting empty",
			slog.String("error", err.Error()),
		)
		items = nil
	}

	return &Ledger{
		items:    items,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Items returns a copy of the current line items in insertion order.
func (l *Ledger) Items() []LineItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	items := make([]LineItem, len(l.items))
	copy(items, l.items)
	return items
}

// ItemCount returns the sum of all quantities, recomputed on every call.
func (l *Ledger) ItemCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, item := range l.items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the exact sum of price times quantity over all line
// items, recomputed on every call. Rounding is the caller's concern.
func (l *Ledger) Subtotal() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	subtotal := decimal.Zero
	for _, item := range l.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// AddItem adds quantity units of the product to the cart. If a line
// item for the product already exists its quantity is incremented
// (merge-on-add); otherwise a new line item is appended. Returns
// whether a merge occurred. Stock limits are not enforced here: callers
// check Product.Stock before calling.
func (l *Ledger) AddItem(ctx context.Context, product Product, quantity int) (bool, error) {
	if quantity < 1 {
		return false, ErrInvalidQuantity
	}

	l.mu.Lock()
	merged := false
	for i := range l.items {
		if l.items[i].ID == product.ID {
			l.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		l.items = append(l.items, LineItem{Product: product, Quantity: quantity})
	}
	l.persistLocked(ctx)
	l.mu.Unlock()

	event := CartEvent{
		Kind:        EventItemAdded,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Message:     fmt.Sprintf("%s added to cart", product.Name),
	}
	if merged {
		event.Kind = EventQuantityUpdated
		event.Message = fmt.Sprintf("%s quantity updated", product.Name)
	}
	l.notifier.Notify(ctx, event)

	return merged, nil
}

// RemoveItem deletes the line item for productID. Removing an absent
// product is a silent no-op, not an error.
func (l *Ledger) RemoveItem(ctx context.Context, productID string) {
	l.mu.Lock()
	removed, name := l.removeLocked(ctx, productID)
	l.mu.Unlock()

	if removed {
		l.notifier.Notify(ctx, CartEvent{
			Kind:        EventItemRemoved,
			ProductID:   productID,
			ProductName: name,
			Message:     fmt.Sprintf("%s removed from cart", name),
		})
	}
}

// UpdateQuantity sets the line item's quantity to an absolute value.
// A quantity of zero or less removes the item, exactly like RemoveItem.
// Updating an absent product is a silent no-op.
func (l *Ledger) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		l.RemoveItem(ctx, productID)
		return
	}

	l.mu.Lock()
	updated := false
	var name string
	for i := range l.items {
		if l.items[i].ID == productID {
			l.items[i].Quantity = quantity
			name = l.items[i].Name
			updated = true
			break
		}
	}
	if updated {
		l.persistLocked(ctx)
	}
	l.mu.Unlock()

	if updated {
		l.notifier.Notify(ctx, CartEvent{
			Kind:        EventQuantityUpdated,
			ProductID:   productID,
			ProductName: name,
			Quantity:    quantity,
			Message:     fmt.Sprintf("%s quantity updated", name),
		})
	}
}

// Clear empties the ledger.
func (l *Ledger) Clear(ctx context.Context) {
	l.mu.Lock()
	l.items = nil
	l.persistLocked(ctx)
	l.mu.Unlock()

	l.notifier.Notify(ctx, CartEvent{
		Kind:    EventCartCleared,
		Message: "Cart cleared",
	})
}

func (l *Ledger) removeLocked(ctx context.Context, productID string) (bool, string) {
	for i := range l.items {
		if l.items[i].ID == productID {
			name := l.items[i].Name
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.persistLocked(ctx)
			return true, name
		}
	}
	return false, ""
}

// persistLocked writes the full ledger through the store. The write is
// fire-and-forget: a failure is logged and the in-memory state stands.
func (l *Ledger) persistLocked(ctx context.Context) {
	if err := l.store.Save(ctx, l.items); err != nil {
		l.logger.ErrorContext(ctx, "Failed to persist cart",
			slog.String("error", err.Error()),
			slog.Int("items", len(l.items)),
		)
	}
}

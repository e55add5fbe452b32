package domain_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrops-br/cart-ledger-api/internal/domain"
	"github.com/mrops-br/cart-ledger-api/internal/infrastructure/notify"
	"github.com/mrops-br/cart-ledger-api/internal/infrastructure/store"
)

func testProduct(id, name, price string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "test",
		Stock:    10,
	}
}

func newTestLedger(t *testing.T) (*domain.Ledger, *store.MemoryStore, *notify.Recorder) {
	t.Helper()
	st := store.NewMemoryStore()
	rec := notify.NewRecorder()
	ledger := domain.NewLedger(context.Background(), st, rec, slog.Default())
	return ledger, st, rec
}

func TestAddItemMergesByProductID(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()
	p := testProduct("p1", "Headphones", "129.99")

	merged, err := ledger.AddItem(ctx, p, 2)
	require.NoError(t, err)
	assert.False(t, merged)

	merged, err = ledger.AddItem(ctx, p, 3)
	require.NoError(t, err)
	assert.True(t, merged)

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.AddItem(ctx, testProduct("p1", "Headphones", "129.99"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = ledger.AddItem(ctx, testProduct("p1", "Headphones", "129.99"), -2)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	assert.Empty(t, ledger.Items())
}

func TestAddItemDoesNotEnforceStock(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()
	p := testProduct("p1", "Headphones", "129.99")
	p.Stock = 1

	// The ledger is a dumb ledger: stock limits are the caller's job.
	_, err := ledger.AddItem(ctx, p, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, ledger.ItemCount())
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	ledger, st, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.AddItem(ctx, testProduct("p1", "Headphones", "129.99"), 1)
	require.NoError(t, err)
	_, err = ledger.AddItem(ctx, testProduct("p2", "Mug", "18.00"), 2)
	require.NoError(t, err)

	ledger.RemoveItem(ctx, "p1")
	afterFirst := ledger.Items()
	storedAfterFirst := string(st.Bytes())

	ledger.RemoveItem(ctx, "p1")
	assert.Equal(t, afterFirst, ledger.Items())
	assert.Equal(t, storedAfterFirst, string(st.Bytes()))
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	ledger, _, rec := newTestLedger(t)
	ctx := context.Background()

	ledger.RemoveItem(ctx, "missing")

	assert.Empty(t, ledger.Items())
	assert.Empty(t, rec.Events(), "a no-op removal must not notify")
}

func TestUpdateQuantityFloorRemovesItem(t *testing.T) {
	for _, quantity := range []int{0, -5} {
		ledger, _, _ := newTestLedger(t)
		ctx := context.Background()

		_, err := ledger.AddItem(ctx, testProduct("p1", "Headphones", "129.99"), 3)
		require.NoError(t, err)

		ledger.UpdateQuantity(ctx, "p1", quantity)

		assert.Empty(t, ledger.Items())
		assert.Equal(t, 0, ledger.ItemCount())
	}
}

func TestUpdateQuantityIsAbsolute(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.AddItem(ctx, testProduct("p1", "Headphones", "129.99"), 3)
	require.NoError(t, err)

	ledger.UpdateQuantity(ctx, "p1", 2)

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestUpdateQuantityAbsentProductIsNoOp(t *testing.T) {
	ledger, _, rec := newTestLedger(t)
	ctx := context.Background()

	ledger.UpdateQuantity(ctx, "missing", 4)

	assert.Empty(t, ledger.Items())
	assert.Empty(t, rec.Events())
}

func TestAggregatesAreRecomputed(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.AddItem(ctx, testProduct("p1", "Headphones", "129.99"), 1)
	require.NoError(t, err)
	_, err = ledger.AddItem(ctx, testProduct("p2", "Band", "49.99"), 2)
	require.NoError(t, err)

	assert.Equal(t, 3, ledger.ItemCount())
	assert.Equal(t, "229.97", ledger.Subtotal().StringFixed(2))

	ledger.UpdateQuantity(ctx, "p2", 1)
	assert.Equal(t, 2, ledger.ItemCount())
	assert.Equal(t, "179.98", ledger.Subtotal().StringFixed(2))
}

func TestNotificationsDistinguishAddFromMerge(t *testing.T) {
	ledger, _, rec := newTestLedger(t)
	ctx := context.Background()
	p := testProduct("p1", "Headphones", "129.99")

	_, err := ledger.AddItem(ctx, p, 1)
	require.NoError(t, err)
	_, err = ledger.AddItem(ctx, p, 1)
	require.NoError(t, err)
	ledger.RemoveItem(ctx, "p1")
	ledger.Clear(ctx)

	events := rec.Events()
	require.Len(t, events, 4)
	assert.Equal(t, domain.EventItemAdded, events[0].Kind)
	assert.Equal(t, domain.EventQuantityUpdated, events[1].Kind)
	assert.Equal(t, domain.EventItemRemoved, events[2].Kind)
	assert.Equal(t, domain.EventCartCleared, events[3].Kind)
	assert.NotEqual(t, events[0].Message, events[1].Message)
}

func TestLedgerPersistsAfterEveryMutation(t *testing.T) {
	ledger, st, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.AddItem(ctx, testProduct("p1", "Headphones", "129.99"), 2)
	require.NoError(t, err)

	// A fresh ledger over the same store reproduces the state.
	reloaded := domain.NewLedger(ctx, st, notify.NoopNotifier{}, slog.Default())
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "259.98", reloaded.Subtotal().StringFixed(2))
}

func TestSaveLoadRoundTripIsStable(t *testing.T) {
	ledger, st, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.AddItem(ctx, testProduct("p1", "Headphones", "129.99"), 2)
	require.NoError(t, err)
	_, err = ledger.AddItem(ctx, testProduct("p2", "Mug", "18.00"), 1)
	require.NoError(t, err)

	stored := string(st.Bytes())

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, loaded))

	assert.Equal(t, stored, string(st.Bytes()), "save(load()) must not change the stored document")
}

func TestLedgerHydratesEmptyFromMalformedData(t *testing.T) {
	st := store.NewMemoryStore()
	st.SetBytes([]byte("{not json"))

	ledger := domain.NewLedger(context.Background(), st, notify.NoopNotifier{}, slog.Default())

	assert.Empty(t, ledger.Items())
	assert.Equal(t, 0, ledger.ItemCount())
	assert.True(t, ledger.Subtotal().IsZero())
}

func TestEndToEndScenario(t *testing.T) {
	ledger, st, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.AddItem(ctx, testProduct("1", "Headphones", "129.99"), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.ItemCount())
	assert.Equal(t, "129.99", ledger.Subtotal().StringFixed(2))

	_, err = ledger.AddItem(ctx, testProduct("2", "Band", "49.99"), 2)
	require.NoError(t, err)
	assert.Equal(t, 3, ledger.ItemCount())
	assert.Equal(t, "229.97", ledger.Subtotal().StringFixed(2))

	ledger.UpdateQuantity(ctx, "1", 0)
	assert.Equal(t, 2, ledger.ItemCount())
	assert.Equal(t, "99.98", ledger.Subtotal().StringFixed(2))
	for _, item := range ledger.Items() {
		assert.NotEqual(t, "1", item.ID)
	}

	ledger.Clear(ctx)
	assert.Equal(t, 0, ledger.ItemCount())
	assert.True(t, ledger.Subtotal().IsZero())
	assert.JSONEq(t, "[]", string(st.Bytes()), "persisted storage must reflect an empty list")
}

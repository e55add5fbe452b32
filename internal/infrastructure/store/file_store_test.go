package store_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mrops-br/cart-ledger-api/internal/domain"
	"github.com/mrops-br/cart-ledger-api/internal/infrastructure/store"
)

func newFileStore(t *testing.T) (*store.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cart.json")
	tracer := sdktrace.NewTracerProvider().Tracer("test")
	return store.NewFileStore(path, tracer, slog.Default()), path
}

func sampleItems() []domain.LineItem {
	return []domain.LineItem{
		{
			Product: domain.Product{
				ID:       "p1",
				Name:     "Headphones",
				Price:    decimal.RequireFromString("129.99"),
				Category: "electronics",
				Stock:    12,
			},
			Quantity: 2,
		},
		{
			Product: domain.Product{
				ID:       "p2",
				Name:     "Mug",
				Price:    decimal.RequireFromString("18.00"),
				Category: "home",
				Stock:    45,
			},
			Quantity: 1,
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	st, _ := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, sampleItems()))

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "p1", loaded[0].ID)
	assert.Equal(t, 2, loaded[0].Quantity)
	assert.True(t, loaded[0].Price.Equal(decimal.RequireFromString("129.99")))
	assert.Equal(t, "p2", loaded[1].ID)
}

func TestFileStoreSaveLoadIsByteStable(t *testing.T) {
	st, path := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, sampleItems()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, loaded))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestFileStoreMissingFileLoadsEmpty(t *testing.T) {
	st, _ := newFileStore(t)

	items, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileStoreMalformedFileLoadsEmpty(t *testing.T) {
	st, path := newFileStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{definitely not json"), 0o644))

	items, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileStoreUnknownFieldsIgnored(t *testing.T) {
	st, path := newFileStore(t)
	doc := `[{"id":"p1","name":"Headphones","price":"129.99","category":"electronics","stock":3,"quantity":1,"legacy_field":true}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	items, err := st.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestFileStoreSaveNilWritesEmptyList(t *testing.T) {
	st, path := newFileStore(t)

	require.NoError(t, st.Save(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

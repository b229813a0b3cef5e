package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"prodexa/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJSONStore_Load(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	tests := []struct {
		name        string
		content     *string
		expectCount int
		expectErr   error
	}{
		{
			name:        "Missing file is empty",
			content:     nil,
			expectCount: 0,
		},
		{
			name:        "Blank file is empty",
			content:     strPtr("  \n"),
			expectCount: 0,
		},
		{
			name:        "Valid product list",
			content:     strPtr(`[{"name":"Soap","price":50,"stock":10,"category":"Grocery"},{"name":"Oil","price":"250.00","stock":3,"category":"Grocery","brand":"Fortune"}]`),
			expectCount: 2,
		},
		{
			name:      "Malformed JSON",
			content:   strPtr(`[{"name":`),
			expectErr: ErrCorruptCatalog,
		},
		{
			name:      "Wrong shape",
			content:   strPtr(`{"name":"Soap"}`),
			expectErr: ErrCorruptCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "products.json")
			if tt.content != nil {
				path = writeCatalogFile(t, *tt.content)
			}

			products, err := NewJSONStore(path, logger).Load(ctx)

			if tt.expectErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectErr))
				assert.Nil(t, products)
				return
			}
			require.NoError(t, err)
			assert.Len(t, products, tt.expectCount)
		})
	}
}

func TestJSONStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "products.json")
	store := NewJSONStore(path, zerolog.Nop())

	products := []model.Product{
		{Name: "Soap", Price: decimal.RequireFromString("50.00"), Stock: 10, Category: "Grocery"},
		{Name: "Pen", Price: decimal.RequireFromString("12.5"), Stock: 100, Category: "Stationery", SKU: "PEN-01"},
	}

	require.NoError(t, store.Save(ctx, products))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price": 50`)
	assert.Contains(t, string(raw), "\n    {")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Soap", loaded[0].Name)
	assert.True(t, loaded[1].Price.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "PEN-01", loaded[1].SKU)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestJSONStore_SaveNilWritesEmptyList(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "products.json")
	store := NewJSONStore(path, zerolog.Nop())

	require.NoError(t, store.Save(ctx, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestJSONStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewJSONStore(filepath.Join(t.TempDir(), "products.json"), zerolog.Nop())

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, nil), context.Canceled)
}

func TestJSONStore_OriginalFormatRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := writeCatalogFile(t, `[
    {"name": "Soap", "category": "Grocery", "brand": "", "unit": "pcs", "price": 50.0, "stock": 10,
     "customer": "Ravi", "date": "2025-01-02", "sku": "", "expiry": "", "discount": "5", "notes": ""},
    {"name": "Oil", "category": "Grocery", "brand": "Fortune", "unit": "L", "price": 250.0, "stock": 4,
     "customer": "", "date": "", "sku": "", "expiry": "", "discount": "", "notes": ""}
]`)

	m := NewManager(NewJSONStore(path, zerolog.Nop()), zerolog.Nop())
	_, err := m.Refresh(ctx)
	require.NoError(t, err)

	_, err = m.Delete(ctx, "Oil")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"customer": "Ravi"`)
	assert.Contains(t, string(raw), `"date": "2025-01-02"`)
	assert.Contains(t, string(raw), `"discount": "5"`)

	loaded, err := NewJSONStore(path, zerolog.Nop()).Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Ravi", loaded[0].Customer)
	assert.Equal(t, "2025-01-02", loaded[0].Date)
	assert.Equal(t, "5", loaded[0].Discount)
	assert.Equal(t, "pcs", loaded[0].Unit)
}

func strPtr(s string) *string {
	return &s
}

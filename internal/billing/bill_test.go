package billing

import (
	"testing"

	"prodexa/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCatalog is a minimal Catalog for tests.
type mapCatalog map[string]model.Product

func (c mapCatalog) Lookup(name string) (model.Product, bool) {
	p, ok := c[name]
	return p, ok
}

func testCatalog() mapCatalog {
	return mapCatalog{
		"Soap": {Name: "Soap", Price: d("50.00"), Stock: 10, Category: "Grocery"},
		"Oil":  {Name: "Oil", Price: d("250.00"), Stock: 3, Category: "Grocery"},
	}
}

func TestBill_AddLineItem(t *testing.T) {
	bill := NewBill("Asha", "9876543210")
	cat := testCatalog()

	item, err := bill.AddLineItem(cat, "Soap", "2")
	require.NoError(t, err)
	assert.Equal(t, "Soap", item.ProductName)
	assertDecimal(t, "100", item.LineTotal)

	_, err = bill.AddLineItem(cat, "Oil", "1")
	require.NoError(t, err)

	items := bill.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Soap", items[0].ProductName)
	assert.Equal(t, "Oil", items[1].ProductName)
	assert.Equal(t, StateOpen, bill.State)
}

func TestBill_AddLineItem_Errors(t *testing.T) {
	tests := []struct {
		name      string
		product   string
		quantity  string
		expectErr error
	}{
		{name: "Unknown product", product: "Rice", quantity: "1", expectErr: model.ErrNotFound},
		{name: "Negative quantity", product: "Soap", quantity: "-3", expectErr: model.ErrValidation},
		{name: "Non numeric quantity", product: "Soap", quantity: "abc", expectErr: model.ErrValidation},
		{name: "Zero quantity", product: "Soap", quantity: "0", expectErr: model.ErrValidation},
		{name: "Bad quantity wins over unknown product", product: "Rice", quantity: "x", expectErr: model.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := NewBill("Asha", "")
			_, err := bill.AddLineItem(testCatalog(), "Soap", "1")
			require.NoError(t, err)

			_, err = bill.AddLineItem(testCatalog(), tt.product, tt.quantity)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectErr)
			assert.Len(t, bill.Items(), 1, "bill must be unmodified")
		})
	}
}

func TestBill_PriceFrozenAtAddTime(t *testing.T) {
	cat := testCatalog()
	bill := NewBill("Asha", "")

	_, err := bill.AddLineItem(cat, "Soap", "2")
	require.NoError(t, err)

	cat["Soap"] = model.Product{Name: "Soap", Price: d("80.00")}

	_, err = bill.AddLineItem(cat, "Soap", "1")
	require.NoError(t, err)

	items := bill.Items()
	assertDecimal(t, "50", items[0].UnitPrice)
	assertDecimal(t, "80", items[1].UnitPrice)
	assertDecimal(t, "180", bill.Totals().Subtotal)
}

func TestBill_DoesNotTouchStock(t *testing.T) {
	cat := testCatalog()
	bill := NewBill("Asha", "")

	_, err := bill.AddLineItem(cat, "Oil", "3")
	require.NoError(t, err)
	_, err = bill.Finalize()
	require.NoError(t, err)

	assert.Equal(t, 3, cat["Oil"].Stock)
}

func TestBill_ClearIsIdempotent(t *testing.T) {
	bill := NewBill("Asha", "")
	_, err := bill.AddLineItem(testCatalog(), "Soap", "2")
	require.NoError(t, err)

	bill.Clear()
	assert.Empty(t, bill.Items())
	bill.Clear()
	assert.Empty(t, bill.Items())
	assert.True(t, bill.Totals().Subtotal.IsZero())
}

func TestBill_Finalize(t *testing.T) {
	t.Run("Empty bill", func(t *testing.T) {
		bill := NewBill("Asha", "")

		_, err := bill.Finalize()

		assert.ErrorIs(t, err, model.ErrEmptyBill)
		assert.Equal(t, StateOpen, bill.State)
	})

	t.Run("Scenario totals", func(t *testing.T) {
		bill := NewBill("Asha", "")
		cat := testCatalog()
		_, err := bill.AddLineItem(cat, "Soap", "2")
		require.NoError(t, err)
		_, err = bill.AddLineItem(cat, "Oil", "1")
		require.NoError(t, err)
		bill.SetRates(d("18"), d("5"))

		totals, err := bill.Finalize()

		require.NoError(t, err)
		assert.Equal(t, StateFinalized, bill.State)
		assert.Equal(t, "395.50", model.Money(totals.Rounded().FinalAmount))
	})

	t.Run("Finalized bill still accepts items", func(t *testing.T) {
		bill := NewBill("Asha", "")
		_, err := bill.AddLineItem(testCatalog(), "Soap", "1")
		require.NoError(t, err)
		_, err = bill.Finalize()
		require.NoError(t, err)

		_, err = bill.AddLineItem(testCatalog(), "Oil", "1")

		require.NoError(t, err)
		assert.Len(t, bill.Items(), 2)
	})
}

func TestBill_View(t *testing.T) {
	bill := NewBill("Asha", "98765")
	_, err := bill.AddLineItem(testCatalog(), "Soap", "3")
	require.NoError(t, err)
	bill.SetRates(d("12.5"), d("0"))

	view := bill.View()

	assert.Equal(t, bill.ID, view.ID)
	assert.Equal(t, "Asha", view.CustomerName)
	assert.Equal(t, "98765", view.CustomerContact)
	assert.Len(t, view.Items, 1)
	assertDecimal(t, "18.75", view.Totals.GSTAmount)
	assertDecimal(t, "168.75", view.Totals.FinalAmount)

	view.Items[0].Quantity = 99
	assert.Equal(t, 3, bill.Items()[0].Quantity)
}

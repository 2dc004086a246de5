package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
)

func TestLowStock_SuggestsOrderByDeficit(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 10)
	b := mustProduct(t, f, "B", 5)
	c := mustProduct(t, f, "C", 2)
	w := mustWarehouse(t, f, "W")
	mustReceive(t, f, a, w, 4)
	mustReceive(t, f, b, w, 4)
	mustReceive(t, f, c, w, 9)

	uc := inventory.NewReplenishmentUseCase(f.store.Levels())
	items, err := uc.LowStock(f.ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "A", items[0].SKU)
	assert.Equal(t, 1, items[0].Priority)
	assert.True(t, items[0].IdealStock.Equal(dec(15)))
	assert.True(t, items[0].SuggestedOrderQty.Equal(dec(11)))

	assert.Equal(t, "B", items[1].SKU)
	assert.Equal(t, 2, items[1].Priority)
	assert.True(t, items[1].SuggestedOrderQty.Equal(decimal.RequireFromString("3.5")))

	other := mustWarehouse(t, f, "Otra")
	items, err = uc.LowStock(f.ctx, other)
	require.NoError(t, err)
	assert.Empty(t, items)
}

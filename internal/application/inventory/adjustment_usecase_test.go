package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
)

func TestAdjustmentCreate(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	mustReceive(t, f, a, w, 10)

	out, err := f.adjustments.Create(f.ctx, "u1", dto.CreateAdjustmentRequest{
		WarehouseID: w, ProductID: a, CountedQuantity: dec(12), Reason: "conteo físico",
	})
	require.NoError(t, err)

	require.NotNil(t, out.Entry)
	assert.True(t, out.Entry.Change.Equal(dec(2)))
	assert.True(t, out.Entry.Balance.Equal(dec(12)))
	assert.Equal(t, entity.SourceAdjustment, out.Entry.SourceType)
	assert.Equal(t, out.ID, out.Entry.SourceID)
	assert.True(t, mustStock(t, f, a, w).Equal(dec(12)))

	list, err := f.adjustments.List(f.ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "conteo físico", list.Items[0].Reason)
}

func TestAdjustmentCreate_Rejections(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")

	_, err := f.adjustments.Create(f.ctx, "u1", dto.CreateAdjustmentRequest{WarehouseID: w, ProductID: a, CountedQuantity: dec(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.adjustments.Create(f.ctx, "u1", dto.CreateAdjustmentRequest{
		WarehouseID: w, ProductID: a, CountedQuantity: decimal.RequireFromString("2.00005"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.adjustments.Create(f.ctx, "u1", dto.CreateAdjustmentRequest{WarehouseID: w, ProductID: "no-existe", CountedQuantity: dec(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.adjustments.Create(f.ctx, "u1", dto.CreateAdjustmentRequest{WarehouseID: "no-existe", ProductID: a, CountedQuantity: dec(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.adjustments.List(f.ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, 0, f.publisher.count())
}

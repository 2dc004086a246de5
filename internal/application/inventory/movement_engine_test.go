package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
)

func TestApply_CreatesStockLineAtZero(t *testing.T) {
	f := newFixture()
	p := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")

	var entry *entity.LedgerEntry
	err := f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		var err error
		entry, err = f.engine.Apply(f.ctx, repos, inventory.MovementInput{
			ProductID: p, WarehouseID: w, Change: dec(7), SourceType: entity.SourceReceipt, SourceID: "doc-1",
		})
		return err
	})
	require.NoError(t, err)

	assert.True(t, entry.Balance.Equal(dec(7)))
	assert.True(t, entry.Change.Equal(dec(7)))
	assert.NotEmpty(t, entry.ID)
	assert.True(t, mustStock(t, f, p, w).Equal(dec(7)))
}

func TestApply_RejectsNegativeBalance(t *testing.T) {
	f := newFixture()
	p := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	mustReceive(t, f, p, w, 3)

	err := f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		_, err := f.engine.Apply(f.ctx, repos, inventory.MovementInput{
			ProductID: p, WarehouseID: w, Change: dec(-4), SourceType: entity.SourceDelivery, SourceID: "doc-2",
		})
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, mustStock(t, f, p, w).Equal(dec(3)))
	entries, err := f.ledgerOf(p, w)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestApply_ExactDepletionIsAllowed(t *testing.T) {
	f := newFixture()
	p := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	mustReceive(t, f, p, w, 3)

	err := f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		_, err := f.engine.Apply(f.ctx, repos, inventory.MovementInput{
			ProductID: p, WarehouseID: w, Change: dec(-3), SourceType: entity.SourceDelivery, SourceID: "doc-2",
		})
		return err
	})
	require.NoError(t, err)
	assert.True(t, mustStock(t, f, p, w).IsZero())
}

func TestApply_InvalidInput(t *testing.T) {
	f := newFixture()
	cases := map[string]inventory.MovementInput{
		"sin producto":  {WarehouseID: "w", Change: dec(1), SourceType: entity.SourceReceipt, SourceID: "d"},
		"sin bodega":    {ProductID: "p", Change: dec(1), SourceType: entity.SourceReceipt, SourceID: "d"},
		"sin origen":    {ProductID: "p", WarehouseID: "w", Change: dec(1), SourceType: entity.SourceReceipt},
		"tipo inválido": {ProductID: "p", WarehouseID: "w", Change: dec(1), SourceType: "Sale", SourceID: "d"},
		"cinco decimales": {
			ProductID: "p", WarehouseID: "w", Change: decimal.RequireFromString("0.00001"),
			SourceType: entity.SourceReceipt, SourceID: "d",
		},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			err := f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
				_, err := f.engine.Apply(f.ctx, repos, in)
				return err
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestApplyAdjustment_SetsCountedQuantity(t *testing.T) {
	f := newFixture()
	p := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	mustReceive(t, f, p, w, 30)

	var entry *entity.LedgerEntry
	err := f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		var err error
		entry, err = f.engine.ApplyAdjustment(f.ctx, repos, p, w, dec(25), "adj-1")
		return err
	})
	require.NoError(t, err)

	assert.True(t, entry.Change.Equal(dec(-5)))
	assert.True(t, entry.Balance.Equal(dec(25)))
	assert.Equal(t, entity.SourceAdjustment, entry.SourceType)
	assert.True(t, mustStock(t, f, p, w).Equal(dec(25)))
}

func TestApplyAdjustment_ZeroChangeStillWritesEntry(t *testing.T) {
	f := newFixture()
	p := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	mustReceive(t, f, p, w, 8)

	err := f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		_, err := f.engine.ApplyAdjustment(f.ctx, repos, p, w, dec(8), "adj-1")
		return err
	})
	require.NoError(t, err)

	entries, err := f.ledgerOf(p, w)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[1].Change.IsZero())
	assert.True(t, entries[1].Balance.Equal(dec(8)))
}

func TestApplyAdjustment_NegativeCountRejected(t *testing.T) {
	f := newFixture()
	err := f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		_, err := f.engine.ApplyAdjustment(f.ctx, repos, "p", "w", dec(-1), "adj-1")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

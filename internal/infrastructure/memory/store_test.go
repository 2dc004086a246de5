package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/infrastructure/memory"
)

func seed(t *testing.T, s *memory.Store) (productID, warehouseID string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "SKU-1", Name: "Tornillo", Unit: "pcs", LowStockThreshold: 5, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w1", Name: "Central", CreatedAt: now, UpdatedAt: now}))
	return "p1", "w1"
}

func TestRun_RollsBackOnError(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	p, w := seed(t, s)
	boom := errors.New("boom")

	err := s.Run(ctx, func(repos inventory.TxRepos) error {
		if err := repos.Stock.Upsert(ctx, &entity.Stock{ProductID: p, WarehouseID: w, Quantity: decimal.NewFromInt(3)}); err != nil {
			return err
		}
		if err := repos.Ledger.Append(ctx, &entity.LedgerEntry{ProductID: p, WarehouseID: w, Change: decimal.NewFromInt(3), Balance: decimal.NewFromInt(3), SourceType: entity.SourceReceipt, SourceID: "d1"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	stock, err := s.Stock().Get(ctx, p, w)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())
	entries, err := s.Ledger().ListByPair(ctx, p, w)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_CommitsOnSuccess(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	p, w := seed(t, s)

	err := s.Run(ctx, func(repos inventory.TxRepos) error {
		if err := repos.Stock.Upsert(ctx, &entity.Stock{ProductID: p, WarehouseID: w, Quantity: decimal.NewFromInt(3)}); err != nil {
			return err
		}
		return repos.Ledger.Append(ctx, &entity.LedgerEntry{ProductID: p, WarehouseID: w, Change: decimal.NewFromInt(3), Balance: decimal.NewFromInt(3), SourceType: entity.SourceReceipt, SourceID: "d1"})
	})
	require.NoError(t, err)

	stock, err := s.Stock().Get(ctx, p, w)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(3)))

	totals, err := s.Ledger().Totals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 1, totals[0].Entries)
	assert.True(t, totals[0].LastBalance.Equal(decimal.NewFromInt(3)))
}

func TestRun_CancelledContext(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(inventory.TxRepos) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStockUpsert_RejectsNegative(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	err := s.Stock().Upsert(ctx, &entity.Stock{ProductID: "p", WarehouseID: "w", Quantity: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestProducts_DuplicateSKUAndReferencedDelete(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	p, w := seed(t, s)

	err := s.Products().Create(ctx, &entity.Product{ID: "p2", SKU: "sku-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	found, err := s.Products().GetBySKU(ctx, "Sku-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, p, found.ID)

	require.NoError(t, s.Run(ctx, func(repos inventory.TxRepos) error {
		_, err := repos.Stock.Lock(ctx, p, w)
		return err
	}))
	assert.ErrorIs(t, s.Products().Delete(ctx, p), domain.ErrConflict)
	assert.ErrorIs(t, s.Warehouses().Delete(ctx, w), domain.ErrConflict)
	assert.ErrorIs(t, s.Products().Delete(ctx, "no-existe"), domain.ErrNotFound)

	missing, err := s.Products().GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCategoryDelete_ClearsProducts(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c1", Name: "Ferretería"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "SKU-1", Name: "Tornillo", CategoryID: "c1"}))

	assert.ErrorIs(t, s.Categories().Create(ctx, &entity.Category{ID: "c2", Name: "ferretería"}), domain.ErrDuplicate)
	require.NoError(t, s.Categories().Delete(ctx, "c1"))

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, p.CategoryID)
}

func TestAnalytics_CompositionAndValidated(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	p, w := seed(t, s)
	now := time.Now().UTC()

	require.NoError(t, s.Run(ctx, func(repos inventory.TxRepos) error {
		if err := repos.Stock.Upsert(ctx, &entity.Stock{ProductID: p, WarehouseID: w, Quantity: decimal.NewFromInt(8)}); err != nil {
			return err
		}
		return repos.Documents.Create(ctx, &entity.Document{
			ID: "d1", Kind: entity.DocumentKindReceipt, WarehouseID: w, Status: entity.StatusDone, ValidatedAt: &now,
		})
	}))

	comp, err := s.Analytics().InventoryComposition(ctx)
	require.NoError(t, err)
	require.Len(t, comp, 1)
	assert.Equal(t, "Uncategorized", comp[0].CategoryName)
	assert.True(t, comp[0].TotalQuantity.Equal(decimal.NewFromInt(8)))

	n, err := s.Analytics().CountValidatedBetween(ctx, entity.DocumentKindReceipt, now.Add(-time.Minute), now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.Analytics().CountDocuments(ctx, entity.DocumentKindReceipt, entity.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	low, err := s.Analytics().CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, low)
}

package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

func TestReconcile_ConsistentAfterMovements(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	mustReceive(t, f, a, w, 10)
	_, err := f.adjustments.Create(f.ctx, "u1", dto.CreateAdjustmentRequest{WarehouseID: w, ProductID: a, CountedQuantity: dec(7)})
	require.NoError(t, err)

	report, err := f.query.Reconcile(f.ctx)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Equal(t, 1, report.PairsChecked)
	assert.Empty(t, report.Mismatches)
}

func TestReconcile_DetectsStockWithoutLedger(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	mustReceive(t, f, a, w, 10)

	err := f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		return repos.Stock.Upsert(f.ctx, &entity.Stock{ProductID: a, WarehouseID: w, Quantity: dec(11), UpdatedAt: time.Now().UTC()})
	})
	require.NoError(t, err)

	report, err := f.query.Reconcile(f.ctx)
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	require.Len(t, report.Mismatches, 1)
	m := report.Mismatches[0]
	assert.True(t, m.StockQuantity.Equal(dec(11)))
	assert.True(t, m.LedgerSum.Equal(dec(10)))
	assert.True(t, m.LastBalance.Equal(dec(10)))
}

// listHookRunner envuelve el TxRunner y llama afterList cada vez que se lista el stock dentro de la transacción.
type listHookRunner struct {
	inventory.TxRunner
	afterList func()
}

func (r *listHookRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	return r.TxRunner.Run(ctx, func(repos inventory.TxRepos) error {
		repos.Stock = &listHookStock{StockRepository: repos.Stock, afterList: r.afterList}
		return fn(repos)
	})
}

type listHookStock struct {
	repository.StockRepository
	afterList func()
}

func (s *listHookStock) List(ctx context.Context, filter repository.StockFilter) ([]*entity.Stock, error) {
	out, err := s.StockRepository.List(ctx, filter)
	s.afterList()
	return out, err
}

func TestReconcile_WriteBetweenReadsIsNotAMismatch(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	mustReceive(t, f, a, w, 10)

	var (
		wg      sync.WaitGroup
		once    sync.Once
		recvErr error
	)
	runner := &listHookRunner{TxRunner: f.store, afterList: func() {
		once.Do(func() {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, recvErr = f.receive(a, w, 1)
			}()
			time.Sleep(20 * time.Millisecond)
		})
	}}
	query := inventory.NewStockQueryUseCase(runner, f.store.Stock(), f.store.Ledger())

	report, err := query.Reconcile(f.ctx)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Empty(t, report.Mismatches)

	wg.Wait()
	require.NoError(t, recvErr)
	assert.True(t, mustStock(t, f, a, w).Equal(dec(11)))

	report, err = query.Reconcile(f.ctx)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
}

func TestListLedger_NewestFirst(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	mustReceive(t, f, a, w, 1)
	mustReceive(t, f, a, w, 2)

	out, err := f.query.ListLedger(f.ctx, repository.LedgerFilter{ProductID: a})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].Balance.Equal(dec(3)))
	assert.True(t, out.Items[1].Balance.Equal(dec(1)))

	stock, err := f.query.ListStock(f.ctx, repository.StockFilter{WarehouseID: w})
	require.NoError(t, err)
	require.Len(t, stock.Items, 1)
	assert.True(t, stock.Items[0].Quantity.Equal(dec(3)))
}

package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StockQueryUseCase lecturas de stock y del libro de movimientos.
type StockQueryUseCase struct {
	txRunner   TxRunner
	stockRepo  repository.StockRepository
	ledgerRepo repository.LedgerRepository
	now        func() time.Time
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(txRunner TxRunner, stockRepo repository.StockRepository, ledgerRepo repository.LedgerRepository) *StockQueryUseCase {
	return &StockQueryUseCase{txRunner: txRunner, stockRepo: stockRepo, ledgerRepo: ledgerRepo, now: time.Now}
}

// ListStock lista líneas de stock, filtrando por producto y/o bodega.
func (uc *StockQueryUseCase) ListStock(ctx context.Context, filter repository.StockFilter) (*dto.StockListResponse, error) {
	list, err := uc.stockRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StockResponse{
			ProductID:   s.ProductID,
			WarehouseID: s.WarehouseID,
			Quantity:    s.Quantity,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// ListLedger lista asientos, más recientes primero.
func (uc *StockQueryUseCase) ListLedger(ctx context.Context, filter repository.LedgerFilter) (*dto.LedgerListResponse, error) {
	list, err := uc.ledgerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerListResponse{
		Items: toLedgerEntryResponses(list),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Reconcile compara cada línea de stock con la suma de cambios del libro y con el saldo del último asiento.
// Un par presente solo en uno de los dos lados también es una diferencia, salvo stock 0 sin asientos.
// Ambas lecturas se hacen en la misma transacción para no comparar estados de momentos distintos.
func (uc *StockQueryUseCase) Reconcile(ctx context.Context) (*dto.ReconciliationReportDTO, error) {
	var (
		stocks []*entity.Stock
		totals []repository.LedgerTotal
	)
	read := func(repos TxRepos) error {
		var err error
		if stocks, err = repos.Stock.List(ctx, repository.StockFilter{}); err != nil {
			return err
		}
		totals, err = repos.Ledger.Totals(ctx)
		return err
	}
	var err error
	if snap, ok := uc.txRunner.(SnapshotRunner); ok {
		err = snap.RunSnapshot(ctx, read)
	} else {
		err = uc.txRunner.Run(ctx, read)
	}
	if err != nil {
		return nil, err
	}

	byKey := make(map[entity.StockKey]repository.LedgerTotal, len(totals))
	for _, t := range totals {
		byKey[entity.StockKey{ProductID: t.ProductID, WarehouseID: t.WarehouseID}] = t
	}

	report := &dto.ReconciliationReportDTO{
		CheckedAt:  uc.now().UTC(),
		Mismatches: []dto.ReconciliationMismatchDTO{},
	}
	for _, s := range stocks {
		key := s.Key()
		t, ok := byKey[key]
		delete(byKey, key)
		report.PairsChecked++
		if !ok {
			if !s.Quantity.IsZero() {
				report.Mismatches = append(report.Mismatches, dto.ReconciliationMismatchDTO{
					ProductID:     s.ProductID,
					WarehouseID:   s.WarehouseID,
					StockQuantity: s.Quantity,
					LedgerSum:     decimal.Zero,
					LastBalance:   decimal.Zero,
				})
			}
			continue
		}
		if !s.Quantity.Equal(t.SumChange) || !s.Quantity.Equal(t.LastBalance) {
			report.Mismatches = append(report.Mismatches, dto.ReconciliationMismatchDTO{
				ProductID:     s.ProductID,
				WarehouseID:   s.WarehouseID,
				StockQuantity: s.Quantity,
				LedgerSum:     t.SumChange,
				LastBalance:   t.LastBalance,
			})
		}
	}
	for _, t := range byKey {
		report.PairsChecked++
		report.Mismatches = append(report.Mismatches, dto.ReconciliationMismatchDTO{
			ProductID:     t.ProductID,
			WarehouseID:   t.WarehouseID,
			StockQuantity: decimal.Zero,
			LedgerSum:     t.SumChange,
			LastBalance:   t.LastBalance,
		})
	}
	report.Consistent = len(report.Mismatches) == 0
	return report, nil
}

// Package analytics contiene los casos de uso de lectura para el dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

const overviewMonths = 6 // meses en el gráfico de operaciones

// DashboardUseCase genera los KPIs, el resumen de operaciones y la composición del inventario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// Summary construye el DashboardSummaryDTO.
//
// Consultas en paralelo:
//  1. CountProducts
//  2. CountLowStock
//  3. pendientes por tipo (todo estado distinto de done y cancelled)
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countResult struct {
		n   int
		err error
	}

	productsCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)
	receiptsCh := make(chan countResult, 1)
	deliveriesCh := make(chan countResult, 1)
	transfersCh := make(chan countResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountLowStock(ctx)
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.countPending(ctx, entity.DocumentKindReceipt)
		receiptsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.countPending(ctx, entity.DocumentKindDelivery)
		deliveriesCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.countPending(ctx, entity.DocumentKindTransfer)
		transfersCh <- countResult{n, err}
	}()

	products := <-productsCh
	low := <-lowCh
	receipts := <-receiptsCh
	deliveries := <-deliveriesCh
	transfers := <-transfersCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: bajo stock: %w", low.err)
	}
	for _, r := range []countResult{receipts, deliveries, transfers} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: documentos pendientes: %w", r.err)
		}
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:     products.n,
		LowStockItems:     low.n,
		PendingReceipts:   receipts.n,
		PendingDeliveries: deliveries.n,
		PendingTransfers:  transfers.n,
	}, nil
}

// countPending cuenta como pendiente todo estado abierto (draft, waiting, ready), no solo draft.
func (uc *DashboardUseCase) countPending(ctx context.Context, kind entity.DocumentKind) (int, error) {
	total := 0
	for _, st := range kind.Statuses() {
		if st == entity.StatusDone || st == entity.StatusCancelled {
			continue
		}
		n, err := uc.analyticsRepo.CountDocuments(ctx, kind, st)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// OperationsOverview recepciones y entregas validadas por mes, los últimos seis meses (el más antiguo primero).
func (uc *DashboardUseCase) OperationsOverview(ctx context.Context) ([]dto.OperationsPeriodDTO, error) {
	now := uc.now().UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := make([]dto.OperationsPeriodDTO, 0, overviewMonths)
	for i := overviewMonths - 1; i >= 0; i-- {
		from := current.AddDate(0, -i, 0)
		to := from.AddDate(0, 1, 0)

		receipts, err := uc.analyticsRepo.CountValidatedBetween(ctx, entity.DocumentKindReceipt, from, to)
		if err != nil {
			return nil, fmt.Errorf("dashboard: recepciones %s: %w", monthLabel(from), err)
		}
		deliveries, err := uc.analyticsRepo.CountValidatedBetween(ctx, entity.DocumentKindDelivery, from, to)
		if err != nil {
			return nil, fmt.Errorf("dashboard: entregas %s: %w", monthLabel(from), err)
		}
		out = append(out, dto.OperationsPeriodDTO{
			Period:     monthLabel(from),
			Receipts:   receipts,
			Deliveries: deliveries,
		})
	}
	return out, nil
}

// InventoryComposition stock total por categoría para el gráfico de torta.
func (uc *DashboardUseCase) InventoryComposition(ctx context.Context) ([]dto.CompositionItemDTO, error) {
	groups, err := uc.analyticsRepo.InventoryComposition(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: composición: %w", err)
	}
	out := make([]dto.CompositionItemDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.CompositionItemDTO{Name: g.CategoryName, Value: g.TotalQuantity})
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

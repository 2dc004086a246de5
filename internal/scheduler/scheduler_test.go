package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScanner struct {
	items []dto.LowStockDTO
	err   error
	calls int
}

func (s *stubScanner) LowStock(context.Context, string) ([]dto.LowStockDTO, error) {
	s.calls++
	return s.items, s.err
}

type stubReconciler struct {
	report *dto.ReconciliationReportDTO
	err    error
}

func (s *stubReconciler) Reconcile(context.Context) (*dto.ReconciliationReportDTO, error) {
	return s.report, s.err
}

func newTestScheduler(scanner LowStockScanner, rec Reconciler, buf *bytes.Buffer) *Scheduler {
	cfg := Config{LowStockSpec: "0 * * * *", ReconcileSpec: "30 2 * * *"}
	return New(cfg, scanner, rec, zerolog.New(buf))
}

func TestScanLowStock_LogsEachItem(t *testing.T) {
	var buf bytes.Buffer
	scanner := &stubScanner{items: []dto.LowStockDTO{
		{SKU: "A-1", WarehouseName: "Central", CurrentStock: decimal.NewFromInt(1), SuggestedOrderQty: decimal.NewFromInt(14), Priority: 1},
	}}
	s := newTestScheduler(scanner, &stubReconciler{}, &buf)

	s.ScanLowStock()

	assert.Equal(t, 1, scanner.calls)
	assert.Contains(t, buf.String(), "A-1")
	assert.Contains(t, buf.String(), "producto bajo umbral")
}

func TestScanLowStock_Error(t *testing.T) {
	var buf bytes.Buffer
	s := newTestScheduler(&stubScanner{err: errors.New("db caída")}, &stubReconciler{}, &buf)

	s.ScanLowStock()

	assert.Contains(t, buf.String(), "escaneo de bajo stock falló")
}

func TestReconcileLedger_ReportsMismatch(t *testing.T) {
	var buf bytes.Buffer
	rec := &stubReconciler{report: &dto.ReconciliationReportDTO{
		PairsChecked: 1,
		Mismatches: []dto.ReconciliationMismatchDTO{
			{ProductID: "p1", WarehouseID: "w1", StockQuantity: decimal.NewFromInt(3), LedgerSum: decimal.NewFromInt(2)},
		},
	}}
	s := newTestScheduler(&stubScanner{}, rec, &buf)

	s.ReconcileLedger()

	assert.Contains(t, buf.String(), "stock no coincide con el libro")
	assert.Contains(t, buf.String(), "p1")
}

func TestReconcileLedger_Consistent(t *testing.T) {
	var buf bytes.Buffer
	rec := &stubReconciler{report: &dto.ReconciliationReportDTO{PairsChecked: 4, Consistent: true}}
	s := newTestScheduler(&stubScanner{}, rec, &buf)

	s.ReconcileLedger()

	assert.Contains(t, buf.String(), "libro conciliado")
	assert.NotContains(t, buf.String(), "no coincide")
}

func TestStart_InvalidSpec(t *testing.T) {
	var buf bytes.Buffer
	s := New(Config{LowStockSpec: "cada hora", ReconcileSpec: "30 2 * * *"}, &stubScanner{}, &stubReconciler{}, zerolog.New(&buf))
	require.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	var buf bytes.Buffer
	s := newTestScheduler(&stubScanner{}, &stubReconciler{}, &buf)
	require.NoError(t, s.Start())
	s.Stop()
	assert.Contains(t, buf.String(), "scheduler detenido")
}

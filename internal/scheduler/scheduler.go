// Package scheduler tareas periódicas: escaneo de bajo stock y conciliación nocturna del libro.
package scheduler

import (
	"context"
	"time"

	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// LowStockScanner devuelve las líneas bajo umbral (warehouseID vacío = todas).
type LowStockScanner interface {
	LowStock(ctx context.Context, warehouseID string) ([]dto.LowStockDTO, error)
}

// Reconciler compara el stock con la repetición del libro.
type Reconciler interface {
	Reconcile(ctx context.Context) (*dto.ReconciliationReportDTO, error)
}

// Config expresiones cron (5 campos) y tiempo máximo por ejecución.
type Config struct {
	LowStockSpec  string
	ReconcileSpec string
	RunTimeout    time.Duration
}

// Scheduler administra las tareas programadas.
type Scheduler struct {
	cron       *cron.Cron
	cfg        Config
	lowStock   LowStockScanner
	reconciler Reconciler
	logger     zerolog.Logger
}

// New crea el scheduler. No arranca hasta Start.
func New(cfg Config, lowStock LowStockScanner, reconciler Reconciler, logger zerolog.Logger) *Scheduler {
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 5 * time.Minute
	}
	return &Scheduler{
		cron:       cron.New(),
		cfg:        cfg,
		lowStock:   lowStock,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Start registra las tareas y arranca el cron. Una expresión inválida se devuelve como error.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.LowStockSpec, s.ScanLowStock); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.ReconcileSpec, s.ReconcileLedger); err != nil {
		return err
	}
	s.logger.Info().
		Str("low_stock", s.cfg.LowStockSpec).
		Str("reconcile", s.cfg.ReconcileSpec).
		Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que terminen las tareas en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("scheduler detenido")
}

// ScanLowStock registra en el log cada línea bajo umbral.
func (s *Scheduler) ScanLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RunTimeout)
	defer cancel()

	items, err := s.lowStock.LowStock(ctx, "")
	if err != nil {
		s.logger.Error().Err(err).Msg("escaneo de bajo stock falló")
		return
	}
	for _, it := range items {
		s.logger.Warn().
			Str("sku", it.SKU).
			Str("warehouse", it.WarehouseName).
			Str("current", it.CurrentStock.String()).
			Str("suggested", it.SuggestedOrderQty.String()).
			Int("priority", it.Priority).
			Msg("producto bajo umbral")
	}
	s.logger.Info().Int("items", len(items)).Msg("escaneo de bajo stock completado")
}

// ReconcileLedger repite el libro y alerta si algún par no coincide con el stock.
func (s *Scheduler) ReconcileLedger() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RunTimeout)
	defer cancel()

	report, err := s.reconciler.Reconcile(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("conciliación del libro falló")
		return
	}
	if report.Consistent {
		s.logger.Info().Int("pairs", report.PairsChecked).Msg("libro conciliado")
		return
	}
	for _, m := range report.Mismatches {
		s.logger.Error().
			Str("product_id", m.ProductID).
			Str("warehouse_id", m.WarehouseID).
			Str("stock", m.StockQuantity.String()).
			Str("ledger_sum", m.LedgerSum.String()).
			Str("last_balance", m.LastBalance.String()).
			Msg("stock no coincide con el libro")
	}
}

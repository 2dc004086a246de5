package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/rs/zerolog"
)

var (
	_ inventory.TxRunner       = (*TxRunner)(nil)
	_ inventory.SnapshotRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Los fallos de serialización y deadlocks se reintentan hasta maxAttempts veces; después devuelve domain.ErrConflict.
type TxRunner struct {
	pool        *pgxpool.Pool
	maxAttempts int
	logger      zerolog.Logger
}

// NewTxRunner construye el runner con el pool. retries es el número de reintentos tras el primer intento.
func NewTxRunner(pool *pgxpool.Pool, retries int, logger zerolog.Logger) *TxRunner {
	if retries < 0 {
		retries = 0
	}
	return &TxRunner{pool: pool, maxAttempts: retries + 1, logger: logger}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// RunSnapshot ejecuta fn en una transacción REPEATABLE READ de solo lectura: todas las consultas ven la misma foto.
func (r *TxRunner) RunSnapshot(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(repos inventory.TxRepos) error) error {
	var err error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err = r.runOnce(ctx, opts, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		r.logger.Warn().Err(err).Int("attempt", attempt).Msg("conflicto de transacción, reintentando")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*20) * time.Millisecond):
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrConflict, err)
}

func (r *TxRunner) runOnce(ctx context.Context, opts pgx.TxOptions, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.TxRepos{
		Stock:       NewStockRepository(tx),
		Ledger:      NewLedgerRepository(tx),
		Documents:   NewDocumentRepository(tx),
		Adjustments: NewAdjustmentRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxCommitRollback) {
			return fmt.Errorf("%w: transacción abortada", domain.ErrConflict)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

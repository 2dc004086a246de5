package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Stock       repository.StockRepository
	Ledger      repository.LedgerRepository
	Documents   repository.DocumentRepository
	Adjustments repository.AdjustmentRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Una implementación puede reintentar fn
// ante conflictos de serialización, por lo que fn no debe tener efectos fuera de los repositorios.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// SnapshotRunner lo implementa un TxRunner capaz de abrir una transacción de solo lectura
// en la que todas las consultas ven la misma foto de los datos.
type SnapshotRunner interface {
	RunSnapshot(ctx context.Context, fn func(repos TxRepos) error) error
}

// DocumentLocker candado exclusivo por clave (documento) alrededor de una validación.
// Acquire no espera: si la clave está tomada devuelve domain.ErrConflict.
type DocumentLocker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// LedgerPublisher publica asientos ya confirmados a consumidores externos.
type LedgerPublisher interface {
	Publish(ctx context.Context, entries []*entity.LedgerEntry) error
}

// NopPublisher descarta los asientos.
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, []*entity.LedgerEntry) error { return nil }

// LocalLocker DocumentLocker en memoria para un solo proceso.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalLocker construye un candado en memoria.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

// Acquire toma la clave o falla de inmediato con domain.ErrConflict.
func (l *LocalLocker) Acquire(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[key]; busy {
		return nil, fmt.Errorf("%w: %s en proceso", domain.ErrConflict, key)
	}
	l.held[key] = struct{}{}
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, nil
}

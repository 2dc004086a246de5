package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LedgerFilter filtros para listar asientos del libro de movimientos.
type LedgerFilter struct {
	ProductID   string
	WarehouseID string
	SourceType  string
	SourceID    string
	From        *time.Time
	To          *time.Time
	Limit       int // 0 = sin límite
	Offset      int
}

// LedgerTotal acumulado del libro para un par producto+bodega.
type LedgerTotal struct {
	ProductID   string
	WarehouseID string
	SumChange   decimal.Decimal
	LastBalance decimal.Decimal // saldo del asiento más reciente
	Entries     int
}

// LedgerRepository puerto del libro de movimientos. Es solo de inserción:
// no existe operación para modificar ni borrar un asiento.
type LedgerRepository interface {
	// Append asigna ID y Seq (si faltan) y persiste el asiento.
	Append(ctx context.Context, entry *entity.LedgerEntry) error
	// List devuelve asientos del más reciente al más antiguo.
	List(ctx context.Context, filter LedgerFilter) ([]*entity.LedgerEntry, error)
	// ListByPair devuelve los asientos de un par en orden de aplicación (created_at, seq).
	ListByPair(ctx context.Context, productID, warehouseID string) ([]*entity.LedgerEntry, error)
	// Totals devuelve el acumulado por par, usado para conciliar contra el stock.
	Totals(ctx context.Context) ([]LedgerTotal, error)
}

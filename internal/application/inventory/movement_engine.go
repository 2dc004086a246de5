package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MovementInput un cambio de cantidad sobre un par producto+bodega.
type MovementInput struct {
	ProductID   string
	WarehouseID string
	Change      decimal.Decimal // positivo entrada, negativo salida
	SourceType  string
	SourceID    string
}

// MovementEngine aplica movimientos contra stock y libro dentro de la transacción del caller.
// No abre transacciones propias: quien llama decide la unidad atómica (una línea o un documento entero).
type MovementEngine struct {
	now func() time.Time
}

// NewMovementEngine construye el motor con el reloj del sistema.
func NewMovementEngine() *MovementEngine {
	return &MovementEngine{now: time.Now}
}

// Apply bloquea la línea de stock (creándola en 0 si no existe), calcula el nuevo saldo,
// guarda la cantidad y agrega exactamente un asiento al libro.
// Devuelve domain.ErrInsufficientStock si el saldo quedaría negativo; en ese caso no escribe nada.
func (e *MovementEngine) Apply(ctx context.Context, repos TxRepos, in MovementInput) (*entity.LedgerEntry, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.SourceID == "" {
		return nil, fmt.Errorf("%w: producto, bodega y origen son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.IsValidSourceType(in.SourceType) {
		return nil, fmt.Errorf("%w: origen %q desconocido", domain.ErrInvalidInput, in.SourceType)
	}
	if !entity.FitsQuantityScale(in.Change) {
		return nil, fmt.Errorf("%w: la cantidad admite máximo %d decimales", domain.ErrInvalidInput, entity.QuantityScale)
	}

	stock, err := repos.Stock.Lock(ctx, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	newBalance := stock.Quantity.Add(in.Change)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: producto %s en bodega %s: disponible %s, movimiento %s",
			domain.ErrInsufficientStock, in.ProductID, in.WarehouseID, stock.Quantity, in.Change)
	}

	now := e.now().UTC()
	stock.Quantity = newBalance
	stock.UpdatedAt = now
	if err := repos.Stock.Upsert(ctx, stock); err != nil {
		return nil, err
	}
	entry := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Change:      in.Change,
		Balance:     newBalance,
		SourceType:  in.SourceType,
		SourceID:    in.SourceID,
		CreatedAt:   now,
	}
	if err := repos.Ledger.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ApplyAdjustment fija la cantidad contada como nueva verdad: change = counted - actual.
// Nunca falla por stock insuficiente. Un cambio de 0 también genera asiento (conteo confirmado).
func (e *MovementEngine) ApplyAdjustment(ctx context.Context, repos TxRepos, productID, warehouseID string, counted decimal.Decimal, sourceID string) (*entity.LedgerEntry, error) {
	if counted.IsNegative() {
		return nil, fmt.Errorf("%w: la cantidad contada no puede ser negativa", domain.ErrInvalidInput)
	}
	stock, err := repos.Stock.Lock(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return e.Apply(ctx, repos, MovementInput{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Change:      counted.Sub(stock.Quantity),
		SourceType:  entity.SourceAdjustment,
		SourceID:    sourceID,
	})
}

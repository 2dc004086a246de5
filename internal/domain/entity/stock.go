package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad actual de un producto en una bodega (única por par producto+bodega).
// Invariante: Quantity >= 0 después de cada movimiento confirmado.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// Key devuelve la clave (producto, bodega) de la línea de stock.
func (s *Stock) Key() StockKey {
	return StockKey{ProductID: s.ProductID, WarehouseID: s.WarehouseID}
}

// QuantityScale decimales que se guardan de una cantidad (NUMERIC(18,4)).
const QuantityScale = 4

// FitsQuantityScale indica si q se guarda sin redondeo. Los ceros a la derecha no cuentan.
func FitsQuantityScale(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(QuantityScale))
}

// StockKey identifica una línea de stock.
type StockKey struct {
	ProductID   string
	WarehouseID string
}

// Less ordena claves por producto y luego bodega; se usa para bloquear filas siempre en el mismo orden.
func (k StockKey) Less(o StockKey) bool {
	if k.ProductID != o.ProductID {
		return k.ProductID < o.ProductID
	}
	return k.WarehouseID < o.WarehouseID
}

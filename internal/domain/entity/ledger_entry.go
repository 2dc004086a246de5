package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de un asiento del libro de movimientos.
const (
	SourceReceipt     = "Receipt"
	SourceDelivery    = "Delivery"
	SourceTransferOut = "TransferOut"
	SourceTransferIn  = "TransferIn"
	SourceAdjustment  = "Adjustment"
)

// IsValidSourceType indica si t es un origen de movimiento conocido.
func IsValidSourceType(t string) bool {
	switch t {
	case SourceReceipt, SourceDelivery, SourceTransferOut, SourceTransferIn, SourceAdjustment:
		return true
	}
	return false
}

// LedgerEntry es un asiento inmutable del libro de movimientos (kardex).
// Balance = saldo anterior + Change para el par (ProductID, WarehouseID).
// Orden total: (CreatedAt, Seq).
type LedgerEntry struct {
	ID          string
	Seq         int64
	ProductID   string
	WarehouseID string
	Change      decimal.Decimal // positivo entrada, negativo salida
	Balance     decimal.Decimal
	SourceType  string
	SourceID    string // documento o ajuste que originó el movimiento
	CreatedAt   time.Time
}

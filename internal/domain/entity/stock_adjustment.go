package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAdjustment corrige el conteo de un producto en una bodega. Se aplica al crearse (no tiene borrador).
type StockAdjustment struct {
	ID              string
	WarehouseID     string
	ProductID       string
	CountedQuantity decimal.Decimal
	Reason          string
	CreatedBy       string
	CreatedAt       time.Time
}

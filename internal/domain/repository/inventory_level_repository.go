package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// LowStockItem resultado crudo del repositorio para una línea de stock bajo su umbral.
type LowStockItem struct {
	ProductID     string
	SKU           string
	ProductName   string
	Unit          string
	WarehouseID   string
	WarehouseName string
	CurrentStock  decimal.Decimal
	Threshold     decimal.Decimal
}

// InventoryLevelRepository consultas de solo lectura sobre niveles de stock.
type InventoryLevelRepository interface {
	// GetBelowThreshold devuelve las líneas de stock con quantity < low_stock_threshold del producto,
	// ordenadas por mayor déficit primero. warehouseID vacío = todas las bodegas.
	GetBelowThreshold(ctx context.Context, warehouseID string) ([]LowStockItem, error)
}

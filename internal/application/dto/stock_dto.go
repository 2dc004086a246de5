package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse cantidad actual de un producto en una bodega.
type StockResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockListResponse lista paginada de líneas de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// LedgerEntryResponse asiento del libro de movimientos.
type LedgerEntryResponse struct {
	ID          string          `json:"id"`
	Seq         int64           `json:"seq"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Change      decimal.Decimal `json:"change"`
	Balance     decimal.Decimal `json:"balance"`
	SourceType  string          `json:"source_type"`
	SourceID    string          `json:"source_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LedgerListResponse lista paginada del libro (más recientes primero).
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// LowStockDTO línea de stock por debajo del umbral del producto, con la cantidad sugerida de reposición.
type LowStockDTO struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	Unit              string          `json:"unit"`
	WarehouseID       string          `json:"warehouse_id"`
	WarehouseName     string          `json:"warehouse_name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	Threshold         decimal.Decimal `json:"threshold"`
	IdealStock        decimal.Decimal `json:"ideal_stock"`         // Threshold * 1.5
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Priority          int             `json:"priority"`            // 1 = más urgente
}

// ReconciliationMismatchDTO par cuyo stock no coincide con la reproducción del libro.
type ReconciliationMismatchDTO struct {
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	LedgerSum     decimal.Decimal `json:"ledger_sum"`
	LastBalance   decimal.Decimal `json:"last_balance"`
}

// ReconciliationReportDTO resultado de conciliar stock contra libro.
type ReconciliationReportDTO struct {
	CheckedAt    time.Time                   `json:"checked_at"`
	PairsChecked int                         `json:"pairs_checked"`
	Consistent   bool                        `json:"consistent"`
	Mismatches   []ReconciliationMismatchDTO `json:"mismatches"`
}

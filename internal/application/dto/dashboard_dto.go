package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts     int `json:"total_products"`
	LowStockItems     int `json:"low_stock_items"` // líneas de stock bajo el umbral del producto
	PendingReceipts   int `json:"pending_receipts"`
	PendingDeliveries int `json:"pending_deliveries"`
	PendingTransfers  int `json:"pending_transfers"`
}

// OperationsPeriodDTO recepciones y entregas validadas en un mes.
type OperationsPeriodDTO struct {
	Period     string `json:"period"` // ej: "Febrero 2026"
	Receipts   int    `json:"receipts"`
	Deliveries int    `json:"deliveries"`
}

// CompositionItemDTO cantidad total en stock de una categoría (gráfico de torta).
type CompositionItemDTO struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

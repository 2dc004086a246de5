package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest body para POST /api/adjustments. CountedQuantity es el nuevo conteo (>= 0).
type CreateAdjustmentRequest struct {
	WarehouseID     string          `json:"warehouse_id" validate:"required"`
	ProductID       string          `json:"product_id" validate:"required"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
	Reason          string          `json:"reason" validate:"max=500"`
}

// AdjustmentResponse salida de un ajuste; Entry es el asiento generado al crearlo.
type AdjustmentResponse struct {
	ID              string               `json:"id"`
	WarehouseID     string               `json:"warehouse_id"`
	ProductID       string               `json:"product_id"`
	CountedQuantity decimal.Decimal      `json:"counted_quantity"`
	Reason          string               `json:"reason"`
	CreatedBy       string               `json:"created_by,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	Entry           *LedgerEntryResponse `json:"entry,omitempty"`
}

// AdjustmentListResponse lista paginada de ajustes.
type AdjustmentListResponse struct {
	Items []AdjustmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

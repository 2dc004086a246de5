package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest línea de un documento. Quantity debe ser > 0.
type DocumentLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// UpdateDocumentLineRequest cambia la cantidad de una línea en borrador.
type UpdateDocumentLineRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateReceiptRequest body para POST /api/receipts.
type CreateReceiptRequest struct {
	Supplier    string                `json:"supplier" validate:"required,max=150"`
	WarehouseID string                `json:"warehouse_id" validate:"required"`
	Lines       []DocumentLineRequest `json:"lines" validate:"dive"`
}

// CreateDeliveryRequest body para POST /api/deliveries.
type CreateDeliveryRequest struct {
	Customer    string                `json:"customer" validate:"required,max=150"`
	WarehouseID string                `json:"warehouse_id" validate:"required"`
	Lines       []DocumentLineRequest `json:"lines" validate:"dive"`
}

// CreateTransferRequest body para POST /api/transfers. Origen y destino deben ser distintos.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   string                `json:"to_warehouse_id" validate:"required,nefield=FromWarehouseID"`
	Lines           []DocumentLineRequest `json:"lines" validate:"dive"`
}

// DocumentLineResponse salida de una línea.
type DocumentLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Position  int             `json:"position"`
}

// DocumentResponse salida común de recepción, entrega o traslado.
// Los campos de contraparte/bodega dependen del tipo.
type DocumentResponse struct {
	ID              string                 `json:"id"`
	Kind            string                 `json:"kind"`
	Supplier        string                 `json:"supplier,omitempty"`
	Customer        string                 `json:"customer,omitempty"`
	WarehouseID     string                 `json:"warehouse_id,omitempty"`
	FromWarehouseID string                 `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   string                 `json:"to_warehouse_id,omitempty"`
	Status          string                 `json:"status"`
	CreatedBy       string                 `json:"created_by,omitempty"`
	Lines           []DocumentLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	ValidatedAt     *time.Time             `json:"validated_at,omitempty"`
}

// DocumentListResponse lista paginada de documentos (sin líneas).
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ValidationResponse resultado de validar un documento: estado final y asientos generados.
type ValidationResponse struct {
	Document DocumentResponse      `json:"document"`
	Entries  []LedgerEntryResponse `json:"entries"`
}

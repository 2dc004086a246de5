package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind tipo de documento de inventario.
type DocumentKind string

const (
	DocumentKindReceipt  DocumentKind = "receipt"  // recepción de proveedor
	DocumentKindDelivery DocumentKind = "delivery" // orden de entrega a cliente
	DocumentKindTransfer DocumentKind = "transfer" // traslado interno entre bodegas
)

// DocumentStatus estado de un documento. Las transiciones son en un solo sentido.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusWaiting   DocumentStatus = "waiting"
	StatusReady     DocumentStatus = "ready"
	StatusDone      DocumentStatus = "done"
	StatusCancelled DocumentStatus = "cancelled"
)

var statusesByKind = map[DocumentKind][]DocumentStatus{
	DocumentKindReceipt:  {StatusDraft, StatusWaiting, StatusDone, StatusCancelled},
	DocumentKindDelivery: {StatusDraft, StatusReady, StatusDone, StatusCancelled},
	DocumentKindTransfer: {StatusDraft, StatusWaiting, StatusDone},
}

// Valid indica si el tipo de documento es conocido.
func (k DocumentKind) Valid() bool {
	_, ok := statusesByKind[k]
	return ok
}

// Allows indica si el estado existe para este tipo de documento.
func (k DocumentKind) Allows(s DocumentStatus) bool {
	for _, st := range statusesByKind[k] {
		if st == s {
			return true
		}
	}
	return false
}

// Statuses estados posibles del tipo, en orden de ciclo de vida.
func (k DocumentKind) Statuses() []DocumentStatus {
	return append([]DocumentStatus(nil), statusesByKind[k]...)
}

// DocumentLine línea de un documento: producto y cantidad (> 0).
type DocumentLine struct {
	ID         string
	DocumentID string
	ProductID  string
	Quantity   decimal.Decimal
	Position   int
	CreatedAt  time.Time
}

// Document cabecera de recepción, entrega o traslado; es dueña de sus líneas.
// WarehouseID es la bodega de la recepción/entrega o la bodega origen del traslado;
// ToWarehouseID solo aplica a traslados.
type Document struct {
	ID            string
	Kind          DocumentKind
	Partner       string // proveedor (recepción) o cliente (entrega)
	WarehouseID   string
	ToWarehouseID string
	Status        DocumentStatus
	CreatedBy     string
	Lines         []DocumentLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ValidatedAt   *time.Time
}

// IsDraft indica si el documento sigue en borrador (solo entonces se editan sus líneas).
func (d *Document) IsDraft() bool {
	return d.Status == StatusDraft
}

// Line busca una línea por ID.
func (d *Document) Line(lineID string) (*DocumentLine, bool) {
	for i := range d.Lines {
		if d.Lines[i].ID == lineID {
			return &d.Lines[i], true
		}
	}
	return nil, false
}

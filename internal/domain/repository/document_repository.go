package repository

import (
	"context"

	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
)

// DocumentFilter filtros para listar documentos.
type DocumentFilter struct {
	Kind   entity.DocumentKind
	Status entity.DocumentStatus // vacío = todos
	Limit  int
	Offset int
}

// DocumentRepository puerto de persistencia para recepciones, entregas y traslados con sus líneas.
type DocumentRepository interface {
	// Create persiste cabecera y líneas.
	Create(ctx context.Context, doc *entity.Document) error
	// GetByID devuelve el documento con sus líneas o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Document, error)
	// List devuelve cabeceras (sin líneas), más recientes primero.
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Document, error)
	// UpdateStatus guarda Status, UpdatedAt y ValidatedAt.
	UpdateStatus(ctx context.Context, doc *entity.Document) error
	AddLine(ctx context.Context, line *entity.DocumentLine) error
	UpdateLine(ctx context.Context, line *entity.DocumentLine) error
	DeleteLine(ctx context.Context, documentID, lineID string) error
	// Delete elimina el documento y sus líneas en cascada.
	Delete(ctx context.Context, id string) error
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo recepciones, entregas y traslados (tablas documents y document_lines).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, kind, partner, warehouse_id, to_warehouse_id, status, created_by, created_at, updated_at, validated_at`

// Create persiste cabecera y líneas. Debe ir dentro de una tx si hay líneas; con pool cada INSERT es independiente.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, string(doc.Kind), doc.Partner, doc.WarehouseID, nullable(doc.ToWarehouseID),
		string(doc.Status), doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt, doc.ValidatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: bodega inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	for i := range doc.Lines {
		if err := r.AddLine(ctx, &doc.Lines[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID devuelve el documento con sus líneas o nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate igual que GetByID pero bloquea la cabecera (SELECT FOR UPDATE).
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, id, true)
}

func (r *DocumentRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Document, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	doc, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, product_id, quantity, position, created_at
		FROM document_lines WHERE document_id = $1
		ORDER BY position, created_at`, id)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ProductID, &l.Quantity, &l.Position, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		doc.Lines = append(doc.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// List devuelve cabeceras (sin líneas), más recientes primero.
func (r *DocumentRepo) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.Document, error) {
	args := []any{string(filter.Kind)}
	query := `SELECT ` + documentColumns + ` FROM documents WHERE kind = $1`
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id"
	query, args = withPage(query, args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// UpdateStatus guarda estado, updated_at y validated_at.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, doc *entity.Document) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE documents SET status = $2, updated_at = $3, validated_at = $4
		WHERE id = $1`, doc.ID, string(doc.Status), doc.UpdatedAt, doc.ValidatedAt)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: documento %s", domain.ErrNotFound, doc.ID)
	}
	return nil
}

func (r *DocumentRepo) AddLine(ctx context.Context, line *entity.DocumentLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO document_lines (id, document_id, product_id, quantity, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		line.ID, line.DocumentID, line.ProductID, line.Quantity, line.Position, line.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert document line: %w", err)
	}
	return nil
}

func (r *DocumentRepo) UpdateLine(ctx context.Context, line *entity.DocumentLine) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE document_lines SET quantity = $3
		WHERE id = $1 AND document_id = $2`, line.ID, line.DocumentID, line.Quantity)
	if err != nil {
		return fmt.Errorf("update document line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: línea %s", domain.ErrNotFound, line.ID)
	}
	return nil
}

func (r *DocumentRepo) DeleteLine(ctx context.Context, documentID, lineID string) error {
	if !validID(lineID) {
		return fmt.Errorf("%w: línea %s", domain.ErrNotFound, lineID)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM document_lines WHERE id = $1 AND document_id = $2`, lineID, documentID)
	if err != nil {
		return fmt.Errorf("delete document line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: línea %s", domain.ErrNotFound, lineID)
	}
	return nil
}

// Delete elimina el documento; las líneas caen por ON DELETE CASCADE.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: documento %s", domain.ErrNotFound, id)
	}
	return nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var (
		d           entity.Document
		kind        string
		status      string
		toWarehouse *string
		validatedAt *time.Time
	)
	if err := row.Scan(&d.ID, &kind, &d.Partner, &d.WarehouseID, &toWarehouse, &status,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt, &validatedAt); err != nil {
		return nil, err
	}
	d.Kind = entity.DocumentKind(kind)
	d.Status = entity.DocumentStatus(status)
	d.ToWarehouseID = deref(toWarehouse)
	d.ValidatedAt = validatedAt
	return &d, nil
}

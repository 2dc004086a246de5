package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo recepciones, entregas y traslados en memoria.
type DocumentRepo struct {
	store *Store
	tx    *state
}

// Create guarda la cabecera con sus líneas.
func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	return r.store.view(r.tx, func(st *state) error {
		if _, ok := st.documents[doc.ID]; ok {
			return fmt.Errorf("%w: documento %s", domain.ErrDuplicate, doc.ID)
		}
		st.documents[doc.ID] = copyDocument(*doc)
		return nil
	})
}

// GetByID devuelve una copia del documento con sus líneas, o nil si no existe.
func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	var out *entity.Document
	_ = r.store.view(r.tx, func(st *state) error {
		if d, ok := st.documents[id]; ok {
			c := copyDocument(d)
			out = &c
		}
		return nil
	})
	return out, nil
}

// GetForUpdate igual que GetByID; dentro de Run el mutex del Store ya serializa.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.GetByID(ctx, id)
}

// List lista cabeceras filtradas por tipo y estado.
func (r *DocumentRepo) List(_ context.Context, filter repository.DocumentFilter) ([]*entity.Document, error) {
	var out []*entity.Document
	_ = r.store.view(r.tx, func(st *state) error {
		list := make([]entity.Document, 0)
		for _, d := range st.documents {
			if filter.Kind != "" && d.Kind != filter.Kind {
				continue
			}
			if filter.Status != "" && d.Status != filter.Status {
				continue
			}
			d.Lines = nil
			list = append(list, d)
		}
		sort.Slice(list, func(i, j int) bool {
			if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
				return list[i].CreatedAt.After(list[j].CreatedAt)
			}
			return list[i].ID < list[j].ID
		})
		list = page(list, filter.Limit, filter.Offset)
		out = make([]*entity.Document, 0, len(list))
		for i := range list {
			out = append(out, &list[i])
		}
		return nil
	})
	return out, nil
}

// UpdateStatus actualiza estado, UpdatedAt y ValidatedAt.
func (r *DocumentRepo) UpdateStatus(_ context.Context, doc *entity.Document) error {
	return r.store.view(r.tx, func(st *state) error {
		d, ok := st.documents[doc.ID]
		if !ok {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, doc.ID)
		}
		d.Status = doc.Status
		d.UpdatedAt = doc.UpdatedAt
		if doc.ValidatedAt != nil {
			t := *doc.ValidatedAt
			d.ValidatedAt = &t
		}
		st.documents[doc.ID] = d
		return nil
	})
}

// AddLine agrega una línea al documento.
func (r *DocumentRepo) AddLine(_ context.Context, line *entity.DocumentLine) error {
	return r.store.view(r.tx, func(st *state) error {
		d, ok := st.documents[line.DocumentID]
		if !ok {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, line.DocumentID)
		}
		d.Lines = append(d.Lines, *line)
		st.documents[d.ID] = d
		return nil
	})
}

// UpdateLine cambia la cantidad de una línea.
func (r *DocumentRepo) UpdateLine(_ context.Context, line *entity.DocumentLine) error {
	return r.store.view(r.tx, func(st *state) error {
		d, ok := st.documents[line.DocumentID]
		if !ok {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, line.DocumentID)
		}
		for i := range d.Lines {
			if d.Lines[i].ID == line.ID {
				d.Lines[i].Quantity = line.Quantity
				st.documents[d.ID] = d
				return nil
			}
		}
		return fmt.Errorf("%w: línea %s", domain.ErrNotFound, line.ID)
	})
}

// DeleteLine quita una línea del documento.
func (r *DocumentRepo) DeleteLine(_ context.Context, documentID, lineID string) error {
	return r.store.view(r.tx, func(st *state) error {
		d, ok := st.documents[documentID]
		if !ok {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, documentID)
		}
		for i := range d.Lines {
			if d.Lines[i].ID == lineID {
				d.Lines = append(d.Lines[:i:i], d.Lines[i+1:]...)
				st.documents[d.ID] = d
				return nil
			}
		}
		return fmt.Errorf("%w: línea %s", domain.ErrNotFound, lineID)
	})
}

// Delete elimina el documento y sus líneas.
func (r *DocumentRepo) Delete(_ context.Context, id string) error {
	return r.store.view(r.tx, func(st *state) error {
		if _, ok := st.documents[id]; !ok {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, id)
		}
		delete(st.documents, id)
		return nil
	})
}

package memory

import (
	"context"

	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo ajustes de conteo en memoria.
type AdjustmentRepo struct {
	store *Store
	tx    *state
}

// Create guarda un ajuste.
func (r *AdjustmentRepo) Create(_ context.Context, adj *entity.StockAdjustment) error {
	return r.store.view(r.tx, func(st *state) error {
		st.adjustments[adj.ID] = *adj
		return nil
	})
}

// GetByID devuelve el ajuste o nil si no existe.
func (r *AdjustmentRepo) GetByID(_ context.Context, id string) (*entity.StockAdjustment, error) {
	var out *entity.StockAdjustment
	_ = r.store.view(r.tx, func(st *state) error {
		if a, ok := st.adjustments[id]; ok {
			out = &a
		}
		return nil
	})
	return out, nil
}

// List lista ajustes, más recientes primero.
func (r *AdjustmentRepo) List(_ context.Context, limit, offset int) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	_ = r.store.view(r.tx, func(st *state) error {
		keys := sortedKeys(st.adjustments, func(a, b entity.StockAdjustment) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID < b.ID
		})
		keys = page(keys, limit, offset)
		out = make([]*entity.StockAdjustment, 0, len(keys))
		for _, k := range keys {
			a := st.adjustments[k]
			out = append(out, &a)
		}
		return nil
	})
	return out, nil
}

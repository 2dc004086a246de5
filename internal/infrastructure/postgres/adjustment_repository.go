package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo ajustes de conteo (tabla stock_adjustments).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, warehouse_id, product_id, counted_quantity, reason, created_by, created_at`

func (r *AdjustmentRepo) Create(ctx context.Context, adj *entity.StockAdjustment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_adjustments (`+adjustmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		adj.ID, adj.WarehouseID, adj.ProductID, adj.CountedQuantity, adj.Reason, adj.CreatedBy, adj.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o bodega inexistente", domain.ErrNotFound)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: la cantidad contada no puede ser negativa", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

func (r *AdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.StockAdjustment, error) {
	if !validID(id) {
		return nil, nil
	}
	var a entity.StockAdjustment
	err := r.q.QueryRow(ctx, `SELECT `+adjustmentColumns+` FROM stock_adjustments WHERE id = $1`, id).Scan(
		&a.ID, &a.WarehouseID, &a.ProductID, &a.CountedQuantity, &a.Reason, &a.CreatedBy, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock adjustment: %w", err)
	}
	return &a, nil
}

func (r *AdjustmentRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockAdjustment, error) {
	query, args := withPage(`SELECT `+adjustmentColumns+` FROM stock_adjustments ORDER BY created_at DESC, id`, nil, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockAdjustment, 0)
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.WarehouseID, &a.ProductID, &a.CountedQuantity, &a.Reason, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

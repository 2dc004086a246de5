package repository

import (
	"context"

	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
)

// AdjustmentRepository puerto de persistencia para ajustes de conteo.
type AdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.StockAdjustment) error
	GetByID(ctx context.Context, id string) (*entity.StockAdjustment, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockAdjustment, error)
}

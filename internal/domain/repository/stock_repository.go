package repository

import (
	"context"

	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
)

// StockFilter filtros para listar líneas de stock.
type StockFilter struct {
	ProductID   string
	WarehouseID string
	Limit       int // 0 = sin límite
	Offset      int
}

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve la línea de stock; si no existe devuelve una con cantidad 0 (sin crearla).
	Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	// Lock crea la línea con cantidad 0 si no existe (upsert atómico) y la bloquea hasta el fin de la transacción.
	Lock(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	// Upsert guarda la cantidad. Una cantidad negativa devuelve domain.ErrInsufficientStock.
	Upsert(ctx context.Context, stock *entity.Stock) error
	List(ctx context.Context, filter StockFilter) ([]*entity.Stock, error)
}

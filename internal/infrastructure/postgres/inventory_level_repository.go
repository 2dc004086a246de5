package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo consultas de niveles de stock para reposición.
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador.
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

// GetBelowThreshold devuelve las líneas de stock bajo el umbral del producto, mayor déficit primero.
func (r *InventoryLevelRepo) GetBelowThreshold(ctx context.Context, warehouseID string) ([]repository.LowStockItem, error) {
	if warehouseID != "" && !validID(warehouseID) {
		return []repository.LowStockItem{}, nil
	}
	const query = `
	SELECT
	    p.id, p.sku, p.name, p.unit,
	    w.id, w.name,
	    s.quantity,
	    p.low_stock_threshold::NUMERIC
	FROM stock s
	JOIN products   p ON p.id = s.product_id
	JOIN warehouses w ON w.id = s.warehouse_id
	WHERE s.quantity < p.low_stock_threshold
	  AND ($1::UUID IS NULL OR s.warehouse_id = $1::UUID)
	ORDER BY (p.low_stock_threshold - s.quantity) DESC, p.sku, w.name`

	rows, err := r.q.Query(ctx, query, nullable(warehouseID))
	if err != nil {
		return nil, fmt.Errorf("inventory_level.GetBelowThreshold: %w", err)
	}
	defer rows.Close()

	items := make([]repository.LowStockItem, 0)
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(
			&it.ProductID, &it.SKU, &it.ProductName, &it.Unit,
			&it.WarehouseID, &it.WarehouseName,
			&it.CurrentStock, &it.Threshold,
		); err != nil {
			return nil, fmt.Errorf("inventory_level.GetBelowThreshold scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

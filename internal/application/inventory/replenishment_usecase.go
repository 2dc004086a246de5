package inventory

import (
	"context"

	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReplenishmentUseCase lista el stock bajo el umbral de cada producto con una cantidad sugerida de reposición.
type ReplenishmentUseCase struct {
	levelRepo repository.InventoryLevelRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(levelRepo repository.InventoryLevelRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{levelRepo: levelRepo}
}

// LowStock devuelve las líneas con quantity < low_stock_threshold.
// warehouseID puede ser vacío para considerar todas las bodegas.
// La prioridad sigue el orden del repositorio (mayor déficit primero).
func (uc *ReplenishmentUseCase) LowStock(ctx context.Context, warehouseID string) ([]dto.LowStockDTO, error) {
	rawItems, err := uc.levelRepo.GetBelowThreshold(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	factor := decimal.NewFromFloat(1.5)
	items := make([]dto.LowStockDTO, 0, len(rawItems))
	for i, item := range rawItems {
		idealStock := item.Threshold.Mul(factor)
		suggestedQty := idealStock.Sub(item.CurrentStock)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		items = append(items, dto.LowStockDTO{
			ProductID:         item.ProductID,
			SKU:               item.SKU,
			ProductName:       item.ProductName,
			Unit:              item.Unit,
			WarehouseID:       item.WarehouseID,
			WarehouseName:     item.WarehouseName,
			CurrentStock:      item.CurrentStock,
			Threshold:         item.Threshold,
			IdealStock:        idealStock,
			SuggestedOrderQty: suggestedQty,
			Priority:          i + 1,
		})
	}
	return items, nil
}

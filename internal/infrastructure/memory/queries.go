package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)
	_ repository.AnalyticsRepository      = (*AnalyticsRepo)(nil)
)

// InventoryLevelRepo consultas de bajo stock en memoria.
type InventoryLevelRepo struct {
	store *Store
}

// GetBelowThreshold devuelve los pares con stock bajo el umbral del producto.
func (r *InventoryLevelRepo) GetBelowThreshold(_ context.Context, warehouseID string) ([]repository.LowStockItem, error) {
	var out []repository.LowStockItem
	_ = r.store.view(nil, func(st *state) error {
		out = make([]repository.LowStockItem, 0)
		for _, s := range st.stock {
			if warehouseID != "" && s.WarehouseID != warehouseID {
				continue
			}
			p, ok := st.products[s.ProductID]
			if !ok {
				continue
			}
			threshold := decimal.NewFromInt(int64(p.LowStockThreshold))
			if !s.Quantity.LessThan(threshold) {
				continue
			}
			out = append(out, repository.LowStockItem{
				ProductID:     p.ID,
				SKU:           p.SKU,
				ProductName:   p.Name,
				Unit:          p.Unit,
				WarehouseID:   s.WarehouseID,
				WarehouseName: st.warehouses[s.WarehouseID].Name,
				CurrentStock:  s.Quantity,
				Threshold:     threshold,
			})
		}
		sort.Slice(out, func(i, j int) bool {
			di := out[i].Threshold.Sub(out[i].CurrentStock)
			dj := out[j].Threshold.Sub(out[j].CurrentStock)
			if !di.Equal(dj) {
				return di.GreaterThan(dj)
			}
			if out[i].SKU != out[j].SKU {
				return out[i].SKU < out[j].SKU
			}
			return out[i].WarehouseName < out[j].WarehouseName
		})
		return nil
	})
	return out, nil
}

// AnalyticsRepo agregaciones del dashboard en memoria.
type AnalyticsRepo struct {
	store *Store
}

// CountProducts cuenta productos.
func (r *AnalyticsRepo) CountProducts(_ context.Context) (int, error) {
	var n int
	_ = r.store.view(nil, func(st *state) error {
		n = len(st.products)
		return nil
	})
	return n, nil
}

// CountLowStock cuenta pares con stock bajo el umbral.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context) (int, error) {
	items, err := (&InventoryLevelRepo{store: r.store}).GetBelowThreshold(ctx, "")
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// CountDocuments cuenta documentos de un tipo y estado.
func (r *AnalyticsRepo) CountDocuments(_ context.Context, kind entity.DocumentKind, status entity.DocumentStatus) (int, error) {
	var n int
	_ = r.store.view(nil, func(st *state) error {
		for _, d := range st.documents {
			if d.Kind == kind && d.Status == status {
				n++
			}
		}
		return nil
	})
	return n, nil
}

// CountValidatedBetween cuenta documentos validados en [from, to).
func (r *AnalyticsRepo) CountValidatedBetween(_ context.Context, kind entity.DocumentKind, from, to time.Time) (int, error) {
	var n int
	_ = r.store.view(nil, func(st *state) error {
		for _, d := range st.documents {
			if d.Kind != kind || d.Status != entity.StatusDone || d.ValidatedAt == nil {
				continue
			}
			if !d.ValidatedAt.Before(from) && d.ValidatedAt.Before(to) {
				n++
			}
		}
		return nil
	})
	return n, nil
}

// InventoryComposition suma el stock por categoría.
func (r *AnalyticsRepo) InventoryComposition(_ context.Context) ([]repository.CategoryQuantity, error) {
	var out []repository.CategoryQuantity
	_ = r.store.view(nil, func(st *state) error {
		totals := make(map[string]decimal.Decimal)
		for _, s := range st.stock {
			name := "Uncategorized"
			if p, ok := st.products[s.ProductID]; ok && p.CategoryID != "" {
				if c, ok := st.categories[p.CategoryID]; ok {
					name = c.Name
				}
			}
			totals[name] = totals[name].Add(s.Quantity)
		}
		out = make([]repository.CategoryQuantity, 0, len(totals))
		for name, qty := range totals {
			if qty.IsPositive() {
				out = append(out, repository.CategoryQuantity{CategoryName: name, TotalQuantity: qty})
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].TotalQuantity.Equal(out[j].TotalQuantity) {
				return out[i].TotalQuantity.GreaterThan(out[j].TotalQuantity)
			}
			return out[i].CategoryName < out[j].CategoryName
		})
		return nil
	})
	return out, nil
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo líneas de stock en memoria.
type StockRepo struct {
	store *Store
	tx    *state
}

// Get devuelve la línea de stock; un par sin registro vale 0.
func (r *StockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	var out entity.Stock
	_ = r.store.view(r.tx, func(st *state) error {
		key := entity.StockKey{ProductID: productID, WarehouseID: warehouseID}
		s, ok := st.stock[key]
		if !ok {
			s = entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}
		}
		out = s
		return nil
	})
	return &out, nil
}

// Lock crea la línea en 0 si no existe. El bloqueo lo da la transacción (mutex del Store).
func (r *StockRepo) Lock(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	var out entity.Stock
	_ = r.store.view(r.tx, func(st *state) error {
		key := entity.StockKey{ProductID: productID, WarehouseID: warehouseID}
		s, ok := st.stock[key]
		if !ok {
			s = entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero, UpdatedAt: time.Now().UTC()}
			st.stock[key] = s
		}
		out = s
		return nil
	})
	return &out, nil
}

// Upsert guarda la línea de stock. Rechaza cantidades negativas.
func (r *StockRepo) Upsert(_ context.Context, stock *entity.Stock) error {
	if stock.Quantity.IsNegative() {
		return fmt.Errorf("%w: producto %s en bodega %s", domain.ErrInsufficientStock, stock.ProductID, stock.WarehouseID)
	}
	return r.store.view(r.tx, func(st *state) error {
		st.stock[stock.Key()] = *stock
		return nil
	})
}

// List lista líneas de stock filtradas por producto y bodega.
func (r *StockRepo) List(_ context.Context, filter repository.StockFilter) ([]*entity.Stock, error) {
	var out []*entity.Stock
	_ = r.store.view(r.tx, func(st *state) error {
		list := make([]entity.Stock, 0, len(st.stock))
		for _, s := range st.stock {
			if filter.ProductID != "" && s.ProductID != filter.ProductID {
				continue
			}
			if filter.WarehouseID != "" && s.WarehouseID != filter.WarehouseID {
				continue
			}
			list = append(list, s)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Key().Less(list[j].Key()) })
		list = page(list, filter.Limit, filter.Offset)
		out = make([]*entity.Stock, 0, len(list))
		for i := range list {
			out = append(out, &list[i])
		}
		return nil
	})
	return out, nil
}

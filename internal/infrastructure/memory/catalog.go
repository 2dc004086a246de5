package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
)

// ProductRepo productos en memoria. El SKU es único.
type ProductRepo struct {
	store *Store
}

// Create guarda un producto. El SKU es único sin distinguir mayúsculas.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.store.view(nil, func(st *state) error {
		for _, other := range st.products {
			if strings.EqualFold(other.SKU, p.SKU) {
				return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, p.SKU)
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	_ = r.store.view(nil, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, nil
}

// GetBySKU busca por SKU sin distinguir mayúsculas; nil si no existe.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	_ = r.store.view(nil, func(st *state) error {
		for _, p := range st.products {
			if strings.EqualFold(p.SKU, sku) {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, nil
}

// Update reemplaza los datos del producto.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.store.view(nil, func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, p.ID)
		}
		cur.Name = p.Name
		cur.Unit = p.Unit
		cur.CategoryID = p.CategoryID
		cur.LowStockThreshold = p.LowStockThreshold
		cur.UpdatedAt = p.UpdatedAt
		st.products[p.ID] = cur
		return nil
	})
}

// List lista productos paginados.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	_ = r.store.view(nil, func(st *state) error {
		keys := sortedKeys(st.products, func(a, b entity.Product) bool { return a.SKU < b.SKU })
		keys = page(keys, limit, offset)
		out = make([]*entity.Product, 0, len(keys))
		for _, k := range keys {
			p := st.products[k]
			out = append(out, &p)
		}
		return nil
	})
	return out, nil
}

// Delete falla con domain.ErrConflict si el producto ya tiene stock, asientos o líneas de documento.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.store.view(nil, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		for k := range st.stock {
			if k.ProductID == id {
				return fmt.Errorf("%w: el producto tiene stock registrado", domain.ErrConflict)
			}
		}
		for _, e := range st.ledger {
			if e.ProductID == id {
				return fmt.Errorf("%w: el producto tiene movimientos", domain.ErrConflict)
			}
		}
		for _, d := range st.documents {
			for _, l := range d.Lines {
				if l.ProductID == id {
					return fmt.Errorf("%w: el producto está en el documento %s", domain.ErrConflict, d.ID)
				}
			}
		}
		delete(st.products, id)
		return nil
	})
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct {
	store *Store
}

// Create guarda una bodega.
func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.store.view(nil, func(st *state) error {
		st.warehouses[w.ID] = *w
		return nil
	})
}

// GetByID devuelve la bodega o nil si no existe.
func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	_ = r.store.view(nil, func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, nil
}

// Update reemplaza los datos de la bodega.
func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.store.view(nil, func(st *state) error {
		cur, ok := st.warehouses[w.ID]
		if !ok {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, w.ID)
		}
		cur.Name = w.Name
		cur.Location = w.Location
		cur.UpdatedAt = w.UpdatedAt
		st.warehouses[w.ID] = cur
		return nil
	})
}

// List lista bodegas paginadas.
func (r *WarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	_ = r.store.view(nil, func(st *state) error {
		keys := sortedKeys(st.warehouses, func(a, b entity.Warehouse) bool { return a.Name < b.Name })
		keys = page(keys, limit, offset)
		out = make([]*entity.Warehouse, 0, len(keys))
		for _, k := range keys {
			w := st.warehouses[k]
			out = append(out, &w)
		}
		return nil
	})
	return out, nil
}

// Delete falla con domain.ErrConflict si la bodega tiene stock, asientos o documentos.
func (r *WarehouseRepo) Delete(_ context.Context, id string) error {
	return r.store.view(nil, func(st *state) error {
		if _, ok := st.warehouses[id]; !ok {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
		}
		for k := range st.stock {
			if k.WarehouseID == id {
				return fmt.Errorf("%w: la bodega tiene stock registrado", domain.ErrConflict)
			}
		}
		for _, e := range st.ledger {
			if e.WarehouseID == id {
				return fmt.Errorf("%w: la bodega tiene movimientos", domain.ErrConflict)
			}
		}
		for _, d := range st.documents {
			if d.WarehouseID == id || d.ToWarehouseID == id {
				return fmt.Errorf("%w: la bodega está en el documento %s", domain.ErrConflict, d.ID)
			}
		}
		delete(st.warehouses, id)
		return nil
	})
}

// CategoryRepo categorías en memoria. El nombre es único.
type CategoryRepo struct {
	store *Store
}

// Create guarda una categoría. El nombre es único.
func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.store.view(nil, func(st *state) error {
		for _, other := range st.categories {
			if strings.EqualFold(other.Name, c.Name) {
				return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, c.Name)
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

// GetByID devuelve la categoría o nil si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	_ = r.store.view(nil, func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, nil
}

// Update renombra la categoría.
func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.store.view(nil, func(st *state) error {
		cur, ok := st.categories[c.ID]
		if !ok {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, c.ID)
		}
		for id, other := range st.categories {
			if id != c.ID && strings.EqualFold(other.Name, c.Name) {
				return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, c.Name)
			}
		}
		cur.Name = c.Name
		cur.UpdatedAt = c.UpdatedAt
		st.categories[c.ID] = cur
		return nil
	})
}

// List lista categorías paginadas.
func (r *CategoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	_ = r.store.view(nil, func(st *state) error {
		keys := sortedKeys(st.categories, func(a, b entity.Category) bool { return a.Name < b.Name })
		keys = page(keys, limit, offset)
		out = make([]*entity.Category, 0, len(keys))
		for _, k := range keys {
			c := st.categories[k]
			out = append(out, &c)
		}
		return nil
	})
	return out, nil
}

// Delete quita la categoría; los productos quedan sin categoría.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.store.view(nil, func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
		}
		for pid, p := range st.products {
			if p.CategoryID == id {
				p.CategoryID = ""
				st.products[pid] = p
			}
		}
		delete(st.categories, id)
		return nil
	})
}

// Package memory implementa los repositorios en memoria. Se usa en pruebas y con STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	products    map[string]entity.Product
	categories  map[string]entity.Category
	warehouses  map[string]entity.Warehouse
	stock       map[entity.StockKey]entity.Stock
	ledger      []entity.LedgerEntry
	seq         int64
	documents   map[string]entity.Document
	adjustments map[string]entity.StockAdjustment
}

func newState() *state {
	return &state{
		products:    make(map[string]entity.Product),
		categories:  make(map[string]entity.Category),
		warehouses:  make(map[string]entity.Warehouse),
		stock:       make(map[entity.StockKey]entity.Stock),
		documents:   make(map[string]entity.Document),
		adjustments: make(map[string]entity.StockAdjustment),
	}
}

// clone copia profunda: una transacción trabaja sobre la copia y solo se publica si fn termina sin error.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	c.ledger = append(make([]entity.LedgerEntry, 0, len(s.ledger)+8), s.ledger...)
	c.seq = s.seq
	for k, v := range s.documents {
		c.documents[k] = copyDocument(v)
	}
	for k, v := range s.adjustments {
		c.adjustments[k] = v
	}
	return c
}

func copyDocument(d entity.Document) entity.Document {
	if d.Lines != nil {
		d.Lines = append([]entity.DocumentLine(nil), d.Lines...)
	}
	if d.ValidatedAt != nil {
		t := *d.ValidatedAt
		d.ValidatedAt = &t
	}
	return d
}

// Store almacén en memoria. Las transacciones se serializan con un único mutex.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
// Dentro de fn solo deben usarse los repositorios recibidos.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.st.clone()
	repos := inventory.TxRepos{
		Stock:       &StockRepo{store: s, tx: tx},
		Ledger:      &LedgerRepo{store: s, tx: tx},
		Documents:   &DocumentRepo{store: s, tx: tx},
		Adjustments: &AdjustmentRepo{store: s, tx: tx},
	}
	if err := fn(repos); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// view da acceso al estado: el de la transacción si existe, si no el confirmado bajo el mutex.
func (s *Store) view(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Stock repositorio de stock sobre el estado confirmado.
func (s *Store) Stock() *StockRepo { return &StockRepo{store: s} }

// Ledger repositorio del libro sobre el estado confirmado.
func (s *Store) Ledger() *LedgerRepo { return &LedgerRepo{store: s} }

// Documents repositorio de documentos sobre el estado confirmado.
func (s *Store) Documents() *DocumentRepo { return &DocumentRepo{store: s} }

// Adjustments repositorio de ajustes sobre el estado confirmado.
func (s *Store) Adjustments() *AdjustmentRepo { return &AdjustmentRepo{store: s} }

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{store: s} }

// Warehouses repositorio de bodegas.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{store: s} }

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{store: s} }

// Levels consulta de niveles de stock.
func (s *Store) Levels() *InventoryLevelRepo { return &InventoryLevelRepo{store: s} }

// Analytics agregados del dashboard.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{store: s} }

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func sortedKeys[V any](m map[string]V, less func(a, b V) bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return less(m[keys[i]], m[keys[j]]) })
	return keys
}

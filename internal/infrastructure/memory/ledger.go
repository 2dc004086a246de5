package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo libro de movimientos en memoria (solo inserción).
type LedgerRepo struct {
	store *Store
	tx    *state
}

// Append agrega un asiento con el siguiente número de secuencia.
func (r *LedgerRepo) Append(_ context.Context, entry *entity.LedgerEntry) error {
	return r.store.view(r.tx, func(st *state) error {
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		st.seq++
		entry.Seq = st.seq
		st.ledger = append(st.ledger, *entry)
		return nil
	})
}

func entryBefore(a, b entity.LedgerEntry) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.Seq < b.Seq
}

// List lista asientos filtrados, más recientes primero.
func (r *LedgerRepo) List(_ context.Context, filter repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	_ = r.store.view(r.tx, func(st *state) error {
		list := make([]entity.LedgerEntry, 0, len(st.ledger))
		for _, e := range st.ledger {
			if filter.ProductID != "" && e.ProductID != filter.ProductID {
				continue
			}
			if filter.WarehouseID != "" && e.WarehouseID != filter.WarehouseID {
				continue
			}
			if filter.SourceType != "" && e.SourceType != filter.SourceType {
				continue
			}
			if filter.SourceID != "" && e.SourceID != filter.SourceID {
				continue
			}
			if filter.From != nil && e.CreatedAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && !e.CreatedAt.Before(*filter.To) {
				continue
			}
			list = append(list, e)
		}
		sort.Slice(list, func(i, j int) bool { return entryBefore(list[j], list[i]) })
		list = page(list, filter.Limit, filter.Offset)
		out = make([]*entity.LedgerEntry, 0, len(list))
		for i := range list {
			out = append(out, &list[i])
		}
		return nil
	})
	return out, nil
}

// ListByPair devuelve los asientos de un par en orden de aplicación.
func (r *LedgerRepo) ListByPair(_ context.Context, productID, warehouseID string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	_ = r.store.view(r.tx, func(st *state) error {
		list := make([]entity.LedgerEntry, 0)
		for _, e := range st.ledger {
			if e.ProductID == productID && e.WarehouseID == warehouseID {
				list = append(list, e)
			}
		}
		sort.Slice(list, func(i, j int) bool { return entryBefore(list[i], list[j]) })
		out = make([]*entity.LedgerEntry, 0, len(list))
		for i := range list {
			out = append(out, &list[i])
		}
		return nil
	})
	return out, nil
}

// Totals suma los cambios por par y toma el saldo del último asiento.
func (r *LedgerRepo) Totals(_ context.Context) ([]repository.LedgerTotal, error) {
	var out []repository.LedgerTotal
	_ = r.store.view(r.tx, func(st *state) error {
		type acc struct {
			total repository.LedgerTotal
			last  entity.LedgerEntry
		}
		byKey := make(map[entity.StockKey]*acc)
		for _, e := range st.ledger {
			key := entity.StockKey{ProductID: e.ProductID, WarehouseID: e.WarehouseID}
			a, ok := byKey[key]
			if !ok {
				a = &acc{total: repository.LedgerTotal{ProductID: e.ProductID, WarehouseID: e.WarehouseID, SumChange: decimal.Zero}, last: e}
				byKey[key] = a
			}
			a.total.SumChange = a.total.SumChange.Add(e.Change)
			a.total.Entries++
			if entryBefore(a.last, e) {
				a.last = e
			}
		}
		keys := make([]entity.StockKey, 0, len(byKey))
		for k := range byKey {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
		out = make([]repository.LedgerTotal, 0, len(keys))
		for _, k := range keys {
			a := byKey[k]
			a.total.LastBalance = a.last.Balance
			out = append(out, a.total)
		}
		return nil
	})
	return out, nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo libro de movimientos sobre la tabla stock_ledger. Solo INSERT y SELECT:
// la tabla tiene un trigger que rechaza UPDATE y DELETE.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, seq, product_id, warehouse_id, change, balance, source_type, source_id, created_at`

// Append inserta el asiento; seq lo asigna la secuencia BIGSERIAL.
func (r *LedgerRepo) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_ledger (id, product_id, warehouse_id, change, balance, source_type, source_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		entry.ID, entry.ProductID, entry.WarehouseID, entry.Change, entry.Balance,
		entry.SourceType, entry.SourceID, entry.CreatedAt,
	).Scan(&entry.Seq)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// List devuelve asientos del más reciente al más antiguo.
func (r *LedgerRepo) List(ctx context.Context, filter repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	for _, id := range []string{filter.ProductID, filter.WarehouseID, filter.SourceID} {
		if id != "" && !validID(id) {
			return []*entity.LedgerEntry{}, nil
		}
	}
	if filter.ProductID != "" {
		add("product_id = $%d", filter.ProductID)
	}
	if filter.WarehouseID != "" {
		add("warehouse_id = $%d", filter.WarehouseID)
	}
	if filter.SourceType != "" {
		add("source_type = $%d", filter.SourceType)
	}
	if filter.SourceID != "" {
		add("source_id = $%d", filter.SourceID)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at < $%d", *filter.To)
	}

	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, seq DESC"
	query, args = withPage(query, args, filter.Limit, filter.Offset)
	return r.query(ctx, query, args...)
}

// ListByPair devuelve los asientos de un par en orden de aplicación.
func (r *LedgerRepo) ListByPair(ctx context.Context, productID, warehouseID string) ([]*entity.LedgerEntry, error) {
	if !validID(productID) || !validID(warehouseID) {
		return []*entity.LedgerEntry{}, nil
	}
	query := `SELECT ` + ledgerColumns + `
		FROM stock_ledger
		WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY created_at, seq`
	return r.query(ctx, query, productID, warehouseID)
}

// Totals suma los cambios por par y toma el saldo del último asiento.
func (r *LedgerRepo) Totals(ctx context.Context) ([]repository.LedgerTotal, error) {
	query := `
		SELECT product_id, warehouse_id, SUM(change), COUNT(*),
		       (ARRAY_AGG(balance ORDER BY created_at DESC, seq DESC))[1]
		FROM stock_ledger
		GROUP BY product_id, warehouse_id
		ORDER BY product_id, warehouse_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ledger totals: %w", err)
	}
	defer rows.Close()
	list := make([]repository.LedgerTotal, 0)
	for rows.Next() {
		var t repository.LedgerTotal
		if err := rows.Scan(&t.ProductID, &t.WarehouseID, &t.SumChange, &t.Entries, &t.LastBalance); err != nil {
			return nil, fmt.Errorf("scan ledger total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *LedgerRepo) query(ctx context.Context, query string, args ...any) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.LedgerEntry, 0)
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Seq, &e.ProductID, &e.WarehouseID, &e.Change, &e.Balance,
			&e.SourceType, &e.SourceID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountProducts: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountLowStock(ctx context.Context) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM stock s
	JOIN products p ON p.id = s.product_id
	WHERE s.quantity < p.low_stock_threshold`

	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountLowStock: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountDocuments(ctx context.Context, kind entity.DocumentKind, status entity.DocumentStatus) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE kind = $1 AND status = $2`,
		string(kind), string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountDocuments: %w", err)
	}
	return n, nil
}

// CountValidatedBetween cuenta documentos done con validated_at en [from, to).
func (r *AnalyticsRepo) CountValidatedBetween(ctx context.Context, kind entity.DocumentKind, from, to time.Time) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM documents
	WHERE kind = $1
	  AND status = 'done'
	  AND validated_at >= $2
	  AND validated_at <  $3`

	var n int
	if err := r.q.QueryRow(ctx, query, string(kind), from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountValidatedBetween: %w", err)
	}
	return n, nil
}

// InventoryComposition suma el stock por categoría. Los productos sin categoría van a "Uncategorized".
func (r *AnalyticsRepo) InventoryComposition(ctx context.Context) ([]repository.CategoryQuantity, error) {
	const query = `
	SELECT
	    COALESCE(c.name, 'Uncategorized') AS category_name,
	    SUM(s.quantity)                   AS total_quantity
	FROM stock s
	JOIN products p        ON p.id = s.product_id
	LEFT JOIN categories c ON c.id = p.category_id
	GROUP BY COALESCE(c.name, 'Uncategorized')
	HAVING SUM(s.quantity) > 0
	ORDER BY total_quantity DESC, category_name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.InventoryComposition: %w", err)
	}
	defer rows.Close()

	out := make([]repository.CategoryQuantity, 0)
	for rows.Next() {
		var cq repository.CategoryQuantity
		if err := rows.Scan(&cq.CategoryName, &cq.TotalQuantity); err != nil {
			return nil, fmt.Errorf("analytics.InventoryComposition scan: %w", err)
		}
		out = append(out, cq)
	}
	return out, rows.Err()
}

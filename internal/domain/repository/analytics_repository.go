package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CategoryQuantity cantidad total en stock agrupada por categoría.
type CategoryQuantity struct {
	CategoryName  string // "Uncategorized" si el producto no tiene categoría
	TotalQuantity decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	CountProducts(ctx context.Context) (int, error)

	// CountLowStock cuenta las líneas de stock con quantity < low_stock_threshold.
	CountLowStock(ctx context.Context) (int, error)

	// CountDocuments cuenta documentos de un tipo en un estado.
	CountDocuments(ctx context.Context, kind entity.DocumentKind, status entity.DocumentStatus) (int, error)

	// CountValidatedBetween cuenta documentos validados (done) con validated_at en [from, to).
	CountValidatedBetween(ctx context.Context, kind entity.DocumentKind, from, to time.Time) (int, error)

	// InventoryComposition suma el stock por categoría, solo grupos con total > 0, mayor primero.
	InventoryComposition(ctx context.Context) ([]CategoryQuantity, error)
}

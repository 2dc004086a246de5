package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

type fakeAnalytics struct {
	products  int
	low       int
	docs      map[entity.DocumentKind]map[entity.DocumentStatus]int
	validated map[string]int // kind + "|" + YYYY-MM
	groups    []repository.CategoryQuantity
	err       error
}

func (f *fakeAnalytics) CountProducts(context.Context) (int, error) { return f.products, f.err }
func (f *fakeAnalytics) CountLowStock(context.Context) (int, error) { return f.low, nil }

func (f *fakeAnalytics) CountDocuments(_ context.Context, kind entity.DocumentKind, status entity.DocumentStatus) (int, error) {
	return f.docs[kind][status], nil
}

func (f *fakeAnalytics) CountValidatedBetween(_ context.Context, kind entity.DocumentKind, from, _ time.Time) (int, error) {
	return f.validated[string(kind)+"|"+from.Format("2006-01")], nil
}

func (f *fakeAnalytics) InventoryComposition(context.Context) ([]repository.CategoryQuantity, error) {
	return f.groups, nil
}

func TestSummary_CountsPendingByKind(t *testing.T) {
	repo := &fakeAnalytics{
		products: 12,
		low:      3,
		docs: map[entity.DocumentKind]map[entity.DocumentStatus]int{
			entity.DocumentKindReceipt:  {entity.StatusDraft: 2, entity.StatusWaiting: 1, entity.StatusDone: 9},
			entity.DocumentKindDelivery: {entity.StatusReady: 4, entity.StatusCancelled: 5},
			entity.DocumentKindTransfer: {entity.StatusDraft: 1},
		},
	}
	uc := NewDashboardUseCase(repo)

	out, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, out.TotalProducts)
	assert.Equal(t, 3, out.LowStockItems)
	assert.Equal(t, 3, out.PendingReceipts)
	assert.Equal(t, 4, out.PendingDeliveries)
	assert.Equal(t, 1, out.PendingTransfers)
}

func TestSummary_PropagatesError(t *testing.T) {
	uc := NewDashboardUseCase(&fakeAnalytics{err: errors.New("db caída")})
	_, err := uc.Summary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db caída")
}

func TestOperationsOverview_SixMonthsOldestFirst(t *testing.T) {
	repo := &fakeAnalytics{validated: map[string]int{
		"receipt|2026-03":  7,
		"delivery|2026-03": 2,
		"delivery|2025-10": 1,
	}}
	uc := NewDashboardUseCase(repo)
	uc.now = func() time.Time { return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC) }

	out, err := uc.OperationsOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 6)
	assert.Equal(t, "Octubre 2025", out[0].Period)
	assert.Equal(t, 1, out[0].Deliveries)
	assert.Equal(t, "Marzo 2026", out[5].Period)
	assert.Equal(t, 7, out[5].Receipts)
	assert.Equal(t, 2, out[5].Deliveries)
}

func TestInventoryComposition(t *testing.T) {
	repo := &fakeAnalytics{groups: []repository.CategoryQuantity{
		{CategoryName: "Ferretería", TotalQuantity: decimal.NewFromInt(40)},
		{CategoryName: "Uncategorized", TotalQuantity: decimal.NewFromInt(5)},
	}}
	out, err := NewDashboardUseCase(repo).InventoryComposition(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Ferretería", out[0].Name)
	assert.True(t, out[0].Value.Equal(decimal.NewFromInt(40)))
}

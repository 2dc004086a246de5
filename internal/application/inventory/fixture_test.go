package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/infrastructure/memory"
)

// recordingPublisher guarda los asientos publicados.
type recordingPublisher struct {
	mu      sync.Mutex
	entries []*entity.LedgerEntry
}

func (p *recordingPublisher) Publish(_ context.Context, entries []*entity.LedgerEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entries...)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// fixture arma los casos de uso sobre el almacenamiento en memoria.
type fixture struct {
	ctx         context.Context
	store       *memory.Store
	engine      *inventory.MovementEngine
	docs        *inventory.DocumentUseCase
	workflow    *inventory.DocumentWorkflow
	adjustments *inventory.AdjustmentUseCase
	query       *inventory.StockQueryUseCase
	publisher   *recordingPublisher
}

func newFixture() *fixture {
	store := memory.New()
	engine := inventory.NewMovementEngine()
	pub := &recordingPublisher{}
	nop := zerolog.Nop()
	return &fixture{
		ctx:         context.Background(),
		store:       store,
		engine:      engine,
		docs:        inventory.NewDocumentUseCase(store, store.Documents(), store.Products(), store.Warehouses()),
		workflow:    inventory.NewDocumentWorkflow(store, engine, inventory.NewLocalLocker(), pub, nop),
		adjustments: inventory.NewAdjustmentUseCase(store, engine, store.Adjustments(), store.Products(), store.Warehouses(), pub, nop),
		query:       inventory.NewStockQueryUseCase(store, store.Stock(), store.Ledger()),
		publisher:   pub,
	}
}

func (f *fixture) addProduct(sku string, threshold int) (string, error) {
	now := time.Now().UTC()
	p := &entity.Product{
		ID: uuid.New().String(), SKU: sku, Name: sku, Unit: "pcs",
		LowStockThreshold: threshold, CreatedAt: now, UpdatedAt: now,
	}
	return p.ID, f.store.Products().Create(f.ctx, p)
}

func (f *fixture) addWarehouse(name string) (string, error) {
	now := time.Now().UTC()
	w := &entity.Warehouse{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	return w.ID, f.store.Warehouses().Create(f.ctx, w)
}

func lines(productID string, qty int64) []dto.DocumentLineRequest {
	return []dto.DocumentLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(qty)}}
}

// receive crea y valida una recepción de una línea.
func (f *fixture) receive(productID, warehouseID string, qty int64) (*inventory.ValidationResult, error) {
	doc, err := f.docs.CreateReceipt(f.ctx, "tester", dto.CreateReceiptRequest{
		Supplier: "Proveedor", WarehouseID: warehouseID, Lines: lines(productID, qty),
	})
	if err != nil {
		return nil, err
	}
	return f.workflow.Validate(f.ctx, entity.DocumentKindReceipt, doc.ID)
}

func (f *fixture) stockOf(productID, warehouseID string) (decimal.Decimal, error) {
	s, err := f.store.Stock().Get(f.ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Quantity, nil
}

func (f *fixture) ledgerOf(productID, warehouseID string) ([]*entity.LedgerEntry, error) {
	return f.store.Ledger().ListByPair(f.ctx, productID, warehouseID)
}

// Variantes con require para los tests unitarios.

func mustProduct(t *testing.T, f *fixture, sku string, threshold int) string {
	t.Helper()
	id, err := f.addProduct(sku, threshold)
	require.NoError(t, err)
	return id
}

func mustWarehouse(t *testing.T, f *fixture, name string) string {
	t.Helper()
	id, err := f.addWarehouse(name)
	require.NoError(t, err)
	return id
}

func mustReceive(t *testing.T, f *fixture, productID, warehouseID string, qty int64) {
	t.Helper()
	_, err := f.receive(productID, warehouseID, qty)
	require.NoError(t, err)
}

func mustStock(t *testing.T, f *fixture, productID, warehouseID string) decimal.Decimal {
	t.Helper()
	q, err := f.stockOf(productID, warehouseID)
	require.NoError(t, err)
	return q
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

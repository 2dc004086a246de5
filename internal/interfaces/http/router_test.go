package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/stock-movements-api/internal/application/analytics"
	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/application/usecase"
	"github.com/jhoicas/stock-movements-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stock-movements-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stock-movements-api/pkg/jwt"
)

type testServer struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newTestServer(t *testing.T, role string) *testServer {
	t.Helper()
	store := memory.New()
	engine := inventory.NewMovementEngine()
	nop := zerolog.Nop()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		WarehouseUC:   usecase.NewWarehouseUseCase(store.Warehouses()),
		CategoryUC:    usecase.NewCategoryUseCase(store.Categories()),
		ProductUC:     usecase.NewProductUseCase(store.Products(), store.Categories()),
		DocumentUC:    inventory.NewDocumentUseCase(store, store.Documents(), store.Products(), store.Warehouses()),
		Workflow:      inventory.NewDocumentWorkflow(store, engine, nil, nil, nop),
		AdjustmentUC:  inventory.NewAdjustmentUseCase(store, engine, store.Adjustments(), store.Products(), store.Warehouses(), nil, nop),
		StockQuery:    inventory.NewStockQueryUseCase(store, store.Stock(), store.Ledger()),
		Replenishment: inventory.NewReplenishmentUseCase(store.Levels()),
		DashboardUC:   appanalytics.NewDashboardUseCase(store.Analytics()),
		JWTSecret:     testJWTSecret,
	})

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return &testServer{t: t, app: app, token: "Bearer " + tok}
}

// call hace la petición y decodifica el cuerpo JSON (si hay) en out.
func (s *testServer) call(method, path string, body any, out any) int {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if s.token != "" {
		req.Header.Set("Authorization", s.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(s.t, err)
		if len(raw) > 0 {
			require.NoError(s.t, json.Unmarshal(raw, out), string(raw))
		}
	}
	return resp.StatusCode
}

func (s *testServer) create(path string, body any) string {
	s.t.Helper()
	var out map[string]any
	status := s.call(http.MethodPost, path, body, &out)
	require.Equal(s.t, http.StatusCreated, status, out)
	return out["id"].(string)
}

func TestDeliveryFlow_OverHTTP(t *testing.T) {
	s := newTestServer(t, pkgjwt.RoleBodeguero)
	admin := newTestServerSharing(t, s, pkgjwt.RoleAdmin)

	wh := admin.create("/api/warehouses", map[string]any{"name": "Central"})
	prod := s.create("/api/products", map[string]any{"sku": "A-1", "name": "Tornillo", "unit": "pcs", "low_stock_threshold": 5})

	receipt := s.create("/api/receipts", map[string]any{
		"supplier": "ACME", "warehouse_id": wh,
		"lines": []map[string]any{{"product_id": prod, "quantity": "10"}},
	})
	var validated map[string]any
	require.Equal(t, http.StatusOK, s.call(http.MethodPost, "/api/receipts/"+receipt+"/validate", nil, &validated))
	assert.Equal(t, "done", validated["document"].(map[string]any)["status"])

	delivery := s.create("/api/deliveries", map[string]any{
		"customer": "Cliente", "warehouse_id": wh,
		"lines": []map[string]any{{"product_id": prod, "quantity": "15"}},
	})
	var errBody map[string]any
	assert.Equal(t, http.StatusConflict, s.call(http.MethodPost, "/api/deliveries/"+delivery+"/validate", nil, &errBody))
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody["code"])

	var stock map[string]any
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/stock?warehouse_id="+wh, nil, &stock))
	items := stock["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "10", items[0].(map[string]any)["quantity"])

	var report map[string]any
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/ledger/reconcile", nil, &report))
	assert.Equal(t, true, report["consistent"])
}

func TestValidateTwice_ReturnsInvalidTransition(t *testing.T) {
	s := newTestServer(t, pkgjwt.RoleAdmin)
	wh := s.create("/api/warehouses", map[string]any{"name": "Central"})
	prod := s.create("/api/products", map[string]any{"sku": "B-1", "name": "Tuerca", "unit": "pcs"})
	receipt := s.create("/api/receipts", map[string]any{
		"supplier": "ACME", "warehouse_id": wh,
		"lines": []map[string]any{{"product_id": prod, "quantity": "1"}},
	})

	require.Equal(t, http.StatusOK, s.call(http.MethodPost, "/api/receipts/"+receipt+"/validate", nil, nil))
	var errBody map[string]any
	assert.Equal(t, http.StatusConflict, s.call(http.MethodPost, "/api/receipts/"+receipt+"/validate", nil, &errBody))
	assert.Equal(t, "INVALID_TRANSITION", errBody["code"])
}

func TestEmptyDocument_ReturnsBadRequest(t *testing.T) {
	s := newTestServer(t, pkgjwt.RoleAdmin)
	wh := s.create("/api/warehouses", map[string]any{"name": "Central"})
	receipt := s.create("/api/receipts", map[string]any{"supplier": "ACME", "warehouse_id": wh})

	var errBody map[string]any
	assert.Equal(t, http.StatusBadRequest, s.call(http.MethodPost, "/api/receipts/"+receipt+"/validate", nil, &errBody))
	assert.Equal(t, "EMPTY_DOCUMENT", errBody["code"])
}

func TestDocumentKindIsolation(t *testing.T) {
	s := newTestServer(t, pkgjwt.RoleAdmin)
	wh := s.create("/api/warehouses", map[string]any{"name": "Central"})
	receipt := s.create("/api/receipts", map[string]any{"supplier": "ACME", "warehouse_id": wh})

	assert.Equal(t, http.StatusNotFound, s.call(http.MethodGet, "/api/deliveries/"+receipt, nil, nil))
	assert.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/receipts/"+receipt, nil, nil))
}

func TestTransferSameWarehouse_ReturnsValidation(t *testing.T) {
	s := newTestServer(t, pkgjwt.RoleAdmin)
	wh := s.create("/api/warehouses", map[string]any{"name": "Central"})

	var errBody map[string]any
	status := s.call(http.MethodPost, "/api/transfers", map[string]any{
		"from_warehouse_id": wh, "to_warehouse_id": wh,
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody["code"])
}

func TestAdjustment_OverHTTP(t *testing.T) {
	s := newTestServer(t, pkgjwt.RoleAdmin)
	wh := s.create("/api/warehouses", map[string]any{"name": "Central"})
	prod := s.create("/api/products", map[string]any{"sku": "C-1", "name": "Arandela", "unit": "pcs", "low_stock_threshold": 10})

	var adj map[string]any
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/adjustments", map[string]any{
		"warehouse_id": wh, "product_id": prod, "counted_quantity": "4", "reason": "conteo",
	}, &adj))
	entry := adj["entry"].(map[string]any)
	assert.Equal(t, "4", entry["change"])
	assert.Equal(t, "Adjustment", entry["source_type"])

	var low map[string]any
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/stock/low", nil, &low))
	assert.EqualValues(t, 1, low["total"])

	var summary map[string]any
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/dashboard/summary", nil, &summary))
	assert.EqualValues(t, 1, summary["total_products"])
	assert.EqualValues(t, 1, summary["low_stock_items"])
}

func TestUnknownProduct_ReturnsNotFound(t *testing.T) {
	s := newTestServer(t, pkgjwt.RoleAdmin)
	var errBody map[string]any
	assert.Equal(t, http.StatusNotFound, s.call(http.MethodGet, "/api/products/no-existe", nil, &errBody))
	assert.Equal(t, "NOT_FOUND", errBody["code"])
}

// newTestServerSharing reutiliza la app de base con un token de otro rol.
func newTestServerSharing(t *testing.T, base *testServer, role string) *testServer {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return &testServer{t: t, app: base.app, token: "Bearer " + tok}
}

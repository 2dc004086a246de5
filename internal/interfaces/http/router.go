package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/stock-movements-api/internal/application/analytics"
	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/application/usecase"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC   *usecase.WarehouseUseCase
	CategoryUC    *usecase.CategoryUseCase
	ProductUC     *usecase.ProductUseCase
	DocumentUC    *inventory.DocumentUseCase
	Workflow      *inventory.DocumentWorkflow
	AdjustmentUC  *inventory.AdjustmentUseCase
	StockQuery    *inventory.StockQueryUseCase
	Replenishment *inventory.ReplenishmentUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token). Lectura: cualquier rol; escritura: admin o bodeguero.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	write := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)
	adminOnly := RequireRole(jwt.RoleAdmin)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", write, categoryHandler.Create)
	categories.Put("/:id", write, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", write, productHandler.Create)
	products.Put("/:id", write, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Stock y libro (solo lectura)
	stockHandler := NewStockHandler(deps.StockQuery, deps.Replenishment)
	protected.Get("/stock", stockHandler.ListStock)
	protected.Get("/stock/low", stockHandler.LowStock)
	protected.Get("/ledger", stockHandler.ListLedger)
	protected.Get("/ledger/reconcile", stockHandler.Reconcile)

	// Documentos: misma forma de rutas para los tres tipos
	documentRoutes := map[string]entity.DocumentKind{
		"/receipts":   entity.DocumentKindReceipt,
		"/deliveries": entity.DocumentKindDelivery,
		"/transfers":  entity.DocumentKindTransfer,
	}
	for prefix, kind := range documentRoutes {
		h := NewDocumentHandler(kind, deps.DocumentUC, deps.Workflow)
		g := protected.Group(prefix)
		g.Get("/", h.List)
		g.Get("/:id", h.Get)
		g.Post("/", write, h.Create)
		g.Delete("/:id", write, h.Delete)
		g.Post("/:id/lines", write, h.AddLine)
		g.Put("/:id/lines/:lineId", write, h.UpdateLine)
		g.Delete("/:id/lines/:lineId", write, h.DeleteLine)
		g.Post("/:id/validate", write, h.Validate)
		g.Post("/:id/cancel", write, h.Cancel)
	}

	// Adjustments
	adjustments := protected.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Post("/", write, adjustmentHandler.Create)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/operations-overview", dashboardHandler.GetOperationsOverview)
	dashboard.Get("/inventory-composition", dashboardHandler.GetInventoryComposition)
}

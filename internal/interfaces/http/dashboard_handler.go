package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/stock-movements-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los KPIs del inventario.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_products, low_stock_items, pending_receipts,
// pending_deliveries, pending_transfers).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetOperationsOverview recepciones y entregas validadas en los últimos seis meses.
// GET /api/dashboard/operations-overview
func (h *DashboardHandler) GetOperationsOverview(c *fiber.Ctx) error {
	out, err := h.uc.OperationsOverview(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetInventoryComposition stock total por categoría.
// GET /api/dashboard/inventory-composition
func (h *DashboardHandler) GetInventoryComposition(c *fiber.Ctx) error {
	out, err := h.uc.InventoryComposition(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
)

// StockHandler consultas de stock, libro de movimientos y reposición (solo lectura).
type StockHandler struct {
	query         *inventory.StockQueryUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(query *inventory.StockQueryUseCase, replenishment *inventory.ReplenishmentUseCase) *StockHandler {
	return &StockHandler{query: query, replenishment: replenishment}
}

// ListStock godoc
// @Summary      Listar stock por producto y bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock [get]
func (h *StockHandler) ListStock(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.query.ListStock(c.UserContext(), repository.StockFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Líneas de stock bajo el umbral del producto
// @Description  Ordenadas por mayor déficit; incluye cantidad sugerida de pedido.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega. Vacío = todas."
// @Success      200  {array}  dto.LowStockDTO
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.replenishment.LowStock(c.UserContext(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}

// ListLedger godoc
// @Summary      Consultar el libro de movimientos
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Producto"
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        source_type   query  string  false  "Receipt, Delivery, TransferOut, TransferIn, Adjustment"
// @Param        source_id     query  string  false  "Documento o ajuste"
// @Param        from          query  string  false  "RFC3339, inclusivo"
// @Param        to            query  string  false  "RFC3339, exclusivo"
// @Success      200  {object}  dto.LedgerListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger [get]
func (h *StockHandler) ListLedger(c *fiber.Ctx) error {
	limit, offset := page(c)
	filter := repository.LedgerFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		SourceType:  c.Query("source_type"),
		SourceID:    c.Query("source_id"),
		Limit:       limit,
		Offset:      offset,
	}
	for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: key + " debe ser RFC3339"})
		}
		*dst = &t
	}
	out, err := h.query.ListLedger(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliar stock contra el libro
// @Description  Repite el libro por par (producto, bodega) y compara con el stock actual.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconciliationReportDTO
// @Router       /api/ledger/reconcile [get]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.query.Reconcile(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
)

// DocumentHandler rutas de recepciones, entregas y traslados. Una instancia por tipo de documento.
type DocumentHandler struct {
	kind     entity.DocumentKind
	uc       *inventory.DocumentUseCase
	workflow *inventory.DocumentWorkflow
}

// NewDocumentHandler construye el handler para un tipo de documento.
func NewDocumentHandler(kind entity.DocumentKind, uc *inventory.DocumentUseCase, workflow *inventory.DocumentWorkflow) *DocumentHandler {
	return &DocumentHandler{kind: kind, uc: uc, workflow: workflow}
}

// Create godoc
// @Summary      Crear documento en borrador
// @Description  POST /api/receipts (dto.CreateReceiptRequest), /api/deliveries (dto.CreateDeliveryRequest)
// @Description  o /api/transfers (dto.CreateTransferRequest).
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	ctx, userID := c.UserContext(), GetUserID(c)
	var (
		out *dto.DocumentResponse
		err error
	)
	switch h.kind {
	case entity.DocumentKindReceipt:
		var in dto.CreateReceiptRequest
		if e := bind(c, &in); e != nil {
			return c.Status(fiber.StatusBadRequest).JSON(e)
		}
		out, err = h.uc.CreateReceipt(ctx, userID, in)
	case entity.DocumentKindDelivery:
		var in dto.CreateDeliveryRequest
		if e := bind(c, &in); e != nil {
			return c.Status(fiber.StatusBadRequest).JSON(e)
		}
		out, err = h.uc.CreateDelivery(ctx, userID, in)
	default:
		var in dto.CreateTransferRequest
		if e := bind(c, &in); e != nil {
			return c.Status(fiber.StatusBadRequest).JSON(e)
		}
		out, err = h.uc.CreateTransfer(ctx, userID, in)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener documento con sus líneas
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), h.kind, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft, waiting, ready, done, cancelled"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/receipts [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), h.kind, c.Query("status"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un documento en borrador.
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), h.kind, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddLine godoc
// @Summary      Agregar línea a un borrador
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del documento"
// @Param        body  body  dto.DocumentLineRequest  true  "Producto y cantidad"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/lines [post]
func (h *DocumentHandler) AddLine(c *fiber.Ctx) error {
	var in dto.DocumentLineRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.AddLine(c.UserContext(), h.kind, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLine cambia la cantidad de una línea.
func (h *DocumentHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateDocumentLineRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.UpdateLine(c.UserContext(), h.kind, c.Params("id"), c.Params("lineId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteLine quita una línea.
func (h *DocumentHandler) DeleteLine(c *fiber.Ctx) error {
	if err := h.uc.DeleteLine(c.UserContext(), h.kind, c.Params("id"), c.Params("lineId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Validate godoc
// @Summary      Validar documento (draft -> done)
// @Description  Aplica los movimientos de stock de todas las líneas en una sola transacción.
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.ValidationResponse
// @Failure      400  {object}  dto.ErrorResponse  "EMPTY_DOCUMENT"
// @Failure      409  {object}  dto.ErrorResponse  "INVALID_TRANSITION, INSUFFICIENT_STOCK o CONFLICT"
// @Router       /api/receipts/{id}/validate [post]
func (h *DocumentHandler) Validate(c *fiber.Ctx) error {
	res, err := h.workflow.Validate(c.UserContext(), h.kind, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToValidationResponse(res))
}

// Cancel godoc
// @Summary      Cancelar borrador
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/cancel [post]
func (h *DocumentHandler) Cancel(c *fiber.Ctx) error {
	doc, err := h.workflow.Cancel(c.UserContext(), h.kind, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToDocumentResponse(doc))
}

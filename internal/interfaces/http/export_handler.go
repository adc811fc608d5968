package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/export"
)

// ExportHandler dispara las exportaciones bajo demanda; el archivo queda en el destino configurado.
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Products godoc
// @Summary      Exportar catálogo a CSV
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.ExportResultDTO
// @Router       /api/exports/products [post]
func (h *ExportHandler) Products(c *fiber.Ctx) error {
	out, err := h.uc.ExportProducts(c.UserContext(), productFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Exportar historial de movimientos a CSV
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.ExportResultDTO
// @Router       /api/exports/movements [post]
func (h *ExportHandler) Movements(c *fiber.Ctx) error {
	in, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "", "parámetros de consulta inválidos")
	}
	out, err := h.uc.ExportMovements(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// InventoryPDF godoc
// @Summary      Exportar reporte de inventario a PDF
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.ExportResultDTO
// @Router       /api/exports/inventory-pdf [post]
func (h *ExportHandler) InventoryPDF(c *fiber.Ctx) error {
	out, err := h.uc.ExportInventoryPDF(c.UserContext(), productFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/reports"
)

// ReportHandler reportes derivados (solo lectura, recalculados en cada petición).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Inventory godoc
// @Summary      Resumen del inventario
// @Tags         reports
// @Produce      json
// @Param        hazard    query  string  false  "Niveles separados por coma"
// @Param        category  query  string  false  "Categorías separadas por coma"
// @Param        q         query  string  false  "Texto de búsqueda"
// @Success      200  {object}  dto.InventorySummaryDTO
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.Inventory(c.UserContext(), productFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Stock por categoría
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.CategoryStockDTO
// @Router       /api/reports/categories [get]
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext(), productFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Hazards godoc
// @Summary      Stock por nivel de peligrosidad
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.HazardStockDTO
// @Router       /api/reports/hazards [get]
func (h *ReportHandler) Hazards(c *fiber.Ctx) error {
	out, err := h.uc.Hazards(c.UserContext(), productFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Productos bajo stock mínimo
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.StockAlertDTO
// @Router       /api/reports/alerts [get]
func (h *ReportHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(c.UserContext(), productFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Payables godoc
// @Summary      Cuentas por pagar por proveedor
// @Tags         reports
// @Produce      json
// @Param        from      query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to        query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        supplier  query  string  false  "Texto en el proveedor"
// @Success      200  {object}  dto.PayablesReportDTO
// @Router       /api/reports/payables [get]
func (h *ReportHandler) Payables(c *fiber.Ctx) error {
	in, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "", "parámetros de consulta inválidos")
	}
	out, err := h.uc.Payables(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Totales del historial filtrado
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.HistoryTotalsDTO
// @Router       /api/reports/history [get]
func (h *ReportHandler) History(c *fiber.Ctx) error {
	in, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "", "parámetros de consulta inválidos")
	}
	out, err := h.uc.History(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

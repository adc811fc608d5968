package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// MovementHandler maneja el libro de movimientos.
type MovementHandler struct {
	uc *inventory.RecordMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.RecordMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar movimiento (ingreso, consumo o ajuste)
// @Description  Aplica la regla de stock en una transacción. Sin "user", se registra el operador del token.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "", "cuerpo inválido")
	}
	out, err := h.uc.RecordMovement(c.UserContext(), inventory.MovementInput{
		RecordMovementRequest: in,
		DefaultUser:           GetOperator(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de movimientos (más reciente primero)
// @Tags         movements
// @Produce      json
// @Param        from            query  string  false  "Desde (YYYY-MM-DD, inclusivo)"
// @Param        to              query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        product_id      query  int     false  "Producto"
// @Param        kind            query  string  false  "receipt | consumption | adjustment"
// @Param        payment_status  query  string  false  "paid | owed"
// @Param        supplier        query  string  false  "Texto en el proveedor"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	in, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "", "parámetros de consulta inválidos")
	}
	out, err := h.uc.ListMovements(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func movementFilter(c *fiber.Ctx) (dto.MovementFilterRequest, error) {
	var in dto.MovementFilterRequest
	err := c.QueryParser(&in)
	return in, err
}

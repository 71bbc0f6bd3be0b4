package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
)

// SaleHandler ventas.
type SaleHandler struct {
	uc *sales.CompleteSaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.CompleteSaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Completar venta
// @Description  Valida existencias, cobra con los billetes entregados, entrega el cambio y
// @Description  descuenta inventario en una sola transacción. La notificación a cocina es
// @Description  posterior; si falla se informa en kitchen_notice sin revertir la venta.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompleteSaleRequest  true  "Líneas y billetes entregados"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse  "Pago insuficiente"
// @Failure      409   {object}  dto.ErrorResponse  "Stock o cambio insuficiente"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CompleteSaleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

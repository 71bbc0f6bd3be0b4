package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
)

// ComboHandler combos y su cotización.
type ComboHandler struct {
	uc *usecase.ComboUseCase
}

// NewComboHandler construye el handler.
func NewComboHandler(uc *usecase.ComboUseCase) *ComboHandler {
	return &ComboHandler{uc: uc}
}

// Create godoc
// @Summary      Crear combo
// @Tags         combos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateComboRequest  true  "Datos del combo"
// @Success      201   {object}  dto.ComboResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/combos [post]
func (h *ComboHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateComboRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar combos
// @Tags         combos
// @Produce      json
// @Success      200  {array}  dto.ComboResponse
// @Router       /api/combos [get]
func (h *ComboHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener combo
// @Tags         combos
// @Produce      json
// @Param        id   path  string  true  "ID del combo"
// @Success      200  {object}  dto.ComboResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/combos/{id} [get]
func (h *ComboHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar combo
// @Tags         combos
// @Param        id   path  string  true  "ID del combo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/combos/{id} [delete]
func (h *ComboHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Price godoc
// @Summary      Cotizar combo
// @Description  Sin selecciones se cotiza con los productos por defecto de cada casilla.
// @Tags         combos
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del combo"
// @Param        body  body  dto.ComboPriceRequest  false  "Selecciones"
// @Success      200   {object}  dto.ComboPriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/combos/{id}/price [post]
func (h *ComboHandler) Price(c *fiber.Ctx) error {
	var in dto.ComboPriceRequest
	if len(c.Body()) > 0 {
		if ok, err := bind(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.Price(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DefaultSelections godoc
// @Summary      Selección por defecto del combo
// @Tags         combos
// @Produce      json
// @Param        id   path  string  true  "ID del combo"
// @Success      200  {array}  dto.ComboSelectionDTO
// @Router       /api/combos/{id}/default-selections [get]
func (h *ComboHandler) DefaultSelections(c *fiber.Ctx) error {
	out, err := h.uc.DefaultSelections(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

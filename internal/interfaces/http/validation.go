package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
)

var validate = validator.New()

// bind decodifica el cuerpo JSON y valida las etiquetas `validate`.
// Si falla ya escribió la respuesta 400 y devuelve false.
func bind(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, invalidBody(c)
	}
	return check(c, out)
}

func check(c *fiber.Ctx, in interface{}) (bool, error) {
	err := validate.Struct(in)
	if err == nil {
		return true, nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return false, invalidBody(c)
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos",
		Details: validationDetails(ve),
	})
}

func validationDetails(ve validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Namespace()] = fe.Tag()
	}
	return out
}

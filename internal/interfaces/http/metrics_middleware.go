package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestObserver recibe la duración y el estado de cada petición.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, elapsed time.Duration)
}

// MetricsMiddleware mide las peticiones usando la plantilla de ruta (no la URL)
// como etiqueta, para acotar la cardinalidad.
func MetricsMiddleware(obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		obs.ObserveRequest(c.Route().Path, c.Method(), status, time.Since(start))
		return err
	}
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestObserver recibe una observación por petición (lo implementa metrics.Prometheus).
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RequestLogger registra cada petición con zerolog y la reporta a obs (puede ser nil).
// La ruta se toma del patrón registrado para no disparar la cardinalidad con IDs.
func RequestLogger(log zerolog.Logger, obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if obs != nil {
			obs.ObserveRequest(c.Method(), route, status, elapsed)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return err
	}
}

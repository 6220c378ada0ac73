package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
)

// RequireVertical devuelve un middleware Fiber que habilita el grupo solo para las
// verticales indicadas (ej. promociones y fidelización solo en supermercado).
//
// Comportamiento:
//   - 403 Forbidden → la vertical del negocio no tiene el tablero.
func RequireVertical(profile entity.BusinessProfile, verticals ...entity.Vertical) fiber.Handler {
	enabled := false
	for _, v := range verticals {
		if v == profile.Vertical {
			enabled = true
			break
		}
	}
	return func(c *fiber.Ctx) error {
		if !enabled {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "VERTICAL_DISABLED",
				Message: "función no disponible para la vertical " + string(profile.Vertical),
			})
		}
		return c.Next()
	}
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/application/promotion"
)

// PromotionHandler maneja el catálogo de promociones.
type PromotionHandler struct {
	catalog *promotion.Catalog
	now     func() time.Time
}

// NewPromotionHandler construye el handler.
func NewPromotionHandler(catalog *promotion.Catalog) *PromotionHandler {
	return &PromotionHandler{catalog: catalog, now: time.Now}
}

// List godoc
// @Summary      Listar promociones (más reciente primero)
// @Tags         promotions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PromotionResponse
// @Router       /api/promotions [get]
func (h *PromotionHandler) List(c *fiber.Ctx) error {
	now := h.now()
	promos := h.catalog.List()
	out := make([]dto.PromotionResponse, 0, len(promos))
	for _, p := range promos {
		out = append(out, dto.PromotionFromEntity(p, p.ActiveAt(now)))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear promoción porcentual
// @Tags         promotions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PromotionRequest  true  "Promoción"
// @Success      201   {object}  dto.PromotionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/promotions [post]
func (h *PromotionHandler) Create(c *fiber.Ctx) error {
	var in dto.PromotionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.catalog.Add(c.Context(), in.ToEntity())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PromotionFromEntity(p, p.ActiveAt(h.now())))
}

// Delete godoc
// @Summary      Eliminar promoción
// @Tags         promotions
// @Security     Bearer
// @Param        id   path  string  true  "ID de la promoción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/promotions/{id} [delete]
func (h *PromotionHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Remove(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/application/loyalty"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
)

// LoyaltyHandler maneja los miembros del programa de puntos.
type LoyaltyHandler struct {
	registry *loyalty.Registry
}

// NewLoyaltyHandler construye el handler.
func NewLoyaltyHandler(registry *loyalty.Registry) *LoyaltyHandler {
	return &LoyaltyHandler{registry: registry}
}

// List godoc
// @Summary      Listar o buscar miembros
// @Description  q filtra por subcadena del nombre o teléfono exacto.
// @Tags         loyalty
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "nombre o teléfono"
// @Success      200  {array}  dto.MemberResponse
// @Router       /api/loyalty/members [get]
func (h *LoyaltyHandler) List(c *fiber.Ctx) error {
	var members []entity.LoyaltyMember
	if q := c.Query("q"); q != "" {
		members = h.registry.Find(q)
	} else {
		members = h.registry.List()
	}
	out := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.MemberFromEntity(m))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar miembro
// @Tags         loyalty
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MemberRequest  true  "name, phone"
// @Success      201   {object}  dto.MemberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/loyalty/members [post]
func (h *LoyaltyHandler) Create(c *fiber.Ctx) error {
	var in dto.MemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.registry.Add(c.Context(), in.Name, in.Phone)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MemberFromEntity(m))
}

// GetByID godoc
// @Summary      Obtener miembro
// @Tags         loyalty
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del miembro"
// @Success      200  {object}  dto.MemberResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loyalty/members/{id} [get]
func (h *LoyaltyHandler) GetByID(c *fiber.Ctx) error {
	m, ok := h.registry.GetByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "miembro no encontrado"})
	}
	return c.JSON(dto.MemberFromEntity(m))
}

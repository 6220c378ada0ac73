package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
)

// ShipmentHandler consulta de envíos (solo con el backend de logística store).
type ShipmentHandler struct {
	lister ports.ShipmentLister
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(lister ports.ShipmentLister) *ShipmentHandler {
	return &ShipmentHandler{lister: lister}
}

// List godoc
// @Summary      Envíos registrados (más reciente primero)
// @Tags         logistics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ShipmentDTO
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	list, err := h.lister.ListShipments(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ShipmentDTO, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ShipmentDTO{
			ID:                  s.ID,
			CustomerName:        s.CustomerName,
			Destination:         s.Destination,
			EstimatedDelivery:   s.EstimatedDelivery,
			SourceTransactionID: s.SourceTransactionID,
			Status:              s.Status,
			CreatedAt:           s.CreatedAt,
		})
	}
	return c.JSON(out)
}

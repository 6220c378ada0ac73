package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/application/inventory"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
)

// InventoryHandler maneja el catálogo de artículos y la lista de reposición (protegido).
type InventoryHandler struct {
	ledger        *inventory.Ledger
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, replenishment: replenishment}
}

func itemResponses(items []entity.InventoryItem) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemFromEntity(it))
	}
	return out
}

// List godoc
// @Summary      Listar artículos
// @Description  sellable=true devuelve solo los artículos con stock positivo (catálogo del POS).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sellable  query  bool  false  "solo vendibles"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	if c.QueryBool("sellable") {
		return c.JSON(itemResponses(h.ledger.Sellable()))
	}
	return c.JSON(itemResponses(h.ledger.List()))
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	it, ok := h.ledger.GetByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	}
	return c.JSON(dto.ItemFromEntity(it))
}

// Create godoc
// @Summary      Crear artículo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	it, err := h.ledger.Add(c.Context(), in.ToEntity())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ItemFromEntity(it))
}

// CreateBulk godoc
// @Summary      Crear artículos en lote (todo o nada)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.ItemRequest  true  "Artículos"
// @Success      201   {array}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/bulk [post]
func (h *InventoryHandler) CreateBulk(c *fiber.Ctx) error {
	var in []dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	items := make([]entity.InventoryItem, 0, len(in))
	for _, r := range in {
		items = append(items, r.ToEntity())
	}
	added, err := h.ledger.AddBulk(c.Context(), items)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(itemResponses(added))
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del artículo"
// @Param        body  body  dto.ItemRequest  true  "Datos del artículo"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item := in.ToEntity()
	item.ID = c.Params("id")
	it, err := h.ledger.Update(c.Context(), item)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ItemFromEntity(it))
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Artículos con stock en o bajo su punto de reorden, con cantidad sugerida.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

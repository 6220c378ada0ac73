package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/application/pos"
	"github.com/jhoicas/nibso-dashboard/internal/domain"
)

// POSHandler maneja el carrito de la terminal del usuario autenticado.
type POSHandler struct {
	terminals *pos.Terminals
}

// NewPOSHandler construye el handler.
func NewPOSHandler(terminals *pos.Terminals) *POSHandler {
	return &POSHandler{terminals: terminals}
}

func (h *POSHandler) cart(c *fiber.Ctx) *pos.CartEngine {
	return h.terminals.Cart(GetUserID(c))
}

func cartResponse(e *pos.CartEngine) dto.CartResponse {
	v := e.View()
	return dto.CartFromTotals(v.Totals, v.Delivery, v.Member, v.Finalizing)
}

// respond devuelve el carrito actualizado o el error de la mutación.
func respond(c *fiber.Ctx, e *pos.CartEngine, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cartResponse(e))
}

// View godoc
// @Summary      Carrito actual con totales
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/pos/cart [get]
func (h *POSHandler) View(c *fiber.Ctx) error {
	return c.JSON(cartResponse(h.cart(c)))
}

// AddItem godoc
// @Summary      Agregar una unidad de un artículo
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddItemRequest  true  "item_id"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/cart/items [post]
func (h *POSHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	e := h.cart(c)
	return respond(c, e, e.AddItem(in.ItemID))
}

// SetQuantity godoc
// @Summary      Fijar cantidad de una línea (<= 0 la elimina)
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del artículo"
// @Param        body  body  dto.SetQuantityRequest  true  "quantity"
// @Success      200   {object}  dto.CartResponse
// @Router       /api/pos/cart/items/{id} [put]
func (h *POSHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	e := h.cart(c)
	return respond(c, e, e.SetQuantity(c.Params("id"), in.Quantity))
}

// RemoveItem godoc
// @Summary      Quitar una línea
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/pos/cart/items/{id} [delete]
func (h *POSHandler) RemoveItem(c *fiber.Ctx) error {
	e := h.cart(c)
	return respond(c, e, e.RemoveItem(c.Params("id")))
}

// SetDelivery godoc
// @Summary      Marcar la venta como domicilio
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeliveryRequest  true  "customer_name, address, fee"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pos/cart/delivery [put]
func (h *POSHandler) SetDelivery(c *fiber.Ctx) error {
	var in dto.DeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	e := h.cart(c)
	return respond(c, e, e.SetDelivery(in.ToEntity()))
}

// ClearDelivery godoc
// @Summary      Volver a venta en mostrador
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/pos/cart/delivery [delete]
func (h *POSHandler) ClearDelivery(c *fiber.Ctx) error {
	e := h.cart(c)
	return respond(c, e, e.SetDelivery(nil))
}

// AttachMember godoc
// @Summary      Asociar miembro de fidelización
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AttachMemberRequest  true  "member_id"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pos/cart/member [put]
func (h *POSHandler) AttachMember(c *fiber.Ctx) error {
	var in dto.AttachMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	e := h.cart(c)
	return respond(c, e, e.AttachMember(in.MemberID))
}

// DetachMember godoc
// @Summary      Quitar miembro de fidelización
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/pos/cart/member [delete]
func (h *POSHandler) DetachMember(c *fiber.Ctx) error {
	e := h.cart(c)
	return respond(c, e, e.DetachMember())
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/pos/cart [delete]
func (h *POSHandler) Clear(c *fiber.Ctx) error {
	e := h.cart(c)
	return respond(c, e, e.Clear())
}

// Finalize godoc
// @Summary      Cerrar la venta
// @Description  Un fallo parcial de algún ledger responde 207 con la venta y partial_error.
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.FinalizeResponse
// @Success      207  {object}  dto.FinalizeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/pos/cart/finalize [post]
func (h *POSHandler) Finalize(c *fiber.Ctx) error {
	res, err := h.cart(c).Finalize(c.Context())
	if res == nil {
		return writeError(c, err)
	}
	out := dto.FinalizeResponse{
		Sale:      dto.SaleFromEntity(res.Sale),
		Receipt:   res.Receipt.Message(),
		ReceiptOK: res.Receipt.OK(),
	}
	if res.Member != nil {
		m := dto.MemberFromEntity(*res.Member)
		out.Member = &m
	}
	status := fiber.StatusCreated
	if err != nil && errors.Is(err, domain.ErrPartialCommit) {
		status = fiber.StatusMultiStatus
		out.PartialError = err.Error()
	}
	return c.Status(status).JSON(out)
}

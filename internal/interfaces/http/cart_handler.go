package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/sales"
)

// CartHandler pedidos de la tienda web. La creación es pública; el resto es interno.
type CartHandler struct {
	uc *sales.CartUseCase
}

func NewCartHandler(uc *sales.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido web
// @Description  Precios tomados del catálogo; solo productos activos y visibles en web.
// @Tags         carritos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCartRequest  true  "Pedido"
// @Success      201   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/public/carritos [post]
func (h *CartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.CustomerName == "" {
		return validation(c, "customer_name es requerido")
	}
	if len(in.Items) == 0 {
		return validation(c, "el pedido debe tener al menos un ítem")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener carrito
// @Tags         carritos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/carritos/{id} [get]
func (h *CartHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "carrito no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar carritos
// @Tags         carritos
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendiente | completado | cancelado"
// @Success      200  {object}  dto.CartListResponse
// @Router       /api/carritos [get]
func (h *CartHandler) List(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.uc.List(c.UserContext(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Completar carrito
// @Description  Convierte el pedido en venta de la tienda indicada (mismas reglas de stock).
// @Tags         carritos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del carrito"
// @Param        body  body  dto.CheckoutCartRequest  true  "store_id, payment_method"
// @Success      200   {object}  dto.CartResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/carritos/{id}/completar [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutCartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.PaymentMethod == "" {
		return validation(c, "payment_method es requerido")
	}
	out, err := h.uc.Checkout(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar carrito
// @Tags         carritos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/carritos/{id}/cancelar [post]
func (h *CartHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/inventory"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// InventoryHandler maneja existencias por tienda, movimientos, mínimos y traslados.
type InventoryHandler struct {
	register      *inventory.RegisterMovementUseCase
	query         *inventory.QueryUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterMovementUseCase, query *inventory.QueryUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, query: query, replenishment: replenishment}
}

// StoreInventory godoc
// @Summary      Inventario de una tienda
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  true   "ID de la tienda"
// @Param        low       query  bool    false  "Solo filas con cantidad <= mínimo"
// @Success      200  {object}  dto.StoreInventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario [get]
func (h *InventoryHandler) StoreInventory(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	if storeID == "" {
		return validation(c, "store_id es requerido")
	}
	out, err := h.query.StoreInventory(c.UserContext(), storeID, c.QueryBool("low", false))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  ENTRADA (recalcula costo promedio), SALIDA o AJUSTE con signo. Usa bloqueo de fila.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductID == "" || in.StoreID == "" || in.Type == "" {
		return validation(c, "product_id, store_id y type son requeridos")
	}
	out, err := h.register.RegisterMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        store_id    query  string  false  "Tienda"
// @Param        product_id  query  string  false  "Producto"
// @Param        type        query  string  false  "Tipo de movimiento"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventario/movimientos [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	r, err := dateRange(c)
	if err != nil {
		return validation(c, "rango de fechas inválido")
	}
	p := page(c)
	out, err := h.query.Movements(c.UserContext(), repository.MovementFilter{
		StoreID:   c.Query("store_id"),
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		DateRange: r,
		Limit:     p.Limit,
		Offset:    p.Offset,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetMinimum godoc
// @Summary      Fijar stock mínimo
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.SetMinimumRequest  true  "producto, tienda y mínimo"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/minimo [put]
func (h *InventoryHandler) SetMinimum(c *fiber.Ctx) error {
	var in dto.SetMinimumRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductID == "" || in.StoreID == "" {
		return validation(c, "product_id y store_id son requeridos")
	}
	if in.MinQuantity.IsNegative() {
		return validation(c, "min_quantity no puede ser negativo")
	}
	if err := h.query.SetMinimum(c.UserContext(), in); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transfer godoc
// @Summary      Trasladar producto entre tiendas
// @Description  Dos movimientos TRASLADO con el mismo transaction_id en una sola transacción.
// @Tags         traslados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "Traslado"
// @Success      201   {object}  dto.MovementResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/traslados [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductID == "" || in.FromStoreID == "" || in.ToStoreID == "" {
		return validation(c, "product_id, from_store_id y to_store_id son requeridos")
	}
	if in.FromStoreID == in.ToStoreID {
		return validation(c, "las tiendas de origen y destino deben ser distintas")
	}
	out, err := h.register.TransferFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfers godoc
// @Summary      Listar traslados
// @Tags         traslados
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/traslados [get]
func (h *InventoryHandler) Transfers(c *fiber.Ctx) error {
	r, err := dateRange(c)
	if err != nil {
		return validation(c, "rango de fechas inválido")
	}
	p := page(c)
	out, err := h.query.Transfers(c.UserContext(), r, p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos en o por debajo del mínimo, priorizados por ventas de 90 días y margen.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  true  "ID de la tienda"
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/inventario/reposicion [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	if storeID == "" {
		return validation(c, "store_id es requerido")
	}
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), storeID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

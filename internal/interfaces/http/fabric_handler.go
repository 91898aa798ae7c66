package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/usecase"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// FabricHandler maneja telas y sus compras.
type FabricHandler struct {
	uc *usecase.FabricUseCase
}

// NewFabricHandler construye el handler.
func NewFabricHandler(uc *usecase.FabricUseCase) *FabricHandler {
	return &FabricHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tela
// @Tags         telas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFabricRequest  true  "Datos de la tela"
// @Success      201   {object}  dto.FabricResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "proveedor inexistente"
// @Router       /api/telas [post]
func (h *FabricHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFabricRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.SupplierID == "" || in.Name == "" {
		return validation(c, "supplier_id y name son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tela
// @Tags         telas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tela"
// @Success      200  {object}  dto.FabricResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/telas/{id} [get]
func (h *FabricHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "tela no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar telas
// @Tags         telas
// @Security     Bearer
// @Produce      json
// @Param        q            query  string  false  "Búsqueda por nombre"
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Success      200  {object}  dto.FabricListResponse
// @Router       /api/telas [get]
func (h *FabricHandler) List(c *fiber.Ctx) error {
	f := repository.FabricFilter{ListFilter: listFilter(c), SupplierID: c.Query("supplier_id")}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tela
// @Tags         telas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la tela"
// @Param        body  body  dto.UpdateFabricRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.FabricResponse
// @Router       /api/telas/{id} [patch]
func (h *FabricHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFabricRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "tela no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tela
// @Tags         telas
// @Security     Bearer
// @Param        id   path  string  true  "ID de la tela"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/telas/{id} [delete]
func (h *FabricHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Purchase godoc
// @Summary      Registrar compra de tela
// @Description  Suma kg al stock y recalcula el precio por kg con promedio ponderado.
// @Tags         telas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la tela"
// @Param        body  body  dto.FabricPurchaseRequest  true  "kg y precio por kg"
// @Success      200   {object}  dto.FabricResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/telas/{id}/compras [post]
func (h *FabricHandler) Purchase(c *fiber.Ctx) error {
	var in dto.FabricPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !in.Kg.IsPositive() {
		return validation(c, "kg debe ser mayor a cero")
	}
	out, err := h.uc.Purchase(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

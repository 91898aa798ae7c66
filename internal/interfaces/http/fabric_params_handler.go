package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/usecase"
)

// FabricParamsHandler maneja los parámetros técnicos de tela (ancho, gramaje, encogimiento).
type FabricParamsHandler struct {
	uc *usecase.FabricParamsUseCase
}

// NewFabricParamsHandler construye el handler.
func NewFabricParamsHandler(uc *usecase.FabricParamsUseCase) *FabricParamsHandler {
	return &FabricParamsHandler{uc: uc}
}

// Create godoc
// @Summary      Crear parámetros de tela
// @Description  Calcula rendimiento (m/kg) y ancho útil a partir de ancho, gramaje y encogimiento.
// @Tags         parametros-tela
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFabricParamsRequest  true  "Parámetros"
// @Success      201   {object}  dto.FabricParamsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/parametros-tela [post]
func (h *FabricParamsHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFabricParamsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.FabricID == "" {
		return validation(c, "fabric_id es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener parámetros de tela
// @Tags         parametros-tela
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.FabricParamsResponse
// @Router       /api/parametros-tela/{id} [get]
func (h *FabricParamsHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "parámetros no encontrados")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar parámetros de tela
// @Tags         parametros-tela
// @Security     Bearer
// @Produce      json
// @Param        fabric_id  query  string  false  "Filtrar por tela"
// @Success      200  {object}  dto.FabricParamsListResponse
// @Router       /api/parametros-tela [get]
func (h *FabricParamsHandler) List(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.uc.List(c.UserContext(), c.Query("fabric_id"), p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar parámetros de tela
// @Tags         parametros-tela
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID"
// @Param        body  body  dto.UpdateFabricParamsRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.FabricParamsResponse
// @Router       /api/parametros-tela/{id} [patch]
func (h *FabricParamsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFabricParamsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "parámetros no encontrados")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar parámetros de tela
// @Tags         parametros-tela
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/parametros-tela/{id} [delete]
func (h *FabricParamsHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

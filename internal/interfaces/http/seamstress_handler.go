package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/production"
	"github.com/jhoicas/textil-api/internal/application/usecase"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// SeamstressHandler maneja costureros (talleres externos) y sus trabajos.
type SeamstressHandler struct {
	uc   *usecase.SeamstressUseCase
	jobs *production.JobUseCase
}

// NewSeamstressHandler construye el handler.
func NewSeamstressHandler(uc *usecase.SeamstressUseCase, jobs *production.JobUseCase) *SeamstressHandler {
	return &SeamstressHandler{uc: uc, jobs: jobs}
}

// Create godoc
// @Summary      Crear costurero
// @Tags         costureros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSeamstressRequest  true  "Datos del costurero"
// @Success      201   {object}  dto.SeamstressResponse
// @Router       /api/costureros [post]
func (h *SeamstressHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSeamstressRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return validation(c, "name es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener costurero
// @Tags         costureros
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del costurero"
// @Success      200  {object}  dto.SeamstressResponse
// @Router       /api/costureros/{id} [get]
func (h *SeamstressHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "costurero no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar costureros
// @Tags         costureros
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SeamstressListResponse
// @Router       /api/costureros [get]
func (h *SeamstressHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), listFilter(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar costurero
// @Tags         costureros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del costurero"
// @Param        body  body  dto.UpdateSeamstressRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SeamstressResponse
// @Router       /api/costureros/{id} [patch]
func (h *SeamstressHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSeamstressRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "costurero no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar costurero
// @Tags         costureros
// @Security     Bearer
// @Param        id   path  string  true  "ID del costurero"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "tiene trabajos"
// @Router       /api/costureros/{id} [delete]
func (h *SeamstressHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Jobs godoc
// @Summary      Trabajos de un costurero
// @Tags         costureros
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del costurero"
// @Param        status  query  string  false  "pendiente | completado | cancelado"
// @Success      200  {object}  dto.JobListResponse
// @Router       /api/costureros/{id}/trabajos [get]
func (h *SeamstressHandler) Jobs(c *fiber.Ctx) error {
	p := page(c)
	f := repository.JobFilter{Status: c.Query("status"), Limit: p.Limit, Offset: p.Offset}
	out, err := h.jobs.ListBySeamstress(c.UserContext(), c.Params("id"), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

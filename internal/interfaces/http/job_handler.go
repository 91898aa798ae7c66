package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/production"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// JobHandler maneja los trabajos de confección enviados a costureros.
type JobHandler struct {
	uc *production.JobUseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *production.JobUseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Create godoc
// @Summary      Enviar trabajo a costurero
// @Description  Descuenta la tela del stock y calcula las prendas esperadas según el rendimiento.
// @Tags         trabajos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobRequest  true  "Trabajo"
// @Success      201   {object}  dto.JobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "tela insuficiente"
// @Router       /api/trabajos [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.SeamstressID == "" || in.ParamsID == "" || in.ProductID == "" || in.StoreID == "" {
		return validation(c, "seamstress_id, params_id, product_id y store_id son requeridos")
	}
	if !in.FabricKg.IsPositive() {
		return validation(c, "fabric_kg debe ser mayor a cero")
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener trabajo
// @Tags         trabajos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del trabajo"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trabajos/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "trabajo no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar trabajos
// @Tags         trabajos
// @Security     Bearer
// @Produce      json
// @Param        status         query  string  false  "pendiente | completado | cancelado"
// @Param        seamstress_id  query  string  false  "Filtrar por costurero"
// @Param        from           query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to             query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.JobListResponse
// @Router       /api/trabajos [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	r, err := dateRange(c)
	if err != nil {
		return validation(c, "rango de fechas inválido")
	}
	p := page(c)
	out, err := h.uc.List(c.UserContext(), repository.JobFilter{
		Status:       c.Query("status"),
		SeamstressID: c.Query("seamstress_id"),
		DateRange:    r,
		Limit:        p.Limit,
		Offset:       p.Offset,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar trabajo pendiente
// @Tags         trabajos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del trabajo"
// @Param        body  body  dto.UpdateJobRequest  true  "notes, due_date"
// @Success      200   {object}  dto.JobResponse
// @Failure      409   {object}  dto.ErrorResponse  "no está pendiente"
// @Router       /api/trabajos/{id} [patch]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "trabajo no encontrado")
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Recibir prendas de un trabajo
// @Description  Liquida mano de obra, recalcula el costo del producto y suma stock a la tienda destino.
// @Tags         trabajos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del trabajo"
// @Param        body  body  dto.CompleteJobRequest  true  "received_pieces"
// @Success      200   {object}  dto.JobResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trabajos/{id}/completar [post]
func (h *JobHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteJobRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ReceivedPieces <= 0 {
		return validation(c, "received_pieces debe ser mayor a cero")
	}
	out, err := h.uc.Complete(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar trabajo
// @Description  Solo desde pendiente; devuelve la tela al stock.
// @Tags         trabajos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del trabajo"
// @Success      200  {object}  dto.JobResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/trabajos/{id}/cancelar [post]
func (h *JobHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

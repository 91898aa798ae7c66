package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/usecase"
)

// WebConfigHandler configuración de la tienda web y feed de catálogo.
type WebConfigHandler struct {
	uc      *usecase.WebConfigUseCase
	catalog *usecase.CatalogUseCase
}

func NewWebConfigHandler(uc *usecase.WebConfigUseCase, catalog *usecase.CatalogUseCase) *WebConfigHandler {
	return &WebConfigHandler{uc: uc, catalog: catalog}
}

// Get godoc
// @Summary      Configuración pública de la tienda web
// @Tags         config-web
// @Produce      json
// @Success      200  {object}  dto.WebConfigResponse
// @Router       /api/public/config-web [get]
func (h *WebConfigHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar configuración web
// @Tags         config-web
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WebConfigRequest  true  "Configuración"
// @Success      200   {object}  dto.WebConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/config-web [put]
func (h *WebConfigHandler) Save(c *fiber.Ctx) error {
	var in dto.WebConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Catalog godoc
// @Summary      Feed de catálogo (RSS 2.0 con namespace g:)
// @Tags         config-web
// @Produce      xml
// @Success      200  {string}  string
// @Router       /api/public/catalogo.xml [get]
func (h *WebConfigHandler) Catalog(c *fiber.Ctx) error {
	body, err := h.catalog.Feed(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	return c.Send(body)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain/entity"
)

// RestrictStore limita a un vendedor a su propia tienda en rutas filtradas por ?store_id=.
// Si el vendedor no envía store_id se completa con el del token; si envía otro, 403.
// Debe usarse DESPUÉS de AuthMiddleware. Otros roles pasan sin cambios.
func RestrictStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != entity.RoleVendedor {
			return c.Next()
		}
		own := GetStoreID(c)
		if own == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "NO_STORE",
				Message: "el usuario no tiene tienda asignada",
			})
		}
		requested := c.Query("store_id")
		if requested != "" && requested != own {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "solo puede consultar su propia tienda",
			})
		}
		if requested == "" {
			c.Request().URI().QueryArgs().Set("store_id", own)
		}
		return c.Next()
	}
}

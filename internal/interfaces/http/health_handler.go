package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/pkg/logger"
)

const healthTimeout = 2 * time.Second

// Pinger comprueba la conexión a la base (pgxpool.Pool lo cumple).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health responde el estado del servicio. El detalle del fallo solo va al log.
func Health(db Pinger, service string, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("health: base de datos no responde")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "db": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}

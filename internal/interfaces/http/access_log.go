package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/pkg/logger"
)

// AccessLog registra cada petición: método, ruta, status, latencia y usuario.
// 5xx va a nivel error con el error interno guardado por fail.
func AccessLog(log *logger.Logger) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// El ErrorHandler global escribe la respuesta; aquí solo se registra
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				return herr
			}
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
			if e, ok := c.Locals(LocalError).(error); ok {
				ev = ev.Err(e)
			} else if err != nil {
				ev = ev.Err(err)
			}
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}

package middlewares

import (
	"fmt"

	"sarpras_backend/internals/configs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware menangkap panic dan mengembalikan error 500
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log := configs.Logger()
			log.Error().
				Str("path", c.Path()).
				Str("method", c.Method()).
				Str("panic", fmt.Sprint(e)).
				Msg("panic recovered")
		},
	})
}

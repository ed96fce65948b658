package details

import (
	authRoute "sarpras_backend/internals/features/users/auth/route"
	authService "sarpras_backend/internals/features/users/auth/service"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, svc *authService.AuthService, protected fiber.Handler) {

	authRoute.AuthRoutes(app, svc, protected)

}

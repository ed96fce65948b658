// file: internals/features/users/auth/route/auth_route.go
package route

import (
	controller "sarpras_backend/internals/features/users/auth/controller"
	"sarpras_backend/internals/features/users/auth/service"
	rateLimiter "sarpras_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

// AuthRoutes: /api/auth. `protected` = middleware AuthJWT.
func AuthRoutes(app fiber.Router, svc *service.AuthService, protected fiber.Handler) {
	authController := controller.NewAuthController(svc)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)

	// 🔐 Protected
	baseAuth.Post("/logout", protected, authController.Logout)
	baseAuth.Get("/me", protected, authController.Me)
}

// file: internals/route/index.go
package routes

import (
	"time"

	"sarpras_backend/internals/configs"
	authService "sarpras_backend/internals/features/users/auth/service"
	authMiddleware "sarpras_backend/internals/middlewares/auth"
	routeDetails "sarpras_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, authSvc *authService.AuthService) {
	startTime = time.Now()
	log := configs.Logger()

	jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		BlacklistChecker:    authSvc.IsBlacklisted,
		AllowCookieFallback: true,
	})

	// ===================== BASE / AUTH =====================
	BaseRoutes(app, db)

	log.Info().Msg("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, authSvc, jwt)

	// ===================== GROUPS =====================

	// PRIVATE (operator sekolah)
	private := app.Group("/api/u", jwt)

	// ADMIN DINAS
	admin := app.Group("/api/a", jwt)

	// ===================== MOUNT ROUTES =====================
	pendataan := routeDetails.NewPendataanController(db)

	log.Info().Msg("[INFO] Mounting Pendataan routes...")
	routeDetails.PendataanUserRoutes(private, pendataan)
	routeDetails.PendataanAdminRoutes(admin, pendataan)
}

// internals/route/details/pendataan_routes.go
package details

import (
	"sarpras_backend/internals/configs"
	"sarpras_backend/internals/features/pendataan/controller"
	"sarpras_backend/internals/features/pendataan/repository"
	pendataanRoute "sarpras_backend/internals/features/pendataan/route"
	"sarpras_backend/internals/features/pendataan/service"
	helperOSS "sarpras_backend/internals/helpers/oss"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NewPendataanController: repo GORM + service + blob OSS (opsional).
func NewPendataanController(db *gorm.DB) *controller.PendataanController {
	svc := service.NewService(repository.NewGormRepository(db), configs.Now)

	var blob helperOSS.BlobService
	if b, err := helperOSS.NewOSSBlobServiceFromEnv(configs.GetEnv("ALI_OSS_PREFIX", "sarpras")); err == nil {
		blob = b
	} else {
		log := configs.Logger()
		log.Warn().Err(err).Msg("OSS tidak aktif, upload lampiran dimatikan")
	}
	return controller.NewPendataanController(svc, blob)
}

/* ===================== USER (OPERATOR SEKOLAH) ===================== */
func PendataanUserRoutes(r fiber.Router, ctrl *controller.PendataanController) {
	pendataanRoute.PendataanUserRoutes(r, ctrl)
}

/* ===================== ADMIN DINAS ===================== */
func PendataanAdminRoutes(r fiber.Router, ctrl *controller.PendataanController) {
	pendataanRoute.PendataanAdminRoutes(r, ctrl)
}

// file: internals/features/pendataan/route/pendataan_route.go
package route

import (
	"sarpras_backend/internals/constants"
	"sarpras_backend/internals/features/pendataan/controller"
	authMiddleware "sarpras_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// PendataanUserRoutes: wizard operator sekolah. Base: /api/u/pendataan
func PendataanUserRoutes(r fiber.Router, ctrl *controller.PendataanController) {
	g := r.Group("/pendataan",
		authMiddleware.OnlyRoles(constants.RoleErrorOperator("pendataan sarpras"), constants.OperatorOnly...),
	)

	g.Get("/profile", ctrl.GetProfile)
	g.Put("/profile", ctrl.SaveProfile)

	g.Get("/teachers", ctrl.GetTeachers)
	g.Put("/teachers", ctrl.SaveTeachers)

	g.Get("/students", ctrl.GetStudents)
	g.Put("/students", ctrl.SaveStudents)

	g.Get("/facilities", ctrl.GetFacilities)
	g.Put("/facilities", ctrl.SaveFacilities)

	g.Get("/infrastructure", ctrl.GetInfrastructure)
	g.Put("/infrastructure", ctrl.SaveInfrastructure)

	g.Get("/priority-needs", ctrl.GetPriorityNeeds)
	g.Put("/priority-needs", ctrl.SavePriorityNeeds)

	g.Get("/attachments", ctrl.GetAttachments)
	g.Put("/attachments", ctrl.SaveAttachments)
	g.Post("/attachments/upload", ctrl.UploadAttachment)
	g.Delete("/attachments/upload", ctrl.DeleteUploadedAttachment)

	g.Get("/completion", ctrl.GetCompletionStatus)
	g.Get("/review", ctrl.GetReviewData)
	g.Post("/submit", ctrl.Submit)
}

// PendataanAdminRoutes: verifikasi admin dinas. Base: /api/a/pendataan
func PendataanAdminRoutes(r fiber.Router, ctrl *controller.PendataanController) {
	g := r.Group("/pendataan",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("verifikasi pendataan"), constants.AdminOnly...),
	)

	g.Get("/dashboard", ctrl.Dashboard)
	g.Get("/schools", ctrl.ListSchools)
	g.Get("/schools/export", ctrl.Export)
	g.Get("/schools/:school_id", ctrl.GetSchoolReview)
	g.Post("/schools/:school_id/approve", ctrl.Approve)
	g.Post("/schools/:school_id/revision", ctrl.RequestRevision)
}

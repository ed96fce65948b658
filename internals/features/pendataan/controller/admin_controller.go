// file: internals/features/pendataan/controller/admin_controller.go
package controller

import (
	"fmt"

	"sarpras_backend/internals/configs"
	"sarpras_backend/internals/features/pendataan/dto"
	helper "sarpras_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (pc *PendataanController) listQuery(c *fiber.Ctx) (dto.ListSchoolQuery, helper.Paging, error) {
	var q dto.ListSchoolQuery
	if err := c.QueryParser(&q); err != nil {
		return q, helper.Paging{}, fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ResolvePaging(c, 20, 200)
	q.Limit, q.Offset = p.Limit, p.Offset
	return q, p, nil
}

// GET /api/a/pendataan/schools?status=&sub_district=&q=&page=&per_page=
func (pc *PendataanController) ListSchools(c *fiber.Ctx) error {
	q, p, err := pc.listQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	items, total, err := pc.Svc.ListSchools(c.UserContext(), helper.UserIDFromLocals(c), q)
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

// GET /api/a/pendataan/schools/:school_id
func (pc *PendataanController) GetSchoolReview(c *fiber.Ctx) error {
	schoolID, err := helper.ParseUUIDParam(c, "school_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	review, err := pc.Svc.GetSchoolReview(c.UserContext(), helper.UserIDFromLocals(c), schoolID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", review)
}

// POST /api/a/pendataan/schools/:school_id/approve
func (pc *PendataanController) Approve(c *fiber.Ctx) error {
	schoolID, err := helper.ParseUUIDParam(c, "school_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ApproveRequest
	if len(c.Body()) > 0 {
		if ok, err := pc.decode(c, &req); !ok {
			return err
		}
	}
	school, err := pc.Svc.ApproveSchool(c.UserContext(), helper.UserIDFromLocals(c), schoolID, req.Note)
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Data sekolah disetujui", school)
}

// POST /api/a/pendataan/schools/:school_id/revision
func (pc *PendataanController) RequestRevision(c *fiber.Ctx) error {
	schoolID, err := helper.ParseUUIDParam(c, "school_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.RevisionRequest
	if ok, err := pc.decode(c, &req); !ok {
		return err
	}
	school, err := pc.Svc.RequestRevision(c.UserContext(), helper.UserIDFromLocals(c), schoolID, req.Reason)
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Permintaan revisi dikirim ke sekolah", school)
}

// GET /api/a/pendataan/dashboard
func (pc *PendataanController) Dashboard(c *fiber.Ctx) error {
	stats, err := pc.Svc.GetDashboardStats(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", stats)
}

// GET /api/a/pendataan/schools/export (filter sama dengan list, tanpa paging)
func (pc *PendataanController) Export(c *fiber.Ctx) error {
	var q dto.ListSchoolQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	data, err := pc.Svc.ExportSchools(c.UserContext(), helper.UserIDFromLocals(c), q)
	if err != nil {
		return respondServiceError(c, err)
	}
	name := fmt.Sprintf("rekap-sarpras-%s.xlsx", configs.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Status(fiber.StatusOK).Send(data)
}

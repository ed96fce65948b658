// file: internals/features/pendataan/controller/wizard_controller.go
package controller

import (
	"sarpras_backend/internals/features/pendataan/dto"
	helper "sarpras_backend/internals/helpers"
	helperOSS "sarpras_backend/internals/helpers/oss"

	"github.com/gofiber/fiber/v2"
)

/* =========================================================
   Step 1: Profil
   ========================================================= */

// GET /api/u/pendataan/profile
func (pc *PendataanController) GetProfile(c *fiber.Ctx) error {
	form, err := pc.Svc.GetProfile(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", form)
}

// PUT /api/u/pendataan/profile
func (pc *PendataanController) SaveProfile(c *fiber.Ctx) error {
	var form dto.ProfileForm
	if ok, err := pc.decode(c, &form); !ok {
		return err
	}
	if err := pc.Svc.SaveProfile(c.UserContext(), helper.UserIDFromLocals(c), form); err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Profil sekolah berhasil disimpan", nil)
}

/* =========================================================
   Step 2 & 3: Guru, Siswa
   ========================================================= */

func (pc *PendataanController) GetTeachers(c *fiber.Ctx) error {
	form, err := pc.Svc.GetTeachers(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", form)
}

func (pc *PendataanController) SaveTeachers(c *fiber.Ctx) error {
	var form dto.TeacherForm
	if ok, err := pc.decode(c, &form); !ok {
		return err
	}
	if err := pc.Svc.SaveTeachers(c.UserContext(), helper.UserIDFromLocals(c), form); err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Data guru berhasil disimpan", nil)
}

func (pc *PendataanController) GetStudents(c *fiber.Ctx) error {
	form, err := pc.Svc.GetStudents(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", form)
}

func (pc *PendataanController) SaveStudents(c *fiber.Ctx) error {
	var form dto.StudentForm
	if ok, err := pc.decode(c, &form); !ok {
		return err
	}
	if err := pc.Svc.SaveStudents(c.UserContext(), helper.UserIDFromLocals(c), form); err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Data siswa berhasil disimpan", nil)
}

/* =========================================================
   Step 4 & 5: Ruang, Sarana
   ========================================================= */

func (pc *PendataanController) GetFacilities(c *fiber.Ctx) error {
	form, err := pc.Svc.GetFacilities(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", form)
}

func (pc *PendataanController) SaveFacilities(c *fiber.Ctx) error {
	var form dto.FacilityForm
	if ok, err := pc.decode(c, &form); !ok {
		return err
	}
	if err := pc.Svc.SaveFacilities(c.UserContext(), helper.UserIDFromLocals(c), form); err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Data ruang berhasil disimpan", nil)
}

func (pc *PendataanController) GetInfrastructure(c *fiber.Ctx) error {
	form, err := pc.Svc.GetInfrastructure(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", form)
}

func (pc *PendataanController) SaveInfrastructure(c *fiber.Ctx) error {
	var form dto.InfrastructureForm
	if ok, err := pc.decode(c, &form); !ok {
		return err
	}
	if err := pc.Svc.SaveInfrastructure(c.UserContext(), helper.UserIDFromLocals(c), form); err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Data sarana berhasil disimpan", nil)
}

/* =========================================================
   Step 6 & 7: Kebutuhan prioritas, Lampiran
   ========================================================= */

func (pc *PendataanController) GetPriorityNeeds(c *fiber.Ctx) error {
	form, err := pc.Svc.GetPriorityNeeds(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", form)
}

func (pc *PendataanController) SavePriorityNeeds(c *fiber.Ctx) error {
	var form dto.PriorityNeedForm
	if ok, err := pc.decode(c, &form); !ok {
		return err
	}
	if err := pc.Svc.SavePriorityNeeds(c.UserContext(), helper.UserIDFromLocals(c), form); err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Kebutuhan prioritas berhasil disimpan", nil)
}

func (pc *PendataanController) GetAttachments(c *fiber.Ctx) error {
	form, err := pc.Svc.GetAttachments(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", form)
}

func (pc *PendataanController) SaveAttachments(c *fiber.Ctx) error {
	var form dto.AttachmentForm
	if ok, err := pc.decode(c, &form); !ok {
		return err
	}
	if err := pc.Svc.SaveAttachments(c.UserContext(), helper.UserIDFromLocals(c), form); err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Lampiran berhasil disimpan", nil)
}

// POST /api/u/pendataan/attachments/upload (multipart: file)
// Hanya upload file; URL hasilnya dimasukkan ke list lampiran lewat SaveAttachments.
func (pc *PendataanController) UploadAttachment(c *fiber.Ctx) error {
	if pc.Blob == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Upload file belum dikonfigurasi")
	}
	fh, err := helperOSS.GetUploadFile(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if fh == nil {
		return helper.JsonValidationError(c, map[string][]string{"file": {"wajib diisi"}})
	}
	if _, err := helperOSS.CheckAttachment(fh); err != nil {
		return helper.FromFiberError(c, err)
	}

	schoolID, err := pc.Svc.AttachmentUploadTarget(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	url, key, ct, err := pc.Blob.UploadAttachment(c.UserContext(), schoolID, fh)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "File berhasil diunggah", dto.AttachmentUploadResponse{
		URL:         url,
		ObjectKey:   key,
		ContentType: ct,
		FileName:    fh.Filename,
	})
}

// DELETE /api/u/pendataan/attachments/upload  body: {"url": "..."}
// Hapus file yang sudah diunggah tapi batal dipakai. Hanya file di folder sekolah sendiri.
func (pc *PendataanController) DeleteUploadedAttachment(c *fiber.Ctx) error {
	if pc.Blob == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Upload file belum dikonfigurasi")
	}
	var req dto.AttachmentDeleteRequest
	if ok, err := pc.decode(c, &req); !ok {
		return err
	}
	schoolID, err := pc.Svc.AttachmentUploadTarget(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	if _, ok := pc.Blob.OwnedAttachmentKey(req.URL, schoolID); !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "File bukan milik sekolah ini")
	}
	if err := pc.Blob.DeleteByPublicURL(c.UserContext(), req.URL); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "File berhasil dihapus", fiber.Map{"url": req.URL})
}

/* =========================================================
   Step 8: Review & kirim
   ========================================================= */

// GET /api/u/pendataan/completion
func (pc *PendataanController) GetCompletionStatus(c *fiber.Ctx) error {
	st, err := pc.Svc.GetCompletionStatus(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", st)
}

// GET /api/u/pendataan/review
func (pc *PendataanController) GetReviewData(c *fiber.Ctx) error {
	data, err := pc.Svc.GetReviewData(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", data)
}

// POST /api/u/pendataan/submit
func (pc *PendataanController) Submit(c *fiber.Ctx) error {
	st, err := pc.Svc.SubmitForReview(c.UserContext(), helper.UserIDFromLocals(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Data berhasil dikirim untuk diverifikasi", st)
}

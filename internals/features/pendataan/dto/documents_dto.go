// file: internals/features/pendataan/dto/documents_dto.go
package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "sarpras_backend/internals/features/pendataan/model"
)

/* =========================================================
   Step 6: Kebutuhan prioritas (satu teks bebas)
   ========================================================= */

type PriorityNeedForm struct {
	Description string `json:"description" validate:"required,min=20,max=2000"`
}

func (r *PriorityNeedForm) Normalize() {
	r.Description = strings.TrimSpace(r.Description)
}

func (r *PriorityNeedForm) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r PriorityNeedForm) ToModels(schoolID uuid.UUID, academicYear string) []model.PriorityNeedModel {
	return []model.PriorityNeedModel{{
		PriorityNeedSchoolID:     schoolID,
		PriorityNeedCategory:     model.PriorityNeedCategory,
		PriorityNeedDescription:  r.Description,
		PriorityNeedAcademicYear: academicYear,
	}}
}

// Hanya baris pertama yang dipakai.
func PriorityNeedFormFromModels(rows []model.PriorityNeedModel) PriorityNeedForm {
	if len(rows) == 0 {
		return PriorityNeedForm{}
	}
	return PriorityNeedForm{Description: rows[0].PriorityNeedDescription}
}

/* =========================================================
   Step 7: Lampiran dokumen
   ========================================================= */

type AttachmentItem struct {
	DocumentName string `json:"document_name" validate:"required,max=160"`
	URL          string `json:"url" validate:"required,url,max=2048"`
	Note         string `json:"note" validate:"max=500"`
}

type AttachmentForm struct {
	Attachments []AttachmentItem `json:"attachments" validate:"max=30,dive"`
}

func (r *AttachmentForm) Normalize() {
	if r.Attachments == nil {
		r.Attachments = []AttachmentItem{}
	}
	for i := range r.Attachments {
		r.Attachments[i].DocumentName = strings.TrimSpace(r.Attachments[i].DocumentName)
		r.Attachments[i].URL = strings.TrimSpace(r.Attachments[i].URL)
		r.Attachments[i].Note = strings.TrimSpace(r.Attachments[i].Note)
	}
}

func (r *AttachmentForm) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r AttachmentForm) ToModels(schoolID uuid.UUID) []model.AttachmentModel {
	out := make([]model.AttachmentModel, 0, len(r.Attachments))
	for _, a := range r.Attachments {
		out = append(out, model.AttachmentModel{
			AttachmentSchoolID:     schoolID,
			AttachmentDocumentName: a.DocumentName,
			AttachmentURL:          a.URL,
			AttachmentNote:         a.Note,
		})
	}
	return out
}

func AttachmentFormFromModels(rows []model.AttachmentModel) AttachmentForm {
	out := AttachmentForm{Attachments: make([]AttachmentItem, 0, len(rows))}
	for _, row := range rows {
		out.Attachments = append(out.Attachments, AttachmentItem{
			DocumentName: row.AttachmentDocumentName,
			URL:          row.AttachmentURL,
			Note:         row.AttachmentNote,
		})
	}
	return out
}

/* =========================================================
   Upload lampiran (multipart) → URL publik
   ========================================================= */

type AttachmentUploadResponse struct {
	URL         string `json:"url"`
	ObjectKey   string `json:"object_key"`
	ContentType string `json:"content_type"`
	FileName    string `json:"file_name"`
}

type AttachmentDeleteRequest struct {
	URL string `json:"url" validate:"required,url,max=2048"`
}

func (r *AttachmentDeleteRequest) Normalize() { r.URL = strings.TrimSpace(r.URL) }

func (r *AttachmentDeleteRequest) Validate(v *validator.Validate) error { return v.Struct(r) }

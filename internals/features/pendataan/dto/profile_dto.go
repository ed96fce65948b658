// file: internals/features/pendataan/dto/profile_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "sarpras_backend/internals/features/pendataan/model"
)

/* =========================================================
   Step 1: Profil sekolah
   ========================================================= */

type ProfileForm struct {
	SchoolName     string `json:"school_name" validate:"required,max=160"`
	NPSN           string `json:"npsn" validate:"required,len=8,numeric"`
	HeadmasterName string `json:"headmaster_name" validate:"required,max=120"`
	HeadmasterNIP  string `json:"headmaster_nip" validate:"required,max=32"`
	Address        string `json:"address" validate:"required,max=500"`
	SubDistrict    string `json:"sub_district" validate:"required,max=80"`
}

func (r *ProfileForm) Normalize() {
	r.SchoolName = strings.TrimSpace(r.SchoolName)
	r.NPSN = strings.TrimSpace(r.NPSN)
	r.HeadmasterName = strings.TrimSpace(r.HeadmasterName)
	r.HeadmasterNIP = strings.TrimSpace(r.HeadmasterNIP)
	r.Address = strings.TrimSpace(r.Address)
	r.SubDistrict = strings.TrimSpace(r.SubDistrict)
}

func (r *ProfileForm) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r ProfileForm) ToProfile() model.SchoolProfile {
	return model.SchoolProfile{
		Name:           r.SchoolName,
		NPSN:           r.NPSN,
		HeadmasterName: r.HeadmasterName,
		HeadmasterNIP:  r.HeadmasterNIP,
		Address:        r.Address,
		SubDistrict:    r.SubDistrict,
	}
}

func ProfileFormFromModel(m *model.SchoolModel) ProfileForm {
	if m == nil {
		return ProfileForm{}
	}
	return ProfileForm{
		SchoolName:     m.SchoolName,
		NPSN:           m.SchoolNPSN,
		HeadmasterName: m.SchoolHeadmasterName,
		HeadmasterNIP:  m.SchoolHeadmasterNIP,
		Address:        m.SchoolAddress,
		SubDistrict:    m.SchoolSubDistrict,
	}
}

/* =========================================================
   Response: ringkasan sekolah
   ========================================================= */

type SchoolResponse struct {
	SchoolID       uuid.UUID          `json:"school_id"`
	NPSN           string             `json:"npsn"`
	SchoolName     string             `json:"school_name"`
	HeadmasterName string             `json:"headmaster_name"`
	SubDistrict    string             `json:"sub_district"`
	Status         model.SchoolStatus `json:"status"`
	ReviewNotes    *string            `json:"review_notes,omitempty"`
	SubmittedAt    *string            `json:"submitted_at,omitempty"`
	ReviewedAt     *string            `json:"reviewed_at,omitempty"`
	TotalTeachers  int64              `json:"total_teachers"`
	TotalStudents  int64              `json:"total_students"`
	UpdatedAt      string             `json:"updated_at"`
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func FromSchoolModel(m *model.SchoolModel) SchoolResponse {
	return SchoolResponse{
		SchoolID:       m.SchoolID,
		NPSN:           m.SchoolNPSN,
		SchoolName:     m.SchoolName,
		HeadmasterName: m.SchoolHeadmasterName,
		SubDistrict:    m.SchoolSubDistrict,
		Status:         m.SchoolStatus,
		ReviewNotes:    m.SchoolReviewNotes,
		SubmittedAt:    formatTimePtr(m.SchoolSubmittedAt),
		ReviewedAt:     formatTimePtr(m.SchoolReviewedAt),
		UpdatedAt:      m.SchoolUpdatedAt.Format(time.RFC3339),
	}
}

// FromSchoolModels: totals opsional (map kosong = 0).
func FromSchoolModels(list []model.SchoolModel, teachers, students map[uuid.UUID]int64) []SchoolResponse {
	out := make([]SchoolResponse, 0, len(list))
	for i := range list {
		r := FromSchoolModel(&list[i])
		r.TotalTeachers = teachers[list[i].SchoolID]
		r.TotalStudents = students[list[i].SchoolID]
		out = append(out, r)
	}
	return out
}

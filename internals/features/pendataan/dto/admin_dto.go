// file: internals/features/pendataan/dto/admin_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "sarpras_backend/internals/features/pendataan/model"
)

/* =========================================================
   Requests: review admin dinas
   ========================================================= */

type ApproveRequest struct {
	Note string `json:"note" validate:"max=2000"`
}

func (r *ApproveRequest) Normalize() { r.Note = strings.TrimSpace(r.Note) }

func (r *ApproveRequest) Validate(v *validator.Validate) error { return v.Struct(r) }

type RevisionRequest struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

func (r *RevisionRequest) Normalize() { r.Reason = strings.TrimSpace(r.Reason) }

func (r *RevisionRequest) Validate(v *validator.Validate) error { return v.Struct(r) }

/* =========================================================
   Query (list): filter/paging
   ========================================================= */

type ListSchoolQuery struct {
	Status      string `query:"status"`
	SubDistrict string `query:"sub_district"`
	Search      string `query:"q"`
	Limit       int    `query:"limit"`
	Offset      int    `query:"offset"`
}

func (q *ListSchoolQuery) Normalize() {
	q.Status = strings.ToUpper(strings.TrimSpace(q.Status))
	q.SubDistrict = strings.TrimSpace(q.SubDistrict)
	q.Search = strings.TrimSpace(q.Search)
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// ToFilter: status tak dikenal diabaikan (bukan error).
func (q ListSchoolQuery) ToFilter() model.SchoolFilter {
	f := model.SchoolFilter{
		SubDistrict: q.SubDistrict,
		Search:      q.Search,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
	if st := model.SchoolStatus(q.Status); st.Valid() {
		f.Status = &st
	}
	return f
}

/* =========================================================
   Response: riwayat status
   ========================================================= */

type StatusLogResponse struct {
	From      model.SchoolStatus `json:"from"`
	To        model.SchoolStatus `json:"to"`
	Note      *string            `json:"note,omitempty"`
	ActorID   uuid.UUID          `json:"actor_id"`
	Snapshot  json.RawMessage    `json:"snapshot,omitempty"`
	CreatedAt string             `json:"created_at"`
}

func FromStatusLogModels(list []model.SchoolStatusLogModel) []StatusLogResponse {
	out := make([]StatusLogResponse, 0, len(list))
	for _, m := range list {
		r := StatusLogResponse{
			From:      m.StatusLogFrom,
			To:        m.StatusLogTo,
			Note:      m.StatusLogNote,
			ActorID:   m.StatusLogActorID,
			CreatedAt: m.StatusLogCreatedAt.Format(time.RFC3339),
		}
		if len(m.StatusLogSnapshot) > 0 {
			r.Snapshot = json.RawMessage(m.StatusLogSnapshot)
		}
		out = append(out, r)
	}
	return out
}

/* =========================================================
   Response: dashboard
   ========================================================= */

type DashboardStats struct {
	AcademicYear       string                           `json:"academic_year"`
	AcademicYearRange  string                           `json:"academic_year_range"`
	TotalSchools       int64                            `json:"total_schools"`
	SchoolsByStatus    map[model.SchoolStatus]int64     `json:"schools_by_status"`
	TeachersByStatus   map[model.EmploymentStatus]int64 `json:"teachers_by_status"`
	StudentsByGrade    map[model.GradeLevel]int64       `json:"students_by_grade"`
	FacilityConditions []model.FacilityConditionTotal   `json:"facility_conditions"`
}

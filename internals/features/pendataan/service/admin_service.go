// file: internals/features/pendataan/service/admin_service.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sarpras_backend/internals/features/pendataan/dto"
	model "sarpras_backend/internals/features/pendataan/model"
)

// SchoolReview: data review + riwayat status (layar verifikasi admin dinas).
type SchoolReview struct {
	*ReviewData
	History []dto.StatusLogResponse `json:"history"`
}

func (s *Service) findSchool(ctx context.Context, schoolID uuid.UUID) (*model.SchoolModel, error) {
	school, err := s.repo.FindSchoolByID(ctx, schoolID)
	if err != nil {
		return nil, s.persistence("find_school_by_id", err)
	}
	if school == nil {
		return nil, ErrSchoolNotFound
	}
	return school, nil
}

/* =========================================================
   List sekolah (+ total guru & siswa tahun berjalan)
   ========================================================= */

func (s *Service) ListSchools(ctx context.Context, adminID string, q dto.ListSchoolQuery) ([]dto.SchoolResponse, int64, error) {
	if _, err := parseActorID(adminID); err != nil {
		return nil, 0, err
	}
	q.Normalize()
	schools, total, err := s.repo.ListSchools(ctx, q.ToFilter())
	if err != nil {
		return nil, 0, s.persistence("list_schools", err)
	}
	if len(schools) == 0 {
		return []dto.SchoolResponse{}, total, nil
	}

	ids := make([]uuid.UUID, 0, len(schools))
	for _, sc := range schools {
		ids = append(ids, sc.SchoolID)
	}
	year := AcademicYearBare(s.now())

	var teachers, students map[uuid.UUID]int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		teachers, err = s.repo.SumStaffBySchool(gctx, ids, year)
		return err
	})
	g.Go(func() (err error) {
		students, err = s.repo.SumEnrollmentBySchool(gctx, ids, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, s.persistence("sum_school_totals", err)
	}
	return dto.FromSchoolModels(schools, teachers, students), total, nil
}

/* =========================================================
   Review satu sekolah
   ========================================================= */

func (s *Service) GetSchoolReview(ctx context.Context, adminID string, schoolID uuid.UUID) (*SchoolReview, error) {
	if _, err := parseActorID(adminID); err != nil {
		return nil, err
	}
	school, err := s.findSchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	var (
		in   CompletionInput
		logs []model.SchoolStatusLogModel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in, err = s.loadInput(gctx, school)
		return err
	})
	g.Go(func() (err error) {
		logs, err = s.repo.ListStatusLogs(gctx, school.SchoolID)
		if err != nil {
			return s.persistence("list_status_logs", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SchoolReview{
		ReviewData: s.buildReviewData(in),
		History:    dto.FromStatusLogModels(logs),
	}, nil
}

/* =========================================================
   Approve / minta revisi
   ========================================================= */

// ApproveSchool: PENDING → APPROVED; note opsional disimpan sebagai review_notes.
func (s *Service) ApproveSchool(ctx context.Context, adminID string, schoolID uuid.UUID, note string) (*dto.SchoolResponse, error) {
	var notes *string
	if n := strings.TrimSpace(note); n != "" {
		notes = &n
	}
	return s.review(ctx, adminID, schoolID, ActionApprove, notes)
}

// RequestRevision: PENDING → REJECTED dengan alasan wajib. Sekolah bisa edit lalu kirim ulang.
func (s *Service) RequestRevision(ctx context.Context, adminID string, schoolID uuid.UUID, reason string) (*dto.SchoolResponse, error) {
	reason = strings.TrimSpace(reason)
	if _, err := parseActorID(adminID); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, newValidationFailure("reason", "Alasan revisi wajib diisi")
	}
	return s.review(ctx, adminID, schoolID, ActionRequestRevision, &reason)
}

func (s *Service) review(ctx context.Context, adminID string, schoolID uuid.UUID, action WorkflowAction, notes *string) (*dto.SchoolResponse, error) {
	actor, err := parseActorID(adminID)
	if err != nil {
		return nil, err
	}
	school, err := s.findSchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if _, err := NextStatus(school.SchoolStatus, action); err != nil {
		return nil, err
	}

	in, err := s.loadInput(ctx, school)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, actor, in, action, notes); err != nil {
		return nil, err
	}
	out := dto.FromSchoolModel(school)
	return &out, nil
}

/* =========================================================
   Dashboard dinas
   ========================================================= */

func (s *Service) GetDashboardStats(ctx context.Context, adminID string) (*dto.DashboardStats, error) {
	if _, err := parseActorID(adminID); err != nil {
		return nil, err
	}
	now := s.now()
	out := &dto.DashboardStats{
		AcademicYear:      AcademicYearBare(now),
		AcademicYearRange: AcademicYearRange(now),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.SchoolsByStatus, err = s.repo.CountSchoolsByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.TeachersByStatus, err = s.repo.SumStaffByEmployment(gctx, out.AcademicYear)
		return err
	})
	g.Go(func() (err error) {
		out.StudentsByGrade, err = s.repo.SumEnrollmentByGrade(gctx, out.AcademicYear)
		return err
	})
	g.Go(func() (err error) {
		out.FacilityConditions, err = s.repo.SumFacilityConditions(gctx, out.AcademicYearRange)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.persistence("dashboard_stats", err)
	}

	// Status yang belum punya sekolah tetap tampil dengan 0.
	byStatus := make(map[model.SchoolStatus]int64, 4)
	for _, st := range []model.SchoolStatus{model.StatusDraft, model.StatusPending, model.StatusApproved, model.StatusRejected} {
		byStatus[st] = out.SchoolsByStatus[st]
		out.TotalSchools += out.SchoolsByStatus[st]
	}
	out.SchoolsByStatus = byStatus
	if out.FacilityConditions == nil {
		out.FacilityConditions = []model.FacilityConditionTotal{}
	}
	return out, nil
}

// file: internals/features/pendataan/service/review.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sarpras_backend/internals/features/pendataan/dto"
	model "sarpras_backend/internals/features/pendataan/model"
)

// ReviewData: semua data wizard + status kelengkapan (halaman review / step 8).
type ReviewData struct {
	School            dto.SchoolResponse     `json:"school"`
	AcademicYear      string                 `json:"academic_year"`
	AcademicYearRange string                 `json:"academic_year_range"`
	Profile           dto.ProfileForm        `json:"profile"`
	Teachers          dto.TeacherForm        `json:"teachers"`
	Students          dto.StudentForm        `json:"students"`
	Facilities        dto.FacilityForm       `json:"facilities"`
	Infrastructure    dto.InfrastructureForm `json:"infrastructure"`
	PriorityNeeds     dto.PriorityNeedForm   `json:"priority_needs"`
	Attachments       dto.AttachmentForm     `json:"attachments"`
	Completion        CompletionStatus       `json:"completion"`
}

// loadInput: baca paralel semua data step untuk satu sekolah.
func (s *Service) loadInput(ctx context.Context, school *model.SchoolModel) (CompletionInput, error) {
	now := s.now()
	bare, rng := AcademicYearBare(now), AcademicYearRange(now)
	id := school.SchoolID

	in := CompletionInput{School: school}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Staff, err = s.repo.ListStaffCounts(gctx, id, bare)
		return err
	})
	g.Go(func() (err error) {
		in.Enrollments, err = s.repo.ListEnrollmentCounts(gctx, id, bare)
		return err
	})
	g.Go(func() (err error) {
		in.Facilities, err = s.repo.ListFacilities(gctx, id, rng)
		return err
	})
	g.Go(func() (err error) {
		in.Infrastructure, err = s.repo.ListInfrastructure(gctx, id, rng)
		return err
	})
	g.Go(func() (err error) {
		in.PriorityNeeds, err = s.repo.ListPriorityNeeds(gctx, id, rng)
		return err
	})
	g.Go(func() (err error) {
		in.Attachments, err = s.repo.ListAttachments(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return CompletionInput{}, s.persistence("load_school_data", err)
	}
	return in, nil
}

func (s *Service) buildReviewData(in CompletionInput) *ReviewData {
	now := s.now()
	school := dto.FromSchoolModel(in.School)
	teachers := dto.TeacherFormFromModels(in.Staff)
	students := dto.StudentFormFromModels(in.Enrollments)
	school.TotalTeachers = int64(teachers.Total())
	school.TotalStudents = int64(students.Total())

	return &ReviewData{
		School:            school,
		AcademicYear:      AcademicYearBare(now),
		AcademicYearRange: AcademicYearRange(now),
		Profile:           dto.ProfileFormFromModel(in.School),
		Teachers:          teachers,
		Students:          students,
		Facilities:        dto.FacilityFormFromModels(in.Facilities),
		Infrastructure:    dto.InfrastructureFormFromModels(in.Infrastructure),
		PriorityNeeds:     dto.PriorityNeedFormFromModels(in.PriorityNeeds),
		Attachments:       dto.AttachmentFormFromModels(in.Attachments),
		Completion:        EvaluateCompletion(in),
	}
}

/* =========================================================
   Status kelengkapan / review / submit (operator sekolah)
   ========================================================= */

func (s *Service) GetCompletionStatus(ctx context.Context, userID string) (CompletionStatus, error) {
	school, err := s.schoolOf(ctx, userID)
	if err != nil {
		return CompletionStatus{}, err
	}
	in, err := s.loadInput(ctx, school)
	if err != nil {
		return CompletionStatus{}, err
	}
	return EvaluateCompletion(in), nil
}

func (s *Service) GetReviewData(ctx context.Context, userID string) (*ReviewData, error) {
	school, err := s.schoolOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	in, err := s.loadInput(ctx, school)
	if err != nil {
		return nil, err
	}
	return s.buildReviewData(in), nil
}

// SubmitForReview: DRAFT/REJECTED → PENDING, hanya jika step 1-7 lengkap (dicek ulang di server).
func (s *Service) SubmitForReview(ctx context.Context, userID string) (CompletionStatus, error) {
	school, err := s.schoolOf(ctx, userID)
	if err != nil {
		return CompletionStatus{}, err
	}
	if _, err := NextStatus(school.SchoolStatus, ActionSubmit); err != nil {
		return CompletionStatus{}, err
	}

	in, err := s.loadInput(ctx, school)
	if err != nil {
		return CompletionStatus{}, err
	}
	completion := EvaluateCompletion(in)
	if !completion.PriorStepsComplete() {
		return completion, newValidationFailure("steps",
			fmt.Sprintf("Lengkapi langkah %s sebelum mengirim data", joinSteps(completion.IncompleteSteps())))
	}

	if err := s.transition(ctx, school.SchoolUserID, in, ActionSubmit, nil); err != nil {
		return completion, err
	}
	return EvaluateCompletion(in), nil
}

func joinSteps(steps []int) string {
	parts := make([]string, 0, len(steps))
	for _, n := range steps {
		parts = append(parts, fmt.Sprint(n))
	}
	return strings.Join(parts, ", ")
}

// transition menjalankan satu action workflow secara bersyarat (WHERE status = asal)
// dan memperbarui in.School kalau berhasil.
func (s *Service) transition(ctx context.Context, actorID uuid.UUID, in CompletionInput, action WorkflowAction, notes *string) error {
	school := in.School
	from := school.SchoolStatus
	to, err := NextStatus(from, action)
	if err != nil {
		return err
	}

	at := s.now()
	after := *school
	after.SchoolStatus = to
	after.SchoolReviewNotes = notes
	snapshotIn := in
	snapshotIn.School = &after
	snapshot, err := sonic.Marshal(EvaluateCompletion(snapshotIn))
	if err != nil {
		return s.persistence("snapshot_completion", err)
	}

	ok, err := s.repo.ChangeSchoolStatus(ctx, model.StatusChange{
		SchoolID:    school.SchoolID,
		From:        from,
		To:          to,
		ReviewNotes: notes,
		ActorID:     actorID,
		At:          at,
		Snapshot:    snapshot,
	})
	if err != nil {
		return s.persistence("change_status", err)
	}
	if !ok {
		return newValidationFailure("status", "Status data sudah berubah, silakan muat ulang halaman")
	}

	s.log.Info().
		Str("school_id", school.SchoolID.String()).
		Str("from", string(from)).
		Str("to", string(to)).
		Str("actor_id", actorID.String()).
		Msg("status sekolah berubah")

	school.SchoolStatus = to
	school.SchoolReviewNotes = notes
	switch action {
	case ActionSubmit:
		school.SchoolSubmittedAt = &at
	default:
		school.SchoolReviewedAt = &at
		school.SchoolReviewedBy = &actorID
	}
	return nil
}

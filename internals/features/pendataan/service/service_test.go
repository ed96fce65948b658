package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sarpras_backend/internals/features/pendataan/dto"
	model "sarpras_backend/internals/features/pendataan/model"
	"sarpras_backend/internals/features/pendataan/repository/repositorytest"
	"sarpras_backend/internals/features/pendataan/service"
)

var _ service.Repository = (*repositorytest.MemoryRepository)(nil)

var fixedNow = time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

var adminID = uuid.NewString()

type fixture struct {
	repo   *repositorytest.MemoryRepository
	svc    *service.Service
	school *model.SchoolModel
	userID string
	ctx    context.Context
}

func newFixture(t *testing.T, status model.SchoolStatus) *fixture {
	t.Helper()
	repo := repositorytest.NewMemoryRepository()
	userID := uuid.New()
	school := repo.AddSchool(model.SchoolModel{
		SchoolUserID: userID,
		SchoolName:   "SMP Negeri 1 Sukamaju",
		SchoolNPSN:   "20212345",
		SchoolStatus: status,
	})
	return &fixture{
		repo:   repo,
		svc:    service.NewService(repo, func() time.Time { return fixedNow }),
		school: school,
		userID: userID.String(),
		ctx:    context.Background(),
	}
}

func validProfile() dto.ProfileForm {
	return dto.ProfileForm{
		SchoolName:     "SMP Negeri 1 Sukamaju",
		NPSN:           "20212345",
		HeadmasterName: "Drs. Budi Santoso",
		HeadmasterNIP:  "196801011990031001",
		Address:        "Jl. Merdeka No. 1",
		SubDistrict:    "Sukamaju",
	}
}

// fillAll mengisi step 1-7 sampai lengkap.
func (f *fixture) fillAll(t *testing.T) {
	t.Helper()
	require.NoError(t, f.svc.SaveProfile(f.ctx, f.userID, validProfile()))
	require.NoError(t, f.svc.SaveTeachers(f.ctx, f.userID, dto.TeacherForm{PermanentMale: 4, HonoraryFemale: 3}))
	require.NoError(t, f.svc.SaveStudents(f.ctx, f.userID, dto.StudentForm{Grade7Male: 30, Grade8Female: 25}))
	require.NoError(t, f.svc.SaveFacilities(f.ctx, f.userID, dto.FacilityForm{Classroom: dto.ConditionCounts{Total: 9, Good: 7, Damaged: 2}}))
	require.NoError(t, f.svc.SaveInfrastructure(f.ctx, f.userID, dto.InfrastructureForm{StudentDesks: dto.ConditionCounts{Total: 270, Good: 250, Damaged: 20}}))
	require.NoError(t, f.svc.SavePriorityNeeds(f.ctx, f.userID, dto.PriorityNeedForm{Description: "Rehabilitasi dua ruang kelas yang atapnya rusak berat"}))
	require.NoError(t, f.svc.SaveAttachments(f.ctx, f.userID, dto.AttachmentForm{Attachments: []dto.AttachmentItem{
		{DocumentName: "Foto ruang kelas", URL: "https://cdn.example.id/kelas.webp"},
	}}))
}

func assertValidationFailure(t *testing.T, err error, field string) {
	t.Helper()
	var vf *service.ValidationFailure
	require.True(t, errors.As(err, &vf), "expected ValidationFailure, got %v", err)
	assert.Equal(t, field, vf.Field)
}

/* ===================== Tahun ajaran ===================== */

func TestAcademicYearFormats(t *testing.T) {
	assert.Equal(t, "2026/2027", service.AcademicYearRange(fixedNow))
	assert.Equal(t, "2026", service.AcademicYearBare(fixedNow))
}

func TestStepsUseTheirOwnYearFormat(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	f.fillAll(t)

	for _, r := range f.repo.Staff {
		assert.Equal(t, "2026", r.StaffCountAcademicYear)
	}
	for _, r := range f.repo.Enrollments {
		assert.Equal(t, "2026", r.EnrollmentCountAcademicYear)
	}
	for _, r := range f.repo.Facilities {
		assert.Equal(t, "2026/2027", r.FacilityAcademicYear)
	}
	for _, r := range f.repo.Infrastructure {
		assert.Equal(t, "2026/2027", r.InfrastructureAcademicYear)
	}
	for _, r := range f.repo.PriorityNeeds {
		assert.Equal(t, "2026/2027", r.PriorityNeedAcademicYear)
	}
}

/* ===================== Identitas & akses ===================== */

func TestUnauthorizedNeverTouchesRepository(t *testing.T) {
	f := newFixture(t, model.StatusDraft)

	_, err := f.svc.GetProfile(f.ctx, "")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	err = f.svc.SaveTeachers(f.ctx, "  ", dto.TeacherForm{})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = f.svc.SubmitForReview(f.ctx, "bukan-uuid")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = f.svc.ApproveSchool(f.ctx, "", f.school.SchoolID, "")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	assert.Equal(t, 0, f.repo.CallCount())
	assert.Equal(t, "Unauthorized", service.UserMessage(err))
}

func TestSchoolNotFound(t *testing.T) {
	f := newFixture(t, model.StatusDraft)

	_, err := f.svc.GetCompletionStatus(f.ctx, uuid.NewString())
	assert.ErrorIs(t, err, service.ErrSchoolNotFound)

	_, err = f.svc.GetSchoolReview(f.ctx, uuid.NewString(), uuid.New())
	assert.ErrorIs(t, err, service.ErrSchoolNotFound)
}

/* ===================== Simpan / baca per step ===================== */

func TestSaveAndLoadSteps(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	f.fillAll(t)

	profile, err := f.svc.GetProfile(f.ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, validProfile(), profile)

	teachers, err := f.svc.GetTeachers(f.ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 7, teachers.Total())
	assert.Len(t, f.repo.Staff, 6)

	students, err := f.svc.GetStudents(f.ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 55, students.Total())

	facilities, err := f.svc.GetFacilities(f.ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 9, facilities.Classroom.Total)
	assert.Len(t, f.repo.Facilities, 8)

	infra, err := f.svc.GetInfrastructure(f.ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 270, infra.StudentDesks.Total)

	needs, err := f.svc.GetPriorityNeeds(f.ctx, f.userID)
	require.NoError(t, err)
	assert.Contains(t, needs.Description, "Rehabilitasi")

	att, err := f.svc.GetAttachments(f.ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, att.Attachments, 1)
	assert.Equal(t, "Foto ruang kelas", att.Attachments[0].DocumentName)
}

func TestSaveReplacesPreviousRows(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	f.fillAll(t)

	require.NoError(t, f.svc.SaveTeachers(f.ctx, f.userID, dto.TeacherForm{ContractGovFemale: 1}))
	require.NoError(t, f.svc.SaveFacilities(f.ctx, f.userID, dto.FacilityForm{Library: dto.ConditionCounts{Total: 1, Good: 1}}))
	require.NoError(t, f.svc.SaveAttachments(f.ctx, f.userID, dto.AttachmentForm{}))

	teachers, err := f.svc.GetTeachers(f.ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, dto.TeacherForm{ContractGovFemale: 1}, teachers)
	assert.Len(t, f.repo.Staff, 6)
	assert.Len(t, f.repo.Facilities, 8)
	assert.Empty(t, f.repo.Attachments)
}

func TestSaveRejectsBrokenInvariants(t *testing.T) {
	f := newFixture(t, model.StatusDraft)

	p := validProfile()
	p.Address = "   "
	assertValidationFailure(t, f.svc.SaveProfile(f.ctx, f.userID, p), "profile")

	assertValidationFailure(t, f.svc.SaveTeachers(f.ctx, f.userID, dto.TeacherForm{HonoraryMale: -2}), "teachers")
	assertValidationFailure(t, f.svc.SaveStudents(f.ctx, f.userID, dto.StudentForm{Grade8Male: -1}), "students")

	err := f.svc.SaveInfrastructure(f.ctx, f.userID, dto.InfrastructureForm{Others: []dto.OtherInfrastructure{{Name: " ", Total: 1}}})
	assertValidationFailure(t, err, "others[0].name")
	err = f.svc.SaveInfrastructure(f.ctx, f.userID, dto.InfrastructureForm{Others: []dto.OtherInfrastructure{{Name: "Genset", Total: 0}}})
	assertValidationFailure(t, err, "others[0].total")

	assertValidationFailure(t, f.svc.SavePriorityNeeds(f.ctx, f.userID, dto.PriorityNeedForm{Description: "  "}), "description")

	err = f.svc.SaveAttachments(f.ctx, f.userID, dto.AttachmentForm{Attachments: []dto.AttachmentItem{{DocumentName: "SK"}}})
	assertValidationFailure(t, err, "attachments[0]")

	assert.Empty(t, f.repo.Staff)
	assert.Empty(t, f.repo.Infrastructure)
}

func TestSaveProfileRejectsDuplicateNPSN(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	f.repo.AddSchool(model.SchoolModel{SchoolUserID: uuid.New(), SchoolName: "SMP Lain", SchoolNPSN: "20219999"})

	p := validProfile()
	p.NPSN = "20219999"
	assertValidationFailure(t, f.svc.SaveProfile(f.ctx, f.userID, p), "npsn")
	assert.Equal(t, "20212345", f.repo.Schools[f.school.SchoolID].SchoolNPSN)

	// NPSN milik sendiri tetap boleh disimpan ulang
	require.NoError(t, f.svc.SaveProfile(f.ctx, f.userID, validProfile()))
}

func TestSavesLockedWhilePendingOrApproved(t *testing.T) {
	for _, st := range []model.SchoolStatus{model.StatusPending, model.StatusApproved} {
		t.Run(string(st), func(t *testing.T) {
			f := newFixture(t, st)

			assertValidationFailure(t, f.svc.SaveProfile(f.ctx, f.userID, validProfile()), "status")
			assertValidationFailure(t, f.svc.SaveFacilities(f.ctx, f.userID, dto.FacilityForm{}), "status")
			_, err := f.svc.AttachmentUploadTarget(f.ctx, f.userID)
			assertValidationFailure(t, err, "status")

			// baca tetap boleh
			_, err = f.svc.GetProfile(f.ctx, f.userID)
			assert.NoError(t, err)
		})
	}
}

func TestAttachmentUploadTarget(t *testing.T) {
	f := newFixture(t, model.StatusRejected)
	id, err := f.svc.AttachmentUploadTarget(f.ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, f.school.SchoolID, id)
}

/* ===================== Kelengkapan ===================== */

func TestCompletionEmptySchool(t *testing.T) {
	f := newFixture(t, model.StatusDraft)

	st, err := f.svc.GetCompletionStatus(f.ctx, f.userID)
	require.NoError(t, err)

	assert.False(t, st.Step1)
	assert.False(t, st.Step2)
	assert.False(t, st.Step7)
	assert.False(t, st.Step8)
	assert.Equal(t, model.StatusDraft, st.Status)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, st.IncompleteSteps())
}

func TestCompletionAllZeroCountsIsIncomplete(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	require.NoError(t, f.svc.SaveTeachers(f.ctx, f.userID, dto.TeacherForm{}))
	require.NoError(t, f.svc.SaveFacilities(f.ctx, f.userID, dto.FacilityForm{}))

	st, err := f.svc.GetCompletionStatus(f.ctx, f.userID)
	require.NoError(t, err)
	assert.False(t, st.Step2)
	assert.False(t, st.Step4)
}

// completeInput: step 1-7 lengkap, lampiran satu file.
func completeInput(status model.SchoolStatus) service.CompletionInput {
	p := validProfile()
	school := &model.SchoolModel{SchoolStatus: status}
	school.ApplyProfile(model.SchoolProfile{
		Name:           p.SchoolName,
		NPSN:           p.NPSN,
		HeadmasterName: p.HeadmasterName,
		HeadmasterNIP:  p.HeadmasterNIP,
		Address:        p.Address,
		SubDistrict:    p.SubDistrict,
	})

	facilities := make([]model.FacilityModel, 0, len(model.RequiredFacilityTypes))
	for _, typ := range model.RequiredFacilityTypes {
		facilities = append(facilities, model.FacilityModel{FacilityType: typ, FacilityTotal: 1, FacilityGood: 1})
	}

	return service.CompletionInput{
		School:         school,
		Staff:          []model.StaffCountModel{{StaffCountCount: 3}},
		Enrollments:    []model.EnrollmentCountModel{{EnrollmentCountStudents: 20}},
		Facilities:     facilities,
		Infrastructure: []model.InfrastructureModel{{InfrastructureType: model.InfraOther, InfrastructureTotal: 2}},
		PriorityNeeds:  []model.PriorityNeedModel{{PriorityNeedDescription: "Rehab atap"}},
		Attachments:    []model.AttachmentModel{{AttachmentDocumentName: "Foto", AttachmentURL: "https://cdn.example.id/a.webp"}},
	}
}

func TestEvaluateCompletionRules(t *testing.T) {
	cases := []struct {
		name   string
		status model.SchoolStatus
		mutate func(in *service.CompletionInput)
		step4  bool
		step7  bool
		prior  bool
		step8  bool
	}{
		{name: "lengkap masih DRAFT", status: model.StatusDraft, step4: true, step7: true, prior: true},
		{name: "lengkap PENDING", status: model.StatusPending, step4: true, step7: true, prior: true, step8: true},
		{name: "lengkap APPROVED", status: model.StatusApproved, step4: true, step7: true, prior: true},
		{name: "lengkap REJECTED", status: model.StatusRejected, step4: true, step7: true, prior: true},
		{
			name:   "PENDING tanpa lampiran",
			status: model.StatusPending,
			mutate: func(in *service.CompletionInput) { in.Attachments = nil },
			step4:  true,
			step7:  true,
			prior:  true,
			step8:  true,
		},
		{
			name:   "DRAFT tanpa lampiran",
			status: model.StatusDraft,
			mutate: func(in *service.CompletionInput) { in.Attachments = nil },
			step4:  true,
		},
		{
			name:   "sarana 7 dari 8 jenis",
			status: model.StatusDraft,
			mutate: func(in *service.CompletionInput) { in.Facilities = in.Facilities[:len(in.Facilities)-1] },
			step7:  true,
		},
		{
			name:   "sarana semua jenis tapi nol",
			status: model.StatusPending,
			mutate: func(in *service.CompletionInput) {
				for i := range in.Facilities {
					in.Facilities[i].FacilityTotal, in.Facilities[i].FacilityGood = 0, 0
				}
			},
			step7: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := completeInput(tc.status)
			if tc.mutate != nil {
				tc.mutate(&in)
			}

			st := service.EvaluateCompletion(in)

			assert.True(t, st.Step1)
			assert.Equal(t, tc.step4, st.Step4, "step4")
			assert.Equal(t, tc.step7, st.Step7, "step7")
			assert.Equal(t, tc.prior, st.PriorStepsComplete(), "step1-7")
			assert.Equal(t, tc.step8, st.Step8, "step8")
			assert.Equal(t, tc.status, st.Status)
		})
	}
}

func TestFacilityStepNeedsEveryRequiredType(t *testing.T) {
	in := completeInput(model.StatusDraft)
	all := in.Facilities

	in.Facilities = all[:len(all)-1]
	assert.False(t, service.EvaluateCompletion(in).Step4)
	assert.Equal(t, []model.FacilityType{all[len(all)-1].FacilityType}, service.MissingFacilityTypes(in.Facilities))

	in.Facilities = all
	assert.True(t, service.EvaluateCompletion(in).Step4)
	assert.Empty(t, service.MissingFacilityTypes(in.Facilities))
}

func TestCompletionUsesStoredFacilityRows(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	require.NoError(t, f.svc.SaveFacilities(f.ctx, f.userID, dto.FacilityForm{Classroom: dto.ConditionCounts{Total: 4, Good: 4}}))
	require.Len(t, f.repo.Facilities, len(model.RequiredFacilityTypes))

	st, err := f.svc.GetCompletionStatus(f.ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, st.Step4)

	// baris lama yang hilang satu jenis (mis. data sebelum jenis baru diwajibkan)
	f.repo.Facilities = f.repo.Facilities[1:]
	st, err = f.svc.GetCompletionStatus(f.ctx, f.userID)
	require.NoError(t, err)
	assert.False(t, st.Step4)
}

/* ===================== Workflow ===================== */

func TestNextStatusTable(t *testing.T) {
	cases := []struct {
		from   model.SchoolStatus
		action service.WorkflowAction
		to     model.SchoolStatus
		ok     bool
	}{
		{model.StatusDraft, service.ActionSubmit, model.StatusPending, true},
		{model.StatusRejected, service.ActionSubmit, model.StatusPending, true},
		{model.StatusPending, service.ActionSubmit, "", false},
		{model.StatusApproved, service.ActionSubmit, "", false},
		{model.StatusPending, service.ActionApprove, model.StatusApproved, true},
		{model.StatusDraft, service.ActionApprove, "", false},
		{model.StatusPending, service.ActionRequestRevision, model.StatusRejected, true},
		{model.StatusApproved, service.ActionRequestRevision, "", false},
	}
	for _, tc := range cases {
		to, err := service.NextStatus(tc.from, tc.action)
		if tc.ok {
			require.NoError(t, err, "%s %s", tc.from, tc.action)
			assert.Equal(t, tc.to, to)
		} else {
			assertValidationFailure(t, err, "status")
		}
	}
}

func TestSubmitRequiresAllSteps(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	require.NoError(t, f.svc.SaveProfile(f.ctx, f.userID, validProfile()))

	st, err := f.svc.SubmitForReview(f.ctx, f.userID)
	assertValidationFailure(t, err, "steps")
	assert.Contains(t, err.Error(), "2, 3, 4, 5, 6, 7")
	assert.True(t, st.Step1)
	assert.Equal(t, model.StatusDraft, f.repo.Schools[f.school.SchoolID].SchoolStatus)
	assert.Empty(t, f.repo.StatusLogs)
}

func TestFullReviewCycle(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	f.fillAll(t)

	// lengkap tapi belum dikirim: step 8 belum terpenuhi
	st, err := f.svc.GetCompletionStatus(f.ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, st.PriorStepsComplete())
	assert.False(t, st.Step8)
	assert.Empty(t, st.IncompleteSteps())

	st, err = f.svc.SubmitForReview(f.ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, st.Status)
	assert.True(t, st.Step8)

	stored := f.repo.Schools[f.school.SchoolID]
	assert.Equal(t, model.StatusPending, stored.SchoolStatus)
	require.NotNil(t, stored.SchoolSubmittedAt)

	// kirim ulang saat PENDING ditolak
	_, err = f.svc.SubmitForReview(f.ctx, f.userID)
	assertValidationFailure(t, err, "status")

	// minta revisi
	res, err := f.svc.RequestRevision(f.ctx, adminID, f.school.SchoolID, "  Data NPSN salah ")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, res.Status)
	require.NotNil(t, res.ReviewNotes)
	assert.Equal(t, "Data NPSN salah", *res.ReviewNotes)

	st, err = f.svc.GetCompletionStatus(f.ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, st.Status)
	require.NotNil(t, st.ReviewNotes)
	assert.Equal(t, "Data NPSN salah", *st.ReviewNotes)
	assert.False(t, st.Step8)

	// REJECTED bisa diedit lagi lalu dikirim ulang
	p := validProfile()
	p.NPSN = "20212346"
	require.NoError(t, f.svc.SaveProfile(f.ctx, f.userID, p))
	_, err = f.svc.SubmitForReview(f.ctx, f.userID)
	require.NoError(t, err)

	res, err = f.svc.ApproveSchool(f.ctx, adminID, f.school.SchoolID, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, res.Status)
	assert.Nil(t, res.ReviewNotes)

	_, err = f.svc.ApproveSchool(f.ctx, adminID, f.school.SchoolID, "")
	assertValidationFailure(t, err, "status")

	review, err := f.svc.GetSchoolReview(f.ctx, adminID, f.school.SchoolID)
	require.NoError(t, err)
	require.Len(t, review.History, 4)
	assert.Equal(t, model.StatusApproved, review.History[0].To)
	assert.Equal(t, model.StatusPending, review.History[3].To)
	assert.NotEmpty(t, review.History[0].Snapshot)
	assert.Equal(t, "20212346", review.Profile.NPSN)
	assert.Equal(t, int64(7), review.School.TotalTeachers)
}

func TestRequestRevisionNeedsReason(t *testing.T) {
	f := newFixture(t, model.StatusPending)

	_, err := f.svc.RequestRevision(f.ctx, uuid.NewString(), f.school.SchoolID, "   ")
	assertValidationFailure(t, err, "reason")
	assert.Equal(t, model.StatusPending, f.repo.Schools[f.school.SchoolID].SchoolStatus)
}

// staleRepo: status di DB sudah berubah sebelum update bersyarat dijalankan.
type staleRepo struct {
	*repositorytest.MemoryRepository
}

func (staleRepo) ChangeSchoolStatus(context.Context, model.StatusChange) (bool, error) {
	return false, nil
}

func TestConcurrentStatusChangeDetected(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	f.fillAll(t)
	svc := service.NewService(staleRepo{f.repo}, func() time.Time { return fixedNow })

	_, err := svc.SubmitForReview(f.ctx, f.userID)

	assertValidationFailure(t, err, "status")
	assert.Equal(t, model.StatusDraft, f.repo.Schools[f.school.SchoolID].SchoolStatus)
}

/* ===================== Error persistence ===================== */

func TestPersistenceFailureIsGeneric(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	f.repo.FailOn["ReplaceStaffCounts"] = errors.New(`pq: relation "school_staff_counts" does not exist`)

	err := f.svc.SaveTeachers(f.ctx, f.userID, dto.TeacherForm{PermanentMale: 1})

	var pf *service.PersistenceFailure
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, service.GenericErrorMessage, service.UserMessage(err))
	assert.NotContains(t, service.UserMessage(err), "school_staff_counts")
}

func TestLoadFailureSurfacesAsPersistence(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	f.repo.FailOn["ListAttachments"] = errors.New("timeout")

	_, err := f.svc.GetReviewData(f.ctx, f.userID)
	var pf *service.PersistenceFailure
	assert.ErrorAs(t, err, &pf)
}

/* ===================== Admin: list, dashboard, export ===================== */

func TestAdminReadsRejectMissingActor(t *testing.T) {
	f := newFixture(t, model.StatusPending)

	for _, actor := range []string{"", "   ", "bukan-uuid", uuid.Nil.String()} {
		_, _, err := f.svc.ListSchools(f.ctx, actor, dto.ListSchoolQuery{})
		assert.ErrorIs(t, err, service.ErrUnauthorized)
		_, err = f.svc.GetSchoolReview(f.ctx, actor, f.school.SchoolID)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
		_, err = f.svc.GetDashboardStats(f.ctx, actor)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
		_, err = f.svc.ExportSchools(f.ctx, actor, dto.ListSchoolQuery{})
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	}
	assert.Zero(t, f.repo.CallCount())
}

func seedSchools(t *testing.T, f *fixture) {
	t.Helper()
	f.fillAll(t)
	_, err := f.svc.SubmitForReview(f.ctx, f.userID)
	require.NoError(t, err)

	f.repo.AddSchool(model.SchoolModel{SchoolUserID: uuid.New(), SchoolName: "SMP Harapan", SchoolNPSN: "20219999", SchoolSubDistrict: "Cibeber"})
	f.repo.AddSchool(model.SchoolModel{SchoolUserID: uuid.New(), SchoolName: "SMP Tunas", SchoolNPSN: "20218888", SchoolStatus: model.StatusApproved})
}

func TestListSchools(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	seedSchools(t, f)

	all, total, err := f.svc.ListSchools(f.ctx, adminID, dto.ListSchoolQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	pending, total, err := f.svc.ListSchools(f.ctx, adminID, dto.ListSchoolQuery{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(7), pending[0].TotalTeachers)
	assert.Equal(t, int64(55), pending[0].TotalStudents)

	found, _, err := f.svc.ListSchools(f.ctx, adminID, dto.ListSchoolQuery{Search: "harapan"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "20219999", found[0].NPSN)

	empty, total, err := f.svc.ListSchools(f.ctx, adminID, dto.ListSchoolQuery{SubDistrict: "Tidak Ada"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, empty)
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	seedSchools(t, f)

	stats, err := f.svc.GetDashboardStats(f.ctx, adminID)
	require.NoError(t, err)

	assert.Equal(t, "2026", stats.AcademicYear)
	assert.Equal(t, "2026/2027", stats.AcademicYearRange)
	assert.Equal(t, int64(3), stats.TotalSchools)
	assert.Equal(t, int64(1), stats.SchoolsByStatus[model.StatusPending])
	assert.Equal(t, int64(0), stats.SchoolsByStatus[model.StatusRejected])
	assert.Len(t, stats.SchoolsByStatus, 4)
	assert.Equal(t, int64(4), stats.TeachersByStatus[model.EmploymentPermanent])
	assert.Equal(t, int64(30), stats.StudentsByGrade[model.Grade7])
	assert.Len(t, stats.FacilityConditions, 8)
}

func TestDashboardFailure(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	f.repo.FailOn["SumEnrollmentByGrade"] = errors.New("boom")

	_, err := f.svc.GetDashboardStats(f.ctx, adminID)
	assert.Equal(t, service.GenericErrorMessage, service.UserMessage(err))
}

func TestExportSchools(t *testing.T) {
	f := newFixture(t, model.StatusDraft)
	seedSchools(t, f)

	data, err := f.svc.ExportSchools(f.ctx, adminID, dto.ListSchoolQuery{})
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(service.SheetSchools)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "NPSN", rows[0][1])

	npsn := map[string]bool{}
	for _, r := range rows[1:] {
		npsn[r[1]] = true
	}
	assert.True(t, npsn["20212345"])
	assert.True(t, npsn["20219999"])

	facilities, err := book.GetRows(service.SheetFacilities)
	require.NoError(t, err)
	assert.Len(t, facilities, 9)
}

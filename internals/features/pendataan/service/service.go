// file: internals/features/pendataan/service/service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sarpras_backend/internals/configs"
	"sarpras_backend/internals/features/pendataan/dto"
	model "sarpras_backend/internals/features/pendataan/model"
)

const msgLocked = "Data tidak dapat diubah karena sedang diverifikasi atau sudah disetujui"

type Service struct {
	repo Repository
	now  func() time.Time
	log  zerolog.Logger
}

// NewService: now=nil → time.Now.
func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
		log:  configs.Logger().With().Str("component", "pendataan").Logger(),
	}
}

/* =========================================================
   Helpers: identitas, sekolah, error
   ========================================================= */

func parseActorID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}

func (s *Service) persistence(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("operasi penyimpanan gagal")
	return &PersistenceFailure{Op: op, Err: err}
}

// schoolOf: user kosong → Unauthorized tanpa menyentuh repository.
func (s *Service) schoolOf(ctx context.Context, userID string) (*model.SchoolModel, error) {
	uid, err := parseActorID(userID)
	if err != nil {
		return nil, err
	}
	school, err := s.repo.FindSchoolByUserID(ctx, uid)
	if err != nil {
		return nil, s.persistence("find_school", err)
	}
	if school == nil {
		return nil, ErrSchoolNotFound
	}
	return school, nil
}

// editableSchoolOf: hanya DRAFT / REJECTED yang boleh disimpan.
func (s *Service) editableSchoolOf(ctx context.Context, userID string) (*model.SchoolModel, error) {
	school, err := s.schoolOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !school.SchoolStatus.IsEditable() {
		return nil, newValidationFailure("status", msgLocked)
	}
	return school, nil
}

/* =========================================================
   Step 1: Profil sekolah
   ========================================================= */

func (s *Service) GetProfile(ctx context.Context, userID string) (dto.ProfileForm, error) {
	school, err := s.schoolOf(ctx, userID)
	if err != nil {
		return dto.ProfileForm{}, err
	}
	return dto.ProfileFormFromModel(school), nil
}

func (s *Service) SaveProfile(ctx context.Context, userID string, form dto.ProfileForm) error {
	school, err := s.editableSchoolOf(ctx, userID)
	if err != nil {
		return err
	}
	form.Normalize()
	p := form.ToProfile()
	if !p.IsComplete() {
		return newValidationFailure("profile", "Semua data profil sekolah wajib diisi")
	}
	if err := s.repo.UpdateSchoolProfile(ctx, school.SchoolID, p); err != nil {
		if errors.Is(err, model.ErrDuplicateNPSN) {
			return newValidationFailure("npsn", "NPSN sudah terdaftar untuk sekolah lain")
		}
		return s.persistence("update_profile", err)
	}
	return nil
}

/* =========================================================
   Step 2: Data guru (tahun ajaran "YYYY")
   ========================================================= */

func (s *Service) GetTeachers(ctx context.Context, userID string) (dto.TeacherForm, error) {
	school, err := s.schoolOf(ctx, userID)
	if err != nil {
		return dto.TeacherForm{}, err
	}
	rows, err := s.repo.ListStaffCounts(ctx, school.SchoolID, AcademicYearBare(s.now()))
	if err != nil {
		return dto.TeacherForm{}, s.persistence("list_staff", err)
	}
	return dto.TeacherFormFromModels(rows), nil
}

func (s *Service) SaveTeachers(ctx context.Context, userID string, form dto.TeacherForm) error {
	school, err := s.editableSchoolOf(ctx, userID)
	if err != nil {
		return err
	}
	year := AcademicYearBare(s.now())
	rows := form.ToModels(school.SchoolID, year)
	for _, r := range rows {
		if r.StaffCountCount < 0 {
			return newValidationFailure("teachers", "Jumlah guru tidak boleh negatif")
		}
	}
	if err := s.repo.ReplaceStaffCounts(ctx, school.SchoolID, year, rows); err != nil {
		return s.persistence("replace_staff", err)
	}
	return nil
}

/* =========================================================
   Step 3: Rombongan belajar (tahun ajaran "YYYY")
   ========================================================= */

func (s *Service) GetStudents(ctx context.Context, userID string) (dto.StudentForm, error) {
	school, err := s.schoolOf(ctx, userID)
	if err != nil {
		return dto.StudentForm{}, err
	}
	rows, err := s.repo.ListEnrollmentCounts(ctx, school.SchoolID, AcademicYearBare(s.now()))
	if err != nil {
		return dto.StudentForm{}, s.persistence("list_enrollment", err)
	}
	return dto.StudentFormFromModels(rows), nil
}

func (s *Service) SaveStudents(ctx context.Context, userID string, form dto.StudentForm) error {
	school, err := s.editableSchoolOf(ctx, userID)
	if err != nil {
		return err
	}
	year := AcademicYearBare(s.now())
	rows := form.ToModels(school.SchoolID, year)
	for _, r := range rows {
		if r.EnrollmentCountStudents < 0 {
			return newValidationFailure("students", "Jumlah siswa tidak boleh negatif")
		}
	}
	if err := s.repo.ReplaceEnrollmentCounts(ctx, school.SchoolID, year, rows); err != nil {
		return s.persistence("replace_enrollment", err)
	}
	return nil
}

/* =========================================================
   Step 4: Sarana / ruang (tahun ajaran "YYYY/YYYY+1")
   ========================================================= */

func (s *Service) GetFacilities(ctx context.Context, userID string) (dto.FacilityForm, error) {
	school, err := s.schoolOf(ctx, userID)
	if err != nil {
		return dto.FacilityForm{}, err
	}
	rows, err := s.repo.ListFacilities(ctx, school.SchoolID, AcademicYearRange(s.now()))
	if err != nil {
		return dto.FacilityForm{}, s.persistence("list_facilities", err)
	}
	return dto.FacilityFormFromModels(rows), nil
}

func (s *Service) SaveFacilities(ctx context.Context, userID string, form dto.FacilityForm) error {
	school, err := s.editableSchoolOf(ctx, userID)
	if err != nil {
		return err
	}
	form.Normalize()
	// ToModels selalu menghasilkan baris untuk semua jenis ruang wajib
	rows := form.ToModels(school.SchoolID, AcademicYearRange(s.now()))
	if err := s.repo.UpsertFacilities(ctx, rows); err != nil {
		return s.persistence("upsert_facilities", err)
	}
	return nil
}

/* =========================================================
   Step 5: Prasarana (tahun ajaran "YYYY/YYYY+1")
   ========================================================= */

func (s *Service) GetInfrastructure(ctx context.Context, userID string) (dto.InfrastructureForm, error) {
	school, err := s.schoolOf(ctx, userID)
	if err != nil {
		return dto.InfrastructureForm{}, err
	}
	rows, err := s.repo.ListInfrastructure(ctx, school.SchoolID, AcademicYearRange(s.now()))
	if err != nil {
		return dto.InfrastructureForm{}, s.persistence("list_infrastructure", err)
	}
	return dto.InfrastructureFormFromModels(rows), nil
}

func (s *Service) SaveInfrastructure(ctx context.Context, userID string, form dto.InfrastructureForm) error {
	school, err := s.editableSchoolOf(ctx, userID)
	if err != nil {
		return err
	}
	form.Normalize()
	for i, o := range form.Others {
		if o.Name == "" {
			return newValidationFailure(fmt.Sprintf("others[%d].name", i), "Nama prasarana lainnya wajib diisi")
		}
		if o.Total < 1 {
			return newValidationFailure(fmt.Sprintf("others[%d].total", i), "Jumlah prasarana lainnya minimal 1")
		}
	}
	year := AcademicYearRange(s.now())
	if err := s.repo.ReplaceInfrastructure(ctx, school.SchoolID, year, form.ToModels(school.SchoolID, year)); err != nil {
		return s.persistence("replace_infrastructure", err)
	}
	return nil
}

/* =========================================================
   Step 6: Kebutuhan prioritas
   ========================================================= */

func (s *Service) GetPriorityNeeds(ctx context.Context, userID string) (dto.PriorityNeedForm, error) {
	school, err := s.schoolOf(ctx, userID)
	if err != nil {
		return dto.PriorityNeedForm{}, err
	}
	rows, err := s.repo.ListPriorityNeeds(ctx, school.SchoolID, AcademicYearRange(s.now()))
	if err != nil {
		return dto.PriorityNeedForm{}, s.persistence("list_priority_needs", err)
	}
	return dto.PriorityNeedFormFromModels(rows), nil
}

func (s *Service) SavePriorityNeeds(ctx context.Context, userID string, form dto.PriorityNeedForm) error {
	school, err := s.editableSchoolOf(ctx, userID)
	if err != nil {
		return err
	}
	form.Normalize()
	if form.Description == "" {
		return newValidationFailure("description", "Uraian kebutuhan prioritas wajib diisi")
	}
	year := AcademicYearRange(s.now())
	if err := s.repo.ReplacePriorityNeeds(ctx, school.SchoolID, year, form.ToModels(school.SchoolID, year)); err != nil {
		return s.persistence("replace_priority_needs", err)
	}
	return nil
}

/* =========================================================
   Step 7: Lampiran
   ========================================================= */

func (s *Service) GetAttachments(ctx context.Context, userID string) (dto.AttachmentForm, error) {
	school, err := s.schoolOf(ctx, userID)
	if err != nil {
		return dto.AttachmentForm{}, err
	}
	rows, err := s.repo.ListAttachments(ctx, school.SchoolID)
	if err != nil {
		return dto.AttachmentForm{}, s.persistence("list_attachments", err)
	}
	return dto.AttachmentFormFromModels(rows), nil
}

// SaveAttachments mengganti seluruh lampiran (list kosong = hapus semua).
func (s *Service) SaveAttachments(ctx context.Context, userID string, form dto.AttachmentForm) error {
	school, err := s.editableSchoolOf(ctx, userID)
	if err != nil {
		return err
	}
	form.Normalize()
	for i, a := range form.Attachments {
		if a.DocumentName == "" || a.URL == "" {
			return newValidationFailure(fmt.Sprintf("attachments[%d]", i), "Nama dokumen dan URL lampiran wajib diisi")
		}
	}
	if err := s.repo.ReplaceAttachments(ctx, school.SchoolID, form.ToModels(school.SchoolID)); err != nil {
		return s.persistence("replace_attachments", err)
	}
	return nil
}

// AttachmentUploadTarget: sekolah tujuan upload file lampiran (harus masih bisa diubah).
func (s *Service) AttachmentUploadTarget(ctx context.Context, userID string) (uuid.UUID, error) {
	school, err := s.editableSchoolOf(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	return school.SchoolID, nil
}

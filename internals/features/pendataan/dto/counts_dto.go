// file: internals/features/pendataan/dto/counts_dto.go
package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "sarpras_backend/internals/features/pendataan/model"
)

/* =========================================================
   Step 2: Jumlah guru (PNS / PPPK / Honorer × L / P)
   ========================================================= */

type TeacherForm struct {
	PermanentMale     int `json:"pns_male" validate:"gte=0,lte=10000"`
	PermanentFemale   int `json:"pns_female" validate:"gte=0,lte=10000"`
	ContractGovMale   int `json:"pppk_male" validate:"gte=0,lte=10000"`
	ContractGovFemale int `json:"pppk_female" validate:"gte=0,lte=10000"`
	HonoraryMale      int `json:"honorary_male" validate:"gte=0,lte=10000"`
	HonoraryFemale    int `json:"honorary_female" validate:"gte=0,lte=10000"`
}

type teacherSlot struct {
	Status model.EmploymentStatus
	Gender model.Gender
	field  func(*TeacherForm) *int
}

// Urutan slot = urutan baris yang disimpan.
var teacherSlots = []teacherSlot{
	{model.EmploymentPermanent, model.GenderMale, func(f *TeacherForm) *int { return &f.PermanentMale }},
	{model.EmploymentPermanent, model.GenderFemale, func(f *TeacherForm) *int { return &f.PermanentFemale }},
	{model.EmploymentContractGov, model.GenderMale, func(f *TeacherForm) *int { return &f.ContractGovMale }},
	{model.EmploymentContractGov, model.GenderFemale, func(f *TeacherForm) *int { return &f.ContractGovFemale }},
	{model.EmploymentHonorary, model.GenderMale, func(f *TeacherForm) *int { return &f.HonoraryMale }},
	{model.EmploymentHonorary, model.GenderFemale, func(f *TeacherForm) *int { return &f.HonoraryFemale }},
}

func (r *TeacherForm) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r *TeacherForm) Total() int {
	sum := 0
	for _, s := range teacherSlots {
		sum += *s.field(r)
	}
	return sum
}

// ToModels: selalu 6 baris, termasuk yang bernilai 0.
func (r TeacherForm) ToModels(schoolID uuid.UUID, academicYear string) []model.StaffCountModel {
	out := make([]model.StaffCountModel, 0, len(teacherSlots))
	for _, s := range teacherSlots {
		out = append(out, model.StaffCountModel{
			StaffCountSchoolID:         schoolID,
			StaffCountEmploymentStatus: s.Status,
			StaffCountGender:           s.Gender,
			StaffCountCount:            *s.field(&r),
			StaffCountAcademicYear:     academicYear,
		})
	}
	return out
}

func TeacherFormFromModels(rows []model.StaffCountModel) TeacherForm {
	var f TeacherForm
	for _, s := range teacherSlots {
		for _, row := range rows {
			if row.StaffCountEmploymentStatus == s.Status && row.StaffCountGender == s.Gender {
				*s.field(&f) = row.StaffCountCount
				break
			}
		}
	}
	return f
}

/* =========================================================
   Step 3: Rombongan belajar (kelas 7-9 × L / P)
   ========================================================= */

type StudentForm struct {
	Grade7Male   int `json:"grade7_male" validate:"gte=0,lte=100000"`
	Grade7Female int `json:"grade7_female" validate:"gte=0,lte=100000"`
	Grade8Male   int `json:"grade8_male" validate:"gte=0,lte=100000"`
	Grade8Female int `json:"grade8_female" validate:"gte=0,lte=100000"`
	Grade9Male   int `json:"grade9_male" validate:"gte=0,lte=100000"`
	Grade9Female int `json:"grade9_female" validate:"gte=0,lte=100000"`
}

type studentSlot struct {
	Grade  model.GradeLevel
	Gender model.Gender
	field  func(*StudentForm) *int
}

var studentSlots = []studentSlot{
	{model.Grade7, model.GenderMale, func(f *StudentForm) *int { return &f.Grade7Male }},
	{model.Grade7, model.GenderFemale, func(f *StudentForm) *int { return &f.Grade7Female }},
	{model.Grade8, model.GenderMale, func(f *StudentForm) *int { return &f.Grade8Male }},
	{model.Grade8, model.GenderFemale, func(f *StudentForm) *int { return &f.Grade8Female }},
	{model.Grade9, model.GenderMale, func(f *StudentForm) *int { return &f.Grade9Male }},
	{model.Grade9, model.GenderFemale, func(f *StudentForm) *int { return &f.Grade9Female }},
}

func (r *StudentForm) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r *StudentForm) Total() int {
	sum := 0
	for _, s := range studentSlots {
		sum += *s.field(r)
	}
	return sum
}

func (r StudentForm) ToModels(schoolID uuid.UUID, academicYear string) []model.EnrollmentCountModel {
	out := make([]model.EnrollmentCountModel, 0, len(studentSlots))
	for _, s := range studentSlots {
		out = append(out, model.EnrollmentCountModel{
			EnrollmentCountSchoolID:     schoolID,
			EnrollmentCountGradeLevel:   s.Grade,
			EnrollmentCountGender:       s.Gender,
			EnrollmentCountStudents:     *s.field(&r),
			EnrollmentCountAcademicYear: academicYear,
		})
	}
	return out
}

func StudentFormFromModels(rows []model.EnrollmentCountModel) StudentForm {
	var f StudentForm
	for _, s := range studentSlots {
		for _, row := range rows {
			if row.EnrollmentCountGradeLevel == s.Grade && row.EnrollmentCountGender == s.Gender {
				*s.field(&f) = row.EnrollmentCountStudents
				break
			}
		}
	}
	return f
}

package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "sarpras_backend/internals/features/pendataan/model"
	helper "sarpras_backend/internals/helpers"
)

func TestTeacherFormAlwaysSixRows(t *testing.T) {
	schoolID := uuid.New()
	form := TeacherForm{PermanentMale: 3, HonoraryFemale: 2}

	rows := form.ToModels(schoolID, "2026")

	require.Len(t, rows, 6)
	for _, r := range rows {
		assert.Equal(t, schoolID, r.StaffCountSchoolID)
		assert.Equal(t, "2026", r.StaffCountAcademicYear)
	}
	assert.Equal(t, model.EmploymentPermanent, rows[0].StaffCountEmploymentStatus)
	assert.Equal(t, model.GenderMale, rows[0].StaffCountGender)
	assert.Equal(t, 3, rows[0].StaffCountCount)
	assert.Equal(t, 0, rows[2].StaffCountCount)
	assert.Equal(t, 2, rows[5].StaffCountCount)

	assert.Equal(t, form, TeacherFormFromModels(rows))
	assert.Equal(t, 5, form.Total())
}

func TestStudentFormRoundTrip(t *testing.T) {
	form := StudentForm{Grade7Male: 30, Grade7Female: 28, Grade9Female: 1}
	rows := form.ToModels(uuid.New(), "2026")

	require.Len(t, rows, 6)
	assert.Equal(t, model.Grade7, rows[0].EnrollmentCountGradeLevel)
	assert.Equal(t, model.Grade9, rows[5].EnrollmentCountGradeLevel)
	assert.Equal(t, model.GenderFemale, rows[5].EnrollmentCountGender)
	assert.Equal(t, form, StudentFormFromModels(rows))
	assert.Equal(t, 59, form.Total())
}

func TestFacilityFormEmitsEveryRequiredType(t *testing.T) {
	form := FacilityForm{Classroom: ConditionCounts{Total: 12, Good: 10, Damaged: 2, Note: "  atap bocor  "}}
	form.Normalize()

	rows := form.ToModels(uuid.New(), "2026/2027")

	require.Len(t, rows, len(model.RequiredFacilityTypes))
	for i, typ := range model.RequiredFacilityTypes {
		assert.Equal(t, typ, rows[i].FacilityType)
		assert.Equal(t, "2026/2027", rows[i].FacilityAcademicYear)
	}
	assert.Equal(t, "atap bocor", rows[0].FacilityNote)
	assert.Equal(t, form, FacilityFormFromModels(rows))
}

func TestInfrastructureFormOthers(t *testing.T) {
	form := InfrastructureForm{
		Computers: ConditionCounts{Total: 20, Good: 15, Damaged: 5},
		Others:    []OtherInfrastructure{{Name: " Proyektor ", Total: 2, Good: 2}},
	}
	form.Normalize()

	rows := form.ToModels(uuid.New(), "2026/2027")

	require.Len(t, rows, 5)
	last := rows[4]
	assert.Equal(t, model.InfraOther, last.InfrastructureType)
	require.NotNil(t, last.InfrastructureCustomName)
	assert.Equal(t, "Proyektor", *last.InfrastructureCustomName)

	back := InfrastructureFormFromModels(rows)
	assert.Equal(t, 20, back.Computers.Total)
	require.Len(t, back.Others, 1)
	assert.Equal(t, "Proyektor", back.Others[0].Name)
}

func TestInfrastructureFormNilOthers(t *testing.T) {
	var form InfrastructureForm
	form.Normalize()
	assert.NotNil(t, form.Others)
	assert.Len(t, form.ToModels(uuid.New(), "2026/2027"), 4)
}

func TestPriorityNeedUsesFirstRow(t *testing.T) {
	assert.Equal(t, PriorityNeedForm{}, PriorityNeedFormFromModels(nil))

	rows := []model.PriorityNeedModel{
		{PriorityNeedDescription: "Rehab ruang kelas"},
		{PriorityNeedDescription: "Tambahan komputer"},
	}
	assert.Equal(t, "Rehab ruang kelas", PriorityNeedFormFromModels(rows).Description)

	out := PriorityNeedForm{Description: "x"}.ToModels(uuid.New(), "2026/2027")
	require.Len(t, out, 1)
	assert.Equal(t, model.PriorityNeedCategory, out[0].PriorityNeedCategory)
}

func TestFormValidation(t *testing.T) {
	v := helper.NewValidator()

	profile := ProfileForm{SchoolName: "SMP 1", NPSN: "1234ab78", HeadmasterName: "Budi", HeadmasterNIP: "1", Address: "Jl", SubDistrict: "Kota"}
	errs := helper.ValidationErrorsToMap(profile.Validate(v))
	assert.Contains(t, errs, "npsn")

	teachers := TeacherForm{PermanentMale: -1}
	errs = helper.ValidationErrorsToMap(teachers.Validate(v))
	assert.Contains(t, errs, "pns_male")

	infra := InfrastructureForm{Others: []OtherInfrastructure{{Name: "", Total: 0}}}
	errs = helper.ValidationErrorsToMap(infra.Validate(v))
	assert.Contains(t, errs, "others[0].name")
	assert.Contains(t, errs, "others[0].total")

	need := PriorityNeedForm{Description: "terlalu pendek"}
	assert.Error(t, need.Validate(v))

	att := AttachmentForm{Attachments: []AttachmentItem{{DocumentName: "SK", URL: "bukan url"}}}
	errs = helper.ValidationErrorsToMap(att.Validate(v))
	assert.Contains(t, errs, "attachments[0].url")

	ok := AttachmentForm{}
	ok.Normalize()
	assert.NoError(t, ok.Validate(v))
}

func TestListSchoolQuery(t *testing.T) {
	q := ListSchoolQuery{Status: " pending ", Limit: 999, Offset: -4}
	q.Normalize()

	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, 0, q.Offset)
	f := q.ToFilter()
	require.NotNil(t, f.Status)
	assert.Equal(t, model.StatusPending, *f.Status)

	q.Status = "ENTAH"
	assert.Nil(t, q.ToFilter().Status)
}

// file: internals/features/pendataan/dto/inventory_dto.go
package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "sarpras_backend/internals/features/pendataan/model"
)

/* =========================================================
   Shared: jumlah total / baik / rusak + keterangan
   ========================================================= */

type ConditionCounts struct {
	Total   int    `json:"total" validate:"gte=0,lte=100000"`
	Good    int    `json:"good" validate:"gte=0,lte=100000"`
	Damaged int    `json:"damaged" validate:"gte=0,lte=100000"`
	Note    string `json:"note" validate:"max=500"`
}

func (c *ConditionCounts) normalize() {
	c.Note = strings.TrimSpace(c.Note)
}

/* =========================================================
   Step 4: Sarana (8 jenis ruang)
   ========================================================= */

type FacilityForm struct {
	Classroom     ConditionCounts `json:"classroom"`
	Library       ConditionCounts `json:"library"`
	ScienceLab    ConditionCounts `json:"science_lab"`
	ComputerLab   ConditionCounts `json:"computer_lab"`
	PrincipalRoom ConditionCounts `json:"principal_room"`
	TeacherRoom   ConditionCounts `json:"teacher_room"`
	AdminRoom     ConditionCounts `json:"admin_room"`
	HealthRoom    ConditionCounts `json:"health_room"`
}

type facilitySlot struct {
	Type  model.FacilityType
	field func(*FacilityForm) *ConditionCounts
}

var facilitySlots = []facilitySlot{
	{model.FacilityClassroom, func(f *FacilityForm) *ConditionCounts { return &f.Classroom }},
	{model.FacilityLibrary, func(f *FacilityForm) *ConditionCounts { return &f.Library }},
	{model.FacilityScienceLab, func(f *FacilityForm) *ConditionCounts { return &f.ScienceLab }},
	{model.FacilityComputerLab, func(f *FacilityForm) *ConditionCounts { return &f.ComputerLab }},
	{model.FacilityPrincipalRoom, func(f *FacilityForm) *ConditionCounts { return &f.PrincipalRoom }},
	{model.FacilityTeacherRoom, func(f *FacilityForm) *ConditionCounts { return &f.TeacherRoom }},
	{model.FacilityAdminRoom, func(f *FacilityForm) *ConditionCounts { return &f.AdminRoom }},
	{model.FacilityHealthRoom, func(f *FacilityForm) *ConditionCounts { return &f.HealthRoom }},
}

func (r *FacilityForm) Normalize() {
	for _, s := range facilitySlots {
		s.field(r).normalize()
	}
}

func (r *FacilityForm) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

// ToModels: selalu 8 baris, satu per jenis ruang.
func (r FacilityForm) ToModels(schoolID uuid.UUID, academicYear string) []model.FacilityModel {
	out := make([]model.FacilityModel, 0, len(facilitySlots))
	for _, s := range facilitySlots {
		c := s.field(&r)
		out = append(out, model.FacilityModel{
			FacilitySchoolID:     schoolID,
			FacilityType:         s.Type,
			FacilityTotal:        c.Total,
			FacilityGood:         c.Good,
			FacilityDamaged:      c.Damaged,
			FacilityNote:         c.Note,
			FacilityAcademicYear: academicYear,
		})
	}
	return out
}

func FacilityFormFromModels(rows []model.FacilityModel) FacilityForm {
	var f FacilityForm
	for _, s := range facilitySlots {
		for _, row := range rows {
			if row.FacilityType == s.Type {
				*s.field(&f) = ConditionCounts{
					Total:   row.FacilityTotal,
					Good:    row.FacilityGood,
					Damaged: row.FacilityDamaged,
					Note:    row.FacilityNote,
				}
				break
			}
		}
	}
	return f
}

/* =========================================================
   Step 5: Prasarana (4 slot tetap + daftar LAINNYA)
   ========================================================= */

type OtherInfrastructure struct {
	Name    string `json:"name" validate:"required,max=120"`
	Total   int    `json:"total" validate:"gte=1,lte=100000"`
	Good    int    `json:"good" validate:"gte=0,lte=100000"`
	Damaged int    `json:"damaged" validate:"gte=0,lte=100000"`
	Note    string `json:"note" validate:"max=500"`
}

type InfrastructureForm struct {
	StudentDesks   ConditionCounts       `json:"student_desks"`
	Computers      ConditionCounts       `json:"computers"`
	StudentToilets ConditionCounts       `json:"student_toilets"`
	TeacherToilets ConditionCounts       `json:"teacher_toilets"`
	Others         []OtherInfrastructure `json:"others" validate:"max=50,dive"`
}

type infrastructureSlot struct {
	Type  model.InfrastructureType
	field func(*InfrastructureForm) *ConditionCounts
}

var infrastructureSlots = []infrastructureSlot{
	{model.InfraStudentDesks, func(f *InfrastructureForm) *ConditionCounts { return &f.StudentDesks }},
	{model.InfraComputers, func(f *InfrastructureForm) *ConditionCounts { return &f.Computers }},
	{model.InfraStudentToilets, func(f *InfrastructureForm) *ConditionCounts { return &f.StudentToilets }},
	{model.InfraTeacherToilets, func(f *InfrastructureForm) *ConditionCounts { return &f.TeacherToilets }},
}

func (r *InfrastructureForm) Normalize() {
	for _, s := range infrastructureSlots {
		s.field(r).normalize()
	}
	if r.Others == nil {
		r.Others = []OtherInfrastructure{}
	}
	for i := range r.Others {
		r.Others[i].Name = strings.TrimSpace(r.Others[i].Name)
		r.Others[i].Note = strings.TrimSpace(r.Others[i].Note)
	}
}

func (r *InfrastructureForm) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r InfrastructureForm) ToModels(schoolID uuid.UUID, academicYear string) []model.InfrastructureModel {
	out := make([]model.InfrastructureModel, 0, len(infrastructureSlots)+len(r.Others))
	for _, s := range infrastructureSlots {
		c := s.field(&r)
		out = append(out, model.InfrastructureModel{
			InfrastructureSchoolID:     schoolID,
			InfrastructureType:         s.Type,
			InfrastructureTotal:        c.Total,
			InfrastructureGood:         c.Good,
			InfrastructureDamaged:      c.Damaged,
			InfrastructureNote:         c.Note,
			InfrastructureAcademicYear: academicYear,
		})
	}
	for _, o := range r.Others {
		name := o.Name
		out = append(out, model.InfrastructureModel{
			InfrastructureSchoolID:     schoolID,
			InfrastructureType:         model.InfraOther,
			InfrastructureCustomName:   &name,
			InfrastructureTotal:        o.Total,
			InfrastructureGood:         o.Good,
			InfrastructureDamaged:      o.Damaged,
			InfrastructureNote:         o.Note,
			InfrastructureAcademicYear: academicYear,
		})
	}
	return out
}

func InfrastructureFormFromModels(rows []model.InfrastructureModel) InfrastructureForm {
	f := InfrastructureForm{Others: []OtherInfrastructure{}}
	for _, s := range infrastructureSlots {
		for _, row := range rows {
			if row.InfrastructureType == s.Type {
				*s.field(&f) = ConditionCounts{
					Total:   row.InfrastructureTotal,
					Good:    row.InfrastructureGood,
					Damaged: row.InfrastructureDamaged,
					Note:    row.InfrastructureNote,
				}
				break
			}
		}
	}
	for _, row := range rows {
		if row.InfrastructureType != model.InfraOther {
			continue
		}
		name := ""
		if row.InfrastructureCustomName != nil {
			name = *row.InfrastructureCustomName
		}
		f.Others = append(f.Others, OtherInfrastructure{
			Name:    name,
			Total:   row.InfrastructureTotal,
			Good:    row.InfrastructureGood,
			Damaged: row.InfrastructureDamaged,
			Note:    row.InfrastructureNote,
		})
	}
	return f
}

// file: internals/features/pendataan/service/completion.go
package service

import (
	model "sarpras_backend/internals/features/pendataan/model"
)

// CompletionInput: data sekolah yang sudah diambil (dan sudah di-scope ke tahun ajaran).
type CompletionInput struct {
	School         *model.SchoolModel
	Staff          []model.StaffCountModel
	Enrollments    []model.EnrollmentCountModel
	Facilities     []model.FacilityModel
	Infrastructure []model.InfrastructureModel
	PriorityNeeds  []model.PriorityNeedModel
	Attachments    []model.AttachmentModel
}

type CompletionStatus struct {
	Step1       bool               `json:"step1"`
	Step2       bool               `json:"step2"`
	Step3       bool               `json:"step3"`
	Step4       bool               `json:"step4"`
	Step5       bool               `json:"step5"`
	Step6       bool               `json:"step6"`
	Step7       bool               `json:"step7"`
	Step8       bool               `json:"step8"`
	Status      model.SchoolStatus `json:"status"`
	ReviewNotes *string            `json:"review_notes"`
}

// PriorStepsComplete: step 1..7 semuanya true (syarat submit).
func (c CompletionStatus) PriorStepsComplete() bool {
	return c.Step1 && c.Step2 && c.Step3 && c.Step4 && c.Step5 && c.Step6 && c.Step7
}

// IncompleteSteps: nomor step (1..7) yang belum lengkap.
func (c CompletionStatus) IncompleteSteps() []int {
	out := make([]int, 0, 7)
	for i, ok := range []bool{c.Step1, c.Step2, c.Step3, c.Step4, c.Step5, c.Step6, c.Step7} {
		if !ok {
			out = append(out, i+1)
		}
	}
	return out
}

// EvaluateCompletion memetakan data tersimpan ke 8 flag kelengkapan step wizard.
func EvaluateCompletion(in CompletionInput) CompletionStatus {
	var out CompletionStatus
	status := model.StatusDraft
	if in.School != nil {
		status = in.School.SchoolStatus
		out.Status = status
		out.ReviewNotes = in.School.SchoolReviewNotes
		out.Step1 = in.School.Profile().IsComplete()
	} else {
		out.Status = status
	}

	out.Step2 = staffComplete(in.Staff)
	out.Step3 = enrollmentComplete(in.Enrollments)
	out.Step4 = facilitiesComplete(in.Facilities)
	out.Step5 = infrastructureComplete(in.Infrastructure)
	out.Step6 = len(in.PriorityNeeds) > 0
	out.Step7 = len(in.Attachments) > 0 || status != model.StatusDraft
	out.Step8 = out.PriorStepsComplete() && status == model.StatusPending
	return out
}

func staffComplete(rows []model.StaffCountModel) bool {
	for _, r := range rows {
		if r.StaffCountCount > 0 {
			return true
		}
	}
	return false
}

func enrollmentComplete(rows []model.EnrollmentCountModel) bool {
	for _, r := range rows {
		if r.EnrollmentCountStudents > 0 {
			return true
		}
	}
	return false
}

func facilitiesComplete(rows []model.FacilityModel) bool {
	if len(rows) == 0 || len(MissingFacilityTypes(rows)) > 0 {
		return false
	}
	for _, r := range rows {
		if r.HasAnyCount() {
			return true
		}
	}
	return false
}

func infrastructureComplete(rows []model.InfrastructureModel) bool {
	for _, r := range rows {
		if r.HasAnyCount() {
			return true
		}
	}
	return false
}

// MissingFacilityTypes: jenis ruang wajib yang belum ada barisnya.
func MissingFacilityTypes(rows []model.FacilityModel) []model.FacilityType {
	present := make(map[model.FacilityType]struct{}, len(rows))
	for _, r := range rows {
		present[r.FacilityType] = struct{}{}
	}
	out := make([]model.FacilityType, 0)
	for _, t := range model.RequiredFacilityTypes {
		if _, ok := present[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

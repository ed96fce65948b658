// file: internals/features/pendataan/repository/repositorytest/memory_repository.go

// Package repositorytest berisi repository in-memory untuk test service & controller.
package repositorytest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	model "sarpras_backend/internals/features/pendataan/model"
)

// MemoryRepository: FailOn[op] != nil → method tersebut mengembalikan error itu.
type MemoryRepository struct {
	mu sync.Mutex

	Schools        map[uuid.UUID]*model.SchoolModel
	Staff          []model.StaffCountModel
	Enrollments    []model.EnrollmentCountModel
	Facilities     []model.FacilityModel
	Infrastructure []model.InfrastructureModel
	PriorityNeeds  []model.PriorityNeedModel
	Attachments    []model.AttachmentModel
	StatusLogs     []model.SchoolStatusLogModel

	FailOn map[string]error
	Calls  int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		Schools: make(map[uuid.UUID]*model.SchoolModel),
		FailOn:  make(map[string]error),
	}
}

// AddSchool menyimpan salinan sekolah (ID dibuat kalau kosong).
func (r *MemoryRepository) AddSchool(s model.SchoolModel) *model.SchoolModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.SchoolID == uuid.Nil {
		s.SchoolID = uuid.New()
	}
	if s.SchoolStatus == "" {
		s.SchoolStatus = model.StatusDraft
	}
	if s.SchoolUpdatedAt.IsZero() {
		s.SchoolUpdatedAt = time.Now()
	}
	cp := s
	r.Schools[s.SchoolID] = &cp
	return &s
}

func (r *MemoryRepository) begin(op string) error {
	r.mu.Lock()
	r.Calls++
	return r.FailOn[op]
}

func (r *MemoryRepository) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Calls
}

/* ===================== Sekolah ===================== */

func (r *MemoryRepository) FindSchoolByUserID(ctx context.Context, userID uuid.UUID) (*model.SchoolModel, error) {
	err := r.begin("FindSchoolByUserID")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for _, s := range r.Schools {
		if s.SchoolUserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) FindSchoolByID(ctx context.Context, schoolID uuid.UUID) (*model.SchoolModel, error) {
	err := r.begin("FindSchoolByID")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s, ok := r.Schools[schoolID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemoryRepository) UpdateSchoolProfile(ctx context.Context, schoolID uuid.UUID, p model.SchoolProfile) error {
	err := r.begin("UpdateSchoolProfile")
	defer r.mu.Unlock()
	if err != nil {
		return err
	}
	if p.NPSN != "" {
		for id, other := range r.Schools {
			if id != schoolID && other.SchoolNPSN == p.NPSN {
				return model.ErrDuplicateNPSN
			}
		}
	}
	if s, ok := r.Schools[schoolID]; ok {
		s.ApplyProfile(p)
		s.SchoolUpdatedAt = time.Now()
	}
	return nil
}

func (r *MemoryRepository) ChangeSchoolStatus(ctx context.Context, ch model.StatusChange) (bool, error) {
	err := r.begin("ChangeSchoolStatus")
	defer r.mu.Unlock()
	if err != nil {
		return false, err
	}
	s, ok := r.Schools[ch.SchoolID]
	if !ok || s.SchoolStatus != ch.From {
		return false, nil
	}
	s.SchoolStatus = ch.To
	s.SchoolReviewNotes = ch.ReviewNotes
	s.SchoolUpdatedAt = ch.At
	at, actor := ch.At, ch.ActorID
	if ch.To == model.StatusPending {
		s.SchoolSubmittedAt = &at
	} else {
		s.SchoolReviewedAt = &at
		s.SchoolReviewedBy = &actor
	}
	r.StatusLogs = append(r.StatusLogs, model.SchoolStatusLogModel{
		StatusLogID:        uuid.New(),
		StatusLogSchoolID:  ch.SchoolID,
		StatusLogFrom:      ch.From,
		StatusLogTo:        ch.To,
		StatusLogNote:      ch.ReviewNotes,
		StatusLogActorID:   ch.ActorID,
		StatusLogSnapshot:  ch.Snapshot,
		StatusLogCreatedAt: ch.At,
	})
	return true, nil
}

func (r *MemoryRepository) ListStatusLogs(ctx context.Context, schoolID uuid.UUID) ([]model.SchoolStatusLogModel, error) {
	err := r.begin("ListStatusLogs")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]model.SchoolStatusLogModel, 0)
	for i := len(r.StatusLogs) - 1; i >= 0; i-- {
		if r.StatusLogs[i].StatusLogSchoolID == schoolID {
			out = append(out, r.StatusLogs[i])
		}
	}
	return out, nil
}

/* ===================== Data per step ===================== */

func (r *MemoryRepository) ListStaffCounts(ctx context.Context, schoolID uuid.UUID, year string) ([]model.StaffCountModel, error) {
	err := r.begin("ListStaffCounts")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return filterRows(r.Staff, func(m model.StaffCountModel) bool {
		return m.StaffCountSchoolID == schoolID && m.StaffCountAcademicYear == year
	}), nil
}

func (r *MemoryRepository) ReplaceStaffCounts(ctx context.Context, schoolID uuid.UUID, year string, rows []model.StaffCountModel) error {
	err := r.begin("ReplaceStaffCounts")
	defer r.mu.Unlock()
	if err != nil {
		return err
	}
	r.Staff = append(filterRows(r.Staff, func(m model.StaffCountModel) bool {
		return !(m.StaffCountSchoolID == schoolID && m.StaffCountAcademicYear == year)
	}), rows...)
	return nil
}

func (r *MemoryRepository) ListEnrollmentCounts(ctx context.Context, schoolID uuid.UUID, year string) ([]model.EnrollmentCountModel, error) {
	err := r.begin("ListEnrollmentCounts")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return filterRows(r.Enrollments, func(m model.EnrollmentCountModel) bool {
		return m.EnrollmentCountSchoolID == schoolID && m.EnrollmentCountAcademicYear == year
	}), nil
}

func (r *MemoryRepository) ReplaceEnrollmentCounts(ctx context.Context, schoolID uuid.UUID, year string, rows []model.EnrollmentCountModel) error {
	err := r.begin("ReplaceEnrollmentCounts")
	defer r.mu.Unlock()
	if err != nil {
		return err
	}
	r.Enrollments = append(filterRows(r.Enrollments, func(m model.EnrollmentCountModel) bool {
		return !(m.EnrollmentCountSchoolID == schoolID && m.EnrollmentCountAcademicYear == year)
	}), rows...)
	return nil
}

func (r *MemoryRepository) ListFacilities(ctx context.Context, schoolID uuid.UUID, year string) ([]model.FacilityModel, error) {
	err := r.begin("ListFacilities")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return filterRows(r.Facilities, func(m model.FacilityModel) bool {
		return m.FacilitySchoolID == schoolID && m.FacilityAcademicYear == year
	}), nil
}

func (r *MemoryRepository) UpsertFacilities(ctx context.Context, rows []model.FacilityModel) error {
	err := r.begin("UpsertFacilities")
	defer r.mu.Unlock()
	if err != nil {
		return err
	}
	for _, in := range rows {
		replaced := false
		for i := range r.Facilities {
			cur := &r.Facilities[i]
			if cur.FacilitySchoolID == in.FacilitySchoolID && cur.FacilityType == in.FacilityType && cur.FacilityAcademicYear == in.FacilityAcademicYear {
				cur.FacilityTotal, cur.FacilityGood, cur.FacilityDamaged, cur.FacilityNote = in.FacilityTotal, in.FacilityGood, in.FacilityDamaged, in.FacilityNote
				replaced = true
				break
			}
		}
		if !replaced {
			r.Facilities = append(r.Facilities, in)
		}
	}
	return nil
}

func (r *MemoryRepository) ListInfrastructure(ctx context.Context, schoolID uuid.UUID, year string) ([]model.InfrastructureModel, error) {
	err := r.begin("ListInfrastructure")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return filterRows(r.Infrastructure, func(m model.InfrastructureModel) bool {
		return m.InfrastructureSchoolID == schoolID && m.InfrastructureAcademicYear == year
	}), nil
}

func (r *MemoryRepository) ReplaceInfrastructure(ctx context.Context, schoolID uuid.UUID, year string, rows []model.InfrastructureModel) error {
	err := r.begin("ReplaceInfrastructure")
	defer r.mu.Unlock()
	if err != nil {
		return err
	}
	r.Infrastructure = append(filterRows(r.Infrastructure, func(m model.InfrastructureModel) bool {
		return !(m.InfrastructureSchoolID == schoolID && m.InfrastructureAcademicYear == year)
	}), rows...)
	return nil
}

func (r *MemoryRepository) ListPriorityNeeds(ctx context.Context, schoolID uuid.UUID, year string) ([]model.PriorityNeedModel, error) {
	err := r.begin("ListPriorityNeeds")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return filterRows(r.PriorityNeeds, func(m model.PriorityNeedModel) bool {
		return m.PriorityNeedSchoolID == schoolID && m.PriorityNeedAcademicYear == year
	}), nil
}

func (r *MemoryRepository) ReplacePriorityNeeds(ctx context.Context, schoolID uuid.UUID, year string, rows []model.PriorityNeedModel) error {
	err := r.begin("ReplacePriorityNeeds")
	defer r.mu.Unlock()
	if err != nil {
		return err
	}
	r.PriorityNeeds = append(filterRows(r.PriorityNeeds, func(m model.PriorityNeedModel) bool {
		return !(m.PriorityNeedSchoolID == schoolID && m.PriorityNeedAcademicYear == year)
	}), rows...)
	return nil
}

func (r *MemoryRepository) ListAttachments(ctx context.Context, schoolID uuid.UUID) ([]model.AttachmentModel, error) {
	err := r.begin("ListAttachments")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return filterRows(r.Attachments, func(m model.AttachmentModel) bool {
		return m.AttachmentSchoolID == schoolID
	}), nil
}

func (r *MemoryRepository) ReplaceAttachments(ctx context.Context, schoolID uuid.UUID, rows []model.AttachmentModel) error {
	err := r.begin("ReplaceAttachments")
	defer r.mu.Unlock()
	if err != nil {
		return err
	}
	r.Attachments = append(filterRows(r.Attachments, func(m model.AttachmentModel) bool {
		return m.AttachmentSchoolID != schoolID
	}), rows...)
	return nil
}

/* ===================== Agregat ===================== */

func (r *MemoryRepository) ListSchools(ctx context.Context, f model.SchoolFilter) ([]model.SchoolModel, int64, error) {
	err := r.begin("ListSchools")
	defer r.mu.Unlock()
	if err != nil {
		return nil, 0, err
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	matched := make([]model.SchoolModel, 0, len(r.Schools))
	for _, s := range r.Schools {
		if f.Status != nil && s.SchoolStatus != *f.Status {
			continue
		}
		if f.SubDistrict != "" && !strings.EqualFold(s.SchoolSubDistrict, f.SubDistrict) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(s.SchoolName), search) && !strings.Contains(s.SchoolNPSN, search) {
			continue
		}
		matched = append(matched, *s)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SchoolUpdatedAt.Equal(matched[j].SchoolUpdatedAt) {
			return matched[i].SchoolName < matched[j].SchoolName
		}
		return matched[i].SchoolUpdatedAt.After(matched[j].SchoolUpdatedAt)
	})

	total := int64(len(matched))
	start := f.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	return matched[start:end], total, nil
}

func (r *MemoryRepository) CountSchoolsByStatus(ctx context.Context) (map[model.SchoolStatus]int64, error) {
	err := r.begin("CountSchoolsByStatus")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make(map[model.SchoolStatus]int64)
	for _, s := range r.Schools {
		out[s.SchoolStatus]++
	}
	return out, nil
}

func (r *MemoryRepository) SumStaffByEmployment(ctx context.Context, year string) (map[model.EmploymentStatus]int64, error) {
	err := r.begin("SumStaffByEmployment")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make(map[model.EmploymentStatus]int64)
	for _, st := range model.EmploymentStatuses {
		out[st] = 0
	}
	for _, m := range r.Staff {
		if m.StaffCountAcademicYear == year {
			out[m.StaffCountEmploymentStatus] += int64(m.StaffCountCount)
		}
	}
	return out, nil
}

func (r *MemoryRepository) SumEnrollmentByGrade(ctx context.Context, year string) (map[model.GradeLevel]int64, error) {
	err := r.begin("SumEnrollmentByGrade")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make(map[model.GradeLevel]int64)
	for _, g := range model.GradeLevels {
		out[g] = 0
	}
	for _, m := range r.Enrollments {
		if m.EnrollmentCountAcademicYear == year {
			out[m.EnrollmentCountGradeLevel] += int64(m.EnrollmentCountStudents)
		}
	}
	return out, nil
}

func (r *MemoryRepository) SumFacilityConditions(ctx context.Context, year string) ([]model.FacilityConditionTotal, error) {
	err := r.begin("SumFacilityConditions")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	byType := make(map[model.FacilityType]*model.FacilityConditionTotal)
	for _, m := range r.Facilities {
		if m.FacilityAcademicYear != year {
			continue
		}
		t, ok := byType[m.FacilityType]
		if !ok {
			t = &model.FacilityConditionTotal{Type: m.FacilityType}
			byType[m.FacilityType] = t
		}
		t.Total += int64(m.FacilityTotal)
		t.Good += int64(m.FacilityGood)
		t.Damaged += int64(m.FacilityDamaged)
	}
	out := make([]model.FacilityConditionTotal, 0, len(byType))
	for _, t := range byType {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (r *MemoryRepository) SumStaffBySchool(ctx context.Context, schoolIDs []uuid.UUID, year string) (map[uuid.UUID]int64, error) {
	err := r.begin("SumStaffBySchool")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	want := idSet(schoolIDs)
	out := make(map[uuid.UUID]int64, len(schoolIDs))
	for _, m := range r.Staff {
		if _, ok := want[m.StaffCountSchoolID]; ok && m.StaffCountAcademicYear == year {
			out[m.StaffCountSchoolID] += int64(m.StaffCountCount)
		}
	}
	return out, nil
}

func (r *MemoryRepository) SumEnrollmentBySchool(ctx context.Context, schoolIDs []uuid.UUID, year string) (map[uuid.UUID]int64, error) {
	err := r.begin("SumEnrollmentBySchool")
	defer r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	want := idSet(schoolIDs)
	out := make(map[uuid.UUID]int64, len(schoolIDs))
	for _, m := range r.Enrollments {
		if _, ok := want[m.EnrollmentCountSchoolID]; ok && m.EnrollmentCountAcademicYear == year {
			out[m.EnrollmentCountSchoolID] += int64(m.EnrollmentCountStudents)
		}
	}
	return out, nil
}

func filterRows[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

// file: internals/features/pendataan/service/repository.go
package service

import (
	"context"

	"github.com/google/uuid"

	model "sarpras_backend/internals/features/pendataan/model"
)

// Repository: collaborator penyimpanan.
// Find* mengembalikan (nil, nil) kalau data tidak ada.
// Replace* / Upsert* atomik: sukses semua atau tidak sama sekali.
type Repository interface {
	// Sekolah
	FindSchoolByUserID(ctx context.Context, userID uuid.UUID) (*model.SchoolModel, error)
	FindSchoolByID(ctx context.Context, schoolID uuid.UUID) (*model.SchoolModel, error)
	UpdateSchoolProfile(ctx context.Context, schoolID uuid.UUID, p model.SchoolProfile) error
	// ChangeSchoolStatus mengembalikan false kalau status saat ini bukan ch.From.
	ChangeSchoolStatus(ctx context.Context, ch model.StatusChange) (bool, error)
	ListStatusLogs(ctx context.Context, schoolID uuid.UUID) ([]model.SchoolStatusLogModel, error)

	// Data per step
	ListStaffCounts(ctx context.Context, schoolID uuid.UUID, year string) ([]model.StaffCountModel, error)
	ReplaceStaffCounts(ctx context.Context, schoolID uuid.UUID, year string, rows []model.StaffCountModel) error

	ListEnrollmentCounts(ctx context.Context, schoolID uuid.UUID, year string) ([]model.EnrollmentCountModel, error)
	ReplaceEnrollmentCounts(ctx context.Context, schoolID uuid.UUID, year string, rows []model.EnrollmentCountModel) error

	ListFacilities(ctx context.Context, schoolID uuid.UUID, year string) ([]model.FacilityModel, error)
	UpsertFacilities(ctx context.Context, rows []model.FacilityModel) error

	ListInfrastructure(ctx context.Context, schoolID uuid.UUID, year string) ([]model.InfrastructureModel, error)
	ReplaceInfrastructure(ctx context.Context, schoolID uuid.UUID, year string, rows []model.InfrastructureModel) error

	ListPriorityNeeds(ctx context.Context, schoolID uuid.UUID, year string) ([]model.PriorityNeedModel, error)
	ReplacePriorityNeeds(ctx context.Context, schoolID uuid.UUID, year string, rows []model.PriorityNeedModel) error

	ListAttachments(ctx context.Context, schoolID uuid.UUID) ([]model.AttachmentModel, error)
	ReplaceAttachments(ctx context.Context, schoolID uuid.UUID, rows []model.AttachmentModel) error

	// Agregat admin dinas
	ListSchools(ctx context.Context, f model.SchoolFilter) ([]model.SchoolModel, int64, error)
	CountSchoolsByStatus(ctx context.Context) (map[model.SchoolStatus]int64, error)
	SumStaffByEmployment(ctx context.Context, year string) (map[model.EmploymentStatus]int64, error)
	SumEnrollmentByGrade(ctx context.Context, year string) (map[model.GradeLevel]int64, error)
	SumFacilityConditions(ctx context.Context, year string) ([]model.FacilityConditionTotal, error)
	SumStaffBySchool(ctx context.Context, schoolIDs []uuid.UUID, year string) (map[uuid.UUID]int64, error)
	SumEnrollmentBySchool(ctx context.Context, schoolIDs []uuid.UUID, year string) (map[uuid.UUID]int64, error)
}

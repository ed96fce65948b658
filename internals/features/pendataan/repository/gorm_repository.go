// file: internals/features/pendataan/repository/gorm_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "sarpras_backend/internals/features/pendataan/model"
)

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

/* =========================================================
   Sekolah
   ========================================================= */

func (r *GormRepository) FindSchoolByUserID(ctx context.Context, userID uuid.UUID) (*model.SchoolModel, error) {
	var m model.SchoolModel
	err := r.DB.WithContext(ctx).
		Where("school_user_id = ?", userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormRepository) FindSchoolByID(ctx context.Context, schoolID uuid.UUID) (*model.SchoolModel, error) {
	var m model.SchoolModel
	err := r.DB.WithContext(ctx).
		Where("school_id = ?", schoolID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

func (r *GormRepository) UpdateSchoolProfile(ctx context.Context, schoolID uuid.UUID, p model.SchoolProfile) error {
	err := r.DB.WithContext(ctx).
		Model(&model.SchoolModel{}).
		Where("school_id = ?", schoolID).
		Updates(map[string]interface{}{
			"school_name":            p.Name,
			"school_npsn":            p.NPSN,
			"school_headmaster_name": p.HeadmasterName,
			"school_headmaster_nip":  p.HeadmasterNIP,
			"school_address":         p.Address,
			"school_sub_district":    p.SubDistrict,
		}).Error
	if isUniqueViolation(err, "uq_schools_npsn") {
		return model.ErrDuplicateNPSN
	}
	return err
}

// ChangeSchoolStatus: UPDATE ... WHERE status = From, lalu insert log di transaksi yang sama.
func (r *GormRepository) ChangeSchoolStatus(ctx context.Context, ch model.StatusChange) (bool, error) {
	changed := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"school_status":       ch.To,
			"school_review_notes": ch.ReviewNotes,
			"school_updated_at":   ch.At,
		}
		if ch.To == model.StatusPending {
			updates["school_submitted_at"] = ch.At
		} else {
			updates["school_reviewed_at"] = ch.At
			updates["school_reviewed_by"] = ch.ActorID
		}

		res := tx.Model(&model.SchoolModel{}).
			Where("school_id = ? AND school_status = ?", ch.SchoolID, ch.From).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		entry := model.SchoolStatusLogModel{
			StatusLogSchoolID:  ch.SchoolID,
			StatusLogFrom:      ch.From,
			StatusLogTo:        ch.To,
			StatusLogNote:      ch.ReviewNotes,
			StatusLogActorID:   ch.ActorID,
			StatusLogCreatedAt: ch.At,
		}
		if len(ch.Snapshot) > 0 {
			entry.StatusLogSnapshot = datatypes.JSON(ch.Snapshot)
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

func (r *GormRepository) ListStatusLogs(ctx context.Context, schoolID uuid.UUID) ([]model.SchoolStatusLogModel, error) {
	var rows []model.SchoolStatusLogModel
	err := r.DB.WithContext(ctx).
		Where("status_log_school_id = ?", schoolID).
		Order("status_log_created_at DESC").
		Find(&rows).Error
	return rows, err
}

/* =========================================================
   Data per step
   ========================================================= */

// replaceRows: delete scope + insert baru dalam satu transaksi.
func replaceRows[T any](ctx context.Context, db *gorm.DB, rows []T, scope func(*gorm.DB) *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zero T
		if err := scope(tx).Delete(&zero).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *GormRepository) ListStaffCounts(ctx context.Context, schoolID uuid.UUID, year string) ([]model.StaffCountModel, error) {
	var rows []model.StaffCountModel
	err := r.DB.WithContext(ctx).
		Where("staff_count_school_id = ? AND staff_count_academic_year = ?", schoolID, year).
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) ReplaceStaffCounts(ctx context.Context, schoolID uuid.UUID, year string, rows []model.StaffCountModel) error {
	return replaceRows(ctx, r.DB, rows, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("staff_count_school_id = ? AND staff_count_academic_year = ?", schoolID, year)
	})
}

func (r *GormRepository) ListEnrollmentCounts(ctx context.Context, schoolID uuid.UUID, year string) ([]model.EnrollmentCountModel, error) {
	var rows []model.EnrollmentCountModel
	err := r.DB.WithContext(ctx).
		Where("enrollment_count_school_id = ? AND enrollment_count_academic_year = ?", schoolID, year).
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) ReplaceEnrollmentCounts(ctx context.Context, schoolID uuid.UUID, year string, rows []model.EnrollmentCountModel) error {
	return replaceRows(ctx, r.DB, rows, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("enrollment_count_school_id = ? AND enrollment_count_academic_year = ?", schoolID, year)
	})
}

func (r *GormRepository) ListFacilities(ctx context.Context, schoolID uuid.UUID, year string) ([]model.FacilityModel, error) {
	var rows []model.FacilityModel
	err := r.DB.WithContext(ctx).
		Where("facility_school_id = ? AND facility_academic_year = ?", schoolID, year).
		Find(&rows).Error
	return rows, err
}

// UpsertFacilities: ON CONFLICT (school, type, year) DO UPDATE, satu statement.
func (r *GormRepository) UpsertFacilities(ctx context.Context, rows []model.FacilityModel) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "facility_school_id"},
				{Name: "facility_type"},
				{Name: "facility_academic_year"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"facility_total",
				"facility_good",
				"facility_damaged",
				"facility_note",
				"facility_updated_at",
			}),
		}).
		Create(&rows).Error
}

func (r *GormRepository) ListInfrastructure(ctx context.Context, schoolID uuid.UUID, year string) ([]model.InfrastructureModel, error) {
	var rows []model.InfrastructureModel
	err := r.DB.WithContext(ctx).
		Where("infrastructure_school_id = ? AND infrastructure_academic_year = ?", schoolID, year).
		Order("infrastructure_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) ReplaceInfrastructure(ctx context.Context, schoolID uuid.UUID, year string, rows []model.InfrastructureModel) error {
	return replaceRows(ctx, r.DB, rows, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("infrastructure_school_id = ? AND infrastructure_academic_year = ?", schoolID, year)
	})
}

func (r *GormRepository) ListPriorityNeeds(ctx context.Context, schoolID uuid.UUID, year string) ([]model.PriorityNeedModel, error) {
	var rows []model.PriorityNeedModel
	err := r.DB.WithContext(ctx).
		Where("priority_need_school_id = ? AND priority_need_academic_year = ? AND priority_need_category = ?",
			schoolID, year, model.PriorityNeedCategory).
		Order("priority_need_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) ReplacePriorityNeeds(ctx context.Context, schoolID uuid.UUID, year string, rows []model.PriorityNeedModel) error {
	return replaceRows(ctx, r.DB, rows, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("priority_need_school_id = ? AND priority_need_academic_year = ? AND priority_need_category = ?",
			schoolID, year, model.PriorityNeedCategory)
	})
}

func (r *GormRepository) ListAttachments(ctx context.Context, schoolID uuid.UUID) ([]model.AttachmentModel, error) {
	var rows []model.AttachmentModel
	err := r.DB.WithContext(ctx).
		Where("attachment_school_id = ?", schoolID).
		Order("attachment_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) ReplaceAttachments(ctx context.Context, schoolID uuid.UUID, rows []model.AttachmentModel) error {
	return replaceRows(ctx, r.DB, rows, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("attachment_school_id = ?", schoolID)
	})
}

/* =========================================================
   Agregat admin dinas
   ========================================================= */

func (r *GormRepository) ListSchools(ctx context.Context, f model.SchoolFilter) ([]model.SchoolModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.SchoolModel{})
	if f.Status != nil {
		q = q.Where("school_status = ?", *f.Status)
	}
	if f.SubDistrict != "" {
		q = q.Where("school_sub_district ILIKE ?", f.SubDistrict)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("(school_name ILIKE ? OR school_npsn ILIKE ?)", like, like)
	}
	// Count dan Find masing-masing mulai dari filter yang sama
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.SchoolModel
	if err := q.
		Order("school_updated_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormRepository) CountSchoolsByStatus(ctx context.Context) (map[model.SchoolStatus]int64, error) {
	var rows []struct {
		Status model.SchoolStatus
		Total  int64
	}
	err := r.DB.WithContext(ctx).
		Model(&model.SchoolModel{}).
		Select("school_status AS status, COUNT(*) AS total").
		Group("school_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.SchoolStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func (r *GormRepository) SumStaffByEmployment(ctx context.Context, year string) (map[model.EmploymentStatus]int64, error) {
	var rows []struct {
		Status model.EmploymentStatus
		Total  int64
	}
	err := r.DB.WithContext(ctx).
		Model(&model.StaffCountModel{}).
		Select("staff_count_employment_status AS status, COALESCE(SUM(staff_count_count), 0) AS total").
		Where("staff_count_academic_year = ?", year).
		Group("staff_count_employment_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.EmploymentStatus]int64, len(model.EmploymentStatuses))
	for _, st := range model.EmploymentStatuses {
		out[st] = 0
	}
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func (r *GormRepository) SumEnrollmentByGrade(ctx context.Context, year string) (map[model.GradeLevel]int64, error) {
	var rows []struct {
		Grade model.GradeLevel
		Total int64
	}
	err := r.DB.WithContext(ctx).
		Model(&model.EnrollmentCountModel{}).
		Select("enrollment_count_grade_level AS grade, COALESCE(SUM(enrollment_count_students), 0) AS total").
		Where("enrollment_count_academic_year = ?", year).
		Group("enrollment_count_grade_level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.GradeLevel]int64, len(model.GradeLevels))
	for _, g := range model.GradeLevels {
		out[g] = 0
	}
	for _, row := range rows {
		out[row.Grade] = row.Total
	}
	return out, nil
}

func (r *GormRepository) SumFacilityConditions(ctx context.Context, year string) ([]model.FacilityConditionTotal, error) {
	var rows []model.FacilityConditionTotal
	err := r.DB.WithContext(ctx).
		Model(&model.FacilityModel{}).
		Select(`facility_type,
			COALESCE(SUM(facility_total), 0)   AS total,
			COALESCE(SUM(facility_good), 0)    AS good,
			COALESCE(SUM(facility_damaged), 0) AS damaged`).
		Where("facility_academic_year = ?", year).
		Group("facility_type").
		Order("facility_type ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormRepository) SumStaffBySchool(ctx context.Context, schoolIDs []uuid.UUID, year string) (map[uuid.UUID]int64, error) {
	return r.sumBySchool(ctx, &model.StaffCountModel{}, "staff_count_school_id", "staff_count_count", "staff_count_academic_year", schoolIDs, year)
}

func (r *GormRepository) SumEnrollmentBySchool(ctx context.Context, schoolIDs []uuid.UUID, year string) (map[uuid.UUID]int64, error) {
	return r.sumBySchool(ctx, &model.EnrollmentCountModel{}, "enrollment_count_school_id", "enrollment_count_students", "enrollment_count_academic_year", schoolIDs, year)
}

func (r *GormRepository) sumBySchool(ctx context.Context, table interface{}, schoolCol, valueCol, yearCol string, schoolIDs []uuid.UUID, year string) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(schoolIDs))
	if len(schoolIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		SchoolID uuid.UUID
		Total    int64
	}
	err := r.DB.WithContext(ctx).
		Model(table).
		Select(schoolCol+" AS school_id, COALESCE(SUM("+valueCol+"), 0) AS total").
		Where(schoolCol+" IN ? AND "+yearCol+" = ?", schoolIDs, year).
		Group(schoolCol).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.SchoolID] = row.Total
	}
	return out, nil
}

// file: internals/features/pendataan/model/counts_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== Jumlah guru (PNS/PPPK/Honorer × L/P) ===================== */

type StaffCountModel struct {
	StaffCountID               uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:staff_count_id" json:"staff_count_id"`
	StaffCountSchoolID         uuid.UUID        `gorm:"type:uuid;not null;column:staff_count_school_id;uniqueIndex:uq_staff_count_key,priority:1" json:"staff_count_school_id"`
	StaffCountEmploymentStatus EmploymentStatus `gorm:"type:varchar(16);not null;column:staff_count_employment_status;uniqueIndex:uq_staff_count_key,priority:2" json:"staff_count_employment_status"`
	StaffCountGender           Gender           `gorm:"type:varchar(1);not null;column:staff_count_gender;uniqueIndex:uq_staff_count_key,priority:3" json:"staff_count_gender"`
	StaffCountCount            int              `gorm:"type:int;not null;default:0;column:staff_count_count" json:"staff_count_count"`
	StaffCountAcademicYear     string           `gorm:"type:varchar(9);not null;column:staff_count_academic_year;uniqueIndex:uq_staff_count_key,priority:4" json:"staff_count_academic_year"`

	StaffCountCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:staff_count_created_at" json:"staff_count_created_at"`
	StaffCountUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:staff_count_updated_at" json:"staff_count_updated_at"`
}

func (StaffCountModel) TableName() string { return "school_staff_counts" }

/* ===================== Rombongan belajar (kelas 7-9 × L/P) ===================== */

type EnrollmentCountModel struct {
	EnrollmentCountID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:enrollment_count_id" json:"enrollment_count_id"`
	EnrollmentCountSchoolID     uuid.UUID  `gorm:"type:uuid;not null;column:enrollment_count_school_id;uniqueIndex:uq_enrollment_count_key,priority:1" json:"enrollment_count_school_id"`
	EnrollmentCountGradeLevel   GradeLevel `gorm:"type:smallint;not null;column:enrollment_count_grade_level;uniqueIndex:uq_enrollment_count_key,priority:2" json:"enrollment_count_grade_level"`
	EnrollmentCountGender       Gender     `gorm:"type:varchar(1);not null;column:enrollment_count_gender;uniqueIndex:uq_enrollment_count_key,priority:3" json:"enrollment_count_gender"`
	EnrollmentCountStudents     int        `gorm:"type:int;not null;default:0;column:enrollment_count_students" json:"enrollment_count_students"`
	EnrollmentCountAcademicYear string     `gorm:"type:varchar(9);not null;column:enrollment_count_academic_year;uniqueIndex:uq_enrollment_count_key,priority:4" json:"enrollment_count_academic_year"`

	EnrollmentCountCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:enrollment_count_created_at" json:"enrollment_count_created_at"`
	EnrollmentCountUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:enrollment_count_updated_at" json:"enrollment_count_updated_at"`
}

func (EnrollmentCountModel) TableName() string { return "school_enrollment_counts" }

// file: internals/features/pendataan/model/status_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Riwayat transisi status sekolah (submit / approve / minta revisi).
type SchoolStatusLogModel struct {
	StatusLogID       uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:status_log_id" json:"status_log_id"`
	StatusLogSchoolID uuid.UUID      `gorm:"type:uuid;not null;index:idx_status_log_school,priority:1;column:status_log_school_id" json:"status_log_school_id"`
	StatusLogFrom     SchoolStatus   `gorm:"type:varchar(16);not null;column:status_log_from" json:"status_log_from"`
	StatusLogTo       SchoolStatus   `gorm:"type:varchar(16);not null;column:status_log_to" json:"status_log_to"`
	StatusLogNote     *string        `gorm:"type:text;column:status_log_note" json:"status_log_note,omitempty"`
	StatusLogActorID  uuid.UUID      `gorm:"type:uuid;not null;column:status_log_actor_id" json:"status_log_actor_id"`
	StatusLogSnapshot datatypes.JSON `gorm:"type:jsonb;column:status_log_snapshot" json:"status_log_snapshot,omitempty"`

	StatusLogCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();index:idx_status_log_school,priority:2;column:status_log_created_at" json:"status_log_created_at"`
}

func (SchoolStatusLogModel) TableName() string { return "school_status_logs" }

/* ===================== Baris agregat (dashboard / rekap) ===================== */

type FacilityConditionTotal struct {
	Type    FacilityType `gorm:"column:facility_type" json:"facility_type"`
	Total   int64        `gorm:"column:total" json:"total"`
	Good    int64        `gorm:"column:good" json:"good"`
	Damaged int64        `gorm:"column:damaged" json:"damaged"`
}

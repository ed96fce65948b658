// file: internals/features/pendataan/model/inventory_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== Sarana (ruang) ===================== */

// Asumsi: good + damaged <= total (tidak dipaksa validasi).
type FacilityModel struct {
	FacilityID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:facility_id" json:"facility_id"`
	FacilitySchoolID     uuid.UUID    `gorm:"type:uuid;not null;column:facility_school_id;uniqueIndex:uq_facility_key,priority:1" json:"facility_school_id"`
	FacilityType         FacilityType `gorm:"type:varchar(32);not null;column:facility_type;uniqueIndex:uq_facility_key,priority:2" json:"facility_type"`
	FacilityTotal        int          `gorm:"type:int;not null;default:0;column:facility_total" json:"facility_total"`
	FacilityGood         int          `gorm:"type:int;not null;default:0;column:facility_good" json:"facility_good"`
	FacilityDamaged      int          `gorm:"type:int;not null;default:0;column:facility_damaged" json:"facility_damaged"`
	FacilityNote         string       `gorm:"type:text;not null;default:'';column:facility_note" json:"facility_note"`
	FacilityAcademicYear string       `gorm:"type:varchar(9);not null;column:facility_academic_year;uniqueIndex:uq_facility_key,priority:3" json:"facility_academic_year"`

	FacilityCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:facility_created_at" json:"facility_created_at"`
	FacilityUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:facility_updated_at" json:"facility_updated_at"`
}

func (FacilityModel) TableName() string { return "school_facilities" }

func (m FacilityModel) HasAnyCount() bool {
	return m.FacilityTotal > 0 || m.FacilityGood > 0 || m.FacilityDamaged > 0
}

/* ===================== Prasarana ===================== */

// Tipe LAINNYA boleh banyak baris (custom_name), tanpa unique constraint.
type InfrastructureModel struct {
	InfrastructureID           uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:infrastructure_id" json:"infrastructure_id"`
	InfrastructureSchoolID     uuid.UUID          `gorm:"type:uuid;not null;column:infrastructure_school_id;index:idx_infrastructure_scope,priority:1" json:"infrastructure_school_id"`
	InfrastructureType         InfrastructureType `gorm:"type:varchar(32);not null;column:infrastructure_type" json:"infrastructure_type"`
	InfrastructureCustomName   *string            `gorm:"type:varchar(120);column:infrastructure_custom_name" json:"infrastructure_custom_name,omitempty"`
	InfrastructureTotal        int                `gorm:"type:int;not null;default:0;column:infrastructure_total" json:"infrastructure_total"`
	InfrastructureGood         int                `gorm:"type:int;not null;default:0;column:infrastructure_good" json:"infrastructure_good"`
	InfrastructureDamaged      int                `gorm:"type:int;not null;default:0;column:infrastructure_damaged" json:"infrastructure_damaged"`
	InfrastructureNote         string             `gorm:"type:text;not null;default:'';column:infrastructure_note" json:"infrastructure_note"`
	InfrastructureAcademicYear string             `gorm:"type:varchar(9);not null;column:infrastructure_academic_year;index:idx_infrastructure_scope,priority:2" json:"infrastructure_academic_year"`

	InfrastructureCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:infrastructure_created_at" json:"infrastructure_created_at"`
	InfrastructureUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:infrastructure_updated_at" json:"infrastructure_updated_at"`
}

func (InfrastructureModel) TableName() string { return "school_infrastructures" }

func (m InfrastructureModel) HasAnyCount() bool {
	return m.InfrastructureTotal > 0 || m.InfrastructureGood > 0 || m.InfrastructureDamaged > 0
}

/* ===================== Kebutuhan prioritas ===================== */

// Penyimpanan boleh banyak baris, tapi UI hanya memakai baris pertama.
type PriorityNeedModel struct {
	PriorityNeedID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:priority_need_id" json:"priority_need_id"`
	PriorityNeedSchoolID     uuid.UUID `gorm:"type:uuid;not null;column:priority_need_school_id;index:idx_priority_need_scope,priority:1" json:"priority_need_school_id"`
	PriorityNeedCategory     string    `gorm:"type:varchar(32);not null;column:priority_need_category" json:"priority_need_category"`
	PriorityNeedDescription  string    `gorm:"type:text;not null;column:priority_need_description" json:"priority_need_description"`
	PriorityNeedAcademicYear string    `gorm:"type:varchar(9);not null;column:priority_need_academic_year;index:idx_priority_need_scope,priority:2" json:"priority_need_academic_year"`

	PriorityNeedCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:priority_need_created_at" json:"priority_need_created_at"`
	PriorityNeedUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:priority_need_updated_at" json:"priority_need_updated_at"`
}

func (PriorityNeedModel) TableName() string { return "school_priority_needs" }

/* ===================== Lampiran ===================== */

type AttachmentModel struct {
	AttachmentID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attachment_id" json:"attachment_id"`
	AttachmentSchoolID     uuid.UUID `gorm:"type:uuid;not null;index;column:attachment_school_id" json:"attachment_school_id"`
	AttachmentDocumentName string    `gorm:"type:varchar(160);not null;column:attachment_document_name" json:"attachment_document_name"`
	AttachmentURL          string    `gorm:"type:text;not null;column:attachment_url" json:"attachment_url"`
	AttachmentNote         string    `gorm:"type:text;not null;default:'';column:attachment_note" json:"attachment_note"`

	AttachmentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:attachment_created_at" json:"attachment_created_at"`
}

func (AttachmentModel) TableName() string { return "school_attachments" }

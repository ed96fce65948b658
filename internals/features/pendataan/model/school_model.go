// file: internals/features/pendataan/model/school_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolModel struct {
	SchoolID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:school_id" json:"school_id"`
	SchoolUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_schools_user;column:school_user_id" json:"school_user_id"`

	// Identitas
	// unik hanya untuk NPSN terisi pada sekolah aktif
	SchoolNPSN string `gorm:"type:varchar(8);not null;default:'';uniqueIndex:uq_schools_npsn,where:school_npsn <> '' AND school_deleted_at IS NULL;column:school_npsn" json:"school_npsn"`
	SchoolName string `gorm:"type:varchar(160);not null;default:'';column:school_name" json:"school_name"`

	// Profil
	SchoolHeadmasterName string `gorm:"type:varchar(120);not null;default:'';column:school_headmaster_name" json:"school_headmaster_name"`
	SchoolHeadmasterNIP  string `gorm:"type:varchar(32);not null;default:'';column:school_headmaster_nip" json:"school_headmaster_nip"`
	SchoolAddress        string `gorm:"type:text;not null;default:'';column:school_address" json:"school_address"`
	SchoolSubDistrict    string `gorm:"type:varchar(80);not null;default:'';index:idx_schools_sub_district;column:school_sub_district" json:"school_sub_district"`

	// Workflow
	SchoolStatus      SchoolStatus `gorm:"type:varchar(16);not null;default:'DRAFT';index:idx_schools_status;column:school_status" json:"school_status"`
	SchoolReviewNotes *string      `gorm:"type:text;column:school_review_notes" json:"school_review_notes,omitempty"`
	SchoolSubmittedAt *time.Time   `gorm:"type:timestamptz;column:school_submitted_at" json:"school_submitted_at,omitempty"`
	SchoolReviewedAt  *time.Time   `gorm:"type:timestamptz;column:school_reviewed_at" json:"school_reviewed_at,omitempty"`
	SchoolReviewedBy  *uuid.UUID   `gorm:"type:uuid;column:school_reviewed_by" json:"school_reviewed_by,omitempty"`

	// Audit
	SchoolCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:school_created_at" json:"school_created_at"`
	SchoolUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:school_updated_at" json:"school_updated_at"`
	SchoolDeletedAt gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"school_deleted_at,omitempty"`
}

func (SchoolModel) TableName() string { return "schools" }

// ErrDuplicateNPSN: NPSN sudah dipakai sekolah lain.
var ErrDuplicateNPSN = errors.New("npsn sudah terdaftar")

// SchoolProfile: kolom profil yang diisi dari step 1.
type SchoolProfile struct {
	Name           string
	NPSN           string
	HeadmasterName string
	HeadmasterNIP  string
	Address        string
	SubDistrict    string
}

func (m *SchoolModel) Profile() SchoolProfile {
	return SchoolProfile{
		Name:           m.SchoolName,
		NPSN:           m.SchoolNPSN,
		HeadmasterName: m.SchoolHeadmasterName,
		HeadmasterNIP:  m.SchoolHeadmasterNIP,
		Address:        m.SchoolAddress,
		SubDistrict:    m.SchoolSubDistrict,
	}
}

func (m *SchoolModel) ApplyProfile(p SchoolProfile) {
	m.SchoolName = p.Name
	m.SchoolNPSN = p.NPSN
	m.SchoolHeadmasterName = p.HeadmasterName
	m.SchoolHeadmasterNIP = p.HeadmasterNIP
	m.SchoolAddress = p.Address
	m.SchoolSubDistrict = p.SubDistrict
}

// IsComplete: keenam field profil terisi (setelah trim).
func (p SchoolProfile) IsComplete() bool {
	for _, v := range []string{p.Name, p.NPSN, p.HeadmasterName, p.HeadmasterNIP, p.Address, p.SubDistrict} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// StatusChange: perubahan status bersyarat (WHERE status = From) + catatan riwayat.
type StatusChange struct {
	SchoolID    uuid.UUID
	From        SchoolStatus
	To          SchoolStatus
	ReviewNotes *string // nil = dikosongkan
	ActorID     uuid.UUID
	At          time.Time
	Snapshot    []byte // JSON flag kelengkapan saat transisi
}

// SchoolFilter: filter list admin.
type SchoolFilter struct {
	Status      *SchoolStatus
	SubDistrict string
	Search      string // ILIKE nama / NPSN
	Limit       int
	Offset      int
}

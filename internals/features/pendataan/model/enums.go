// file: internals/features/pendataan/model/enums.go
package model

/* ===================== Status sekolah (workflow) ===================== */

// Sesuaikan dengan CHECK: 'DRAFT','PENDING','APPROVED','REJECTED'
type SchoolStatus string

const (
	StatusDraft    SchoolStatus = "DRAFT"
	StatusPending  SchoolStatus = "PENDING"
	StatusApproved SchoolStatus = "APPROVED"
	StatusRejected SchoolStatus = "REJECTED"
)

func (s SchoolStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsEditable: form wizard hanya boleh diubah saat DRAFT atau REJECTED.
func (s SchoolStatus) IsEditable() bool {
	return s == StatusDraft || s == StatusRejected
}

/* ===================== Guru / tenaga pendidik ===================== */

type EmploymentStatus string

const (
	EmploymentPermanent   EmploymentStatus = "PNS"
	EmploymentContractGov EmploymentStatus = "PPPK"
	EmploymentHonorary    EmploymentStatus = "HONORER"
)

var EmploymentStatuses = []EmploymentStatus{
	EmploymentPermanent,
	EmploymentContractGov,
	EmploymentHonorary,
}

// L = laki-laki, P = perempuan
type Gender string

const (
	GenderMale   Gender = "L"
	GenderFemale Gender = "P"
)

/* ===================== Rombongan belajar ===================== */

type GradeLevel int16

const (
	Grade7 GradeLevel = 7
	Grade8 GradeLevel = 8
	Grade9 GradeLevel = 9
)

var GradeLevels = []GradeLevel{Grade7, Grade8, Grade9}

/* ===================== Sarana (ruang) ===================== */

type FacilityType string

const (
	FacilityClassroom     FacilityType = "RUANG_KELAS"
	FacilityLibrary       FacilityType = "RUANG_PERPUSTAKAAN"
	FacilityScienceLab    FacilityType = "LAB_IPA"
	FacilityComputerLab   FacilityType = "LAB_KOMPUTER"
	FacilityPrincipalRoom FacilityType = "RUANG_KEPALA_SEKOLAH"
	FacilityTeacherRoom   FacilityType = "RUANG_GURU"
	FacilityAdminRoom     FacilityType = "RUANG_TATA_USAHA"
	FacilityHealthRoom    FacilityType = "RUANG_UKS"
)

// RequiredFacilityTypes: 8 jenis ruang yang wajib ada agar step sarana dianggap lengkap.
var RequiredFacilityTypes = []FacilityType{
	FacilityClassroom,
	FacilityLibrary,
	FacilityScienceLab,
	FacilityComputerLab,
	FacilityPrincipalRoom,
	FacilityTeacherRoom,
	FacilityAdminRoom,
	FacilityHealthRoom,
}

/* ===================== Prasarana (perabot / peralatan) ===================== */

type InfrastructureType string

const (
	InfraStudentDesks   InfrastructureType = "MEJA_KURSI_SISWA"
	InfraComputers      InfrastructureType = "KOMPUTER"
	InfraStudentToilets InfrastructureType = "TOILET_SISWA"
	InfraTeacherToilets InfrastructureType = "TOILET_GURU"
	InfraOther          InfrastructureType = "LAINNYA"
)

/* ===================== Kebutuhan prioritas ===================== */

const PriorityNeedCategory = "KEBUTUHAN_PRIORITAS"

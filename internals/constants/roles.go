package constants

import "fmt"

const (
	RoleOperator   = "operator_sekolah"
	RoleAdminDinas = "admin_dinas"
)

// Template pesan error role
const (
	ErrOnlyOperatorCanAccess = "❌ Hanya operator sekolah yang boleh mengakses fitur %s."
	ErrOnlyAdminCanAccess    = "❌ Hanya admin dinas yang boleh mengakses fitur %s."
)

func RoleErrorOperator(feature string) string {
	return fmt.Sprintf(ErrOnlyOperatorCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminCanAccess, feature)
}

var (
	OperatorOnly = []string{
		RoleOperator,
	}

	AdminOnly = []string{
		RoleAdminDinas,
	}
)

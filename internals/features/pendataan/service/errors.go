// file: internals/features/pendataan/service/errors.go
package service

import (
	"errors"
	"fmt"
)

// Pesan generik untuk semua kegagalan persistence (error asli tidak pernah dikirim ke user).
const GenericErrorMessage = "Terjadi kesalahan pada server. Silakan coba lagi."

var (
	ErrUnauthorized   = errors.New("Unauthorized")
	ErrSchoolNotFound = errors.New("Data sekolah tidak ditemukan")
)

// ValidationFailure: invariant bisnis tidak terpenuhi (bukan validasi skema field).
type ValidationFailure struct {
	Field   string
	Message string
}

func (e *ValidationFailure) Error() string { return e.Message }

func newValidationFailure(field, msg string) *ValidationFailure {
	return &ValidationFailure{Field: field, Message: msg}
}

// PersistenceFailure: collaborator penyimpanan gagal.
type PersistenceFailure struct {
	Op  string
	Err error
}

func (e *PersistenceFailure) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceFailure) Unwrap() error { return e.Err }

// UserMessage: pesan yang aman ditampilkan ke user untuk error apa pun dari service.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var vf *ValidationFailure
	switch {
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized.Error()
	case errors.Is(err, ErrSchoolNotFound):
		return ErrSchoolNotFound.Error()
	case errors.As(err, &vf):
		return vf.Message
	default:
		return GenericErrorMessage
	}
}

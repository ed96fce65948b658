// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"strings"
	"time"

	"sarpras_backend/internals/features/users/auth/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

/* =========================================================
   Request: register operator sekolah (user + sekolah DRAFT)
   ========================================================= */

type RegisterRequest struct {
	UserName   string `json:"user_name" validate:"required,min=3,max=50"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	SchoolName string `json:"school_name" validate:"required,max=160"`
	NPSN       string `json:"npsn" validate:"required,len=8,numeric"`
}

func (r *RegisterRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.SchoolName = strings.TrimSpace(r.SchoolName)
	r.NPSN = strings.TrimSpace(r.NPSN)
}

func (r *RegisterRequest) Validate(v *validator.Validate) error { return v.Struct(r) }

/* =========================================================
   Request: login (email atau user_name)
   ========================================================= */

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,max=255"`
	Password   string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Identifier = strings.TrimSpace(r.Identifier)
}

func (r *LoginRequest) Validate(v *validator.Validate) error { return v.Struct(r) }

/* =========================================================
   Response
   ========================================================= */

type UserResponse struct {
	ID       uuid.UUID  `json:"id"`
	UserName string     `json:"user_name"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	SchoolID *uuid.UUID `json:"school_id,omitempty"`
}

func FromUserModel(m *model.UserModel, schoolID *uuid.UUID) UserResponse {
	return UserResponse{
		ID:       m.ID,
		UserName: m.UserName,
		Email:    m.Email,
		Role:     m.Role,
		SchoolID: schoolID,
	}
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

package user

import (
	"errors"
	"strings"

	"sarpras_backend/internals/configs"
	"sarpras_backend/internals/constants"
	"sarpras_backend/internals/features/users/auth/model"
	authService "sarpras_backend/internals/features/users/auth/service"

	"gorm.io/gorm"
)

type AdminSeed struct {
	UserName string
	Email    string
	Password string
}

// AdminSeedFromEnv: ADMIN_DINAS_USERNAME / ADMIN_DINAS_EMAIL / ADMIN_DINAS_PASSWORD.
func AdminSeedFromEnv() AdminSeed {
	return AdminSeed{
		UserName: configs.GetEnv("ADMIN_DINAS_USERNAME", "admin_dinas"),
		Email:    strings.ToLower(configs.GetEnv("ADMIN_DINAS_EMAIL")),
		Password: configs.GetEnv("ADMIN_DINAS_PASSWORD"),
	}
}

// SeedAdminDinas: buat akun admin dinas pertama kalau email belum terdaftar.
func SeedAdminDinas(db *gorm.DB, data AdminSeed) error {
	log := configs.Logger()
	if data.Email == "" || len(data.Password) < 8 {
		return errors.New("ADMIN_DINAS_EMAIL wajib diisi dan ADMIN_DINAS_PASSWORD minimal 8 karakter")
	}

	var existing model.UserModel
	err := db.Where("email = ?", data.Email).First(&existing).Error
	if err == nil {
		log.Info().Str("email", data.Email).Msg("ℹ️ Admin dinas sudah ada, dilewati.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// 🔐 Hash password sebelum disimpan
	hashed, err := authService.HashPassword(data.Password)
	if err != nil {
		return err
	}
	admin := model.UserModel{
		UserName: data.UserName,
		Email:    data.Email,
		Password: hashed,
		Role:     constants.RoleAdminDinas,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info().Str("email", data.Email).Msg("✅ Admin dinas dibuat")
	return nil
}

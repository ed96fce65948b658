// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	schoolModel "sarpras_backend/internals/features/pendataan/model"
	authModel "sarpras_backend/internals/features/users/auth/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* ====================== USER ====================== */

// FindUserByEmailOrUsername: (nil, nil) kalau tidak ada.
func FindUserByEmailOrUsername(ctx context.Context, db *gorm.DB, identifier string) (*authModel.UserModel, error) {
	var user authModel.UserModel
	err := db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) OR user_name = ?", identifier, identifier).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*authModel.UserModel, error) {
	var user authModel.UserModel
	err := db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindSchoolIDByUser: sekolah milik operator (nil kalau admin/belum ada).
func FindSchoolIDByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*uuid.UUID, error) {
	var school schoolModel.SchoolModel
	err := db.WithContext(ctx).
		Select("school_id").
		Where("school_user_id = ?", userID).
		First(&school).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &school.SchoolID, nil
}

// CreateUserWithSchool: user + sekolah DRAFT dalam satu transaksi.
func CreateUserWithSchool(ctx context.Context, db *gorm.DB, user *authModel.UserModel, school *schoolModel.SchoolModel) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		school.SchoolUserID = user.ID
		return tx.Create(school).Error
	})
}

/* ====================== BLACKLIST ====================== */

// BlacklistToken: idempotent (unique token → update expired_at).
func BlacklistToken(ctx context.Context, db *gorm.DB, tokenHash string, expiredAt time.Time) error {
	row := authModel.TokenBlacklist{Token: tokenHash, ExpiredAt: expiredAt}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"expired_at": expiredAt, "deleted_at": nil}),
	}).Create(&row).Error
}

func IsTokenBlacklisted(ctx context.Context, db *gorm.DB, tokenHash string, now time.Time) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", tokenHash, now).
		Count(&n).Error
	return n > 0, err
}

// CleanupExpiredBlacklist: hard delete baris yang expired sebelum `before`.
func CleanupExpiredBlacklist(ctx context.Context, db *gorm.DB, before time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Unscoped().
		Where("expired_at < ?", before).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}

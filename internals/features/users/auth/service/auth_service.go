package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"sarpras_backend/internals/configs"
	"sarpras_backend/internals/constants"
	schoolModel "sarpras_backend/internals/features/pendataan/model"
	"sarpras_backend/internals/features/users/auth/dto"
	authModel "sarpras_backend/internals/features/users/auth/model"
	authRepo "sarpras_backend/internals/features/users/auth/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const blacklistCheckTimeout = 2 * time.Second

var (
	ErrDuplicateAccount   = fiber.NewError(fiber.StatusConflict, "Email, username, atau NPSN sudah terdaftar")
	ErrInvalidCredentials = fiber.NewError(fiber.StatusUnauthorized, "Identifier atau Password salah")
	ErrAccountInactive    = fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	ErrUserNotFound       = fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	errInternal           = fiber.NewError(fiber.StatusInternalServerError, "Terjadi kesalahan pada server. Silakan coba lagi.")
)

type AuthService struct {
	DB     *gorm.DB
	Secret string
	TTL    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		DB:     db,
		Secret: strings.TrimSpace(secret),
		TTL:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
		log:    configs.Logger().With().Str("component", "auth").Logger(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

/* ==========================
   REGISTER
========================== */

// Register: buat operator sekolah + record sekolah (DRAFT) sekaligus.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	var n int64
	if err := s.DB.WithContext(ctx).
		Model(&schoolModel.SchoolModel{}).
		Where("school_npsn = ?", req.NPSN).
		Count(&n).Error; err != nil {
		s.log.Error().Err(err).Msg("cek NPSN gagal")
		return nil, errInternal
	}
	if n > 0 {
		return nil, ErrDuplicateAccount
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("hash password gagal")
		return nil, errInternal
	}

	user := authModel.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		Password: hash,
		Role:     constants.RoleOperator,
		IsActive: true,
	}
	school := schoolModel.SchoolModel{
		SchoolName:   req.SchoolName,
		SchoolNPSN:   req.NPSN,
		SchoolStatus: schoolModel.StatusDraft,
	}
	if err := authRepo.CreateUserWithSchool(ctx, s.DB, &user, &school); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateAccount
		}
		s.log.Error().Err(err).Msg("register gagal")
		return nil, errInternal
	}

	s.log.Info().Str("user_id", user.ID.String()).Str("school_id", school.SchoolID.String()).Msg("operator terdaftar")
	resp := dto.FromUserModel(&user, &school.SchoolID)
	return &resp, nil
}

/* ==========================
   LOGIN
========================== */

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := authRepo.FindUserByEmailOrUsername(ctx, s.DB, req.Identifier)
	if err != nil {
		s.log.Error().Err(err).Msg("cari user gagal")
		return nil, errInternal
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := CheckPasswordHash(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	var schoolID *uuid.UUID
	if user.Role == constants.RoleOperator {
		if schoolID, err = authRepo.FindSchoolIDByUser(ctx, s.DB, user.ID); err != nil {
			s.log.Error().Err(err).Msg("cari sekolah user gagal")
			return nil, errInternal
		}
	}

	now := s.now()
	token, err := SignAccessToken(BuildAccessClaims(*user, schoolID, now, s.TTL), s.Secret)
	if err != nil {
		s.log.Error().Err(err).Msg("sign token gagal")
		return nil, errInternal
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   now.Add(s.TTL),
		User:        dto.FromUserModel(user, schoolID),
	}, nil
}

/* ==========================
   LOGOUT & BLACKLIST
========================== */

// Logout: idempotent; token kosong tidak dianggap error.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil
	}
	exp := blacklistExpiry(rawToken, s.Secret, s.now(), s.TTL)
	if err := authRepo.BlacklistToken(ctx, s.DB, HashToken(rawToken, s.Secret), exp); err != nil {
		s.log.Error().Err(err).Msg("blacklist token gagal")
		return errInternal
	}
	return nil
}

// IsBlacklisted dipakai AuthJWT.BlacklistChecker.
func (s *AuthService) IsBlacklisted(rawToken string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), blacklistCheckTimeout)
	defer cancel()
	return authRepo.IsTokenBlacklisted(ctx, s.DB, HashToken(rawToken, s.Secret), s.now())
}

// PurgeExpired: dipanggil job cron.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	return authRepo.CleanupExpiredBlacklist(ctx, s.DB, s.now())
}

/* ==========================
   ME
========================== */

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		s.log.Error().Err(err).Msg("cari user gagal")
		return nil, errInternal
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	var schoolID *uuid.UUID
	if user.Role == constants.RoleOperator {
		if schoolID, err = authRepo.FindSchoolIDByUser(ctx, s.DB, user.ID); err != nil {
			s.log.Error().Err(err).Msg("cari sekolah user gagal")
			return nil, errInternal
		}
	}
	resp := dto.FromUserModel(user, schoolID)
	return &resp, nil
}

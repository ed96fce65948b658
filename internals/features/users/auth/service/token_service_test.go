package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"sarpras_backend/internals/constants"
	"sarpras_backend/internals/features/users/auth/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)

	assert.NoError(t, CheckPasswordHash(hash, "rahasia123"))
	assert.Error(t, CheckPasswordHash(hash, "salah"))
}

func TestAccessTokenClaims(t *testing.T) {
	user := model.UserModel{ID: uuid.New(), UserName: "op_smp1", Role: constants.RoleOperator}
	schoolID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	raw, err := SignAccessToken(BuildAccessClaims(user, &schoolID, now, time.Hour), "s3cret")
	require.NoError(t, err)

	tok, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)

	assert.Equal(t, user.ID.String(), claims["id"])
	assert.Equal(t, constants.RoleOperator, claims["role"])
	assert.Equal(t, schoolID.String(), claims["school_id"])
	assert.Equal(t, float64(now.Add(time.Hour).Unix()), claims["exp"])

	admin := model.UserModel{ID: uuid.New(), Role: constants.RoleAdminDinas}
	_, has := BuildAccessClaims(admin, nil, now, time.Hour)["school_id"]
	assert.False(t, has)
}

func TestHashTokenDeterministic(t *testing.T) {
	a := HashToken("token-a", "k")
	assert.Equal(t, a, HashToken("token-a", "k"))
	assert.NotEqual(t, a, HashToken("token-b", "k"))
	assert.NotEqual(t, a, HashToken("token-a", "k2"))
	assert.Len(t, a, 64)
}

func TestBlacklistExpiry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	user := model.UserModel{ID: uuid.New(), Role: constants.RoleOperator}
	raw, err := SignAccessToken(BuildAccessClaims(user, nil, now, 2*time.Hour), "k")
	require.NoError(t, err)

	assert.Equal(t, now.Add(2*time.Hour+time.Minute).Unix(), blacklistExpiry(raw, "k", now, time.Hour).Unix())
	assert.Equal(t, now.Add(time.Hour), blacklistExpiry("bukan-token", "k", now, time.Hour))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("duplicate key")))
}

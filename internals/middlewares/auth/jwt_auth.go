package auth

import (
	"strings"

	"sarpras_backend/internals/configs"
	helper "sarpras_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(rawToken string) (bool, error) // true = token sudah di-logout
	AllowCookieFallback bool                                // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT: verifikasi HS256, lalu isi Locals user_id, userRole, school_id, raw_token.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		raw, err := extractBearerToken(c, o.AllowCookieFallback)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		if o.BlacklistChecker != nil {
			black, err := o.BlacklistChecker(raw)
			if err != nil {
				log := configs.Logger()
				log.Error().Err(err).Msg("cek blacklist token gagal")
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa sesi")
			}
			if black {
				return fiber.NewError(fiber.StatusUnauthorized, "Token revoked")
			}
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		// jwt/v4 hanya cek exp kalau ada; token tanpa exp ditolak
		if _, ok := claims["exp"]; !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token has no exp")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User ID pada token tidak valid")
		}

		c.Locals(helper.LocUserID, userID.String())
		c.Locals(helper.LocRawToken, raw)
		if role := strClaim(claims, "role"); role != "" {
			c.Locals(helper.LocUserRole, role)
		}
		if sid := strClaim(claims, "school_id"); sid != "" {
			c.Locals(helper.LocSchoolID, sid)
		}
		return c.Next()
	}
}

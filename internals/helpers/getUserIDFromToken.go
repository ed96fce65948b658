package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Key Locals yang diisi middleware AuthJWT.
const (
	LocUserID   = "user_id"
	LocUserRole = "userRole"
	LocSchoolID = "school_id"
	LocRawToken = "raw_token"
)

// UserIDFromLocals: string mentah user_id ("" kalau belum login).
func UserIDFromLocals(c *fiber.Ctx) string {
	switch t := c.Locals(LocUserID).(type) {
	case string:
		return strings.TrimSpace(t)
	case uuid.UUID:
		if t == uuid.Nil {
			return ""
		}
		return t.String()
	default:
		return ""
	}
}

// Ambil user_id dari c.Locals("user_id")
// Return 401 kalau belum login / formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	s := UserIDFromLocals(c)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User ID pada token tidak valid")
	}
	return id, nil
}

// GetRawAccessToken: Locals("raw_token") dari middleware, lalu header Bearer, lalu cookie.
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "bearer "
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(auth) > len(p) && strings.HasPrefix(strings.ToLower(auth), p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

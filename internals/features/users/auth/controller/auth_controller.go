package controller

import (
	"errors"
	"time"

	"sarpras_backend/internals/configs"
	"sarpras_backend/internals/features/users/auth/dto"
	"sarpras_backend/internals/features/users/auth/service"
	helper "sarpras_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Svc       *service.AuthService
	Validator *validator.Validate
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Svc: svc, Validator: helper.NewValidator()}
}

func respondError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}

func setAccessCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   configs.GetEnv("COOKIE_SECURE", "true") == "true",
		SameSite: "Lax",
		Path:     "/",
		Expires:  expires,
	})
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(ac.Validator); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	user, err := ac.Svc.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return helper.JsonCreated(c, "Registrasi berhasil", user)
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Normalize()
	if err := req.Validate(ac.Validator); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	resp, err := ac.Svc.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	setAccessCookie(c, resp.AccessToken, resp.ExpiresAt)
	return helper.JsonOK(c, "Login berhasil", resp)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Svc.Logout(c.UserContext(), helper.GetRawAccessToken(c)); err != nil {
		return respondError(c, err)
	}
	setAccessCookie(c, "", time.Now().Add(-time.Hour))
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := ac.Svc.Me(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return helper.JsonOK(c, "ok", user)
}

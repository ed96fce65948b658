package controller

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sarpras_backend/internals/features/users/auth/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	ac := NewAuthController(service.NewAuthService(nil, "k", time.Hour))
	app := fiber.New()
	app.Post("/register", ac.Register)
	app.Post("/login", ac.Login)
	app.Get("/me", ac.Me)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRegisterValidation(t *testing.T) {
	status, body := post(t, newApp(), "/register", `{"user_name":"op","email":"bukan-email","password":"123","school_name":"","npsn":"12ab"}`)

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, false, body["success"])
	errs := body["errors"].(map[string]any)
	for _, f := range []string{"user_name", "email", "password", "school_name", "npsn"} {
		assert.Contains(t, errs, f)
	}
}

func TestLoginBadBody(t *testing.T) {
	status, body := post(t, newApp(), "/login", `{`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", body["error_code"])

	status, _ = post(t, newApp(), "/login", `{"identifier":"","password":""}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestMeWithoutLogin(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest(fiber.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

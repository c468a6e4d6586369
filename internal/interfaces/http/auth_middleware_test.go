package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/dfonseca/stockmanager-api/internal/interfaces/http"
	"github.com/dfonseca/stockmanager-api/pkg/jwt"
)

const testSecret = "secret-de-prueba"

// buildTestApp monta una ruta protegida con AuthMiddleware y, si se indican
// roles, con RequireRole encadenado.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testSecret)}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})
	app.Get("/protegida", handlers...)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "user-1", role, "stock-manager", 15)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	resp := doRequest(t, buildTestApp(), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	app := buildTestApp()
	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		resp := doRequest(t, app, header)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddlewareInvalidSignature(t *testing.T) {
	token, err := jwt.Generate("otro-secreto", "user-1", "admin", "stock-manager", 15)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(), "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "admin", "stock-manager", -5)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(), "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	resp := doRequest(t, buildTestApp(), "Bearer "+tokenForRole(t, "cashier"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRoleAllows(t *testing.T) {
	app := buildTestApp("manager")
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "manager"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleAdminBypass(t *testing.T) {
	app := buildTestApp("manager")
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "admin"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleForbidden(t *testing.T) {
	app := buildTestApp("manager")
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "cashier"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/benyoung8291/fieldflow-core-sub002/internal/interfaces/http"
	pkgjwt "github.com/benyoung8291/fieldflow-core-sub002/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "fieldflow-core-test"
	testExpMin    = 60
)

// buildTestApp builds a minimal Fiber app with:
//   - AuthMiddleware to parse the JWT and load locals
//   - RequireRole to authorize access
//   - A dummy handler returning 200 when both middlewares pass
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Keep internal errors quiet in tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Protected route: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole signs a JWT carrying the given role.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, testExpMin)
	require.NoError(t, err, "signing a test JWT must succeed")
	return "Bearer " + tok
}

// doRequest fires GET /protected and returns the response.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRoleAdminAllowedOnAdminRoute(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin must reach a route restricted to admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRoleOfficeAllowedOnMultiRoleRoute(t *testing.T) {
	app := buildTestApp("admin", "office")
	resp := doRequest(t, app, tokenForRole(t, "office"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"office must reach a route that allows admin or office")
}

func TestRequireRoleTechnicianBlockedOnAdminRoute(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "technician"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"technician must not reach a route restricted to admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRoleOfficeBlockedOnTechnicianRoute(t *testing.T) {
	app := buildTestApp("technician")
	resp := doRequest(t, app, tokenForRole(t, "office"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleTokenWithoutRoleReturns401(t *testing.T) {
	// A token with an empty role simulates a legacy token missing the claim.
	app := buildTestApp("admin")
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRoleMissingAuthHeaderReturns401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleMalformedTokenReturns401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "Bearer not.a.token")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware tests — claim extraction
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddlewareExtractsClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "admin", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// JWT pkg tests — generate/parse round trip with role
// ──────────────────────────────────────────────────────────────────────────────

func TestJWTGenerateAndParseWithRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "office", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, companyID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testCompanyID, companyID)
	assert.Equal(t, "office", role)
}

func TestJWTExpiredTokenReturnsError(t *testing.T) {
	// Expiration -1 minute: already expired
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "an expired token must fail to parse")
}

func TestJWTWrongSecretReturnsError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("a-completely-different-secret", tok)
	assert.Error(t, err, "a wrong secret must invalidate the token")
}

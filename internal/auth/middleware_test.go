package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	httptransport "github.com/spec-kit/complaint-service/internal/api/http"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/observability"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, tm *auth.TokenManager) *fiber.App {
	t.Helper()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	mw := auth.NewAuthMiddleware(tm)
	app.Get("/whoami", mw.Handle, auth.RequireAuthenticated(), func(c *fiber.Ctx) error {
		principal, _ := auth.PrincipalFromContext(c)
		return c.JSON(fiber.Map{"username": principal.Username, "role": principal.Role})
	})
	app.Get("/triage", mw.Handle, auth.RequireOfficerOrAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/citizen-only", mw.Handle, auth.RequireCitizen(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	tm := auth.NewTokenManager("secret", 60, 24)
	app := newTestApp(t, tm)

	resp := doGet(t, app, "/whoami", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestMiddlewareRejectsRefreshTokenOnAPI(t *testing.T) {
	tm := auth.NewTokenManager("secret", 60, 24)
	app := newTestApp(t, tm)

	refresh, _, _, err := tm.GenerateRefreshToken(&domain.User{ID: "u1", Username: "alice", Role: domain.RoleCitizen})
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	resp := doGet(t, app, "/whoami", refresh)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestMiddlewareAcceptsAccessToken(t *testing.T) {
	tm := auth.NewTokenManager("secret", 60, 24)
	app := newTestApp(t, tm)

	access, _, err := tm.GenerateAccessToken(&domain.User{ID: "u1", Username: "alice", Role: domain.RoleCitizen})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	resp := doGet(t, app, "/whoami", access)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestRoleGates(t *testing.T) {
	tm := auth.NewTokenManager("secret", 60, 24)
	app := newTestApp(t, tm)

	tokens := map[domain.Role]string{}
	for _, role := range []domain.Role{domain.RoleCitizen, domain.RoleStaff, domain.RoleAdmin} {
		access, _, err := tm.GenerateAccessToken(&domain.User{ID: "u-" + string(role), Username: string(role), Role: role})
		if err != nil {
			t.Fatalf("GenerateAccessToken(%s): %v", role, err)
		}
		tokens[role] = access
	}

	cases := []struct {
		path string
		role domain.Role
		want int
	}{
		{"/triage", domain.RoleCitizen, http.StatusForbidden},
		{"/triage", domain.RoleStaff, http.StatusOK},
		{"/triage", domain.RoleAdmin, http.StatusOK},
		{"/citizen-only", domain.RoleCitizen, http.StatusOK},
		{"/citizen-only", domain.RoleStaff, http.StatusForbidden},
		{"/citizen-only", domain.RoleAdmin, http.StatusForbidden},
	}
	for _, tc := range cases {
		resp := doGet(t, app, tc.path, tokens[tc.role])
		if resp.StatusCode != tc.want {
			t.Errorf("%s as %s: got %d, want %d", tc.path, tc.role, resp.StatusCode, tc.want)
		}
	}
}

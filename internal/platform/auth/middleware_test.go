package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func issueTestToken(t *testing.T, cfg SessionConfig, username string, roles []string) string {
	t.Helper()
	token, err := IssueToken(cfg, uuid.New(), username, roles)
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}
	return token
}

func TestSessionMiddleware_BearerToken(t *testing.T) {
	cfg := testSessionConfig()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, cfg, "jsmith", []string{RolePatient}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUsername string
	var gotRoles []string
	handler := SessionMiddleware(cfg)(func(c echo.Context) error {
		gotUsername = UsernameFromContext(c.Request().Context())
		gotRoles = RolesFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUsername != "jsmith" {
		t.Errorf("expected username jsmith, got %q", gotUsername)
	}
	if len(gotRoles) != 1 || gotRoles[0] != RolePatient {
		t.Errorf("unexpected roles: %v", gotRoles)
	}
}

func TestSessionMiddleware_Cookie(t *testing.T) {
	cfg := testSessionConfig()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  SessionCookieName,
		Value: issueTestToken(t, cfg, "nurse1", []string{RoleNurse, RoleStaff}),
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUsername string
	handler := SessionMiddleware(cfg)(func(c echo.Context) error {
		gotUsername = UsernameFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUsername != "nurse1" {
		t.Errorf("expected username nurse1, got %q", gotUsername)
	}
}

func TestSessionMiddleware_NoToken(t *testing.T) {
	cfg := testSessionConfig()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SessionMiddleware(cfg)(func(c echo.Context) error {
		if UsernameFromContext(c.Request().Context()) != "" {
			t.Error("expected empty username without a token")
		}
		if AccountIDFromContext(c.Request().Context()) != uuid.Nil {
			t.Error("expected nil account id without a token")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSessionMiddleware_ExpiredToken(t *testing.T) {
	cfg := testSessionConfig()
	expired := cfg
	expired.TTL = -time.Minute

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, expired, "jsmith", []string{RolePatient}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SessionMiddleware(cfg)(func(c echo.Context) error {
		if UsernameFromContext(c.Request().Context()) != "" {
			t.Error("expected expired token to leave request unauthenticated")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireSession(t *testing.T) {
	cfg := testSessionConfig()
	e := echo.New()

	// Authenticated request passes.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, cfg, "jsmith", []string{RolePatient}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	chain := SessionMiddleware(cfg)(RequireSession()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))
	if err := chain(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	// Anonymous request is rejected.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	err := chain(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}

package identity

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthnet/healthnet/internal/platform/auth"
)

// Recorder appends best-effort audit entries. Satisfied by the audit service.
type Recorder interface {
	Record(ctx context.Context, accountID *uuid.UUID, username, action string)
}

// StaffRoleResolver reports the staff role (doctor or nurse) for an account,
// or "" when the account has no staff record. Satisfied by the staff service.
type StaffRoleResolver interface {
	StaffRole(ctx context.Context, accountID uuid.UUID) string
}

type Handler struct {
	svc      *Service
	audit    Recorder
	roles    StaffRoleResolver
	sessions auth.SessionConfig
}

func NewHandler(svc *Service, audit Recorder, roles StaffRoleResolver, sessions auth.SessionConfig) *Handler {
	return &Handler{svc: svc, audit: audit, roles: roles, sessions: sessions}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	Authenticated LoginState `json:"authenticated"`
	Username      string     `json:"username,omitempty"`
}

// LoginPage renders the unauthenticated login state.
func (h *Handler) LoginPage(c echo.Context) error {
	h.audit.Record(c.Request().Context(), nil, "", "Login page accessed")
	return c.JSON(http.StatusOK, loginResponse{Authenticated: LoginUnauthenticated})
}

// Login authenticates credentials. Success establishes a session cookie and
// redirects to the role-appropriate profile route; inactive and invalid
// attempts re-render the login state without a session.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	account, state := h.svc.Authenticate(ctx, req.Username, req.Password)

	switch state {
	case LoginSuccess:
		roles := auth.RolesForAccount(account.IsStaff, h.roles.StaffRole(ctx, account.ID))
		token, err := auth.IssueToken(h.sessions, account.ID, account.Username, roles)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to establish session")
		}
		c.SetCookie(&http.Cookie{
			Name:     auth.SessionCookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(h.sessions.TTL),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		h.audit.Record(ctx, &account.ID, account.Username, "User logged in")

		target := "/" + account.Username + "/profile"
		if account.IsStaff {
			target = "/" + account.Username + "/staffProfile"
		}
		return c.Redirect(http.StatusFound, target)

	case LoginInactive:
		h.audit.Record(ctx, &account.ID, account.Username, "Inactive account login attempt")
		return c.JSON(http.StatusOK, loginResponse{Authenticated: LoginInactive, Username: req.Username})

	default:
		h.audit.Record(ctx, nil, req.Username, "Invalid login attempt")
		return c.JSON(http.StatusOK, loginResponse{Authenticated: LoginInvalid, Username: req.Username})
	}
}

// Logout clears the session cookie and redirects home.
func (h *Handler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	username := auth.UsernameFromContext(ctx)
	if username != "" {
		accountID := auth.AccountIDFromContext(ctx)
		h.audit.Record(ctx, &accountID, username, "User logged out")
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, "/")
}

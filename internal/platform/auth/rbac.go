package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Role names carried in session tokens. Doctors and nurses additionally carry
// RoleStaff, which grants access wherever any staff role is accepted.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleNurse   = "nurse"
	RoleStaff   = "staff"
)

// RequireRole returns middleware that checks if the user has at least one of
// the specified roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRoles := RolesFromContext(c.Request().Context())
			for _, required := range roles {
				for _, has := range userRoles {
					if has == required {
						return next(c)
					}
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}

// RolesForAccount returns the session roles for an account. Staff accounts
// carry their specific role plus the generic staff role.
func RolesForAccount(isStaff bool, staffRole string) []string {
	if !isStaff {
		return []string{RolePatient}
	}
	if staffRole == "" {
		return []string{RoleStaff}
	}
	return []string{staffRole, RoleStaff}
}

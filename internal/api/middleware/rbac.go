package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify/internal/core/domain"
)

// RBAC enforces role-based access control on routes behind the gate. There is
// no implicit hierarchy: a route open to ROLE_ADMIN does not admit
// ROLE_ORGANIZER unless both are listed.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[domain.NormalizeRole(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
			}
			if _, ok := allowed[principal.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}

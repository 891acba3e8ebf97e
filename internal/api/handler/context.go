package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify/internal/api/middleware"
	"github.com/eventify/eventify/internal/core/domain"
)

// ctxPrincipal extracts the principal the gate attached to the request.
// Absence means the gate did not run or rejected; fail with 401, never
// continue anonymously.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newyears/event-organizer/internal/core/domain"
)

// RequireRole rejects actors ranked below min. It must run after Auth.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !ActorFrom(c).Role.AtLeast(min) {
				return echo.NewHTTPError(http.StatusForbidden, "not enough permissions")
			}
			return next(c)
		}
	}
}

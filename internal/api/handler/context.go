package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newyears/event-organizer/internal/api/middleware"
	"github.com/newyears/event-organizer/internal/core/domain"
)

// ctxActor returns the actor injected by the Auth middleware and fails fast
// when the route was mounted without it.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor := middleware.ActorFrom(c)
	if !actor.Role.Authenticated() {
		return domain.Anonymous, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

// page reads the skip and limit query parameters. Absent values are zero and
// the service applies its defaults.
func page(c echo.Context) (skip, limit int64, err error) {
	err = echo.QueryParamsBinder(c).
		Int64("skip", &skip).
		Int64("limit", &limit).
		BindError()
	var be *echo.BindingError
	if errors.As(err, &be) {
		return 0, 0, domain.Invalid("%s must be an integer", be.Field)
	}
	return skip, limit, err
}

// bindAndValidate decodes the request body into req and runs the struct
// validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

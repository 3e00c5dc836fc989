package handler

import (
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/newyears/event-organizer/internal/api/middleware"
	"github.com/newyears/event-organizer/internal/core/domain"
)

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req = httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withActor(c echo.Context, user *domain.User) {
	c.Set(middleware.ContextKeyUser, user)
	c.Set(middleware.ContextKeyActor, domain.ActorOf(user))
}

func withParams(c echo.Context, kv ...string) {
	var names, values []string
	for i := 0; i+1 < len(kv); i += 2 {
		names = append(names, kv[i])
		values = append(values, kv[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
}

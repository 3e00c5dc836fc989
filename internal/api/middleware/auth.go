package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/newyears/event-organizer/internal/core/domain"
)

// Context keys set by Auth.
const (
	ContextKeyUser  = "user"
	ContextKeyActor = "actor"
)

// Authenticator resolves a bearer token into the stored user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth requires a valid bearer token and injects the caller's user and actor
// into the context. The actor's role is the stored role, not the one in the
// token.
func Auth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return unauthorized(c, err.Error())
			}

			user, err := authn.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrAuthentication) {
					return unauthorized(c, "could not validate credentials")
				}
				return err
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyActor, domain.ActorOf(user))
			return next(c)
		}
	}
}

// ActorFrom returns the actor injected by Auth, or domain.Anonymous.
func ActorFrom(c echo.Context) domain.Actor {
	if actor, ok := c.Get(ContextKeyActor).(domain.Actor); ok {
		return actor
	}
	return domain.Anonymous
}

// UserFrom returns the user injected by Auth.
func UserFrom(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*domain.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

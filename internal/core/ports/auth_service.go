package ports

import (
	"context"

	"github.com/newyears/event-organizer/internal/core/domain"
)

// RegisterInput carries the self-registration fields.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Session is a freshly issued access token.
type Session struct {
	AccessToken string
	TokenType   string
	User        *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	// Authenticate resolves a bearer token into the acting user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// UserService covers the admin-only account operations.
type UserService interface {
	ListUsers(ctx context.Context, actor domain.Actor, skip, limit int64) ([]*domain.User, error)
	UpdateUser(ctx context.Context, actor domain.Actor, id string, patch domain.UserPatch) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/newyears/event-organizer/internal/core/domain"
)

// UserRepository is the credential store. Find methods return
// domain.ErrUserNotFound when nothing matches.
type UserRepository interface {
	// Insert stores a new user and returns its assigned identifier. A unique
	// index violation is reported as domain.ErrUserExists or domain.ErrEmailExists.
	Insert(ctx context.Context, user *domain.User) (string, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update applies patch and returns the number of modified documents.
	Update(ctx context.Context, id string, patch domain.UserPatch) (int64, error)
	List(ctx context.Context, skip, limit int64) ([]*domain.User, error)
}

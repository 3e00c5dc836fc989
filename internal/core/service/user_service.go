package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/newyears/event-organizer/internal/core/domain"
	"github.com/newyears/event-organizer/internal/core/policy"
	"github.com/newyears/event-organizer/internal/core/ports"
)

// UserService implements the admin account operations.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
	now   func() time.Time
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log, now: time.Now}
}

func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor, skip, limit int64) ([]*domain.User, error) {
	if err := policy.Authorize(actor, domain.ActionListUsers, nil); err != nil {
		return nil, err
	}
	skip, limit, err := normalizePage(skip, limit)
	if err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser changes a user's email and/or role. A zero modified count is
// reported as domain.ErrUserNotFound.
func (s *UserService) UpdateUser(ctx context.Context, actor domain.Actor, id string, patch domain.UserPatch) (*domain.User, error) {
	if err := policy.Authorize(actor, domain.ActionUpdateUserRole, nil); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.Invalid("nothing to update")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if patch.Email != nil {
		owner, err := s.users.FindByEmail(ctx, *patch.Email)
		switch {
		case err == nil && owner.ID != id:
			return nil, domain.ErrEmailExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	patch.UpdatedAt = s.now().UTC()
	modified, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if modified == 0 {
		return nil, domain.ErrUserNotFound
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Str("actor", actor.Username).Stringer("role", user.Role).Msg("user updated")
	return user, nil
}

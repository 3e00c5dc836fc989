package ports

import (
	"time"

	"github.com/newyears/event-organizer/internal/core/domain"
)

// PasswordHasher is a one-way salted hash with verification.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// TokenCodec issues and verifies session tokens. Verify returns an error
// wrapping domain.ErrAuthentication for malformed, forged or expired tokens.
type TokenCodec interface {
	Issue(subject string, role domain.Role, ttl time.Duration) (string, error)
	Verify(token string) (*domain.Claims, error)
}

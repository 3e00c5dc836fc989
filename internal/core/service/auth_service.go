package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/newyears/event-organizer/internal/core/domain"
	"github.com/newyears/event-organizer/internal/core/ports"
)

const tokenType = "bearer"

// dummySecret is hashed once so logins for unknown usernames pay the same
// hashing cost as a wrong password.
const dummySecret = "event-organizer-timing-equaliser"

// AuthService implements registration, login, token resolution and account seeding.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenCodec
	tokenTTL time.Duration
	log      zerolog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the credential store, hasher and token codec. A
// non-positive tokenTTL defers to the codec's default lifetime.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenCodec,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		log:      log,
		now:      time.Now,
	}
}

// Register creates a user with role user. A taken username or email is a conflict.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	user, err := s.create(ctx, in.Username, in.Email, in.Password, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login verifies the password and issues a session token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.timingHash())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, user.Role, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &ports.Session{AccessToken: token, TokenType: tokenType, User: user}, nil
}

func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummySecret)
		if err != nil {
			s.log.Warn().Err(err).Msg("hash timing secret")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// Authenticate verifies token and loads its subject. The stored role wins
// over the role in the token so role changes apply on the next request.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownSubject
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

// EnsureUser creates the account when username is not taken yet. It reports
// whether a user was created. Used for the admin bootstrap and seed files.
func (s *AuthService) EnsureUser(ctx context.Context, username, email, password string, role domain.Role) (bool, error) {
	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		s.log.Debug().Str("username", username).Msg("seed user already present")
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("ensure user %s: %w", username, err)
	}

	user, err := s.create(ctx, username, email, password, role)
	if err != nil {
		return false, fmt.Errorf("ensure user %s: %w", username, err)
	}
	s.log.Info().Str("username", user.Username).Stringer("role", user.Role).Msg("seed user created")
	return true, nil
}

func (s *AuthService) create(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error) {
	if password == "" {
		return nil, domain.Invalid("password is required")
	}
	if !role.Persistable() {
		return nil, domain.Invalid("role %s cannot be assigned", role)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.Invalid("username is required")
	}
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	if err := s.ensureAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := domain.NewUser(username, email, hash, s.now())
	if err != nil {
		return nil, err
	}
	user.Role = role

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("lookup username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("lookup email: %w", err)
	}
	return nil
}

package domain

import (
	"net/mail"
	"strings"
	"time"
)

// User models a registered account.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// NewUser validates registration fields and returns an unsaved user with
// role user. The hash must already be computed.
func NewUser(username, email, passwordHash string, now time.Time) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, Invalid("username is required")
	}
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, Invalid("password is required")
	}
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    now.UTC(),
	}, nil
}

// NormalizeEmail trims the address and checks it parses as a bare address.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", Invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", Invalid("email %q is not a valid address", email)
	}
	return email, nil
}

// UserPatch carries the admin-editable fields. Nil means unchanged.
type UserPatch struct {
	Email     *string
	Role      *Role
	UpdatedAt time.Time
}

func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Role == nil
}

// Validate normalizes the email and rejects roles that cannot be stored.
func (p *UserPatch) Validate() error {
	if p.Email != nil {
		email, err := NormalizeEmail(*p.Email)
		if err != nil {
			return err
		}
		p.Email = &email
	}
	if p.Role != nil && !p.Role.Persistable() {
		return Invalid("role %s cannot be assigned", p.Role)
	}
	return nil
}

// Actor is the identity and role attempting an action.
type Actor struct {
	Username string
	Role     Role
}

// Anonymous is the actor used for requests without credentials.
var Anonymous = Actor{Role: RoleUnauthenticated}

// ActorOf returns the actor view of a stored user.
func ActorOf(u *User) Actor {
	return Actor{Username: u.Username, Role: u.Role}
}

// Claims is the verified content of a session token.
type Claims struct {
	Subject   string
	Role      Role
	ExpiresAt time.Time
}

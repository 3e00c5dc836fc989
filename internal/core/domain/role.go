package domain

import (
	"fmt"
	"strings"
)

// Role is an ordered access level. The zero value is RoleUnauthenticated.
type Role int

const (
	RoleUnauthenticated Role = iota
	RoleUser
	RoleOrganizer
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleUnauthenticated: "unauthenticated",
	RoleUser:            "user",
	RoleOrganizer:       "organizer",
	RoleAdmin:           "admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// AtLeast reports whether r is ranked at or above min.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// Authenticated reports whether r belongs to a signed-in actor.
func (r Role) Authenticated() bool {
	return r.AtLeast(RoleUser)
}

// Persistable reports whether r may be stored on a user record.
func (r Role) Persistable() bool {
	return r.Valid() && r != RoleUnauthenticated
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole converts the wire name of a role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for r, n := range roleNames {
		if n == name {
			return r, nil
		}
	}
	return RoleUnauthenticated, fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: unknown role %d", ErrValidation, int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Package seed creates bootstrap accounts at startup. Seeding is idempotent:
// usernames that already exist are left untouched.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/newyears/event-organizer/internal/core/domain"
)

// UserEnsurer creates an account unless its username is already taken.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, username, email, password string, role domain.Role) (bool, error)
}

type usersFile struct {
	Users []userEntry `yaml:"users"`
}

type userEntry struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// Admin ensures the administrator account exists.
func Admin(ctx context.Context, s UserEnsurer, username, email, password string) (bool, error) {
	return s.EnsureUser(ctx, username, email, password, domain.RoleAdmin)
}

// FromFile ensures every account listed in the YAML file at path and returns
// how many were created. Entries without a username or password are skipped.
// An empty role means user.
//
//	users:
//	  - username: alice
//	    email: alice@example.com
//	    password: s3cret
//	    role: organizer
func FromFile(ctx context.Context, s UserEnsurer, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	return FromYAML(ctx, s, data)
}

// FromYAML is FromFile on an in-memory document.
func FromYAML(ctx context.Context, s UserEnsurer, data []byte) (int, error) {
	var uf usersFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	created := 0
	for _, u := range uf.Users {
		if u.Username == "" || u.Password == "" {
			continue
		}
		role := domain.RoleUser
		if u.Role != "" {
			parsed, err := domain.ParseRole(u.Role)
			if err != nil {
				return created, fmt.Errorf("seed user %s: %w", u.Username, err)
			}
			role = parsed
		}
		ok, err := s.EnsureUser(ctx, u.Username, u.Email, u.Password, role)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

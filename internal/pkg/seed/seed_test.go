package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/newyears/event-organizer/internal/core/domain"
)

type ensured struct {
	username, email, password string
	role                      domain.Role
}

type stubEnsurer struct {
	existing map[string]bool
	calls    []ensured
}

func (s *stubEnsurer) EnsureUser(_ context.Context, username, email, password string, role domain.Role) (bool, error) {
	s.calls = append(s.calls, ensured{username, email, password, role})
	if s.existing[username] {
		return false, nil
	}
	if s.existing == nil {
		s.existing = map[string]bool{}
	}
	s.existing[username] = true
	return true, nil
}

const sample = `
users:
  - username: alice
    email: alice@example.com
    password: s3cret
    role: organizer
  - username: bob
    email: bob@example.com
    password: hunter2
  - username: ""
    password: skipped
  - username: nopass
    email: nopass@example.com
`

func TestFromYAML(t *testing.T) {
	s := &stubEnsurer{}

	n, err := FromYAML(context.Background(), s, []byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 created, got %d", n)
	}
	if len(s.calls) != 2 {
		t.Fatalf("expected 2 ensure calls, got %d", len(s.calls))
	}
	if s.calls[0].role != domain.RoleOrganizer {
		t.Errorf("expected organizer for alice, got %s", s.calls[0].role)
	}
	if s.calls[1].role != domain.RoleUser {
		t.Errorf("expected default user role for bob, got %s", s.calls[1].role)
	}
}

func TestFromYAML_Idempotent(t *testing.T) {
	s := &stubEnsurer{existing: map[string]bool{"alice": true}}

	n, err := FromYAML(context.Background(), s, []byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 created, got %d", n)
	}
}

func TestFromYAML_UnknownRole(t *testing.T) {
	doc := "users:\n  - username: mallory\n    password: x\n    role: superuser\n"

	_, err := FromYAML(context.Background(), &stubEnsurer{}, []byte(doc))
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}

	n, err := FromFile(context.Background(), &stubEnsurer{}, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 created, got %d", n)
	}
}

func TestAdmin(t *testing.T) {
	s := &stubEnsurer{}

	created, err := Admin(context.Background(), s, "admin", "admin@newyears.com", "admin123")
	if err != nil || !created {
		t.Fatalf("expected admin created, got %v %v", created, err)
	}
	if s.calls[0].role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %s", s.calls[0].role)
	}

	created, _ = Admin(context.Background(), s, "admin", "admin@newyears.com", "admin123")
	if created {
		t.Error("expected second admin seed to be a no-op")
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/newyears/event-organizer/internal/core/domain"
)

type stubUserService struct {
	listFn   func(ctx context.Context, actor domain.Actor, skip, limit int64) ([]*domain.User, error)
	updateFn func(ctx context.Context, actor domain.Actor, id string, patch domain.UserPatch) (*domain.User, error)
}

func (s *stubUserService) ListUsers(ctx context.Context, actor domain.Actor, skip, limit int64) ([]*domain.User, error) {
	return s.listFn(ctx, actor, skip, limit)
}

func (s *stubUserService) UpdateUser(ctx context.Context, actor domain.Actor, id string, patch domain.UserPatch) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, patch)
}

var adminUser = &domain.User{ID: "a1", Username: "admin", Email: "admin@newyears.com", Role: domain.RoleAdmin}

func TestUserHandler_List_PassesPage(t *testing.T) {
	stub := &stubUserService{
		listFn: func(_ context.Context, actor domain.Actor, skip, limit int64) ([]*domain.User, error) {
			if actor.Username != "admin" || skip != 5 || limit != 10 {
				t.Fatalf("unexpected args: %+v %d %d", actor, skip, limit)
			}
			return []*domain.User{adminUser}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/auth/users?skip=5&limit=10", "")
	withActor(c, adminUser)

	if err := NewUserHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].Role != "admin" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_List_BadLimit(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/auth/users?limit=ten", "")
	withActor(c, adminUser)

	if err := NewUserHandler(&stubUserService{}).List(c); err == nil {
		t.Fatal("expected error for non-numeric limit")
	}
}

func TestUserHandler_Update_Role(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(_ context.Context, _ domain.Actor, id string, patch domain.UserPatch) (*domain.User, error) {
			if id != "u2" {
				t.Fatalf("unexpected id %s", id)
			}
			if patch.Role == nil || *patch.Role != domain.RoleOrganizer || patch.Email != nil {
				t.Fatalf("unexpected patch %+v", patch)
			}
			return &domain.User{ID: "u2", Username: "bob", Role: *patch.Role}, nil
		},
	}
	c, rec := newTestContext(http.MethodPatch, "/auth/users/u2", `{"role":"organizer"}`)
	withActor(c, adminUser)
	withParams(c, "id", "u2")

	if err := NewUserHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Role != "organizer" {
		t.Fatalf("expected organizer, got %s", resp.Role)
	}
}

func TestUserHandler_Update_RejectsUnknownRole(t *testing.T) {
	c, _ := newTestContext(http.MethodPatch, "/auth/users/u2", `{"role":"superuser"}`)
	withActor(c, adminUser)
	withParams(c, "id", "u2")

	if err := NewUserHandler(&stubUserService{}).Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserHandler_Update_Forbidden(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(context.Context, domain.Actor, string, domain.UserPatch) (*domain.User, error) {
			return nil, domain.ErrForbidden
		},
	}
	c, _ := newTestContext(http.MethodPatch, "/auth/users/u2", `{"email":"new@example.com"}`)
	withActor(c, &domain.User{Username: "bob", Role: domain.RoleUser})
	withParams(c, "id", "u2")

	if err := NewUserHandler(stub).Update(c); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRole_Order(t *testing.T) {
	if !(RoleUnauthenticated < RoleUser && RoleUser < RoleOrganizer && RoleOrganizer < RoleAdmin) {
		t.Fatalf("roles out of order")
	}
	if !RoleAdmin.AtLeast(RoleOrganizer) || RoleUser.AtLeast(RoleOrganizer) {
		t.Fatalf("AtLeast does not follow the order")
	}
	if RoleUnauthenticated.Authenticated() || !RoleUser.Authenticated() {
		t.Fatalf("Authenticated boundary wrong")
	}
	if RoleUnauthenticated.Persistable() || !RoleOrganizer.Persistable() || Role(42).Persistable() {
		t.Fatalf("Persistable boundary wrong")
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []Role{RoleUnauthenticated, RoleUser, RoleOrganizer, RoleAdmin} {
		got, err := ParseRole(r.String())
		if err != nil || got != r {
			t.Fatalf("ParseRole(%q) = %v, %v", r.String(), got, err)
		}
	}
	if got, _ := ParseRole(" Admin "); got != RoleAdmin {
		t.Fatalf("expected case-insensitive parse, got %v", got)
	}
	if _, err := ParseRole("root"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRole_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{RoleOrganizer})
	if err != nil || string(b) != `{"role":"organizer"}` {
		t.Fatalf("marshal: %s %v", b, err)
	}

	var v struct {
		Role Role `json:"role"`
	}
	if err := json.Unmarshal([]byte(`{"role":"admin"}`), &v); err != nil || v.Role != RoleAdmin {
		t.Fatalf("unmarshal: %+v %v", v, err)
	}
	if err := json.Unmarshal([]byte(`{"role":"wizard"}`), &v); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

package policy

import (
	"errors"
	"testing"

	"github.com/newyears/event-organizer/internal/core/domain"
)

var (
	anon      = domain.Anonymous
	user      = domain.Actor{Username: "u1", Role: domain.RoleUser}
	organizer = domain.Actor{Username: "bob", Role: domain.RoleOrganizer}
	admin     = domain.Actor{Username: "root", Role: domain.RoleAdmin}
)

func TestCan_AdminAllowedEverything(t *testing.T) {
	ownerSets := [][]string{nil, {}, {"someone-else"}, {"root"}}
	for _, action := range domain.Actions {
		for _, owners := range ownerSets {
			if !Can(admin, action, owners) {
				t.Errorf("admin denied %s with owners %v", action, owners)
			}
		}
	}
}

func TestCan_Rules(t *testing.T) {
	tests := []struct {
		name   string
		actor  domain.Actor
		action domain.Action
		owners []string
		want   bool
	}{
		{"organizer creates", organizer, domain.ActionCreateEvent, nil, true},
		{"user cannot create", user, domain.ActionCreateEvent, nil, false},
		{"anonymous cannot create", anon, domain.ActionCreateEvent, nil, false},

		{"owner updates", organizer, domain.ActionUpdateEvent, []string{"alice", "bob"}, true},
		{"non-owner organizer cannot update", organizer, domain.ActionUpdateEvent, []string{"alice"}, false},
		{"owner deletes", organizer, domain.ActionDeleteEvent, []string{"bob"}, true},
		{"non-owner organizer cannot delete", organizer, domain.ActionDeleteEvent, nil, false},
		{"user listed as owner still cannot update", domain.Actor{Username: "u1", Role: domain.RoleUser}, domain.ActionUpdateEvent, []string{"u1"}, false},
		{"anonymous cannot delete", anon, domain.ActionDeleteEvent, []string{""}, false},

		{"anonymous reads", anon, domain.ActionReadEvent, nil, true},
		{"anonymous lists", anon, domain.ActionListEvents, nil, true},
		{"user reads", user, domain.ActionReadEvent, nil, true},

		{"user adds participant", user, domain.ActionAddParticipant, []string{"someone"}, true},
		{"user removes participant on foreign event", user, domain.ActionRemoveParticipant, []string{"someone"}, true},
		{"organizer pays on foreign event", organizer, domain.ActionUpdateParticipantPayment, []string{"alice"}, true},
		{"anonymous cannot add participant", anon, domain.ActionAddParticipant, nil, false},
		{"anonymous cannot remove participant", anon, domain.ActionRemoveParticipant, nil, false},
		{"anonymous cannot pay", anon, domain.ActionUpdateParticipantPayment, nil, false},

		{"anonymous registers", anon, domain.ActionRegister, nil, true},
		{"anonymous logs in", anon, domain.ActionLogin, nil, true},

		{"organizer cannot list users", organizer, domain.ActionListUsers, nil, false},
		{"user cannot change roles", user, domain.ActionUpdateUserRole, nil, false},

		{"unknown action denied", organizer, domain.Action("launch_rockets"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Can(tt.actor, tt.action, tt.owners); got != tt.want {
				t.Fatalf("Can(%v, %s, %v) = %v, want %v", tt.actor, tt.action, tt.owners, got, tt.want)
			}
		})
	}
}

func TestCan_OrganizerOwnershipIsMembership(t *testing.T) {
	ownerSets := [][]string{nil, {}, {"bob"}, {"alice"}, {"alice", "bob"}, {"bobby"}, {"Bob"}}
	for _, owners := range ownerSets {
		want := false
		for _, o := range owners {
			if o == organizer.Username {
				want = true
			}
		}
		for _, action := range []domain.Action{domain.ActionUpdateEvent, domain.ActionDeleteEvent} {
			if got := Can(organizer, action, owners); got != want {
				t.Errorf("%s with owners %v = %v, want %v", action, owners, got, want)
			}
		}
	}
}

func TestAuthorize_ReturnsPermissionDenied(t *testing.T) {
	err := Authorize(user, domain.ActionCreateEvent, nil)
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := Authorize(organizer, domain.ActionCreateEvent, nil); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
}

// Package policy decides whether an actor may perform an action.
//
// Rules, first match wins:
//
//	1. admin may do anything.
//	2. create_event needs organizer (or admin, via rule 1).
//	3. update_event and delete_event need organizer and membership in the
//	   event's organizers.
//	4. read_event and list_events are public.
//	5. participant mutations need any authenticated role.
//	6. register and login are public.
//	7. list_users and update_user_role are admin only.
//
// Unknown actions are denied.
package policy

import (
	"fmt"
	"slices"

	"github.com/newyears/event-organizer/internal/core/domain"
)

// Can reports whether actor may perform action on a resource owned by owners.
// owners is ignored by actions that have no ownership rule.
func Can(actor domain.Actor, action domain.Action, owners []string) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}

	switch action {
	case domain.ActionCreateEvent:
		return actor.Role == domain.RoleOrganizer
	case domain.ActionUpdateEvent, domain.ActionDeleteEvent:
		return actor.Role == domain.RoleOrganizer &&
			actor.Username != "" &&
			slices.Contains(owners, actor.Username)
	case domain.ActionReadEvent, domain.ActionListEvents:
		return true
	case domain.ActionAddParticipant, domain.ActionRemoveParticipant, domain.ActionUpdateParticipantPayment:
		return actor.Role.Authenticated()
	case domain.ActionRegister, domain.ActionLogin:
		return true
	case domain.ActionListUsers, domain.ActionUpdateUserRole:
		return false
	default:
		return false
	}
}

// Authorize is Can returning domain.ErrForbidden on denial.
func Authorize(actor domain.Actor, action domain.Action, owners []string) error {
	if Can(actor, action, owners) {
		return nil
	}
	return fmt.Errorf("%s as %s: %w", action, actor.Role, domain.ErrForbidden)
}

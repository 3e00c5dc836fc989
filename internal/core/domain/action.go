package domain

// Action names an operation subject to the authorization policy.
type Action string

const (
	ActionRegister                 Action = "register"
	ActionLogin                    Action = "login"
	ActionCreateEvent              Action = "create_event"
	ActionReadEvent                Action = "read_event"
	ActionListEvents               Action = "list_events"
	ActionUpdateEvent              Action = "update_event"
	ActionDeleteEvent              Action = "delete_event"
	ActionAddParticipant           Action = "add_participant"
	ActionRemoveParticipant        Action = "remove_participant"
	ActionUpdateParticipantPayment Action = "update_participant_payment"
	ActionListUsers                Action = "list_users"
	ActionUpdateUserRole           Action = "update_user_role"
)

// Actions lists every action known to the policy.
var Actions = []Action{
	ActionRegister,
	ActionLogin,
	ActionCreateEvent,
	ActionReadEvent,
	ActionListEvents,
	ActionUpdateEvent,
	ActionDeleteEvent,
	ActionAddParticipant,
	ActionRemoveParticipant,
	ActionUpdateParticipantPayment,
	ActionListUsers,
	ActionUpdateUserRole,
}

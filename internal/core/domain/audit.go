package domain

import "time"

// AuditEntry records a successful event mutation.
type AuditEntry struct {
	EventID   string
	Action    Action
	Actor     string
	Subject   string // participant user_id, when the action targets one
	Timestamp time.Time
}

package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error the core returns on purpose wraps exactly one
// of these; anything else is an infrastructure failure.
var (
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAuthentication   = errors.New("authentication failed")
)

var (
	ErrUserExists          = fmt.Errorf("username already registered: %w", ErrConflict)
	ErrEmailExists         = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrEventNotFound       = fmt.Errorf("event %w", ErrNotFound)
	ErrParticipantNotFound = fmt.Errorf("event or participant %w", ErrNotFound)
	ErrInvalidCredentials  = fmt.Errorf("invalid credentials: %w", ErrAuthentication)
	ErrInvalidToken        = fmt.Errorf("invalid token: %w", ErrAuthentication)
	ErrUnknownSubject      = fmt.Errorf("unknown token subject: %w", ErrAuthentication)
	ErrNegativePayment     = fmt.Errorf("%w: paid amount cannot be negative", ErrValidation)
	ErrForbidden           = fmt.Errorf("not enough permissions: %w", ErrPermissionDenied)
)

// Invalid builds a validation error carrying a field-level message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

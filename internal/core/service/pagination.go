package service

import "github.com/newyears/event-organizer/internal/core/domain"

const (
	defaultPageLimit int64 = 100
	maxPageLimit     int64 = 100
)

// normalizePage applies the default and maximum limit. Negative skip is invalid.
func normalizePage(skip, limit int64) (int64, int64, error) {
	if skip < 0 {
		return 0, 0, domain.Invalid("skip cannot be negative")
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit, nil
}

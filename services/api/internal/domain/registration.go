package domain

import "time"

// Registration reserves one spot at an event for a user.
// At most one registration exists per (event, user) pair.
type Registration struct {
	ID        string
	EventID   string
	UserID    string
	CreatedAt time.Time
}

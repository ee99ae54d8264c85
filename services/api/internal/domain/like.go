package domain

import "time"

// Like records a user's interest in an event.
// At most one like exists per (event, user) pair.
type Like struct {
	ID        string
	EventID   string
	UserID    string
	CreatedAt time.Time
}

package domain

import "time"

// Event is a scheduled occurrence users can register for or like.
type Event struct {
	ID            string
	Name          string
	Description   string
	Location      string
	PriceCents    int64
	Capacity      int
	StartsAt      time.Time
	ImageFileName string
	CreatedAt     time.Time
}

// Free reports whether the event costs nothing.
func (e Event) Free() bool {
	return e.PriceCents == 0
}

// SoldOut reports whether registered meets or exceeds capacity.
func (e Event) SoldOut(registered int) bool {
	return registered >= e.Capacity
}

// SpotsLeft returns remaining capacity given the current registration count.
func (e Event) SpotsLeft(registered int) int {
	return e.Capacity - registered
}

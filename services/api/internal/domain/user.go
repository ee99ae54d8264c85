package domain

import "time"

// User is an account that can register for and like events.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

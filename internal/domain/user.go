package domain

import "time"

// User is the domain entity for a user account. ID is an opaque UUID string
// assigned by the repository at creation; it is never client-supplied.
// LastLoginAt stays nil until the first successful login.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

package users

import "time"

// User is an identity record. The API key is a long-lived opaque bearer
// token issued once at signup and never rotated.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	APIKey       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

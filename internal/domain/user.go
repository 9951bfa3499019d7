package domain

import "time"

// User is an authenticated identity. Handlers resolve the acting user from
// an access token; everything else compares IDs against entity owner fields.
// The hash must marshal: the store persists entities as JSON. API responses
// go through dedicated response types and never serialize User directly.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

package domain

import "time"

// Profile contains a user's public display settings.
// Stored separately from User to keep auth concerns apart from social features.
type Profile struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name,omitempty"` // mutable by its owner only
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProfile creates a profile for a user. An empty display name is valid;
// clients fall back to rendering the email's local part.
func NewProfile(userID, displayName string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		UserID:      userID,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

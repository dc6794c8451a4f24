package domain

import (
	"time"
)

// User represents a user row in the users table. The ID comes from
// Supabase Auth; the row itself is created lazily on the first
// authenticated request.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Plan            Plan      `json:"plan"`
	ConversionCount int       `json:"conversion_count"`
	LastReset       time.Time `json:"last_reset"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SupabaseUser represents a user from Supabase Auth
type SupabaseUser struct {
	ID           string
	Email        string
	UserMetadata map[string]interface{}
	CreatedAt    string
	UpdatedAt    string
}

// DisplayName resolves a human-readable name from the auth metadata,
// falling back to the email local part.
func (u *SupabaseUser) DisplayName() string {
	if u.UserMetadata != nil {
		for _, key := range []string{"name", "full_name"} {
			if v, ok := u.UserMetadata[key].(string); ok && v != "" {
				return v
			}
		}
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}

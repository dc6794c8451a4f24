package domain

import "github.com/supabase-community/supabase-go"

// SupabaseClient abstracts the managed auth/database backend.
type SupabaseClient interface {
	Initialize() error
	ValidateToken(token string) (*SupabaseUser, error)

	DB() *supabase.Client
}

package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"file-converter-api/internal/domain"
)

const usersTable = "users"

// SupabaseUserRepository implements the domain.UserRepository interface
type SupabaseUserRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseUserRepository creates a new Supabase user repository
func NewSupabaseUserRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.UserRepository {
	return &SupabaseUserRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// GetByID retrieves a user row by its auth id
func (r *SupabaseUserRepository) GetByID(userID string) (*domain.User, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(usersTable).
		Select("*", "", false).
		Eq("id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(rows) == 0 {
		return nil, domain.ErrUserNotFound
	}

	return mapToUser(rows[0]), nil
}

// Insert creates a fresh user row. A duplicate-key failure surfaces as an
// error; callers treat it as a benign race and re-read.
func (r *SupabaseUserRepository) Insert(user *domain.User) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"id":               user.ID,
		"email":            user.Email,
		"name":             user.Name,
		"plan":             string(user.Plan),
		"conversion_count": user.ConversionCount,
		"last_reset":       user.LastReset.UTC().Format(time.RFC3339),
	}

	_, _, err := client.From(usersTable).
		Insert(row, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	r.logger.Info("User row created", "user_id", user.ID, "plan", user.Plan)
	return nil
}

// UpdatePlan sets the user's plan field
func (r *SupabaseUserRepository) UpdatePlan(userID string, plan domain.Plan) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"plan":       string(plan),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}

	_, _, err := client.From(usersTable).
		Update(row, "", "").
		Eq("id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}

	return nil
}

// CompareAndSetConversionCount updates the conversion counter only when
// the stored count still equals prevCount. The extra filter turns the
// read-modify-write into a compare-and-set; zero matched rows means a
// concurrent writer won and the caller should retry.
func (r *SupabaseUserRepository) CompareAndSetConversionCount(userID string, prevCount, newCount int, lastReset time.Time) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"conversion_count": newCount,
		"last_reset":       lastReset.UTC().Format(time.RFC3339),
		"updated_at":       time.Now().UTC().Format(time.RFC3339),
	}

	data, _, err := client.From(usersTable).
		Update(row, "", "").
		Eq("id", userID).
		Eq("conversion_count", strconv.Itoa(prevCount)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update conversion count: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return domain.ErrConflict
	}

	return nil
}

// mapToUser converts a map to a User struct
func mapToUser(data map[string]interface{}) *domain.User {
	return &domain.User{
		ID:              getString(data, "id"),
		Email:           getString(data, "email"),
		Name:            getString(data, "name"),
		Plan:            domain.Plan(getString(data, "plan")),
		ConversionCount: getInt(data, "conversion_count"),
		LastReset:       getTime(data, "last_reset"),
		CreatedAt:       getTime(data, "created_at"),
		UpdatedAt:       getTime(data, "updated_at"),
	}
}

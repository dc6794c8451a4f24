package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"file-converter-api/internal/domain"
)

const subscriptionsTable = "subscriptions"

// SupabaseSubscriptionRepository implements the domain.SubscriptionRepository interface
type SupabaseSubscriptionRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseSubscriptionRepository creates a new Supabase subscription repository
func NewSupabaseSubscriptionRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.SubscriptionRepository {
	return &SupabaseSubscriptionRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// GetByProviderID retrieves a subscription by its Lemon Squeezy id
func (r *SupabaseSubscriptionRepository) GetByProviderID(lemonSqueezyID string) (*domain.Subscription, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(subscriptionsTable).
		Select("*", "", false).
		Eq("lemon_squeezy_id", lemonSqueezyID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(rows) == 0 {
		return nil, domain.ErrSubscriptionNotFound
	}

	return mapToSubscription(rows[0]), nil
}

// Upsert inserts or updates the subscription keyed by its provider id.
// Re-delivered webhook events land here twice and must converge on the
// same row.
func (r *SupabaseSubscriptionRepository) Upsert(sub *domain.Subscription) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"user_id":              sub.UserID,
		"lemon_squeezy_id":     sub.LemonSqueezyID,
		"variant_id":           sub.VariantID,
		"status":               sub.Status,
		"plan_type":            string(sub.PlanType),
		"cancel_at_period_end": sub.CancelAtPeriodEnd,
		"updated_at":           time.Now().UTC().Format(time.RFC3339),
	}
	if !sub.PeriodStart.IsZero() {
		row["period_start"] = sub.PeriodStart.UTC().Format(time.RFC3339)
	}
	if !sub.PeriodEnd.IsZero() {
		row["period_end"] = sub.PeriodEnd.UTC().Format(time.RFC3339)
	}

	_, _, err := client.From(subscriptionsTable).
		Upsert(row, "lemon_squeezy_id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	r.logger.Info("Subscription upserted",
		"lemon_squeezy_id", sub.LemonSqueezyID,
		"status", sub.Status,
		"plan_type", sub.PlanType)
	return nil
}

// mapToSubscription converts a map to a Subscription struct
func mapToSubscription(data map[string]interface{}) *domain.Subscription {
	return &domain.Subscription{
		ID:                getString(data, "id"),
		UserID:            getString(data, "user_id"),
		LemonSqueezyID:    getString(data, "lemon_squeezy_id"),
		VariantID:         getString(data, "variant_id"),
		Status:            getString(data, "status"),
		PlanType:          domain.Plan(getString(data, "plan_type")),
		PeriodStart:       getTime(data, "period_start"),
		PeriodEnd:         getTime(data, "period_end"),
		CancelAtPeriodEnd: getBool(data, "cancel_at_period_end"),
		CreatedAt:         getTime(data, "created_at"),
		UpdatedAt:         getTime(data, "updated_at"),
	}
}

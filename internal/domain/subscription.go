package domain

import "time"

// Subscription mirrors a billing-provider subscription in the
// subscriptions table. One row is expected per provider subscription id;
// webhook events upsert by that key.
type Subscription struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	LemonSqueezyID    string    `json:"lemon_squeezy_id"`
	VariantID         string    `json:"variant_id"`
	Status            string    `json:"status"`
	PlanType          Plan      `json:"plan_type"`
	PeriodStart       time.Time `json:"period_start"`
	PeriodEnd         time.Time `json:"period_end"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Provider subscription statuses that grant the premium plan.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusTrialing  = "trialing"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

// PlanForSubscriptionStatus maps a provider subscription status to the
// internal plan it entitles. Anything other than active/trialing drops
// the user to the free tier.
func PlanForSubscriptionStatus(status string) Plan {
	switch status {
	case SubscriptionStatusActive, SubscriptionStatusTrialing:
		return PlanPremium
	default:
		return PlanFree
	}
}

// BillingInterval is the checkout cadence a client may request.
type BillingInterval string

const (
	BillingIntervalMonthly BillingInterval = "monthly"
	BillingIntervalYearly  BillingInterval = "yearly"
)

// ValidBillingInterval reports whether the requested checkout plan is one
// the service sells.
func ValidBillingInterval(interval BillingInterval) bool {
	return interval == BillingIntervalMonthly || interval == BillingIntervalYearly
}

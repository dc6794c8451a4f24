package domain

import "time"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetFrontendURL() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetLemonSqueezyAPIKey() string
	GetLemonSqueezyStoreID() string
	GetLemonSqueezyWebhookSecret() string
	GetLemonSqueezyVariantID(interval BillingInterval) string
}

// UserRepository persists per-user plan and quota state.
type UserRepository interface {
	GetByID(userID string) (*User, error)
	Insert(user *User) error
	UpdatePlan(userID string, plan Plan) error
	// CompareAndSetConversionCount updates the counter only when the stored
	// value still equals prevCount; ErrConflict signals a lost race.
	CompareAndSetConversionCount(userID string, prevCount, newCount int, lastReset time.Time) error
}

// SubscriptionRepository persists provider subscription state.
type SubscriptionRepository interface {
	GetByProviderID(lemonSqueezyID string) (*Subscription, error)
	Upsert(sub *Subscription) error
}

// QuotaService owns user rows and the daily conversion counter.
type QuotaService interface {
	GetOrCreateUser(authUser *SupabaseUser) (*User, error)
	IncrementConversionCount(userID string) (*User, error)
	RecordConversion(authUser *SupabaseUser, requested int) (*User, error)
	RemainingConversions(user *User) int
	CanConvertMore(user *User) bool
}

// SubscriptionReconciler applies billing webhook events to internal state.
type SubscriptionReconciler interface {
	ProcessEvent(event *WebhookEvent) error
	CurrentPlan(userID string) (Plan, error)
}

// UploadTracker maps upload ids to transient status records.
type UploadTracker interface {
	Create(fileName string) *UploadStatus
	SetStatus(uploadID string, state UploadState, errMsg string) (*UploadStatus, error)
	Get(uploadID string) (*UploadStatus, error)
}

// CheckoutProvider creates hosted checkout sessions with the billing
// provider.
type CheckoutProvider interface {
	CreateCheckout(userID, email, variantID string) (*Checkout, error)
}

// Checkout is a created checkout session.
type Checkout struct {
	ID  string
	URL string
}

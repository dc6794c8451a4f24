package domain

// WebhookEventType tags the billing-provider events the reconciler
// recognizes. Anything else parses to WebhookEventUnknown and is ignored.
type WebhookEventType string

const (
	WebhookSubscriptionCreated   WebhookEventType = "subscription_created"
	WebhookSubscriptionUpdated   WebhookEventType = "subscription_updated"
	WebhookSubscriptionCancelled WebhookEventType = "subscription_cancelled"
	WebhookSubscriptionExpired   WebhookEventType = "subscription_expired"
	WebhookOrderCreated          WebhookEventType = "order_created"
	WebhookEventUnknown          WebhookEventType = "unknown"
)

// ParseWebhookEventType maps a raw meta.event_name onto the tagged union.
func ParseWebhookEventType(name string) WebhookEventType {
	switch WebhookEventType(name) {
	case WebhookSubscriptionCreated,
		WebhookSubscriptionUpdated,
		WebhookSubscriptionCancelled,
		WebhookSubscriptionExpired,
		WebhookOrderCreated:
		return WebhookEventType(name)
	default:
		return WebhookEventUnknown
	}
}

// WebhookEvent is the Lemon Squeezy webhook envelope, reduced to the
// fields the reconciler reads.
type WebhookEvent struct {
	Meta WebhookMeta `json:"meta"`
	Data WebhookData `json:"data"`
}

// WebhookMeta carries the event name and the custom data attached at
// checkout time. UserID may be absent; events without it are skipped.
type WebhookMeta struct {
	EventName  string            `json:"event_name"`
	CustomData WebhookCustomData `json:"custom_data"`
}

type WebhookCustomData struct {
	UserID string `json:"user_id"`
}

// WebhookData is the JSON:API resource object of the event.
type WebhookData struct {
	ID         string               `json:"id"`
	Type       string               `json:"type"`
	Attributes WebhookSubAttributes `json:"attributes"`
}

// WebhookSubAttributes are the subscription attributes used for
// reconciliation. Timestamps arrive as RFC 3339 strings and may be empty.
type WebhookSubAttributes struct {
	Status    string `json:"status"`
	VariantID int64  `json:"variant_id"`
	CreatedAt string `json:"created_at"`
	RenewsAt  string `json:"renews_at"`
	EndsAt    string `json:"ends_at"`
	Cancelled bool   `json:"cancelled"`
}

// Type returns the tagged event type for the envelope.
func (e *WebhookEvent) Type() WebhookEventType {
	return ParseWebhookEventType(e.Meta.EventName)
}

package service

import (
	"errors"
	"strconv"
	"time"

	"file-converter-api/internal/domain"
)

type subscriptionService struct {
	subscriptionRepo domain.SubscriptionRepository
	userRepo         domain.UserRepository
	logger           domain.Logger
}

// NewSubscriptionService creates the webhook-event reconciler.
func NewSubscriptionService(
	subscriptionRepo domain.SubscriptionRepository,
	userRepo domain.UserRepository,
	logger domain.Logger,
) domain.SubscriptionReconciler {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// ProcessEvent applies one billing webhook event to the subscription and
// user rows. Events without a user id are skipped, unknown event names
// are ignored; both return nil so the webhook handler can always
// acknowledge the provider.
func (s *subscriptionService) ProcessEvent(event *domain.WebhookEvent) error {
	eventType := event.Type()

	switch eventType {
	case domain.WebhookSubscriptionCreated, domain.WebhookSubscriptionUpdated:
		return s.applySubscriptionChange(event)

	case domain.WebhookSubscriptionCancelled, domain.WebhookSubscriptionExpired:
		return s.applyCancellation(event, eventType)

	case domain.WebhookOrderCreated:
		// No order tracking yet; acknowledged and logged only.
		s.logger.Info("Order created", "user_id", event.Meta.CustomData.UserID, "order_id", event.Data.ID)
		return nil

	default:
		s.logger.Debug("Ignoring unrecognized webhook event", "event_name", event.Meta.EventName)
		return nil
	}
}

func (s *subscriptionService) applySubscriptionChange(event *domain.WebhookEvent) error {
	userID := event.Meta.CustomData.UserID
	if userID == "" {
		s.logger.Warn("Webhook event missing custom_data.user_id, skipping",
			"event_name", event.Meta.EventName,
			"subscription_id", event.Data.ID)
		return nil
	}

	attrs := event.Data.Attributes
	plan := domain.PlanForSubscriptionStatus(attrs.Status)

	sub := &domain.Subscription{
		UserID:         userID,
		LemonSqueezyID: event.Data.ID,
		VariantID:      formatVariantID(attrs.VariantID),
		Status:         attrs.Status,
		PlanType:       plan,
		PeriodStart:    parseProviderTime(attrs.CreatedAt),
		PeriodEnd:      parseProviderTime(attrs.RenewsAt),
	}

	if err := s.subscriptionRepo.Upsert(sub); err != nil {
		return err
	}

	// Setting the plan even when unchanged keeps re-delivered events
	// idempotent.
	if err := s.userRepo.UpdatePlan(userID, plan); err != nil {
		return err
	}

	s.logger.Info("Subscription reconciled",
		"user_id", userID,
		"subscription_id", event.Data.ID,
		"status", attrs.Status,
		"plan", plan)
	return nil
}

// applyCancellation drops the user to the free plan immediately, even
// when the billing period still has time left. cancelAtPeriodEnd is
// recorded but not honored as a grace period.
func (s *subscriptionService) applyCancellation(event *domain.WebhookEvent, eventType domain.WebhookEventType) error {
	userID := event.Meta.CustomData.UserID

	status := domain.SubscriptionStatusCancelled
	if eventType == domain.WebhookSubscriptionExpired {
		status = domain.SubscriptionStatusExpired
	}
	if event.Data.Attributes.Status != "" {
		status = event.Data.Attributes.Status
	}

	sub, err := s.subscriptionRepo.GetByProviderID(event.Data.ID)
	switch {
	case err == nil:
		if userID == "" {
			userID = sub.UserID
		}
		sub.Status = status
		sub.CancelAtPeriodEnd = true
		sub.PlanType = domain.PlanFree
		if err := s.subscriptionRepo.Upsert(sub); err != nil {
			return err
		}
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		// Cancellation for a subscription never seen; still record it so
		// a late-arriving created event cannot resurrect premium silently.
		if userID == "" {
			s.logger.Warn("Cancellation event for unknown subscription without user_id, skipping",
				"subscription_id", event.Data.ID)
			return nil
		}
		if err := s.subscriptionRepo.Upsert(&domain.Subscription{
			UserID:            userID,
			LemonSqueezyID:    event.Data.ID,
			Status:            status,
			PlanType:          domain.PlanFree,
			CancelAtPeriodEnd: true,
		}); err != nil {
			return err
		}
	default:
		return err
	}

	if err := s.userRepo.UpdatePlan(userID, domain.PlanFree); err != nil {
		return err
	}

	s.logger.Info("Subscription cancelled",
		"user_id", userID,
		"subscription_id", event.Data.ID,
		"status", status)
	return nil
}

// CurrentPlan returns the user's plan, defaulting to free for unknown
// users.
func (s *subscriptionService) CurrentPlan(userID string) (domain.Plan, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.PlanFree, nil
		}
		return "", err
	}
	return user.Plan, nil
}

func parseProviderTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatVariantID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"file-converter-api/internal/domain"

	"github.com/supabase-community/supabase-go"
)

func createContextWithUser(r *http.Request, user *domain.SupabaseUser) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

func createContextWithToken(r *http.Request, token string) *http.Request {
	ctx := context.WithValue(r.Context(), tokenContextKey, token)
	return r.WithContext(ctx)
}

// mockSupabaseClient validates a single known token.
type mockSupabaseClient struct {
	validToken string
	user       *domain.SupabaseUser
}

func (m *mockSupabaseClient) Initialize() error    { return nil }
func (m *mockSupabaseClient) DB() *supabase.Client { return nil }

func (m *mockSupabaseClient) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if token == m.validToken && m.user != nil {
		return m.user, nil
	}
	return nil, domain.ErrInvalidToken
}

// mockQuotaService returns canned users and tracks recorded conversions.
type mockQuotaService struct {
	user      *domain.User
	err       error
	recordErr error
	recorded  int
}

func (m *mockQuotaService) GetOrCreateUser(authUser *domain.SupabaseUser) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockQuotaService) IncrementConversionCount(userID string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.user.ConversionCount++
	return m.user, nil
}

func (m *mockQuotaService) RecordConversion(authUser *domain.SupabaseUser, requested int) (*domain.User, error) {
	if m.recordErr != nil {
		return m.user, m.recordErr
	}
	m.recorded += requested
	m.user.ConversionCount += requested
	return m.user, nil
}

func (m *mockQuotaService) RemainingConversions(user *domain.User) int {
	return domain.CalculateRemainingConversions(user.Plan, user.ConversionCount, user.LastReset)
}

func (m *mockQuotaService) CanConvertMore(user *domain.User) bool {
	return domain.CanConvertMore(user.Plan, user.ConversionCount, user.LastReset)
}

// mockReconciler records processed events.
type mockReconciler struct {
	events []*domain.WebhookEvent
	err    error
	plan   domain.Plan
}

func (m *mockReconciler) ProcessEvent(event *domain.WebhookEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockReconciler) CurrentPlan(userID string) (domain.Plan, error) {
	if m.plan == "" {
		return domain.PlanFree, nil
	}
	return m.plan, nil
}

// mockCheckoutProvider returns a fixed checkout or an error.
type mockCheckoutProvider struct {
	checkout *domain.Checkout
	err      error
	calls    int
}

func (m *mockCheckoutProvider) CreateCheckout(userID, email, variantID string) (*domain.Checkout, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.checkout == nil {
		return nil, errors.New("no checkout configured")
	}
	return m.checkout, nil
}

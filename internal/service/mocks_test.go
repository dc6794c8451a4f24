package service

import (
	"fmt"
	"time"

	"file-converter-api/internal/domain"
)

// Mock logger used by service package tests.
type mockLogger struct{}

func (l *mockLogger) Info(msg string, fields ...interface{})             {}
func (l *mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockLogger) Warn(msg string, fields ...interface{})             {}

// mockUserRepository keeps user rows in a map and honors the
// compare-and-set contract of the real repository.
type mockUserRepository struct {
	users map[string]*domain.User

	insertErr    error
	casConflicts int
	planUpdates  []domain.Plan
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (r *mockUserRepository) GetByID(userID string) (*domain.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copy := *user
	return &copy, nil
}

func (r *mockUserRepository) Insert(user *domain.User) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint")
	}
	copy := *user
	r.users[user.ID] = &copy
	return nil
}

func (r *mockUserRepository) UpdatePlan(userID string, plan domain.Plan) error {
	r.planUpdates = append(r.planUpdates, plan)
	user, ok := r.users[userID]
	if !ok {
		user = &domain.User{ID: userID, Plan: plan}
		r.users[userID] = user
		return nil
	}
	user.Plan = plan
	return nil
}

func (r *mockUserRepository) CompareAndSetConversionCount(userID string, prevCount, newCount int, lastReset time.Time) error {
	if r.casConflicts > 0 {
		r.casConflicts--
		return domain.ErrConflict
	}
	user, ok := r.users[userID]
	if !ok || user.ConversionCount != prevCount {
		return domain.ErrConflict
	}
	user.ConversionCount = newCount
	user.LastReset = lastReset
	return nil
}

// mockSubscriptionRepository keeps subscription rows keyed by provider id.
type mockSubscriptionRepository struct {
	subs    map[string]*domain.Subscription
	upserts int
}

func newMockSubscriptionRepository() *mockSubscriptionRepository {
	return &mockSubscriptionRepository{subs: make(map[string]*domain.Subscription)}
}

func (r *mockSubscriptionRepository) GetByProviderID(lemonSqueezyID string) (*domain.Subscription, error) {
	sub, ok := r.subs[lemonSqueezyID]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	copy := *sub
	return &copy, nil
}

func (r *mockSubscriptionRepository) Upsert(sub *domain.Subscription) error {
	r.upserts++
	existing, ok := r.subs[sub.LemonSqueezyID]
	copy := *sub
	if ok {
		copy.CreatedAt = existing.CreatedAt
	} else {
		copy.CreatedAt = time.Now()
	}
	r.subs[sub.LemonSqueezyID] = &copy
	return nil
}

// Package service implements the quota bookkeeping, subscription
// reconciliation, and upload tracking behind the HTTP handlers.
package service

import (
	"errors"
	"fmt"
	"time"

	"file-converter-api/internal/domain"
)

// casMaxAttempts bounds the compare-and-set retry loop on the
// conversion counter.
const casMaxAttempts = 3

type quotaService struct {
	userRepo domain.UserRepository
	logger   domain.Logger
	now      func() time.Time
}

// NewQuotaService creates the user/quota bookkeeping service.
func NewQuotaService(userRepo domain.UserRepository, logger domain.Logger) domain.QuotaService {
	return &quotaService{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// GetOrCreateUser reads the user's row, inserting a fresh free-tier row
// on first contact. A duplicate-key race on insert resolves by re-reading.
func (s *quotaService) GetOrCreateUser(authUser *domain.SupabaseUser) (*domain.User, error) {
	user, err := s.userRepo.GetByID(authUser.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	fresh := &domain.User{
		ID:              authUser.ID,
		Email:           authUser.Email,
		Name:            authUser.DisplayName(),
		Plan:            domain.PlanFree,
		ConversionCount: 0,
		LastReset:       s.now().UTC(),
	}

	if insertErr := s.userRepo.Insert(fresh); insertErr != nil {
		// A concurrent first request may have inserted the row already.
		user, err = s.userRepo.GetByID(authUser.ID)
		if err == nil {
			return user, nil
		}
		return nil, fmt.Errorf("failed to create user %s: %w", authUser.ID, insertErr)
	}

	user, err = s.userRepo.GetByID(authUser.ID)
	if err != nil {
		// Row absent right after a successful insert is a configuration
		// problem, not a race.
		return nil, fmt.Errorf("user row missing after insert: %w", err)
	}
	return user, nil
}

// IncrementConversionCount applies the daily-reset rule and bumps the
// counter via compare-and-set, retrying on concurrent writers.
func (s *quotaService) IncrementConversionCount(userID string) (*domain.User, error) {
	var lastErr error
	for attempt := 0; attempt < casMaxAttempts; attempt++ {
		user, err := s.userRepo.GetByID(userID)
		if err != nil {
			return nil, err
		}

		newCount := user.ConversionCount + 1
		lastReset := user.LastReset
		if domain.CheckDailyReset(user.LastReset) {
			newCount = 1
			lastReset = s.now().UTC()
		}

		err = s.userRepo.CompareAndSetConversionCount(userID, user.ConversionCount, newCount, lastReset)
		if err == nil {
			user.ConversionCount = newCount
			user.LastReset = lastReset
			return user, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		lastErr = err
		s.logger.Debug("Conversion count CAS lost, retrying", "user_id", userID, "attempt", attempt+1)
	}
	return nil, fmt.Errorf("conversion count update contended for user %s: %w", userID, lastErr)
}

// RecordConversion enforces the remaining daily allowance before
// incrementing. requested below 1 is treated as a single conversion.
func (s *quotaService) RecordConversion(authUser *domain.SupabaseUser, requested int) (*domain.User, error) {
	if requested < 1 {
		requested = 1
	}

	user, err := s.GetOrCreateUser(authUser)
	if err != nil {
		return nil, err
	}

	if !domain.ValidateConversionCount(requested, s.RemainingConversions(user)) {
		return user, domain.ErrQuotaExceeded
	}

	for i := 0; i < requested; i++ {
		user, err = s.IncrementConversionCount(user.ID)
		if err != nil {
			return nil, err
		}
	}
	return user, nil
}

// RemainingConversions returns the conversions left today for the user.
func (s *quotaService) RemainingConversions(user *domain.User) int {
	return domain.CalculateRemainingConversions(user.Plan, user.ConversionCount, user.LastReset)
}

// CanConvertMore reports whether the user has daily quota left.
func (s *quotaService) CanConvertMore(user *domain.User) bool {
	return domain.CanConvertMore(user.Plan, user.ConversionCount, user.LastReset)
}

// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"file-converter-api/internal/config"
	"file-converter-api/internal/domain"
)

// UserHandler handles user-profile and conversion-quota requests
type UserHandler struct {
	container *config.Container
}

// NewUserHandler creates a new user handler
func NewUserHandler(container *config.Container) *UserHandler {
	return &UserHandler{container: container}
}

type userResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Plan            string    `json:"plan"`
	ConversionCount int       `json:"conversionCount"`
	LastReset       time.Time `json:"lastReset"`
}

func toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Plan:            string(user.Plan),
		ConversionCount: user.ConversionCount,
		LastReset:       user.LastReset,
	}
}

// GetUser returns the current user's row, creating it on first contact.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	user, err := h.container.QuotaService.GetOrCreateUser(authUser)
	if err != nil {
		writeInternalError(w, h.container.Logger, "Failed to load user", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type recordConversionRequest struct {
	Conversions int `json:"conversions"`
}

type recordConversionResponse struct {
	ConversionCount int `json:"conversionCount"`
	Remaining       int `json:"remaining"`
}

// RecordConversion checks the daily allowance, then bumps the counter.
func (h *UserHandler) RecordConversion(w http.ResponseWriter, r *http.Request) {
	authUser, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	req := recordConversionRequest{Conversions: 1}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if req.Conversions < 1 {
		req.Conversions = 1
	}

	user, err := h.container.QuotaService.RecordConversion(authUser, req.Conversions)
	if err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			writeError(w, http.StatusBadRequest, "Daily conversion limit reached")
			return
		}
		writeInternalError(w, h.container.Logger, "Failed to record conversion", err)
		return
	}

	writeJSON(w, http.StatusOK, recordConversionResponse{
		ConversionCount: user.ConversionCount,
		Remaining:       h.container.QuotaService.RemainingConversions(user),
	})
}

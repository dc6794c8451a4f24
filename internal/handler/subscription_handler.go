package handler

import (
	"net/http"

	"file-converter-api/internal/config"
	"file-converter-api/internal/domain"
)

// SubscriptionHandler handles subscription-state requests
type SubscriptionHandler struct {
	container *config.Container
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(container *config.Container) *SubscriptionHandler {
	return &SubscriptionHandler{container: container}
}

type subscriptionResponse struct {
	Subscription struct {
		Plan   string            `json:"plan"`
		Limits domain.PlanLimits `json:"limits"`
	} `json:"subscription"`
}

// GetSubscription returns the user's current plan and its limits. Clients
// use the limits to gate file selection before uploading anything.
func (h *SubscriptionHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	authUser, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	plan, err := h.container.SubscriptionReconciler.CurrentPlan(authUser.ID)
	if err != nil {
		writeInternalError(w, h.container.Logger, "Failed to load subscription", err)
		return
	}

	var resp subscriptionResponse
	resp.Subscription.Plan = string(plan)
	resp.Subscription.Limits = domain.LimitsForPlan(plan)
	writeJSON(w, http.StatusOK, resp)
}

// CancelSubscription is not implemented; cancellation happens through the
// provider's customer portal and arrives as a webhook event.
func (h *SubscriptionHandler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotImplemented, "Subscription cancellation is not implemented")
}

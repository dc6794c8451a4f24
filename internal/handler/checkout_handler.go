package handler

import (
	"encoding/json"
	"net/http"

	"file-converter-api/internal/config"
	"file-converter-api/internal/domain"
)

// CheckoutHandler creates hosted checkout sessions
type CheckoutHandler struct {
	container *config.Container
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(container *config.Container) *CheckoutHandler {
	return &CheckoutHandler{container: container}
}

type checkoutRequest struct {
	Plan string `json:"plan"`
}

type checkoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
	CheckoutID  string `json:"checkoutId"`
}

// CreateCheckout starts a checkout for the requested billing interval.
func (h *CheckoutHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	authUser, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	interval := domain.BillingInterval(req.Plan)
	if !domain.ValidBillingInterval(interval) {
		writeError(w, http.StatusBadRequest, "Invalid plan: must be \"monthly\" or \"yearly\"")
		return
	}

	variantID := h.container.Config.GetLemonSqueezyVariantID(interval)
	if variantID == "" {
		h.container.Logger.Error("Checkout variant not configured", nil, "plan", req.Plan)
		writeError(w, http.StatusInternalServerError, "Billing is not configured")
		return
	}

	checkout, err := h.container.CheckoutProvider.CreateCheckout(authUser.ID, authUser.Email, variantID)
	if err != nil {
		writeInternalError(w, h.container.Logger, "Failed to create checkout", err)
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		CheckoutURL: checkout.URL,
		CheckoutID:  checkout.ID,
	})
}

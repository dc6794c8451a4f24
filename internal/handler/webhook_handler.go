package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"file-converter-api/internal/config"
	"file-converter-api/internal/domain"
	"file-converter-api/internal/payment"
)

// maxWebhookBodyBytes caps how much of a webhook payload is read.
const maxWebhookBodyBytes = int64(1 << 20)

// WebhookHandler authenticates and applies billing-provider events
type WebhookHandler struct {
	container *config.Container
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(container *config.Container) *WebhookHandler {
	return &WebhookHandler{container: container}
}

// HandlePaymentWebhook verifies the X-Signature header, then hands the
// event to the reconciler. Once the signature checks out, the response
// is 200 no matter what reconciliation does; failures are logged and
// retried out of band.
func (h *WebhookHandler) HandlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	logger := h.container.Logger

	secret := h.container.Config.GetLemonSqueezyWebhookSecret()
	if secret == "" {
		logger.Error("Webhook secret not configured", nil)
		writeError(w, http.StatusInternalServerError, "Webhook not configured")
		return
	}

	signature := r.Header.Get("X-Signature")
	if signature == "" {
		writeError(w, http.StatusBadRequest, "Missing signature")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		logger.Error("Failed to read webhook body", err)
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if !payment.VerifySignature(body, signature, secret) {
		logger.Warn("Webhook signature mismatch")
		writeError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var event domain.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Warn("Webhook payload not parseable, acknowledging anyway", "reason", err.Error())
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}

	if err := h.container.SubscriptionReconciler.ProcessEvent(&event); err != nil {
		logger.Error("Webhook reconciliation failed", err, "event_name", event.Meta.EventName)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Package payment talks to the Lemon Squeezy billing API and verifies
// its webhook signatures.
package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"file-converter-api/internal/domain"
	apperrors "file-converter-api/pkg/errors"

	"github.com/google/uuid"
)

// LemonSqueezyClient implements domain.CheckoutProvider against the
// Lemon Squeezy REST API.
type LemonSqueezyClient struct {
	APIKey      string
	StoreID     string
	RedirectURL string
	APIURL      string
	HTTPClient  *http.Client
}

// NewLemonSqueezyClient creates a checkout client. redirectURL is where
// the hosted checkout sends the customer after payment.
func NewLemonSqueezyClient(apiKey, storeID, redirectURL string) *LemonSqueezyClient {
	return &LemonSqueezyClient{
		APIKey:      apiKey,
		StoreID:     storeID,
		RedirectURL: redirectURL,
		APIURL:      "https://api.lemonsqueezy.com/v1",
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateCheckout creates a hosted checkout session for the given product
// variant, attaching the user id as custom data so webhook events can be
// reconciled back to the user.
func (c *LemonSqueezyClient) CreateCheckout(userID, email, variantID string) (*domain.Checkout, error) {
	reqBody := checkoutRequest{
		Data: checkoutData{
			Type: "checkouts",
			Attributes: checkoutAttributes{
				CheckoutData: checkoutCustomData{
					Email:  email,
					Custom: map[string]string{"user_id": userID},
				},
				ProductOptions: productOptions{
					RedirectURL: c.RedirectURL,
				},
			},
			Relationships: checkoutRelationships{
				Store:   relationship{Data: relationshipData{Type: "stores", ID: c.StoreID}},
				Variant: relationship{Data: relationshipData{Type: "variants", ID: variantID}},
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/checkouts", c.APIURL), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.api+json")
	req.Header.Set("Content-Type", "application/vnd.api+json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Idempotency-Key", uuid.New().String())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, apperrors.NewProviderError("checkout request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewProviderError("failed to read checkout response", err)
	}

	if resp.StatusCode >= 400 {
		return nil, apperrors.NewProviderError("checkout rejected",
			fmt.Errorf("api error: %s (status: %d)", string(respBody), resp.StatusCode))
	}

	var checkoutResp checkoutResponse
	if err := json.Unmarshal(respBody, &checkoutResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &domain.Checkout{
		ID:  checkoutResp.Data.ID,
		URL: checkoutResp.Data.Attributes.URL,
	}, nil
}

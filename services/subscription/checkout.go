package subscription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CheckoutSessionCreator creates a hosted checkout session and returns
// the URL the client should be redirected to.
type CheckoutSessionCreator interface {
	CreateSession(ctx context.Context, accessToken, priceRef, billingMode string) (string, error)
}

// CheckoutClient calls the payment processor's session-creation
// function: a bearer-authenticated HTTP endpoint that responds with
// {"url": ...} on success or {"error": ...} otherwise.
type CheckoutClient struct {
	Endpoint   string
	SuccessURL string
	CancelURL  string
	HTTPClient *http.Client
}

// NewCheckoutClient returns a CheckoutClient for the given endpoint.
func NewCheckoutClient(endpoint, successURL, cancelURL string) *CheckoutClient {
	return &CheckoutClient{
		Endpoint:   endpoint,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type checkoutRequest struct {
	PriceID    string `json:"price_id"`
	Mode       string `json:"mode"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type checkoutResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

func (c *CheckoutClient) CreateSession(ctx context.Context, accessToken, priceRef, billingMode string) (string, error) {
	body, err := json.Marshal(checkoutRequest{
		PriceID:    priceRef,
		Mode:       billingMode,
		SuccessURL: c.SuccessURL,
		CancelURL:  c.CancelURL,
	})
	if err != nil {
		return "", fmt.Errorf("checkout: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("checkout: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("checkout: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("checkout: failed to read response: %w", err)
	}

	var parsed checkoutResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("checkout: invalid response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if parsed.Error != "" {
			return "", fmt.Errorf("checkout: session creation failed: %s", parsed.Error)
		}
		return "", fmt.Errorf("checkout: session creation failed with status %d", resp.StatusCode)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("checkout: response contained no redirect URL")
	}
	return parsed.URL, nil
}

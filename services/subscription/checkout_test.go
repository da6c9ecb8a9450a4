package subscription

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"glowbook/database/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutClientCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "price_premium_monthly", body["price_id"])
		assert.Equal(t, "subscription", body["mode"])
		assert.Equal(t, "glowbook://success", body["success_url"])
		assert.Equal(t, "glowbook://cancel", body["cancel_url"])

		json.NewEncoder(w).Encode(map[string]string{"url": "https://checkout.example/cs_1"})
	}))
	defer srv.Close()

	client := NewCheckoutClient(srv.URL, "glowbook://success", "glowbook://cancel")
	url, err := client.CreateSession(context.Background(), "token-1", "price_premium_monthly", "subscription")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/cs_1", url)
}

func TestCheckoutClientSurfacesEndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "unknown price"})
	}))
	defer srv.Close()

	client := NewCheckoutClient(srv.URL, "s", "c")
	_, err := client.CreateSession(context.Background(), "token-1", "price_bogus", "subscription")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown price")
}

func TestCreateCheckoutSessionRequiresSession(t *testing.T) {
	mgr := NewSubscriptionManager(gateway.NewFakeGateway(), &gateway.StaticSessionProvider{}, nil)

	_, err := mgr.CreateCheckoutSession(context.Background(), "price_premium_monthly", "subscription")
	var authErr *AuthRequiredError
	require.ErrorAs(t, err, &authErr)
	assert.Error(t, mgr.Err())
}

func TestCreateCheckoutSessionRejectsUnknownMode(t *testing.T) {
	mgr := NewSubscriptionManager(gateway.NewFakeGateway(), activeSession(), nil)

	_, err := mgr.CreateCheckoutSession(context.Background(), "price_premium_monthly", "installments")
	require.Error(t, err)
	assert.Error(t, mgr.Err())
}

func TestCreateCheckoutSessionHandsOff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"url": "https://checkout.example/cs_2"})
	}))
	defer srv.Close()

	mgr := NewSubscriptionManager(gateway.NewFakeGateway(), activeSession(),
		NewCheckoutClient(srv.URL, "s", "c"))

	url, err := mgr.CreateCheckoutSession(context.Background(), "price_class_pass", "payment")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/cs_2", url)
	assert.NoError(t, mgr.Err())
}

func TestCreateCheckoutSessionFailureSetsErrorStateAndPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "processor unavailable"})
	}))
	defer srv.Close()

	mgr := NewSubscriptionManager(gateway.NewFakeGateway(), activeSession(),
		NewCheckoutClient(srv.URL, "s", "c"))

	_, err := mgr.CreateCheckoutSession(context.Background(), "price_premium_monthly", "subscription")
	require.Error(t, err)
	assert.Error(t, mgr.Err())
	assert.Contains(t, mgr.Err().Error(), "processor unavailable")
}

package subscription

import (
	"context"

	"glowbook/models"
)

// AuthRequiredError reports that an operation requiring an active
// session was invoked without one.
type AuthRequiredError struct {
	Op string
}

func (e *AuthRequiredError) Error() string {
	return e.Op + ": no active session"
}

// SubscriptionManager reconciles the local plan-tier view against the
// remote subscription records and orchestrates the handoff to the
// external checkout session.
type SubscriptionManager interface {
	FetchSubscription(ctx context.Context) (*models.Subscription, error)
	FetchOrders(ctx context.Context) []models.Order
	CreateCheckoutSession(ctx context.Context, priceRef, billingMode string) (string, error)
	ResolveCurrentPlan() models.Plan
	IsSubscriptionActive() bool

	Subscription() *models.Subscription
	Orders() []models.Order
	Err() error
}

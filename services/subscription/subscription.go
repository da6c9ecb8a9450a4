package subscription

import (
	"context"
	"fmt"
	"sync"

	"glowbook/database/gateway"
	"glowbook/models"
	"glowbook/utils"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// DefaultSubscriptionManager is the production SubscriptionManager.
// Exactly one subscription view is authoritative at a time; staleness is
// resolved by full refetch, never by merge.
type DefaultSubscriptionManager struct {
	Gateway  gateway.Gateway
	Sessions gateway.SessionProvider
	Checkout CheckoutSessionCreator

	mu           sync.RWMutex
	subscription *models.Subscription
	orders       []models.Order
	lastErr      error
}

// NewSubscriptionManager returns a SubscriptionManager with explicit
// dependencies; nothing is read from ambient module state.
func NewSubscriptionManager(gw gateway.Gateway, sessions gateway.SessionProvider, checkout CheckoutSessionCreator) *DefaultSubscriptionManager {
	return &DefaultSubscriptionManager{
		Gateway:  gw,
		Sessions: sessions,
		Checkout: checkout,
	}
}

// FetchSubscription reads the at-most-one subscription record for the
// current identity. Absence of a record (or of a session) is a valid
// none state; only transport/query failures set the error state.
func (m *DefaultSubscriptionManager) FetchSubscription(ctx context.Context) (*models.Subscription, error) {
	sess, err := m.Sessions.GetSession(ctx)
	if err != nil {
		m.setErr(fmt.Errorf("failed to resolve session: %w", err))
		return nil, m.Err()
	}
	if sess == nil {
		m.mu.Lock()
		m.subscription = nil
		m.lastErr = nil
		m.mu.Unlock()
		return nil, nil
	}

	rows, err := m.Gateway.Select(ctx, gateway.TableSubscriptions,
		gateway.Filter{"user_id": sess.UserID}, nil)
	if err != nil {
		m.setErr(err)
		return nil, err
	}
	if len(rows) == 0 {
		m.mu.Lock()
		m.subscription = nil
		m.lastErr = nil
		m.mu.Unlock()
		return nil, nil
	}

	var sub models.Subscription
	if err := gateway.DecodeRow(rows[0], &sub); err != nil {
		err = fmt.Errorf("failed to decode subscription: %w", err)
		m.setErr(err)
		return nil, err
	}

	m.mu.Lock()
	m.subscription = &sub
	m.lastErr = nil
	m.mu.Unlock()
	return &sub, nil
}

// FetchOrders retrieves the order history for the current identity,
// newest first. Order history is non-critical: failures are logged and
// the cached list is kept, without touching the error state. This
// asymmetry with FetchSubscription is deliberate.
func (m *DefaultSubscriptionManager) FetchOrders(ctx context.Context) []models.Order {
	logger := utils.GetLogger()

	sess, err := m.Sessions.GetSession(ctx)
	if err != nil || sess == nil {
		if err != nil {
			logger.Error("subscription: session lookup failed for orders", zap.Error(err))
		}
		return m.Orders()
	}

	rows, err := m.Gateway.Select(ctx, gateway.TableOrders,
		gateway.Filter{"user_id": sess.UserID},
		&gateway.Order{Field: "created_at", Desc: true})
	if err != nil {
		logger.Error("subscription: order fetch failed, keeping cached orders", zap.Error(err))
		return m.Orders()
	}
	orders, err := gateway.DecodeRows[models.Order](rows)
	if err != nil {
		logger.Error("subscription: order decode failed, keeping cached orders", zap.Error(err))
		return m.Orders()
	}

	m.mu.Lock()
	m.orders = orders
	m.mu.Unlock()
	return m.Orders()
}

// CreateCheckoutSession requires an active session and hands off to the
// external checkout endpoint. Failures both set the error state and
// propagate, so the UI can react immediately and on re-render.
func (m *DefaultSubscriptionManager) CreateCheckoutSession(ctx context.Context, priceRef, billingMode string) (string, error) {
	sess, err := m.Sessions.GetSession(ctx)
	if err != nil {
		err = fmt.Errorf("failed to resolve session: %w", err)
		m.setErr(err)
		return "", err
	}
	if sess == nil {
		err := &AuthRequiredError{Op: "create checkout session"}
		m.setErr(err)
		return "", err
	}

	switch billingMode {
	case string(stripe.CheckoutSessionModePayment), string(stripe.CheckoutSessionModeSubscription):
	default:
		err := fmt.Errorf("unsupported billing mode %q", billingMode)
		m.setErr(err)
		return "", err
	}

	url, err := m.Checkout.CreateSession(ctx, sess.AccessToken, priceRef, billingMode)
	if err != nil {
		m.setErr(err)
		return "", err
	}

	m.mu.Lock()
	m.lastErr = nil
	m.mu.Unlock()

	utils.GetLogger().Info("subscription: checkout session created",
		zap.String("userID", sess.UserID),
		zap.String("priceRef", priceRef),
		zap.String("mode", billingMode))
	return url, nil
}

// ResolveCurrentPlan derives the plan descriptor for the cached
// subscription. No subscription or no price reference means the free
// tier; an unrecognized reference yields an explicit unknown descriptor.
func (m *DefaultSubscriptionManager) ResolveCurrentPlan() models.Plan {
	m.mu.RLock()
	sub := m.subscription
	m.mu.RUnlock()

	if sub == nil || sub.PriceRef == "" {
		return models.FreePlan()
	}
	if plan, ok := models.PlanByPriceRef(sub.PriceRef); ok {
		return plan
	}
	return models.UnknownPlan(sub.PriceRef)
}

// IsSubscriptionActive reports whether the cached subscription is in an
// entitling status. Absence or any other status is simply false.
func (m *DefaultSubscriptionManager) IsSubscriptionActive() bool {
	m.mu.RLock()
	sub := m.subscription
	m.mu.RUnlock()

	if sub == nil {
		return false
	}
	switch stripe.SubscriptionStatus(sub.Status) {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return true
	default:
		return false
	}
}

// Subscription returns the cached subscription view, or nil.
func (m *DefaultSubscriptionManager) Subscription() *models.Subscription {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.subscription
}

// Orders returns a snapshot of the cached order history.
func (m *DefaultSubscriptionManager) Orders() []models.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Order, len(m.orders))
	copy(out, m.orders)
	return out
}

// Err returns the user-visible error state set by subscription fetches
// and checkout attempts. Order fetches never set it.
func (m *DefaultSubscriptionManager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

func (m *DefaultSubscriptionManager) setErr(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

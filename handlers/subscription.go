package handlers

import (
	"net/http"

	"glowbook/middleware"
	"glowbook/models"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler exposes the subscription manager at the UI boundary.
type SubscriptionHandler struct {
	Registry *ManagerRegistry
}

func NewSubscriptionHandler(registry *ManagerRegistry) *SubscriptionHandler {
	return &SubscriptionHandler{Registry: registry}
}

// GetSubscription refetches the subscription view and returns it with
// the derived plan and entitlement flag.
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}

	mgr := h.Registry.SubscriptionFor(sess.UserID)
	sub, err := mgr.FetchSubscription(c.Request.Context())
	if err != nil {
		respondError(c, "failed to load subscription", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subscription": sub,
		"plan":         mgr.ResolveCurrentPlan(),
		"active":       mgr.IsSubscriptionActive(),
	})
}

// GetOrders returns the order history, newest first. A gateway failure
// degrades to the cached list; order history is non-critical.
func (h *SubscriptionHandler) GetOrders(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}

	orders := h.Registry.SubscriptionFor(sess.UserID).FetchOrders(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// CreateCheckoutSession hands off to the hosted checkout flow and
// returns the redirect URL for the app to open.
func (h *SubscriptionHandler) CreateCheckoutSession(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}

	var input struct {
		PriceID string `json:"price_id" binding:"required"`
		Mode    string `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	url, err := h.Registry.SubscriptionFor(sess.UserID).CreateCheckoutSession(c.Request.Context(), input.PriceID, input.Mode)
	if err != nil {
		respondError(c, "failed to create checkout session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetPlans returns the static tier catalog for the pricing screen.
func (h *SubscriptionHandler) GetPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": models.Plans})
}

package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the handlers and shared middleware the route
// registration needs.
type HandlerBundle struct {
	Catalog      *CatalogHandler
	Booking      *BookingHandler
	Subscription *SubscriptionHandler

	// SessionAuth resolves the bearer token to a session.
	SessionAuth gin.HandlerFunc
}

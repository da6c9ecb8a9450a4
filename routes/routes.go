package routes

import (
	"net/http"
	"time"

	"glowbook/handlers"
	"glowbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers business/service catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.Use(hb.SessionAuth)
		api.GET("/businesses/:id", hb.Catalog.GetBusinessData)
		api.POST("/businesses/:id/services", hb.Catalog.AddService)
		api.PATCH("/businesses/:id/services/:serviceID", hb.Catalog.UpdateService)
		api.DELETE("/businesses/:id/services/:serviceID", hb.Catalog.DeleteService)
	}
}

// RegisterBookingRoutes registers appointment booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(hb.SessionAuth)
		api.GET("", hb.Booking.ListBookings)
		api.POST("", hb.Booking.CreateBooking)
		api.PATCH("/:id/status", hb.Booking.UpdateBookingStatus)
		api.POST("/:id/cancel", hb.Booking.CancelBooking)
	}
}

// RegisterSubscriptionRoutes registers subscription and checkout endpoints.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subscription")
	{
		// The tier catalog is public; everything else needs a session.
		api.GET("/plans", hb.Subscription.GetPlans)

		protected := api.Group("")
		protected.Use(hb.SessionAuth)
		protected.GET("", hb.Subscription.GetSubscription)
		protected.GET("/orders", hb.Subscription.GetOrders)
		protected.POST("/checkout", hb.Subscription.CreateCheckoutSession)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
	RegisterHealthRoute(r)
}

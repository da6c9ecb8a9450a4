// File: glowbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glowbook/config"
	"glowbook/cron"
	"glowbook/database"
	"glowbook/database/gateway"
	"glowbook/handlers"
	"glowbook/middleware"
	"glowbook/routes"
	"glowbook/services/notification"
	"glowbook/services/subscription"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// Remote data gateway and session access.
	gw := gateway.NewMongoGateway(database.DB())
	sessionStore := &gateway.RedisSessionStore{Client: utils.GetSessionCacheClient()}
	sessions := gateway.ContextSessionProvider{}

	// Checkout handoff and reminder queue.
	checkoutClient := subscription.NewCheckoutClient(
		config.AppConfig.CheckoutEndpoint,
		config.AppConfig.CheckoutSuccessURL,
		config.AppConfig.CheckoutCancelURL,
	)
	reminderQueue := asynq.NewClient(utils.ReminderQueueOpt())
	defer reminderQueue.Close()
	cron.InitReminderWorker(utils.ReminderQueueOpt())

	dispatcher := notification.NewLogDispatcher(gw, reminderQueue)
	registry := handlers.NewManagerRegistry(gw, sessions, checkoutClient, dispatcher)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Catalog:      handlers.NewCatalogHandler(registry),
		Booking:      handlers.NewBookingHandler(registry),
		Subscription: handlers.NewSubscriptionHandler(registry),
		SessionAuth:  middleware.SessionAuthMiddleware(sessionStore),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(60*time.Second,
		[]*redis.Client{utils.GetSessionCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

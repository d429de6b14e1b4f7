package main

import (
	"github.com/eventpulse/eventpulse/cache"
	"github.com/eventpulse/eventpulse/config"
	"github.com/eventpulse/eventpulse/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Adapters bundles the injected dependencies. They are constructed by the
// process entry point (or by tests, with fakes) and passed in; nothing in
// the handler layer reaches for ambient connections.
type Adapters struct {
	Events   repository.EventRepository
	Bookings repository.BookingRepository
	Users    repository.UserRepository
	Cache    cache.EventCache
}

func SetupRouter(cfg *config.Config, adapters Adapters, logger *zap.Logger) *gin.Engine {
	jwtService := NewJWTService(cfg.JWTSecret)

	eventHandler := NewEventHandler(adapters.Events, adapters.Cache, &cfg.Cache, logger)
	bookingHandler := NewBookingHandler(adapters.Bookings, logger)
	webhookHandler := NewWebhookHandler(adapters.Users, cfg.WebhookSecret, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())
	r.Use(LoggingMiddleware(logger))

	// Health check endpoint (no auth required)
	r.GET("/health", eventHandler.HealthCheck)

	api := r.Group("/api")

	// Public read path
	events := api.Group("/events")
	events.GET("", eventHandler.ListEvents)
	events.GET("/:id", eventHandler.GetEvent)

	// Write path (authenticated; creator-scoped for mutation)
	protectedEvents := events.Group("")
	protectedEvents.Use(AuthMiddleware(jwtService))
	protectedEvents.POST("", eventHandler.CreateEvent)
	protectedEvents.PUT("/:id", eventHandler.UpdateEvent)
	protectedEvents.DELETE("/:id", eventHandler.DeleteEvent)

	// Booking subsystem (authenticated)
	bookings := api.Group("/bookings")
	bookings.Use(AuthMiddleware(jwtService))
	bookings.POST("", bookingHandler.CreateBooking)
	bookings.GET("", bookingHandler.ListBookings)
	bookings.GET("/user/:userId", bookingHandler.ListUserBookings)

	// Identity provider webhook (signature-verified, no JWT)
	api.POST("/webhooks/clerk", webhookHandler.HandleUserSync)

	return r
}

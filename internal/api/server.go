package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ceylontours/internal/cache"
	"ceylontours/internal/checkout"
	"ceylontours/internal/config"
	"ceylontours/internal/database"
	"ceylontours/internal/handlers"
	"ceylontours/internal/logger"
	"ceylontours/internal/messaging"
	"ceylontours/internal/metrics"
	"ceylontours/internal/middleware"
	"ceylontours/internal/repository"
	"ceylontours/internal/search"
	"ceylontours/internal/service"
	"ceylontours/internal/session"
	"ceylontours/internal/validation"
)

// Server is the HTTP API server with all its backing connections.
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	services *service.Services
	repos    *repository.Repositories
}

func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	if err := validation.Register(); err != nil {
		logger.Fatal("Failed to register validation rules", "error", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	searchClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch", "error", err)
	}

	// The cache is optional: a dead Valkey only costs the listing cache.
	valkeyClient, err := cache.NewValkeyClient(cfg.Cache)
	if err != nil {
		logger.Get().Warn("Valkey unavailable, package listing cache disabled", "error", err)
		valkeyClient = nil
	}

	repos := repository.NewRepositories(db)
	sessions := checkout.NewManager()
	services := service.NewServices(repos, sessions, natsClient, searchClient, valkeyClient)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		valkey:   valkeyClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.valkey, s.nats, session.NewTripStore())

	secret := s.config.JWTSecret

	api := s.router.Group("/api")
	{
		// Public storefront. OptionalAuth ties bookings to an account
		// when a token is present.
		packages := api.Group("/packages")
		{
			packages.GET("", h.ListPackages)
			packages.GET("/search", h.SearchPackages)
			packages.GET("/:id", h.GetPackage)
			packages.GET("/:id/reviews", h.ListPackageReviews)
		}

		api.GET("/guides", h.ListGuides)
		api.GET("/offers/verify", h.VerifyOffer)
		api.POST("/contacts", h.SubmitContact)

		checkoutRoutes := api.Group("/checkout")
		checkoutRoutes.Use(middleware.OptionalAuth(secret))
		{
			checkoutRoutes.POST("", h.StartCheckout)
			checkoutRoutes.GET("/:id", h.GetCheckout)
			checkoutRoutes.PUT("/:id/details", h.SubmitCheckoutDetails)
			checkoutRoutes.PUT("/:id/selection", h.SelectGuideAndHotel)
			checkoutRoutes.PUT("/:id/offer", h.ApplyCheckoutOffer)
			checkoutRoutes.DELETE("/:id/offer", h.RemoveCheckoutOffer)
			checkoutRoutes.POST("/:id/complete", h.CompleteCheckout)
			checkoutRoutes.DELETE("/:id", h.CancelCheckout)
		}

		// Signed-in customers.
		authed := api.Group("")
		authed.Use(middleware.RequireAuth(secret))
		{
			authed.POST("/auth/sync", h.SyncAccount)
			authed.GET("/bookings", h.ListMyBookings)
			authed.GET("/bookings/:id", h.GetBooking)
			authed.POST("/reviews", h.SubmitReview)
			authed.GET("/trips", h.ListSavedTrips)
			authed.POST("/trips", h.SaveTrip)
			authed.DELETE("/trips/:packageId", h.RemoveTrip)
		}

		// Guide portal. Registration only needs an account; everything
		// else resolves the caller's guide profile.
		guide := api.Group("/guide")
		guide.Use(middleware.RequireAuth(secret))
		{
			guide.POST("/register", h.RegisterGuide)
			guide.GET("/profile", h.GetGuideProfile)
			guide.GET("/bookings", h.ListGuideBookings)
			guide.PATCH("/bookings/:id/complete", h.CompleteBooking)
			guide.GET("/blocked-dates", h.ListBlockedDates)
			guide.POST("/blocked-dates", h.BlockDate)
			guide.DELETE("/blocked-dates/:id", h.UnblockDate)
			guide.GET("/notifications", h.ListNotifications)
			guide.GET("/notifications/stream", h.StreamNotifications)
			guide.PATCH("/notifications/:id/read", h.MarkNotificationRead)
			guide.GET("/payouts", h.GetGuideEarnings)
		}

		// Admin portal.
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(secret), middleware.RequireRole("admin"))
		{
			admin.POST("/packages", h.CreatePackage)
			admin.PUT("/packages/:id", h.UpdatePackage)
			admin.DELETE("/packages/:id", h.DeletePackage)

			admin.GET("/offers", h.ListOffers)
			admin.POST("/offers", h.CreateOffer)
			admin.PUT("/offers/:id", h.UpdateOffer)
			admin.DELETE("/offers/:id", h.DeleteOffer)

			admin.GET("/guides", h.ListAllGuides)
			admin.PATCH("/guides/:id/status", h.ModerateGuide)
			admin.DELETE("/guides/:id", h.DeleteGuide)

			admin.GET("/bookings", h.ListAllBookings)
			admin.PATCH("/bookings/:id/confirm", h.ConfirmBooking)
			admin.PATCH("/bookings/:id/cancel", h.CancelBooking)

			admin.GET("/payouts", h.ListPayouts)
			admin.POST("/payouts", h.RecordPayout)
			admin.GET("/payouts/dashboard", h.GetPayoutDashboard)
			admin.GET("/payouts/pending/:guideId", h.ListPendingPayouts)

			admin.GET("/contacts", h.ListContacts)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", metrics.Handler())
}

func (s *Server) healthCheck(c *gin.Context) {
	dbHealth := s.db.HealthCheck(c.Request.Context())

	status := http.StatusOK
	if dbHealth.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbHealth.Status,
		"service":  "ceylontours-api",
		"database": dbHealth,
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter returns the router for testing.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the backing connections.
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkey != nil {
		s.valkey.Close()
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}

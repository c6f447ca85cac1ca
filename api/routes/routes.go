package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luckywheel/spin-backend/internal/config"
	"github.com/luckywheel/spin-backend/internal/handlers"
	"github.com/luckywheel/spin-backend/internal/middleware"
)

// HandlerDependencies carries the wired handlers into the router
type HandlerDependencies struct {
	AuthHandler        *handlers.AuthHandler
	SpinHandler        *handlers.SpinHandler
	EventHandler       *handlers.EventHandler
	ParticipantHandler *handlers.ParticipantHandler
	RewardHandler      *handlers.RewardHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.TracingMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Gameplay traffic is authenticated by the kiosk gateway upstream, so
		// the spin endpoint itself is public here.
		public.POST("/spins", deps.SpinHandler.Spin)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Admin registration
		protected.POST("/auth/register", deps.AuthHandler.Register)

		// Event routes
		events := protected.Group("/events")
		{
			events.GET("", deps.EventHandler.GetEvents)
			events.GET("/:id", deps.EventHandler.GetEventByID)
			events.POST("", deps.EventHandler.CreateEvent)
			events.PUT("/:id", deps.EventHandler.UpdateEvent)
			events.POST("/:id/locations", deps.EventHandler.CreateLocation)
			events.GET("/:id/locations", deps.EventHandler.GetLocations)
			events.GET("/:id/participants", deps.ParticipantHandler.GetParticipantsByEvent)
		}

		// Participant routes
		participants := protected.Group("/participants")
		{
			participants.GET("/:id", deps.ParticipantHandler.GetParticipantByID)
			participants.POST("", deps.ParticipantHandler.CreateParticipant)
			participants.PUT("/:id", deps.ParticipantHandler.UpdateParticipant)
			participants.GET("/:id/history", deps.ParticipantHandler.GetSpinHistory)
		}

		// Reward and golden hour routes
		rewards := protected.Group("/rewards")
		{
			rewards.GET("/:id", deps.RewardHandler.GetRewardByID)
			rewards.POST("", deps.RewardHandler.CreateReward)
			rewards.PUT("/:id", deps.RewardHandler.UpdateReward)
			rewards.POST("/:id/golden-hours", deps.RewardHandler.CreateGoldenHour)
			rewards.GET("/:id/golden-hours", deps.RewardHandler.GetGoldenHours)
		}
		protected.GET("/locations/:id/rewards", deps.RewardHandler.GetRewardsByLocation)

		// Maintenance routes, driven by an external scheduler
		protected.POST("/maintenance/sweep-expired", deps.RewardHandler.SweepExpired)
	}

	return router
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/luckywheel/spin-backend/api/routes"
	"github.com/luckywheel/spin-backend/internal/config"
	"github.com/luckywheel/spin-backend/internal/handlers"
	"github.com/luckywheel/spin-backend/internal/repositories"
	mongorepo "github.com/luckywheel/spin-backend/internal/repositories/mongodb"
	"github.com/luckywheel/spin-backend/internal/services"
	"github.com/luckywheel/spin-backend/internal/tracing"
	"github.com/luckywheel/spin-backend/pkg/mongodb"
	"golang.org/x/exp/slog"
)

func main() {
	// Load .env if present; real deployments use environment variables
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up structured logging
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Initialize tracing
	if err := tracing.Init(cfg.Tracing); err != nil {
		slog.Error("Failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx); err != nil {
			slog.Error("Failed to shut down tracing", "error", err)
		}
	}()

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	// Initialize repositories
	var eventRepo repositories.EventRepository = mongorepo.NewEventRepository(db)
	var locationRepo repositories.LocationRepository = mongorepo.NewLocationRepository(db)
	var participantRepo repositories.ParticipantRepository = mongorepo.NewParticipantRepository(db)
	var rewardRepo repositories.RewardRepository = mongorepo.NewRewardRepository(db)
	var goldenHourRepo repositories.GoldenHourRepository = mongorepo.NewGoldenHourRepository(db)
	var historyRepo repositories.SpinHistoryRepository = mongorepo.NewSpinHistoryRepository(db)
	var adminUserRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// Initialize the engine
	clock := services.SystemClock{}
	random := services.NewRandomSource()
	retryBackoff := time.Duration(cfg.Engine.RetryBackoffMs) * time.Millisecond
	ledger := services.NewQuotaLedger(participantRepo, eventRepo, cfg.Engine.MaxRetries, retryBackoff)
	allocator := services.NewRewardAllocator(rewardRepo, cfg.Engine.MaxRetries, retryBackoff)

	// Initialize services
	spinService := services.NewSpinService(eventRepo, locationRepo, participantRepo, rewardRepo, goldenHourRepo, historyRepo, ledger, allocator, clock, random)
	eventService := services.NewEventService(eventRepo, locationRepo)
	participantService := services.NewParticipantService(participantRepo, historyRepo)
	rewardService := services.NewRewardService(rewardRepo, goldenHourRepo, locationRepo, clock)
	authService := services.NewAuthService(adminUserRepo, cfg)

	// Initialize handlers
	deps := routes.HandlerDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		SpinHandler:        handlers.NewSpinHandler(spinService),
		EventHandler:       handlers.NewEventHandler(eventService),
		ParticipantHandler: handlers.NewParticipantHandler(participantService),
		RewardHandler:      handlers.NewRewardHandler(rewardService),
	}

	// Setup router
	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Run server in a goroutine so that it doesn't block
	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

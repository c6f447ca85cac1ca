package services

import (
	"context"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpinService resolves spin requests. This is the engine's single entry point
// for gameplay traffic.
type SpinService interface {
	// ResolveSpin runs one full spin transaction: eligibility, probability
	// resolution, the weighted draw, counter commits and history recording.
	// A zero timestamp means "now".
	ResolveSpin(ctx context.Context, eventID, locationID, participantID primitive.ObjectID, at time.Time) (*models.SpinOutcome, error)
}

// EventService defines the interface for event and location administration
type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	GetEvents(ctx context.Context) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	CreateLocation(ctx context.Context, location *models.EventLocation) error
	GetLocations(ctx context.Context, eventID primitive.ObjectID) ([]*models.EventLocation, error)
}

// ParticipantService defines the interface for participant administration
type ParticipantService interface {
	CreateParticipant(ctx context.Context, participant *models.Participant) error
	GetParticipant(ctx context.Context, id primitive.ObjectID) (*models.Participant, error)
	GetParticipants(ctx context.Context, eventID primitive.ObjectID) ([]*models.Participant, error)
	UpdateParticipant(ctx context.Context, participant *models.Participant) error
	GetSpinHistory(ctx context.Context, participantID primitive.ObjectID, page, limit int) ([]*models.SpinHistory, error)
}

// RewardService defines the interface for reward and golden hour administration
type RewardService interface {
	CreateReward(ctx context.Context, reward *models.Reward) error
	GetReward(ctx context.Context, id primitive.ObjectID) (*models.Reward, error)
	GetRewards(ctx context.Context, locationID primitive.ObjectID) ([]*models.Reward, error)
	UpdateReward(ctx context.Context, reward *models.Reward) error
	CreateGoldenHour(ctx context.Context, goldenHour *models.GoldenHour) error
	GetGoldenHours(ctx context.Context, rewardID primitive.ObjectID) ([]*models.GoldenHour, error)
	// SweepExpired marks rewards and date-bound golden hours whose windows have
	// closed as EXPIRED. Invoked by an external scheduler, never by the engine.
	SweepExpired(ctx context.Context) (int64, error)
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*models.AdminUser, error)
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
}

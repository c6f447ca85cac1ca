package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrVersionConflict is returned by UpdateVersioned when the stored document's
// version no longer matches the one the caller read. The caller reloads and
// retries; this is how contended counters are serialized without locks.
var ErrVersionConflict = errors.New("version conflict: document was modified concurrently")

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	FindByCode(ctx context.Context, code string) (*models.Event, error)
	FindAll(ctx context.Context) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// UpdateVersioned writes the event only if its stored version still equals
	// event.Version, incrementing the version on success.
	UpdateVersioned(ctx context.Context, event *models.Event) error
}

// LocationRepository defines the interface for event location data operations
type LocationRepository interface {
	Create(ctx context.Context, location *models.EventLocation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.EventLocation, error)
	FindByEventID(ctx context.Context, eventID primitive.ObjectID) ([]*models.EventLocation, error)
	Update(ctx context.Context, location *models.EventLocation) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ParticipantRepository defines the interface for participant data operations
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error)
	FindByPhone(ctx context.Context, eventID primitive.ObjectID, phone string) (*models.Participant, error)
	FindByEventID(ctx context.Context, eventID primitive.ObjectID) ([]*models.Participant, error)
	Update(ctx context.Context, participant *models.Participant) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	UpdateVersioned(ctx context.Context, participant *models.Participant) error
	Count(ctx context.Context) (int64, error)
}

// RewardRepository defines the interface for reward data operations
type RewardRepository interface {
	Create(ctx context.Context, reward *models.Reward) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Reward, error)
	FindByLocationID(ctx context.Context, locationID primitive.ObjectID) ([]*models.Reward, error)
	Update(ctx context.Context, reward *models.Reward) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	UpdateVersioned(ctx context.Context, reward *models.Reward) error
	// ExpireBefore marks active rewards whose validity window closed before the
	// cutoff as EXPIRED and returns how many were updated.
	ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// GoldenHourRepository defines the interface for golden hour data operations
type GoldenHourRepository interface {
	Create(ctx context.Context, goldenHour *models.GoldenHour) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.GoldenHour, error)
	FindByRewardID(ctx context.Context, rewardID primitive.ObjectID) ([]*models.GoldenHour, error)
	FindByRewardIDs(ctx context.Context, rewardIDs []primitive.ObjectID) ([]*models.GoldenHour, error)
	Update(ctx context.Context, goldenHour *models.GoldenHour) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// ExpireBefore marks active date-bound golden hours that ended before the
	// cutoff as EXPIRED. Recurring windows never expire.
	ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SpinHistoryRepository defines the interface for spin history operations.
// History rows are append-only; there is deliberately no update or delete.
type SpinHistoryRepository interface {
	Create(ctx context.Context, history *models.SpinHistory) error
	FindByParticipantID(ctx context.Context, participantID primitive.ObjectID, page, limit int) ([]*models.SpinHistory, error)
	CountByRewardID(ctx context.Context, rewardID primitive.ObjectID, won bool) (int64, error)
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}

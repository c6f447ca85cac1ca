package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure EventServiceImpl implements EventService
var _ EventService = (*EventServiceImpl)(nil)

// EventServiceImpl handles event and location administration
type EventServiceImpl struct {
	eventRepo    repositories.EventRepository
	locationRepo repositories.LocationRepository
}

// NewEventService creates a new EventServiceImpl
func NewEventService(eventRepo repositories.EventRepository, locationRepo repositories.LocationRepository) *EventServiceImpl {
	return &EventServiceImpl{
		eventRepo:    eventRepo,
		locationRepo: locationRepo,
	}
}

// CreateEvent creates a new event after validating its window and code
func (s *EventServiceImpl) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.Code == "" {
		return errors.New("event code is required")
	}
	if !event.EndTime.After(event.StartTime) {
		return errors.New("event end time must be after start time")
	}
	existing, err := s.eventRepo.FindByCode(ctx, event.Code)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check for existing event: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("an event with code %q already exists", event.Code)
	}
	if event.Status == "" {
		event.Status = models.StatusActive
	}
	event.RemainingSpins = event.TotalSpins
	if err := s.eventRepo.Create(ctx, event); err != nil {
		slog.Error("Failed to create event", "error", err, "code", event.Code)
		return fmt.Errorf("failed to create event: %w", err)
	}
	slog.Info("Event created", "eventId", event.ID.Hex(), "code", event.Code)
	return nil
}

// GetEvent retrieves an event by ID
func (s *EventServiceImpl) GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

// GetEvents retrieves all events
func (s *EventServiceImpl) GetEvents(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

// UpdateEvent updates an event's configuration
func (s *EventServiceImpl) UpdateEvent(ctx context.Context, event *models.Event) error {
	if !event.EndTime.After(event.StartTime) {
		return errors.New("event end time must be after start time")
	}
	return s.eventRepo.Update(ctx, event)
}

// CreateLocation creates a new location under an existing event
func (s *EventServiceImpl) CreateLocation(ctx context.Context, location *models.EventLocation) error {
	if _, err := s.eventRepo.FindByID(ctx, location.EventID); err != nil {
		return fmt.Errorf("event not found: %w", err)
	}
	if location.Status == "" {
		location.Status = models.StatusActive
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		slog.Error("Failed to create location", "error", err, "eventId", location.EventID.Hex())
		return fmt.Errorf("failed to create location: %w", err)
	}
	slog.Info("Location created", "locationId", location.ID.Hex(), "eventId", location.EventID.Hex())
	return nil
}

// GetLocations retrieves all locations of an event
func (s *EventServiceImpl) GetLocations(ctx context.Context, eventID primitive.ObjectID) ([]*models.EventLocation, error) {
	return s.locationRepo.FindByEventID(ctx, eventID)
}

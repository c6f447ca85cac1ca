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

// Compile-time check to ensure ParticipantServiceImpl implements ParticipantService
var _ ParticipantService = (*ParticipantServiceImpl)(nil)

// ParticipantServiceImpl handles participant administration and history queries
type ParticipantServiceImpl struct {
	participantRepo repositories.ParticipantRepository
	historyRepo     repositories.SpinHistoryRepository
}

// NewParticipantService creates a new ParticipantServiceImpl
func NewParticipantService(participantRepo repositories.ParticipantRepository, historyRepo repositories.SpinHistoryRepository) *ParticipantServiceImpl {
	return &ParticipantServiceImpl{
		participantRepo: participantRepo,
		historyRepo:     historyRepo,
	}
}

// CreateParticipant registers a new participant
func (s *ParticipantServiceImpl) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	if participant.Phone == "" {
		return errors.New("participant phone is required")
	}
	existing, err := s.participantRepo.FindByPhone(ctx, participant.EventID, participant.Phone)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check for existing participant: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("participant with phone %s already registered for this event", participant.Phone)
	}
	if participant.Status == "" {
		participant.Status = models.StatusActive
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		slog.Error("Failed to create participant", "error", err, "phone", participant.Phone)
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

// GetParticipant retrieves a participant by ID
func (s *ParticipantServiceImpl) GetParticipant(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	return s.participantRepo.FindByID(ctx, id)
}

// GetParticipants retrieves all participants of an event
func (s *ParticipantServiceImpl) GetParticipants(ctx context.Context, eventID primitive.ObjectID) ([]*models.Participant, error) {
	return s.participantRepo.FindByEventID(ctx, eventID)
}

// UpdateParticipant updates a participant's configuration. Spin counters are
// owned by the quota ledger; admin updates go through the unconditional path
// and are meant for status or allowance top-ups, not gameplay.
func (s *ParticipantServiceImpl) UpdateParticipant(ctx context.Context, participant *models.Participant) error {
	return s.participantRepo.Update(ctx, participant)
}

// GetSpinHistory retrieves a page of a participant's spin history
func (s *ParticipantServiceImpl) GetSpinHistory(ctx context.Context, participantID primitive.ObjectID, page, limit int) ([]*models.SpinHistory, error) {
	return s.historyRepo.FindByParticipantID(ctx, participantID, page, limit)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure SpinServiceImpl implements SpinService
var _ SpinService = (*SpinServiceImpl)(nil)

// SpinServiceImpl orchestrates one spin transaction:
//
//	RECEIVED -> ELIGIBLE | DENIED
//	ELIGIBLE -> RESOLVED(WIN|NOWIN) -> COMMITTING -> COMMITTED | CONFLICT_EXHAUSTED -> RECORDED
//
// The participant's allowance is consumed for every resolved spin, win or
// lose, before the draw; a reward-allocation conflict afterwards does not
// give it back. Once that first commit lands the request runs to a recorded
// outcome even if the caller's context is cancelled.
type SpinServiceImpl struct {
	eventRepo       repositories.EventRepository
	locationRepo    repositories.LocationRepository
	participantRepo repositories.ParticipantRepository
	rewardRepo      repositories.RewardRepository
	goldenHourRepo  repositories.GoldenHourRepository
	historyRepo     repositories.SpinHistoryRepository
	ledger          *QuotaLedger
	allocator       *RewardAllocator
	clock           Clock
	random          RandomSource
}

// NewSpinService creates a new SpinServiceImpl.
func NewSpinService(
	eventRepo repositories.EventRepository,
	locationRepo repositories.LocationRepository,
	participantRepo repositories.ParticipantRepository,
	rewardRepo repositories.RewardRepository,
	goldenHourRepo repositories.GoldenHourRepository,
	historyRepo repositories.SpinHistoryRepository,
	ledger *QuotaLedger,
	allocator *RewardAllocator,
	clock Clock,
	random RandomSource,
) *SpinServiceImpl {
	return &SpinServiceImpl{
		eventRepo:       eventRepo,
		locationRepo:    locationRepo,
		participantRepo: participantRepo,
		rewardRepo:      rewardRepo,
		goldenHourRepo:  goldenHourRepo,
		historyRepo:     historyRepo,
		ledger:          ledger,
		allocator:       allocator,
		clock:           clock,
		random:          random,
	}
}

// ResolveSpin resolves one spin request end to end.
func (s *SpinServiceImpl) ResolveSpin(ctx context.Context, eventID, locationID, participantID primitive.ObjectID, at time.Time) (*models.SpinOutcome, error) {
	now := at
	if now.IsZero() {
		now = s.clock.Now()
	}

	ctx, span := otel.Tracer("spin-service").Start(ctx, "ResolveSpin")
	defer span.End()
	span.SetAttributes(
		attribute.String("spin.event_id", eventID.Hex()),
		attribute.String("spin.participant_id", participantID.Hex()),
	)

	// 1. Load the aggregates the eligibility check needs.
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load location: %w", err)
	}
	if location.EventID != event.ID {
		return nil, fmt.Errorf("location %s does not belong to event %s: %w", locationID.Hex(), eventID.Hex(), repositories.ErrNotFound)
	}
	participant, err := s.participantRepo.FindByID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}

	// 2. Eligibility. Denials are expected outcomes, not errors, and commit
	// nothing.
	if reason, denied := CheckEligibility(event, location, participant, now); denied {
		slog.Info("Spin denied", "participantId", participantID.Hex(), "reason", string(reason))
		return &models.SpinOutcome{Status: models.SpinDenied, Reason: reason}, nil
	}

	// 3. Resolve the candidate set before consuming the allowance so a spin
	// against an empty reward list still records honestly as a loss.
	rewards, err := s.rewardRepo.FindByLocationID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rewards: %w", err)
	}
	rewardIDs := make([]primitive.ObjectID, 0, len(rewards))
	for _, r := range rewards {
		rewardIDs = append(rewardIDs, r.ID)
	}
	goldenHours, err := s.goldenHourRepo.FindByRewardIDs(ctx, rewardIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load golden hours: %w", err)
	}
	candidates := ResolveProbabilities(rewards, goldenHours, now)

	// 4. Consume the spin allowance. This is the first commit of the
	// transaction; everything before it may abort freely.
	if _, err := s.ledger.ConsumeSpin(ctx, participantID, now); err != nil {
		switch {
		case errors.Is(err, ErrNoRemainingSpins):
			return &models.SpinOutcome{Status: models.SpinDenied, Reason: models.DenialNoRemainingSpins}, nil
		case errors.Is(err, ErrDailyLimitReached):
			return &models.SpinOutcome{Status: models.SpinDenied, Reason: models.DenialDailyLimitReached}, nil
		case errors.Is(err, ErrAllocationConflict):
			slog.Warn("Spin aborted before commit: quota contention", "participantId", participantID.Hex())
			return &models.SpinOutcome{Status: models.SpinConflictExhausted}, nil
		default:
			return nil, err
		}
	}

	// An allowance is now consumed; the request must reach a recorded outcome
	// even if the caller gives up.
	ctx = context.WithoutCancel(ctx)
	s.ledger.ConsumeEventPool(ctx, event.ID)

	referenceID := uuid.NewString()
	history := &models.SpinHistory{
		ReferenceID:   referenceID,
		EventID:       eventID,
		LocationID:    locationID,
		ParticipantID: participantID,
		Multiplier:    1.0,
		SpunAt:        now,
	}
	outcome := &models.SpinOutcome{ReferenceID: referenceID}

	// 5. The draw.
	idx, won := SelectWinner(candidates, s.random)
	if !won {
		history.Outcome = models.SpinOutcomeLose
		history.GoldenHourActive = anyGoldenHourActive(candidates)
		outcome.Status = models.SpinLost
		outcome.GoldenHourApplied = history.GoldenHourActive
		outcome.Considered = consideredRewards(candidates)
		return s.record(ctx, history, outcome)
	}

	// 6. Commit the win against the reward's contended counters.
	c := candidates[idx]
	history.RewardID = &c.Reward.ID
	history.BaseProbability = c.BaseProbability
	history.Multiplier = c.Multiplier
	history.FinalProbability = c.EffectiveProbability
	history.GoldenHourActive = c.GoldenHourActive

	_, allocErr := s.allocator.CommitWin(ctx, c.Reward.ID, now)
	switch {
	case allocErr == nil:
		history.Won = true
		history.Outcome = models.SpinOutcomeWin
		outcome.Status = models.SpinWon
		outcome.RewardID = &c.Reward.ID
		outcome.FinalProbability = c.EffectiveProbability
		outcome.GoldenHourApplied = c.GoldenHourActive
		slog.Info("Spin won", "participantId", participantID.Hex(), "rewardId", c.Reward.ID.Hex(), "probability", c.EffectiveProbability)
	case errors.Is(allocErr, ErrQuotaRaced):
		// A concurrent winner took the last unit. Valid business outcome.
		history.Outcome = models.SpinOutcomeLose
		outcome.Status = models.SpinLost
		outcome.GoldenHourApplied = c.GoldenHourActive
		outcome.Considered = consideredRewards(candidates)
		slog.Info("Spin lost: reward quota raced away", "participantId", participantID.Hex(), "rewardId", c.Reward.ID.Hex())
	case errors.Is(allocErr, ErrAllocationConflict):
		history.Outcome = models.SpinOutcomeConflict
		outcome.Status = models.SpinConflictExhausted
		slog.Warn("Spin allocation conflict exhausted", "participantId", participantID.Hex(), "rewardId", c.Reward.ID.Hex(), "referenceId", referenceID)
	default:
		history.Outcome = models.SpinOutcomeConflict
		if _, recErr := s.record(ctx, history, outcome); recErr != nil {
			slog.Error("Failed to record spin after allocation failure", "error", recErr, "referenceId", referenceID)
		}
		return nil, fmt.Errorf("failed to allocate reward: %w", allocErr)
	}

	return s.record(ctx, history, outcome)
}

// record appends the history row and returns the outcome. A recording failure
// is fatal for the request even though the counter mutations stand; the
// reference ID in the log line is the reconciliation handle.
func (s *SpinServiceImpl) record(ctx context.Context, history *models.SpinHistory, outcome *models.SpinOutcome) (*models.SpinOutcome, error) {
	if err := s.historyRepo.Create(ctx, history); err != nil {
		slog.Error("Failed to record spin history; counters already committed",
			"error", err,
			"referenceId", history.ReferenceID,
			"participantId", history.ParticipantID.Hex(),
			"outcome", history.Outcome,
		)
		return nil, &RecordingError{ReferenceID: history.ReferenceID, Err: err}
	}
	return outcome, nil
}

func anyGoldenHourActive(candidates []RewardProbability) bool {
	for i := range candidates {
		if candidates[i].GoldenHourActive {
			return true
		}
	}
	return false
}

func consideredRewards(candidates []RewardProbability) []models.ConsideredReward {
	considered := make([]models.ConsideredReward, 0, len(candidates))
	for i := range candidates {
		considered = append(considered, models.ConsideredReward{
			RewardID:         candidates[i].Reward.ID,
			FinalProbability: candidates[i].EffectiveProbability,
		})
	}
	return considered
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"github.com/luckywheel/spin-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// QuotaLedger commits the spin-allowance side of a spin: one decrement of the
// participant's lifetime pool plus the daily counter update, folded into a
// single version-guarded write. Contention is resolved by reloading and
// retrying with jittered backoff, never by locking.
type QuotaLedger struct {
	participantRepo repositories.ParticipantRepository
	eventRepo       repositories.EventRepository
	maxRetries      int
	backoff         time.Duration
}

// NewQuotaLedger creates a new QuotaLedger.
func NewQuotaLedger(participantRepo repositories.ParticipantRepository, eventRepo repositories.EventRepository, maxRetries int, backoff time.Duration) *QuotaLedger {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	if backoff <= 0 {
		backoff = 10 * time.Millisecond
	}
	return &QuotaLedger{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		maxRetries:      maxRetries,
		backoff:         backoff,
	}
}

// ConsumeSpin decrements the participant's remaining spins and advances the
// daily counter, resetting it first when the last spin happened on an earlier
// date. The reset and the increment commit in the same conditional update.
// Returns ErrNoRemainingSpins / ErrDailyLimitReached when the allowance raced
// away since the eligibility check, and ErrAllocationConflict when retries
// are exhausted by contention.
func (l *QuotaLedger) ConsumeSpin(ctx context.Context, participantID primitive.ObjectID, now time.Time) (*models.Participant, error) {
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		participant, err := l.participantRepo.FindByID(ctx, participantID)
		if err != nil {
			return nil, fmt.Errorf("failed to load participant: %w", err)
		}

		if participant.RemainingSpins <= 0 {
			return nil, ErrNoRemainingSpins
		}
		used := participant.DailySpinsUsedOn(now)
		if participant.DailySpinLimit > 0 && used >= participant.DailySpinLimit {
			return nil, ErrDailyLimitReached
		}

		participant.RemainingSpins--
		participant.DailySpinsUsed = used + 1
		participant.LastSpinDate = models.DateOf(now)

		err = l.participantRepo.UpdateVersioned(ctx, participant)
		if err == nil {
			return participant, nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return nil, fmt.Errorf("failed to commit spin consumption: %w", err)
		}
		if waitErr := waitBackoff(ctx, attempt, l.backoff); waitErr != nil {
			return nil, waitErr
		}
	}
	slog.Warn("Quota ledger retries exhausted", "participantId", participantID.Hex(), "retries", l.maxRetries)
	return nil, ErrAllocationConflict
}

// ConsumeEventPool decrements the event-wide spin pool after a participant
// commit. The pool is a soft cap: it is enforced at eligibility time, so a
// decrement that races to zero here is clamped and logged instead of failing
// a spin whose allowance is already consumed.
func (l *QuotaLedger) ConsumeEventPool(ctx context.Context, eventID primitive.ObjectID) {
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		event, err := l.eventRepo.FindByID(ctx, eventID)
		if err != nil {
			slog.Error("Failed to load event for pool decrement", "error", err, "eventId", eventID.Hex())
			return
		}
		if !event.UsesSpinPool() || event.RemainingSpins <= 0 {
			return
		}
		event.RemainingSpins--
		err = l.eventRepo.UpdateVersioned(ctx, event)
		if err == nil {
			return
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			slog.Error("Failed to commit event pool decrement", "error", err, "eventId", eventID.Hex())
			return
		}
		if waitErr := waitBackoff(ctx, attempt, l.backoff); waitErr != nil {
			return
		}
	}
	slog.Warn("Event pool decrement retries exhausted", "eventId", eventID.Hex(), "retries", l.maxRetries)
}

// waitBackoff sleeps for a jittered, exponentially growing interval or until
// the context is done.
func waitBackoff(ctx context.Context, attempt int, base time.Duration) error {
	timer := time.NewTimer(utils.JitteredBackoff(attempt, base))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// RewardAllocator commits a win against a reward's finite counters: one unit
// off the remaining quantity and one onto the daily win count, in a single
// version-guarded write. Across any number of concurrent spins a reward never
// grants more units than its total quantity, and each unit goes to exactly
// one spin.
type RewardAllocator struct {
	rewardRepo repositories.RewardRepository
	maxRetries int
	backoff    time.Duration
}

// NewRewardAllocator creates a new RewardAllocator.
func NewRewardAllocator(rewardRepo repositories.RewardRepository, maxRetries int, backoff time.Duration) *RewardAllocator {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	if backoff <= 0 {
		backoff = 10 * time.Millisecond
	}
	return &RewardAllocator{
		rewardRepo: rewardRepo,
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

// CommitWin attempts to allocate one unit of the reward. State is re-validated
// on every attempt because it may have changed since the probabilities were
// resolved. Returns ErrQuotaRaced when the quantity or daily cap was taken by
// a concurrent winner (the spin becomes a loss, not a fault), and
// ErrAllocationConflict when the bounded retries were exhausted purely by
// contention (never downgraded to a loss).
func (a *RewardAllocator) CommitWin(ctx context.Context, rewardID primitive.ObjectID, now time.Time) (*models.Reward, error) {
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		reward, err := a.rewardRepo.FindByID(ctx, rewardID)
		if err != nil {
			return nil, fmt.Errorf("failed to load reward: %w", err)
		}

		if !reward.IsValidAt(now) || reward.Depleted() || reward.DailyLimitReachedOn(now) {
			return nil, ErrQuotaRaced
		}

		if reward.RemainingQuantity != nil {
			remaining := *reward.RemainingQuantity - 1
			reward.RemainingQuantity = &remaining
		}
		reward.DailyCount = reward.DailyCountOn(now) + 1
		reward.DailyCountDate = models.DateOf(now)

		err = a.rewardRepo.UpdateVersioned(ctx, reward)
		if err == nil {
			return reward, nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return nil, fmt.Errorf("failed to commit win: %w", err)
		}
		if waitErr := waitBackoff(ctx, attempt, a.backoff); waitErr != nil {
			return nil, waitErr
		}
	}
	slog.Warn("Reward allocation retries exhausted", "rewardId", rewardID.Hex(), "retries", a.maxRetries)
	return nil, ErrAllocationConflict
}

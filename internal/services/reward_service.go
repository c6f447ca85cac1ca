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

// Compile-time check to ensure RewardServiceImpl implements RewardService
var _ RewardService = (*RewardServiceImpl)(nil)

// RewardServiceImpl handles reward and golden hour administration
type RewardServiceImpl struct {
	rewardRepo     repositories.RewardRepository
	goldenHourRepo repositories.GoldenHourRepository
	locationRepo   repositories.LocationRepository
	clock          Clock
}

// NewRewardService creates a new RewardServiceImpl
func NewRewardService(rewardRepo repositories.RewardRepository, goldenHourRepo repositories.GoldenHourRepository, locationRepo repositories.LocationRepository, clock Clock) *RewardServiceImpl {
	return &RewardServiceImpl{
		rewardRepo:     rewardRepo,
		goldenHourRepo: goldenHourRepo,
		locationRepo:   locationRepo,
		clock:          clock,
	}
}

// CreateReward creates a new reward under an existing location
func (s *RewardServiceImpl) CreateReward(ctx context.Context, reward *models.Reward) error {
	if reward.WinProbability < 0 || reward.WinProbability > 1 {
		return errors.New("win probability must be a fraction between 0.0 and 1.0")
	}
	if !reward.ValidUntil.After(reward.ValidFrom) {
		return errors.New("reward validity end must be after start")
	}
	location, err := s.locationRepo.FindByID(ctx, reward.LocationID)
	if err != nil {
		return fmt.Errorf("location not found: %w", err)
	}
	reward.EventID = location.EventID
	if reward.Status == "" {
		reward.Status = models.StatusActive
	}
	if reward.TotalQuantity > 0 && reward.RemainingQuantity == nil {
		remaining := reward.TotalQuantity
		reward.RemainingQuantity = &remaining
	}
	if err := s.rewardRepo.Create(ctx, reward); err != nil {
		slog.Error("Failed to create reward", "error", err, "locationId", reward.LocationID.Hex())
		return fmt.Errorf("failed to create reward: %w", err)
	}
	slog.Info("Reward created", "rewardId", reward.ID.Hex(), "probability", reward.WinProbability)
	return nil
}

// GetReward retrieves a reward by ID
func (s *RewardServiceImpl) GetReward(ctx context.Context, id primitive.ObjectID) (*models.Reward, error) {
	return s.rewardRepo.FindByID(ctx, id)
}

// GetRewards retrieves all rewards of a location
func (s *RewardServiceImpl) GetRewards(ctx context.Context, locationID primitive.ObjectID) ([]*models.Reward, error) {
	return s.rewardRepo.FindByLocationID(ctx, locationID)
}

// UpdateReward updates a reward's configuration. Quantity counters are owned
// by the allocator; this path is for probability, windows and status changes.
func (s *RewardServiceImpl) UpdateReward(ctx context.Context, reward *models.Reward) error {
	if reward.WinProbability < 0 || reward.WinProbability > 1 {
		return errors.New("win probability must be a fraction between 0.0 and 1.0")
	}
	return s.rewardRepo.Update(ctx, reward)
}

// CreateGoldenHour creates a new golden hour under an existing reward
func (s *RewardServiceImpl) CreateGoldenHour(ctx context.Context, goldenHour *models.GoldenHour) error {
	if goldenHour.Multiplier < 1.0 {
		return errors.New("golden hour multiplier must be at least 1.0")
	}
	if _, err := s.rewardRepo.FindByID(ctx, goldenHour.RewardID); err != nil {
		return fmt.Errorf("reward not found: %w", err)
	}
	if goldenHour.Status == "" {
		goldenHour.Status = models.StatusActive
	}
	if err := s.goldenHourRepo.Create(ctx, goldenHour); err != nil {
		slog.Error("Failed to create golden hour", "error", err, "rewardId", goldenHour.RewardID.Hex())
		return fmt.Errorf("failed to create golden hour: %w", err)
	}
	return nil
}

// GetGoldenHours retrieves all golden hours of a reward
func (s *RewardServiceImpl) GetGoldenHours(ctx context.Context, rewardID primitive.ObjectID) ([]*models.GoldenHour, error) {
	return s.goldenHourRepo.FindByRewardID(ctx, rewardID)
}

// SweepExpired marks rewards and date-bound golden hours whose windows closed
// before now as EXPIRED and returns the number of documents touched.
func (s *RewardServiceImpl) SweepExpired(ctx context.Context) (int64, error) {
	now := s.clock.Now()
	expiredRewards, err := s.rewardRepo.ExpireBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire rewards: %w", err)
	}
	expiredGoldenHours, err := s.goldenHourRepo.ExpireBefore(ctx, now)
	if err != nil {
		return expiredRewards, fmt.Errorf("failed to expire golden hours: %w", err)
	}
	total := expiredRewards + expiredGoldenHours
	if total > 0 {
		slog.Info("Expired sweep completed", "rewards", expiredRewards, "goldenHours", expiredGoldenHours)
	}
	return total, nil
}

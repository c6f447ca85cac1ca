package services

import (
	"testing"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validReward(probability float64) *models.Reward {
	return &models.Reward{
		ID:             primitive.NewObjectID(),
		WinProbability: probability,
		ValidFrom:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:         models.StatusActive,
	}
}

func int64p(v int64) *int64 { return &v }

func TestResolveProbabilitiesExcludesIneligibleRewards(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

	expired := validReward(0.5)
	expired.ValidUntil = now.Add(-time.Hour)
	depleted := validReward(0.5)
	depleted.RemainingQuantity = int64p(0)
	capped := validReward(0.5)
	capped.DailyLimit = int64p(3)
	capped.DailyCount = 3
	capped.DailyCountDate = models.DateOf(now)
	ok := validReward(0.25)

	candidates := ResolveProbabilities([]*models.Reward{expired, depleted, capped, ok}, nil, now)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Reward.ID != ok.ID {
		t.Fatal("wrong reward survived filtering")
	}
	if candidates[0].EffectiveProbability != 0.25 {
		t.Fatalf("expected effective probability 0.25, got %v", candidates[0].EffectiveProbability)
	}
}

// A daily cap hit yesterday does not carry into today.
func TestResolveProbabilitiesDailyCapResetsByDate(t *testing.T) {
	now := time.Date(2026, 7, 15, 1, 0, 0, 0, time.UTC)
	reward := validReward(0.5)
	reward.DailyLimit = int64p(2)
	reward.DailyCount = 2
	reward.DailyCountDate = time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	candidates := ResolveProbabilities([]*models.Reward{reward}, nil, now)
	if len(candidates) != 1 {
		t.Fatalf("expected the reward to be a candidate again, got %d candidates", len(candidates))
	}
}

func TestResolveProbabilitiesGoldenHourMultiplier(t *testing.T) {
	now := time.Date(2026, 7, 15, 13, 0, 0, 0, time.UTC)
	reward := validReward(0.3)
	gh := &models.GoldenHour{
		RewardID:   reward.ID,
		StartTime:  time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC),
		Multiplier: 2.0,
		Status:     models.StatusActive,
	}

	candidates := ResolveProbabilities([]*models.Reward{reward}, []*models.GoldenHour{gh}, now)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if !c.GoldenHourActive {
		t.Fatal("expected golden hour to be active at 13:00")
	}
	if c.EffectiveProbability != 0.6 {
		t.Fatalf("expected 0.3*2.0=0.6, got %v", c.EffectiveProbability)
	}

	// Outside the window the base probability applies unchanged.
	later := time.Date(2026, 7, 15, 15, 0, 0, 0, time.UTC)
	candidates = ResolveProbabilities([]*models.Reward{reward}, []*models.GoldenHour{gh}, later)
	if candidates[0].GoldenHourActive {
		t.Fatal("expected golden hour inactive at 15:00")
	}
	if candidates[0].EffectiveProbability != 0.3 {
		t.Fatalf("expected base probability 0.3, got %v", candidates[0].EffectiveProbability)
	}
}

// Overlapping golden hours take the max multiplier, never the product.
func TestResolveProbabilitiesOverlappingGoldenHours(t *testing.T) {
	now := time.Date(2026, 7, 15, 13, 0, 0, 0, time.UTC)
	reward := validReward(0.25)
	mk := func(mult float64) *models.GoldenHour {
		return &models.GoldenHour{
			RewardID:   reward.ID,
			StartTime:  time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC),
			Multiplier: mult,
			Status:     models.StatusActive,
		}
	}

	candidates := ResolveProbabilities([]*models.Reward{reward}, []*models.GoldenHour{mk(2.0), mk(3.0)}, now)
	if got := candidates[0].Multiplier; got != 3.0 {
		t.Fatalf("expected max multiplier 3.0, got %v", got)
	}
	// 0.25 and 0.75 are exactly representable, so equality is safe here.
	if got := candidates[0].EffectiveProbability; got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

// A multiplier below 1.0 is clamped so a golden hour never hurts.
func TestResolveProbabilitiesClampsLowMultiplier(t *testing.T) {
	now := time.Date(2026, 7, 15, 13, 0, 0, 0, time.UTC)
	reward := validReward(0.4)
	gh := &models.GoldenHour{
		RewardID:   reward.ID,
		StartTime:  time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC),
		Multiplier: 0.5,
		Status:     models.StatusActive,
	}

	candidates := ResolveProbabilities([]*models.Reward{reward}, []*models.GoldenHour{gh}, now)
	if got := candidates[0].EffectiveProbability; got != 0.4 {
		t.Fatalf("expected clamped probability 0.4, got %v", got)
	}
	if !candidates[0].GoldenHourActive {
		t.Fatal("clamped golden hour still counts as active")
	}
}

func TestResolveProbabilitiesCapsAtOne(t *testing.T) {
	now := time.Date(2026, 7, 15, 13, 0, 0, 0, time.UTC)
	reward := validReward(0.7)
	gh := &models.GoldenHour{
		RewardID:   reward.ID,
		StartTime:  time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC),
		Multiplier: 2.0,
		Status:     models.StatusActive,
	}

	candidates := ResolveProbabilities([]*models.Reward{reward}, []*models.GoldenHour{gh}, now)
	if got := candidates[0].EffectiveProbability; got != 1.0 {
		t.Fatalf("expected cap at 1.0, got %v", got)
	}
}

func TestResolveProbabilitiesRecurringWindowWrapsMidnight(t *testing.T) {
	reward := validReward(0.1)
	gh := &models.GoldenHour{
		RewardID:   reward.ID,
		StartTime:  time.Date(2026, 1, 1, 22, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC),
		Recurring:  true,
		Multiplier: 2.0,
		Status:     models.StatusActive,
	}

	inside := time.Date(2026, 7, 15, 23, 30, 0, 0, time.UTC)
	candidates := ResolveProbabilities([]*models.Reward{reward}, []*models.GoldenHour{gh}, inside)
	if !candidates[0].GoldenHourActive {
		t.Fatal("expected wrapped window active at 23:30")
	}

	afterMidnight := time.Date(2026, 7, 16, 1, 0, 0, 0, time.UTC)
	candidates = ResolveProbabilities([]*models.Reward{reward}, []*models.GoldenHour{gh}, afterMidnight)
	if !candidates[0].GoldenHourActive {
		t.Fatal("expected wrapped window active at 01:00")
	}

	outside := time.Date(2026, 7, 16, 12, 0, 0, 0, time.UTC)
	candidates = ResolveProbabilities([]*models.Reward{reward}, []*models.GoldenHour{gh}, outside)
	if candidates[0].GoldenHourActive {
		t.Fatal("expected wrapped window inactive at noon")
	}
}

func TestResolveProbabilitiesOrderedByRewardID(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	rewards := []*models.Reward{validReward(0.1), validReward(0.2), validReward(0.3)}

	candidates := ResolveProbabilities([]*models.Reward{rewards[2], rewards[0], rewards[1]}, nil, now)
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i-1].Reward.ID.Hex() >= candidates[i].Reward.ID.Hex() {
			t.Fatal("candidates not ordered by reward ID ascending")
		}
	}
}

package services

import (
	"sort"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardProbability is one candidate reward with its effective win probability
// at spin time.
type RewardProbability struct {
	Reward               *models.Reward
	BaseProbability      float64
	Multiplier           float64
	EffectiveProbability float64
	GoldenHourActive     bool
}

// ResolveProbabilities computes the effective win probability of every
// candidate reward at the given instant. Rewards outside their validity
// window, with a depleted quantity pool or at their daily cap are excluded.
// When several golden hours of one reward are active simultaneously the
// largest multiplier wins; multipliers are never combined. The result is
// ordered by reward ID ascending, which the selector depends on.
func ResolveProbabilities(rewards []*models.Reward, goldenHours []*models.GoldenHour, now time.Time) []RewardProbability {
	byReward := make(map[primitive.ObjectID][]*models.GoldenHour, len(goldenHours))
	for _, g := range goldenHours {
		byReward[g.RewardID] = append(byReward[g.RewardID], g)
	}

	candidates := make([]RewardProbability, 0, len(rewards))
	for _, r := range rewards {
		if !r.IsValidAt(now) || r.Depleted() || r.DailyLimitReachedOn(now) {
			continue
		}

		multiplier := 1.0
		active := false
		for _, g := range byReward[r.ID] {
			if !g.IsActiveAt(now) {
				continue
			}
			active = true
			m := g.Multiplier
			if m < 1.0 {
				// A golden hour may never reduce the base probability.
				m = 1.0
			}
			if m > multiplier {
				multiplier = m
			}
		}

		effective := r.WinProbability * multiplier
		if effective > 1.0 {
			effective = 1.0
		}

		candidates = append(candidates, RewardProbability{
			Reward:               r,
			BaseProbability:      r.WinProbability,
			Multiplier:           multiplier,
			EffectiveProbability: effective,
			GoldenHourActive:     active,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Reward.ID.Hex() < candidates[j].Reward.ID.Hex()
	})
	return candidates
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reward is one finite prize pool attached to a location. WinProbability is a
// fraction in [0.0, 1.0]. RemainingQuantity and DailyLimit are nil when
// unlimited. DailyCount is interpreted against DailyCountDate and lazily
// resets when a win commits on a later date.
type Reward struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EventID           primitive.ObjectID `bson:"eventId" json:"eventId"`
	LocationID        primitive.ObjectID `bson:"locationId" json:"locationId"`
	Name              string             `bson:"name" json:"name"`
	WinProbability    float64            `bson:"winProbability" json:"winProbability"`
	ValidFrom         time.Time          `bson:"validFrom" json:"validFrom"`
	ValidUntil        time.Time          `bson:"validUntil" json:"validUntil"`
	TotalQuantity     int64              `bson:"totalQuantity" json:"totalQuantity"`
	RemainingQuantity *int64             `bson:"remainingQuantity,omitempty" json:"remainingQuantity,omitempty"`
	DailyLimit        *int64             `bson:"dailyLimit,omitempty" json:"dailyLimit,omitempty"`
	DailyCount        int64              `bson:"dailyCount" json:"dailyCount"`
	DailyCountDate    time.Time          `bson:"dailyCountDate,omitempty" json:"dailyCountDate,omitempty"`
	Status            string             `bson:"status" json:"status"`
	Version           int64              `bson:"version" json:"version"`
	AuditInfo         `bson:",inline"`
}

// IsValidAt reports whether the reward may be won at the given instant.
// The validity window is half-open: [ValidFrom, ValidUntil).
func (r *Reward) IsValidAt(now time.Time) bool {
	if r.Status != StatusActive {
		return false
	}
	return !now.Before(r.ValidFrom) && now.Before(r.ValidUntil)
}

// Depleted reports whether the finite quantity pool is exhausted.
func (r *Reward) Depleted() bool {
	return r.RemainingQuantity != nil && *r.RemainingQuantity <= 0
}

// DailyCountOn returns the daily win counter as seen on the given date.
func (r *Reward) DailyCountOn(today time.Time) int64 {
	if r.DailyCountDate.IsZero() || DateOf(r.DailyCountDate).Before(DateOf(today)) {
		return 0
	}
	return r.DailyCount
}

// DailyLimitReachedOn reports whether the per-day win cap is hit for the date.
func (r *Reward) DailyLimitReachedOn(today time.Time) bool {
	return r.DailyLimit != nil && r.DailyCountOn(today) >= *r.DailyLimit
}

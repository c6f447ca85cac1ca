package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event represents one spin-to-win campaign with a time window and an optional
// event-wide spin pool. RemainingSpins is only enforced when TotalSpins > 0.
type Event struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code           string             `bson:"code" json:"code"`
	Name           string             `bson:"name" json:"name"`
	StartTime      time.Time          `bson:"startTime" json:"startTime"`
	EndTime        time.Time          `bson:"endTime" json:"endTime"`
	TotalSpins     int64              `bson:"totalSpins" json:"totalSpins"`
	RemainingSpins int64              `bson:"remainingSpins" json:"remainingSpins"`
	Status         string             `bson:"status" json:"status"`
	Version        int64              `bson:"version" json:"version"`
	AuditInfo      `bson:",inline"`
}

// IsActiveAt reports whether the event accepts spins at the given instant.
// The window is half-open: [StartTime, EndTime).
func (e *Event) IsActiveAt(now time.Time) bool {
	if e.Status != StatusActive {
		return false
	}
	return !now.Before(e.StartTime) && now.Before(e.EndTime)
}

// UsesSpinPool reports whether the event-wide spin pool is enforced.
func (e *Event) UsesSpinPool() bool {
	return e.TotalSpins > 0
}

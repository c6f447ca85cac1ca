package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoldenHour is a time-boxed probability boost for one reward. When Recurring
// is set the window's time-of-day applies every day; otherwise StartTime and
// EndTime are absolute instants. Multiplier is expected to be >= 1.0; the
// probability resolver clamps anything lower so a golden hour can never reduce
// the base probability.
type GoldenHour struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RewardID   primitive.ObjectID `bson:"rewardId" json:"rewardId"`
	StartTime  time.Time          `bson:"startTime" json:"startTime"`
	EndTime    time.Time          `bson:"endTime" json:"endTime"`
	Recurring  bool               `bson:"recurring" json:"recurring"`
	Multiplier float64            `bson:"multiplier" json:"multiplier"`
	Status     string             `bson:"status" json:"status"`
	AuditInfo  `bson:",inline"`
}

// IsActiveAt reports whether the golden hour boosts spins at the given
// instant. Windows are half-open: [start, end). Recurring windows whose start
// time-of-day is later than their end time-of-day wrap across midnight.
func (g *GoldenHour) IsActiveAt(now time.Time) bool {
	if g.Status != StatusActive {
		return false
	}
	if !g.Recurring {
		return !now.Before(g.StartTime) && now.Before(g.EndTime)
	}
	cur := secondOfDay(now)
	start := secondOfDay(g.StartTime)
	end := secondOfDay(g.EndTime)
	if start <= end {
		return cur >= start && cur < end
	}
	return cur >= start || cur < end
}

func secondOfDay(t time.Time) int {
	u := t.UTC()
	return u.Hour()*3600 + u.Minute()*60 + u.Second()
}

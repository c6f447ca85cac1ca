package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant is one registered player of an event. RemainingSpins is the
// lifetime allowance; DailySpinsUsed tracks consumption against DailySpinLimit
// and resets lazily when LastSpinDate falls behind the current date.
type Participant struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EventID        primitive.ObjectID `bson:"eventId" json:"eventId"`
	LocationID     primitive.ObjectID `bson:"locationId" json:"locationId"`
	Name           string             `bson:"name" json:"name"`
	Phone          string             `bson:"phone" json:"phone"`
	Status         string             `bson:"status" json:"status"`
	RemainingSpins int64              `bson:"remainingSpins" json:"remainingSpins"`
	DailySpinLimit int64              `bson:"dailySpinLimit" json:"dailySpinLimit"`
	DailySpinsUsed int64              `bson:"dailySpinsUsed" json:"dailySpinsUsed"`
	LastSpinDate   time.Time          `bson:"lastSpinDate,omitempty" json:"lastSpinDate,omitempty"`
	Version        int64              `bson:"version" json:"version"`
	AuditInfo      `bson:",inline"`
}

// IsActive reports whether the participant may spin at all.
func (p *Participant) IsActive() bool {
	return p.Status == StatusActive
}

// DailySpinsUsedOn returns the daily counter as seen on the given date: the
// stored value when a spin already happened today, zero otherwise. The actual
// reset is committed by the quota ledger, never here.
func (p *Participant) DailySpinsUsedOn(today time.Time) int64 {
	if p.LastSpinDate.IsZero() || DateOf(p.LastSpinDate).Before(DateOf(today)) {
		return 0
	}
	return p.DailySpinsUsed
}

// DateOf truncates an instant to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

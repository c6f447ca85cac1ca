package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Spin outcome codes stored on history rows.
const (
	SpinOutcomeWin      = "WIN"
	SpinOutcomeLose     = "LOSE"
	SpinOutcomeConflict = "CONFLICT"
)

// SpinHistory is the immutable record of one resolved spin. It captures the
// exact probability inputs used for the attempt and is never updated or
// deleted by the engine.
type SpinHistory struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	ReferenceID       string              `bson:"referenceId" json:"referenceId"`
	EventID           primitive.ObjectID  `bson:"eventId" json:"eventId"`
	LocationID        primitive.ObjectID  `bson:"locationId" json:"locationId"`
	ParticipantID     primitive.ObjectID  `bson:"participantId" json:"participantId"`
	RewardID          *primitive.ObjectID `bson:"rewardId,omitempty" json:"rewardId,omitempty"`
	Won               bool                `bson:"won" json:"won"`
	Outcome           string              `bson:"outcome" json:"outcome"`
	BaseProbability   float64             `bson:"baseProbability" json:"baseProbability"`
	Multiplier        float64             `bson:"multiplier" json:"multiplier"`
	FinalProbability  float64             `bson:"finalProbability" json:"finalProbability"`
	GoldenHourActive  bool                `bson:"goldenHourActive" json:"goldenHourActive"`
	SpunAt            time.Time           `bson:"spunAt" json:"spunAt"`
	AuditInfo         `bson:",inline"`
}

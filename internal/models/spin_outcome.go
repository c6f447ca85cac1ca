package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SpinStatus classifies the terminal state of a spin request.
type SpinStatus string

const (
	SpinDenied            SpinStatus = "DENIED"
	SpinWon               SpinStatus = "WON"
	SpinLost              SpinStatus = "LOST"
	SpinConflictExhausted SpinStatus = "CONFLICT_EXHAUSTED"
)

// DenialReason explains why an eligibility check refused a spin.
type DenialReason string

const (
	DenialEventInactive       DenialReason = "EVENT_INACTIVE"
	DenialLocationInactive    DenialReason = "LOCATION_INACTIVE"
	DenialParticipantInactive DenialReason = "PARTICIPANT_INACTIVE"
	DenialNoRemainingSpins    DenialReason = "NO_REMAINING_SPINS"
	DenialDailyLimitReached   DenialReason = "DAILY_LIMIT_REACHED"
)

// ConsideredReward is one candidate's effective probability at spin time,
// reported back on losing outcomes.
type ConsideredReward struct {
	RewardID         primitive.ObjectID `json:"rewardId"`
	FinalProbability float64            `json:"finalProbability"`
}

// SpinOutcome is the result returned to the caller for one spin request.
type SpinOutcome struct {
	Status            SpinStatus          `json:"status"`
	Reason            DenialReason        `json:"reason,omitempty"`
	RewardID          *primitive.ObjectID `json:"rewardId,omitempty"`
	FinalProbability  float64             `json:"finalProbability,omitempty"`
	GoldenHourApplied bool                `json:"goldenHourApplied"`
	Considered        []ConsideredReward  `json:"considered,omitempty"`
	ReferenceID       string              `json:"referenceId,omitempty"`
}

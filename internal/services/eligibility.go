package services

import (
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
)

// CheckEligibility validates a spin request against event, location and
// participant state at the given instant. Checks run in a fixed order and
// short-circuit on the first failure. Pure: no side effects, no clock reads.
// The daily counter is evaluated through the lazy-reset view; the actual reset
// is committed by the quota ledger.
func CheckEligibility(event *models.Event, location *models.EventLocation, participant *models.Participant, now time.Time) (models.DenialReason, bool) {
	if !event.IsActiveAt(now) {
		return models.DenialEventInactive, true
	}
	if !location.IsActive() {
		return models.DenialLocationInactive, true
	}
	if !participant.IsActive() {
		return models.DenialParticipantInactive, true
	}
	if participant.RemainingSpins <= 0 {
		return models.DenialNoRemainingSpins, true
	}
	if event.UsesSpinPool() && event.RemainingSpins <= 0 {
		return models.DenialNoRemainingSpins, true
	}
	if participant.DailySpinLimit > 0 && participant.DailySpinsUsedOn(now) >= participant.DailySpinLimit {
		return models.DenialDailyLimitReached, true
	}
	return "", false
}

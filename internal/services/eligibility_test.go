package services

import (
	"testing"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func activeFixtures() (*models.Event, *models.EventLocation, *models.Participant) {
	event := &models.Event{
		ID:        primitive.NewObjectID(),
		Code:      "SUMMER",
		StartTime: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:    models.StatusActive,
	}
	location := &models.EventLocation{
		ID:      primitive.NewObjectID(),
		EventID: event.ID,
		Status:  models.StatusActive,
	}
	participant := &models.Participant{
		ID:             primitive.NewObjectID(),
		EventID:        event.ID,
		LocationID:     location.ID,
		Status:         models.StatusActive,
		RemainingSpins: 3,
	}
	return event, location, participant
}

func TestCheckEligibilityAllows(t *testing.T) {
	event, location, participant := activeFixtures()
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

	if reason, denied := CheckEligibility(event, location, participant, now); denied {
		t.Fatalf("expected eligible, got denial %q", reason)
	}
}

func TestCheckEligibilityDenials(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*models.Event, *models.EventLocation, *models.Participant)
		want   models.DenialReason
	}{
		{
			name: "before event window",
			mutate: func(e *models.Event, _ *models.EventLocation, _ *models.Participant) {
				e.StartTime = now.Add(time.Hour)
			},
			want: models.DenialEventInactive,
		},
		{
			name: "at event end boundary",
			mutate: func(e *models.Event, _ *models.EventLocation, _ *models.Participant) {
				e.EndTime = now
			},
			want: models.DenialEventInactive,
		},
		{
			name: "event disabled",
			mutate: func(e *models.Event, _ *models.EventLocation, _ *models.Participant) {
				e.Status = models.StatusInactive
			},
			want: models.DenialEventInactive,
		},
		{
			name: "location disabled",
			mutate: func(_ *models.Event, l *models.EventLocation, _ *models.Participant) {
				l.Status = models.StatusInactive
			},
			want: models.DenialLocationInactive,
		},
		{
			name: "participant disabled",
			mutate: func(_ *models.Event, _ *models.EventLocation, p *models.Participant) {
				p.Status = models.StatusInactive
			},
			want: models.DenialParticipantInactive,
		},
		{
			name: "no remaining spins",
			mutate: func(_ *models.Event, _ *models.EventLocation, p *models.Participant) {
				p.RemainingSpins = 0
			},
			want: models.DenialNoRemainingSpins,
		},
		{
			name: "event pool exhausted",
			mutate: func(e *models.Event, _ *models.EventLocation, _ *models.Participant) {
				e.TotalSpins = 100
				e.RemainingSpins = 0
			},
			want: models.DenialNoRemainingSpins,
		},
		{
			name: "daily limit reached today",
			mutate: func(_ *models.Event, _ *models.EventLocation, p *models.Participant) {
				p.DailySpinLimit = 2
				p.DailySpinsUsed = 2
				p.LastSpinDate = models.DateOf(now)
			},
			want: models.DenialDailyLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, location, participant := activeFixtures()
			tt.mutate(event, location, participant)
			reason, denied := CheckEligibility(event, location, participant, now)
			if !denied {
				t.Fatal("expected denial, got eligible")
			}
			if reason != tt.want {
				t.Fatalf("expected reason %q, got %q", tt.want, reason)
			}
		})
	}
}

// An inactive participant with zero spins must be reported as inactive, not
// out of spins: the checks have a fixed order.
func TestCheckEligibilityOrder(t *testing.T) {
	event, location, participant := activeFixtures()
	participant.Status = models.StatusInactive
	participant.RemainingSpins = 0
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

	reason, denied := CheckEligibility(event, location, participant, now)
	if !denied || reason != models.DenialParticipantInactive {
		t.Fatalf("expected PARTICIPANT_INACTIVE, got %q (denied=%v)", reason, denied)
	}
}

// A daily counter left over from yesterday must not count against today.
func TestCheckEligibilityDailyCounterFromYesterday(t *testing.T) {
	event, location, participant := activeFixtures()
	participant.DailySpinLimit = 2
	participant.DailySpinsUsed = 2
	participant.LastSpinDate = time.Date(2026, 7, 14, 23, 0, 0, 0, time.UTC)
	now := time.Date(2026, 7, 15, 0, 30, 0, 0, time.UTC)

	if reason, denied := CheckEligibility(event, location, participant, now); denied {
		t.Fatalf("expected eligible after day rollover, got denial %q", reason)
	}
}

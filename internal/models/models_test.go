package models

import (
	"testing"
	"time"
)

func TestDateOfTruncatesToUTCDate(t *testing.T) {
	lagos := time.FixedZone("WAT", 60*60)
	instant := time.Date(2026, 7, 16, 0, 30, 0, 0, lagos) // 2026-07-15T23:30Z

	got := DateOf(instant)
	want := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParticipantDailySpinsUsedOn(t *testing.T) {
	today := time.Date(2026, 7, 15, 18, 0, 0, 0, time.UTC)
	p := &Participant{DailySpinsUsed: 3, LastSpinDate: DateOf(today)}

	if got := p.DailySpinsUsedOn(today); got != 3 {
		t.Fatalf("same day: expected 3, got %d", got)
	}
	if got := p.DailySpinsUsedOn(today.Add(24 * time.Hour)); got != 0 {
		t.Fatalf("next day: expected 0, got %d", got)
	}

	fresh := &Participant{DailySpinsUsed: 3}
	if got := fresh.DailySpinsUsedOn(today); got != 0 {
		t.Fatalf("never spun: expected 0, got %d", got)
	}
}

func TestEventWindowHalfOpen(t *testing.T) {
	e := &Event{
		StartTime: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Status:    StatusActive,
	}
	if !e.IsActiveAt(e.StartTime) {
		t.Fatal("start instant is inside the window")
	}
	if e.IsActiveAt(e.EndTime) {
		t.Fatal("end instant is outside the window")
	}
}

func TestGoldenHourRecurringTimeOfDay(t *testing.T) {
	g := &GoldenHour{
		StartTime:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 1, 1, 14, 0, 0, 0, time.UTC),
		Recurring:  true,
		Status:     StatusActive,
		Multiplier: 2.0,
	}

	// Months after the configured date, only the time of day matters.
	if !g.IsActiveAt(time.Date(2026, 7, 15, 13, 0, 0, 0, time.UTC)) {
		t.Fatal("expected active at 13:00 on a later date")
	}
	if g.IsActiveAt(time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC)) {
		t.Fatal("end time-of-day is exclusive")
	}
	if !g.IsActiveAt(time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)) {
		t.Fatal("start time-of-day is inclusive")
	}
}

func TestRewardDepletedAndDailyCap(t *testing.T) {
	zero := int64(0)
	one := int64(1)
	today := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

	if (&Reward{}).Depleted() {
		t.Fatal("nil quantity means unlimited")
	}
	if !(&Reward{RemainingQuantity: &zero}).Depleted() {
		t.Fatal("zero quantity is depleted")
	}

	capped := &Reward{DailyLimit: &one, DailyCount: 1, DailyCountDate: DateOf(today)}
	if !capped.DailyLimitReachedOn(today) {
		t.Fatal("expected daily cap hit today")
	}
	if capped.DailyLimitReachedOn(today.Add(24 * time.Hour)) {
		t.Fatal("yesterday's cap must not bind tomorrow")
	}
}

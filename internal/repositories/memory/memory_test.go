package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
)

func TestParticipantUpdateVersioned(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	participant := &models.Participant{Phone: "2348010000001", Status: models.StatusActive, RemainingSpins: 3}
	if err := store.Participants().Create(ctx, participant); err != nil {
		t.Fatal(err)
	}

	first, _ := store.Participants().FindByID(ctx, participant.ID)
	second, _ := store.Participants().FindByID(ctx, participant.ID)

	first.RemainingSpins--
	if err := store.Participants().UpdateVersioned(ctx, first); err != nil {
		t.Fatalf("first writer must succeed: %v", err)
	}
	if first.Version != 1 {
		t.Fatalf("expected version bumped to 1, got %d", first.Version)
	}

	// The second writer still holds version 0 and must be rejected.
	second.RemainingSpins--
	if err := store.Participants().UpdateVersioned(ctx, second); !errors.Is(err, repositories.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	stored, _ := store.Participants().FindByID(ctx, participant.ID)
	if stored.RemainingSpins != 2 {
		t.Fatalf("lost-update: expected 2 spins remaining, got %d", stored.RemainingSpins)
	}
}

func TestFindByIDClonesState(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	quantity := int64(5)
	reward := &models.Reward{Name: "voucher", RemainingQuantity: &quantity, Status: models.StatusActive}
	if err := store.Rewards().Create(ctx, reward); err != nil {
		t.Fatal(err)
	}

	loaded, _ := store.Rewards().FindByID(ctx, reward.ID)
	*loaded.RemainingQuantity = 0

	again, _ := store.Rewards().FindByID(ctx, reward.ID)
	if *again.RemainingQuantity != 5 {
		t.Fatal("mutating a loaded reward leaked into the store")
	}
}

func TestRewardExpireBefore(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	cutoff := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)

	stale := &models.Reward{Name: "old", ValidUntil: cutoff.Add(-time.Hour), Status: models.StatusActive}
	live := &models.Reward{Name: "new", ValidUntil: cutoff.Add(time.Hour), Status: models.StatusActive}
	for _, r := range []*models.Reward{stale, live} {
		if err := store.Rewards().Create(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	n, err := store.Rewards().ExpireBefore(ctx, cutoff)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 expired reward, got %d", n)
	}
	got, _ := store.Rewards().FindByID(ctx, stale.ID)
	if got.Status != models.StatusExpired {
		t.Fatalf("expected EXPIRED, got %s", got.Status)
	}
	got, _ = store.Rewards().FindByID(ctx, live.ID)
	if got.Status != models.StatusActive {
		t.Fatal("live reward must stay active")
	}
}

// Recurring golden hours are never expired by the sweep; only date-bound ones.
func TestGoldenHourExpireBeforeSkipsRecurring(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	cutoff := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)

	dated := &models.GoldenHour{EndTime: cutoff.Add(-time.Hour), Status: models.StatusActive}
	recurring := &models.GoldenHour{EndTime: cutoff.Add(-time.Hour), Recurring: true, Status: models.StatusActive}
	for _, g := range []*models.GoldenHour{dated, recurring} {
		if err := store.GoldenHours().Create(ctx, g); err != nil {
			t.Fatal(err)
		}
	}

	n, err := store.GoldenHours().ExpireBefore(ctx, cutoff)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 expired golden hour, got %d", n)
	}
	got, _ := store.GoldenHours().FindByID(ctx, recurring.ID)
	if got.Status != models.StatusActive {
		t.Fatal("recurring golden hour must not be swept")
	}
}

func TestSpinHistoryPagination(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	participant := &models.Participant{Phone: "2348010000001", Status: models.StatusActive}
	if err := store.Participants().Create(ctx, participant); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		h := &models.SpinHistory{
			ParticipantID: participant.ID,
			Outcome:       models.SpinOutcomeLose,
			SpunAt:        base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.SpinHistories().Create(ctx, h); err != nil {
			t.Fatal(err)
		}
	}

	page1, err := store.SpinHistories().FindByParticipantID(ctx, participant.ID, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page1))
	}
	// Newest first.
	if !page1[0].SpunAt.After(page1[1].SpunAt) {
		t.Fatal("history must be ordered newest first")
	}

	page3, err := store.SpinHistories().FindByParticipantID(ctx, participant.ID, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page3) != 1 {
		t.Fatalf("expected final page of 1 row, got %d", len(page3))
	}
}

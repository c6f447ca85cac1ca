package utils

import (
	"testing"
	"time"

	"github.com/luckywheel/spin-backend/internal/config"
)

func TestJitteredBackoffGrowsWithAttempts(t *testing.T) {
	base := 10 * time.Millisecond
	for attempt := 0; attempt < 6; attempt++ {
		floor := base << uint(attempt)
		ceil := floor + floor/2
		for i := 0; i < 50; i++ {
			got := JitteredBackoff(attempt, base)
			if got < floor || got > ceil {
				t.Fatalf("attempt %d: backoff %v outside [%v, %v]", attempt, got, floor, ceil)
			}
		}
	}
}

func TestJitteredBackoffClampsAttempt(t *testing.T) {
	base := time.Millisecond
	capped := JitteredBackoff(100, base)
	limit := (base << 10) + (base<<10)/2
	if capped > limit {
		t.Fatalf("expected attempt clamp, got %v", capped)
	}
	if got := JitteredBackoff(-1, base); got < base {
		t.Fatalf("negative attempt must behave like attempt 0, got %v", got)
	}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600

	token, err := GenerateJWT("user-1", "admin", cfg)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token, cfg)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims["user_id"] != "user-1" || claims["role"] != "admin" {
		t.Fatalf("unexpected claims: %v", claims)
	}

	wrong := &config.Config{}
	wrong.JWT.Secret = "other-secret"
	if _, err := ValidateJWT(token, wrong); err == nil {
		t.Fatal("token signed with another secret must not validate")
	}
}

func TestFindColumnIndex(t *testing.T) {
	header := []string{" Phone Number ", "Name", "Spins"}
	if idx := findColumnIndex(header, []string{"Phone", "Phone Number"}); idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}
	if idx := findColumnIndex(header, []string{"spins"}); idx != 2 {
		t.Fatalf("matching is case-insensitive, got %d", idx)
	}
	if idx := findColumnIndex(header, []string{"Email"}); idx != -1 {
		t.Fatalf("expected -1 for missing column, got %d", idx)
	}
}

func TestCleanPhone(t *testing.T) {
	if got := cleanPhone("+234 (801) 000-0001"); got != "2348010000001" {
		t.Fatalf("expected digits only, got %q", got)
	}
}

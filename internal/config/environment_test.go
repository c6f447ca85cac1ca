package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("SPIN_TEST_KEY", "set")
	if got := GetEnv("SPIN_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("expected set value, got %q", got)
	}
	if got := GetEnv("SPIN_TEST_MISSING_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

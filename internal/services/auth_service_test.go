package services

import (
	"context"
	"testing"

	"github.com/luckywheel/spin-backend/internal/config"
	"github.com/luckywheel/spin-backend/internal/repositories/memory"
)

func authConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600
	return cfg
}

func TestRegisterAndLogin(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.AdminUsers(), authConfig())
	ctx := context.Background()

	user, err := svc.Register(ctx, "ops@example.com", "correct horse", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != "admin" {
		t.Fatalf("expected default role admin, got %q", user.Role)
	}
	if user.Password == "correct horse" {
		t.Fatal("password must be stored hashed")
	}

	resp, err := svc.Login(ctx, "ops@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	if _, err := svc.Login(ctx, "ops@example.com", "wrong"); err == nil {
		t.Fatal("wrong password must not log in")
	}
	if _, err := svc.Register(ctx, "ops@example.com", "another", ""); err == nil {
		t.Fatal("duplicate email must be rejected")
	}
}

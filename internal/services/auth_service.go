package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/luckywheel/spin-backend/internal/config"
	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"github.com/luckywheel/spin-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles admin authentication
type AuthServiceImpl struct {
	adminUserRepo repositories.AdminUserRepository
	cfg           *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(adminUserRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		adminUserRepo: adminUserRepo,
		cfg:           cfg,
	}
}

// Register creates a new admin user with a bcrypt-hashed password
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, role string) (*models.AdminUser, error) {
	existing, err := s.adminUserRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing admin user: %w", err)
	}
	if existing != nil {
		return nil, errors.New("an admin user with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if role == "" {
		role = "admin"
	}

	adminUser := &models.AdminUser{
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.adminUserRepo.Create(ctx, adminUser); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	slog.Info("Admin user registered", "email", email, "role", role)
	return adminUser, nil
}

// Login checks the credentials and mints a JWT
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	adminUser, err := s.adminUserRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(adminUser.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateJWT(adminUser.ID.Hex(), adminUser.Role, s.cfg)
	if err != nil {
		slog.Error("Failed to generate JWT", "error", err, "email", email)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.LoginResponse{Token: token, Role: adminUser.Role}, nil
}

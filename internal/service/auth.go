// Package service — AuthService handles lawyer registration, login,
// JWT token management and password changes.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var authTracer = otel.Tracer("service/auth")

const (
	maxFailedAttempts = 5
	lockDuration      = 30 * time.Minute
	bcryptCost        = 12
	minPasswordLen    = 8
)

// AuthService orchestrates authentication flows for lawyer accounts.
type AuthService struct {
	store      port.AuthStore
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store port.AuthStore, jwtSecret string, accessTTL, refreshTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:      store,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// ============================================================
// Register — POST /v1/auth/register
// ============================================================

func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Register")
	defer span.End()

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if strings.TrimSpace(req.FullName) == "" {
		return nil, &domain.ErrValidation{Field: "full_name", Message: "required"}
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, &domain.ErrValidation{Field: "email", Message: "valid email required"}
	}
	if strings.TrimSpace(req.BarNumber) == "" {
		return nil, &domain.ErrValidation{Field: "bar_number", Message: "required"}
	}
	if len(req.Password) < minPasswordLen {
		return nil, &domain.ErrValidation{Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}

	// Check if email already registered
	existing, err := s.store.GetLawyerByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing lawyer: %w", err)
	}
	if existing != nil {
		return nil, &domain.ErrConflict{Message: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	resp, err := s.store.CreateLawyerWithCredentials(ctx, req, string(hash))
	if err != nil {
		return nil, fmt.Errorf("create lawyer: %w", err)
	}

	s.logger.Info("lawyer registered",
		zap.String("lawyer_id", resp.LawyerID),
		zap.String("email", req.Email),
	)

	return resp, nil
}

// ============================================================
// ChangePassword — POST /v1/auth/password
// ============================================================

func (s *AuthService) ChangePassword(ctx context.Context, lawyerID string, req *domain.ChangePasswordRequest) error {
	ctx, span := authTracer.Start(ctx, "AuthService.ChangePassword")
	defer span.End()

	if len(req.NewPassword) < minPasswordLen {
		return &domain.ErrValidation{Field: "new_password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}

	cred, err := s.store.GetCredentials(ctx, lawyerID)
	if err != nil {
		return fmt.Errorf("get credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return &domain.ErrUnauthorized{Message: "current password is incorrect"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.store.UpdateCredentials(ctx, lawyerID, map[string]any{"password_hash": string(hash)}); err != nil {
		return fmt.Errorf("update credentials: %w", err)
	}

	// Force re-login on every other session.
	_ = s.store.RevokeAllRefreshTokens(ctx, lawyerID)

	s.logger.Info("password changed", zap.String("lawyer_id", lawyerID))
	return nil
}

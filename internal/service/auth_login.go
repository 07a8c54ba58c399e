package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ============================================================
// Login — POST /v1/auth/login
// ============================================================

func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	span.SetAttributes(attribute.String("email", req.Email))

	lawyer, err := s.store.GetLawyerByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("get lawyer: %w", err)
	}
	if lawyer == nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
	}

	cred, err := s.store.GetCredentials(ctx, lawyer.ID)
	if err != nil {
		// Profile exists but credentials are missing. Treat as invalid
		// credentials to avoid leaking internal state.
		s.logger.Warn("login: credentials not found for existing lawyer",
			zap.String("lawyer_id", lawyer.ID),
		)
		return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
	}

	// Check if account is locked
	if cred.LockedUntil != nil && cred.LockedUntil.After(time.Now()) {
		remaining := int(time.Until(*cred.LockedUntil).Minutes()) + 1
		s.logger.Warn("login: account temporarily locked",
			zap.String("lawyer_id", lawyer.ID),
			zap.Int("remaining_minutes", remaining),
		)
		return nil, &domain.ErrAccountLocked{RemainingMinutes: remaining}
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		newAttempts := cred.FailedAttempts + 1
		updates := map[string]any{"failed_attempts": newAttempts}
		if newAttempts >= maxFailedAttempts {
			lockedUntil := time.Now().Add(lockDuration)
			updates["locked_until"] = lockedUntil.Format(time.RFC3339)
			s.logger.Warn("login: account locked after max attempts",
				zap.String("lawyer_id", lawyer.ID),
				zap.Int("attempts", newAttempts),
				zap.Duration("lock_duration", lockDuration),
			)
		} else {
			s.logger.Warn("login: failed password attempt",
				zap.String("lawyer_id", lawyer.ID),
				zap.Int("attempts", newAttempts),
				zap.Int("max", maxFailedAttempts),
			)
		}
		_ = s.store.UpdateCredentials(ctx, lawyer.ID, updates)

		if newAttempts >= maxFailedAttempts {
			return nil, &domain.ErrAccountLocked{RemainingMinutes: int(lockDuration.Minutes())}
		}
		return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
	}

	// Reset failed attempts on successful login
	_ = s.store.UpdateCredentials(ctx, lawyer.ID, map[string]any{
		"failed_attempts": 0,
		"locked_until":    nil,
		"last_login_at":   time.Now().Format(time.RFC3339),
	})

	accessToken, err := s.signAccessToken(lawyer.ID, lawyer.Email)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, refreshHash, err := s.generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.store.StoreRefreshToken(ctx, lawyer.ID, refreshHash, time.Now().Add(s.refreshTTL)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.logger.Info("lawyer logged in", zap.String("lawyer_id", lawyer.ID))

	return &domain.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.accessTTL.Seconds()),
		LawyerID:     lawyer.ID,
		FullName:     lawyer.FullName,
	}, nil
}

package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"

	"github.com/google/uuid"
)

// ============================================================
// AuthStore implementation — lawyer accounts via PostgREST
// ============================================================

// --- Lawyer lookup ---

func (c *Client) GetLawyerByEmail(ctx context.Context, email string) (*domain.Lawyer, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetLawyerByEmail")
	defer span.End()

	path := fmt.Sprintf("lawyers?email=eq.%s&limit=1", email)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, nil // not found is not an error for auth lookup
	}

	var rows []domain.Lawyer
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode lawyers: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (c *Client) GetLawyerByID(ctx context.Context, lawyerID string) (*domain.Lawyer, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetLawyerByID")
	defer span.End()

	path := fmt.Sprintf("lawyers?id=eq.%s&limit=1", lawyerID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, nil
	}

	var rows []domain.Lawyer
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode lawyers: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// --- Registration ---

func (c *Client) CreateLawyerWithCredentials(ctx context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.RegisterResponse, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateLawyerWithCredentials")
	defer span.End()

	lawyerID := uuid.New().String()

	// 1. Create lawyer profile. New accounts start unverified and appear
	// in the directory only after manual review.
	profileData := map[string]any{
		"id":          lawyerID,
		"full_name":   req.FullName,
		"email":       req.Email,
		"city":        req.City,
		"bar_number":  req.BarNumber,
		"specialties": req.Specialties,
		"verified":    false,
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	}

	_, err := c.doPost(ctx, "lawyers", profileData)
	if err != nil {
		return nil, fmt.Errorf("create lawyer profile: %w", err)
	}

	// 2. Create auth credentials
	credData := map[string]any{
		"id":              uuid.New().String(),
		"lawyer_id":       lawyerID,
		"password_hash":   passwordHash,
		"failed_attempts": 0,
	}

	_, err = c.doPost(ctx, "lawyer_credentials", credData)
	if err != nil {
		return nil, fmt.Errorf("create lawyer credentials: %w", err)
	}

	return &domain.RegisterResponse{
		LawyerID: lawyerID,
		Email:    req.Email,
	}, nil
}

// --- Credentials ---

func (c *Client) GetCredentials(ctx context.Context, lawyerID string) (*domain.Credentials, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetCredentials")
	defer span.End()

	path := fmt.Sprintf("lawyer_credentials?lawyer_id=eq.%s&limit=1", lawyerID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, &domain.ErrNotFound{Resource: "credentials", ID: lawyerID}
	}

	var rows []domain.Credentials
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode lawyer_credentials: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "credentials", ID: lawyerID}
	}
	return &rows[0], nil
}

func (c *Client) UpdateCredentials(ctx context.Context, lawyerID string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateCredentials")
	defer span.End()

	path := fmt.Sprintf("lawyer_credentials?lawyer_id=eq.%s", lawyerID)
	return c.doPatch(ctx, path, updates)
}

// --- Refresh tokens ---

func (c *Client) StoreRefreshToken(ctx context.Context, lawyerID, tokenHash string, expiresAt time.Time) error {
	ctx, span := tracer.Start(ctx, "Supabase.StoreRefreshToken")
	defer span.End()

	data := map[string]any{
		"id":         uuid.New().String(),
		"lawyer_id":  lawyerID,
		"token_hash": tokenHash,
		"expires_at": expiresAt.Format(time.RFC3339),
		"revoked":    false,
	}

	_, err := c.doPost(ctx, "refresh_tokens", data)
	return err
}

func (c *Client) GetRefreshToken(ctx context.Context, tokenHash string) (*domain.StoredRefreshToken, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetRefreshToken")
	defer span.End()

	path := fmt.Sprintf("refresh_tokens?token_hash=eq.%s&revoked=eq.false&limit=1", tokenHash)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, nil
	}

	var rows []domain.StoredRefreshToken
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode refresh_tokens: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (c *Client) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	ctx, span := tracer.Start(ctx, "Supabase.RevokeRefreshToken")
	defer span.End()

	path := fmt.Sprintf("refresh_tokens?token_hash=eq.%s", tokenHash)
	return c.doPatch(ctx, path, map[string]any{"revoked": true})
}

func (c *Client) RevokeAllRefreshTokens(ctx context.Context, lawyerID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.RevokeAllRefreshTokens")
	defer span.End()

	path := fmt.Sprintf("refresh_tokens?lawyer_id=eq.%s&revoked=eq.false", lawyerID)
	return c.doPatch(ctx, path, map[string]any{"revoked": true})
}

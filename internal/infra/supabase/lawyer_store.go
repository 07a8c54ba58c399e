package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/infra/resilience"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// DirectoryStore implementation — lawyer directory via PostgREST
// ============================================================

// ListLawyers fetches verified lawyers matching the filter. The directory
// is the highest-traffic read path, so it goes through the circuit breaker
// and retry policy.
func (c *Client) ListLawyers(ctx context.Context, filter domain.LawyerFilter) ([]domain.Lawyer, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListLawyers")
	defer span.End()
	span.SetAttributes(
		attribute.String("filter.city", filter.City),
		attribute.String("filter.specialty", filter.Specialty),
	)

	var lawyers []domain.Lawyer

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := "lawyers?verified=eq.true&order=full_name.asc"
			if filter.City != "" {
				path += fmt.Sprintf("&city=eq.%s", filter.City)
			}
			if filter.Specialty != "" {
				path += fmt.Sprintf("&specialties=cs.{%s}", filter.Specialty)
			}
			if filter.Query != "" {
				path += fmt.Sprintf("&or=(full_name.ilike.*%s*,bio.ilike.*%s*)", filter.Query, filter.Query)
			}

			body, err := c.doRequest(ctx, http.MethodGet, path)
			if err != nil {
				return err
			}

			if body == nil || string(body) == "[]" {
				lawyers = []domain.Lawyer{}
				return nil
			}

			if err := json.Unmarshal(body, &lawyers); err != nil {
				return fmt.Errorf("decode lawyers: %w", err)
			}
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/lawyers", Err: err}
	}

	return lawyers, nil
}

// GetLawyer fetches a single lawyer profile by ID.
func (c *Client) GetLawyer(ctx context.Context, lawyerID string) (*domain.Lawyer, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetLawyer")
	defer span.End()
	span.SetAttributes(attribute.String("lawyer.id", lawyerID))

	var lawyer *domain.Lawyer

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("lawyers?id=eq.%s&limit=1", lawyerID)
			body, err := c.doRequest(ctx, http.MethodGet, path)
			if err != nil {
				return err
			}

			if body == nil || string(body) == "[]" {
				return &domain.ErrNotFound{Resource: "lawyer", ID: lawyerID}
			}

			var rows []domain.Lawyer
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("decode lawyers: %w", err)
			}
			if len(rows) == 0 {
				return &domain.ErrNotFound{Resource: "lawyer", ID: lawyerID}
			}

			lawyer = &rows[0]
			return nil
		})
	})

	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, notFound
		}
		return nil, &domain.ErrExternalService{Service: "supabase/lawyers", Err: err}
	}

	return lawyer, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/infra/observability"
	"github.com/lexanova/lexanova-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var directoryTracer = otel.Tracer("service/directory")

// DirectoryService serves the public lawyer directory with read-through
// caching on top of the store.
type DirectoryService struct {
	store   port.DirectoryStore
	cache   port.Cache[any]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDirectoryService creates the directory service.
func NewDirectoryService(store port.DirectoryStore, cache port.Cache[any], metrics *observability.Metrics, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// ListLawyers returns verified lawyers matching the filter.
func (s *DirectoryService) ListLawyers(ctx context.Context, filter domain.LawyerFilter) ([]domain.Lawyer, error) {
	ctx, span := directoryTracer.Start(ctx, "Directory.ListLawyers")
	defer span.End()
	span.SetAttributes(
		attribute.String("filter.city", filter.City),
		attribute.String("filter.specialty", filter.Specialty),
	)

	cacheKey := fmt.Sprintf("lawyers:%s:%s:%s", filter.City, filter.Specialty, filter.Query)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if lawyers, ok := cached.([]domain.Lawyer); ok {
			s.metrics.IncrCacheHit("lawyers")
			return lawyers, nil
		}
	}
	s.metrics.IncrCacheMiss("lawyers")

	lawyers, err := s.store.ListLawyers(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list lawyers", zap.Error(err))
		s.metrics.IncrExternalError("lawyers")
		return nil, fmt.Errorf("list lawyers: %w", err)
	}

	s.cache.Set(cacheKey, lawyers)
	return lawyers, nil
}

// GetLawyer returns one lawyer profile.
func (s *DirectoryService) GetLawyer(ctx context.Context, lawyerID string) (*domain.Lawyer, error) {
	ctx, span := directoryTracer.Start(ctx, "Directory.GetLawyer")
	defer span.End()
	span.SetAttributes(attribute.String("lawyer.id", lawyerID))

	cacheKey := fmt.Sprintf("lawyer:%s", lawyerID)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if lawyer, ok := cached.(*domain.Lawyer); ok {
			s.metrics.IncrCacheHit("lawyer")
			return lawyer, nil
		}
	}
	s.metrics.IncrCacheMiss("lawyer")

	lawyer, err := s.store.GetLawyer(ctx, lawyerID)
	if err != nil {
		return nil, fmt.Errorf("get lawyer: %w", err)
	}

	s.cache.Set(cacheKey, lawyer)
	return lawyer, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/infra/observability"
	"github.com/lexanova/lexanova-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var contentTracer = otel.Tracer("service/content")

// ContentService serves editorial content with read-through caching.
// Content changes rarely, so every read path is cached.
type ContentService struct {
	store   port.ContentStore
	cache   port.Cache[any]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewContentService creates the content service.
func NewContentService(store port.ContentStore, cache port.Cache[any], metrics *observability.Metrics, logger *zap.Logger) *ContentService {
	return &ContentService{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *ContentService) ListArticles(ctx context.Context, category string) ([]domain.Article, error) {
	ctx, span := contentTracer.Start(ctx, "Content.ListArticles")
	defer span.End()

	cacheKey := fmt.Sprintf("articles:%s", category)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if rows, ok := cached.([]domain.Article); ok {
			s.metrics.IncrCacheHit("content")
			return rows, nil
		}
	}
	s.metrics.IncrCacheMiss("content")

	rows, err := s.store.ListArticles(ctx, category)
	if err != nil {
		s.metrics.IncrExternalError("content")
		return nil, fmt.Errorf("list articles: %w", err)
	}
	s.cache.Set(cacheKey, rows)
	return rows, nil
}

func (s *ContentService) GetArticle(ctx context.Context, slug string) (*domain.Article, error) {
	ctx, span := contentTracer.Start(ctx, "Content.GetArticle")
	defer span.End()

	cacheKey := fmt.Sprintf("article:%s", slug)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if row, ok := cached.(*domain.Article); ok {
			s.metrics.IncrCacheHit("content")
			return row, nil
		}
	}
	s.metrics.IncrCacheMiss("content")

	row, err := s.store.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey, row)
	return row, nil
}

func (s *ContentService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	ctx, span := contentTracer.Start(ctx, "Content.ListPosts")
	defer span.End()

	if cached, ok := s.cache.Get("posts"); ok {
		if rows, ok := cached.([]domain.Post); ok {
			s.metrics.IncrCacheHit("content")
			return rows, nil
		}
	}
	s.metrics.IncrCacheMiss("content")

	rows, err := s.store.ListPosts(ctx)
	if err != nil {
		s.metrics.IncrExternalError("content")
		return nil, fmt.Errorf("list posts: %w", err)
	}
	s.cache.Set("posts", rows)
	return rows, nil
}

func (s *ContentService) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	ctx, span := contentTracer.Start(ctx, "Content.GetPost")
	defer span.End()

	cacheKey := fmt.Sprintf("post:%s", slug)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if row, ok := cached.(*domain.Post); ok {
			s.metrics.IncrCacheHit("content")
			return row, nil
		}
	}
	s.metrics.IncrCacheMiss("content")

	row, err := s.store.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey, row)
	return row, nil
}

func (s *ContentService) ListCaseStudies(ctx context.Context) ([]domain.CaseStudy, error) {
	ctx, span := contentTracer.Start(ctx, "Content.ListCaseStudies")
	defer span.End()

	if cached, ok := s.cache.Get("case_studies"); ok {
		if rows, ok := cached.([]domain.CaseStudy); ok {
			s.metrics.IncrCacheHit("content")
			return rows, nil
		}
	}
	s.metrics.IncrCacheMiss("content")

	rows, err := s.store.ListCaseStudies(ctx)
	if err != nil {
		s.metrics.IncrExternalError("content")
		return nil, fmt.Errorf("list case studies: %w", err)
	}
	s.cache.Set("case_studies", rows)
	return rows, nil
}

func (s *ContentService) GetCaseStudy(ctx context.Context, slug string) (*domain.CaseStudy, error) {
	ctx, span := contentTracer.Start(ctx, "Content.GetCaseStudy")
	defer span.End()

	cacheKey := fmt.Sprintf("case_study:%s", slug)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if row, ok := cached.(*domain.CaseStudy); ok {
			s.metrics.IncrCacheHit("content")
			return row, nil
		}
	}
	s.metrics.IncrCacheMiss("content")

	row, err := s.store.GetCaseStudyBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey, row)
	return row, nil
}

func (s *ContentService) ListResources(ctx context.Context) ([]domain.Resource, error) {
	ctx, span := contentTracer.Start(ctx, "Content.ListResources")
	defer span.End()

	if cached, ok := s.cache.Get("resources"); ok {
		if rows, ok := cached.([]domain.Resource); ok {
			s.metrics.IncrCacheHit("content")
			return rows, nil
		}
	}
	s.metrics.IncrCacheMiss("content")

	rows, err := s.store.ListResources(ctx)
	if err != nil {
		s.metrics.IncrExternalError("content")
		return nil, fmt.Errorf("list resources: %w", err)
	}
	s.cache.Set("resources", rows)
	return rows, nil
}

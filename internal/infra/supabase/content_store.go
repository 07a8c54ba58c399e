package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lexanova/lexanova-api/internal/domain"
)

// ============================================================
// ContentStore implementation — editorial tables via PostgREST
// ============================================================

func (c *Client) ListArticles(ctx context.Context, category string) ([]domain.Article, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListArticles")
	defer span.End()

	path := "articles?order=published_at.desc"
	if category != "" {
		path += fmt.Sprintf("&category=eq.%s", category)
	}

	var rows []domain.Article
	if err := c.fetchList(ctx, path, "articles", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetArticleBySlug")
	defer span.End()

	var rows []domain.Article
	path := fmt.Sprintf("articles?slug=eq.%s&limit=1", slug)
	if err := c.fetchList(ctx, path, "articles", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "article", ID: slug}
	}
	return &rows[0], nil
}

func (c *Client) ListPosts(ctx context.Context) ([]domain.Post, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListPosts")
	defer span.End()

	var rows []domain.Post
	if err := c.fetchList(ctx, "posts?order=published_at.desc", "posts", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetPostBySlug")
	defer span.End()

	var rows []domain.Post
	path := fmt.Sprintf("posts?slug=eq.%s&limit=1", slug)
	if err := c.fetchList(ctx, path, "posts", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "post", ID: slug}
	}
	return &rows[0], nil
}

func (c *Client) ListCaseStudies(ctx context.Context) ([]domain.CaseStudy, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCaseStudies")
	defer span.End()

	var rows []domain.CaseStudy
	if err := c.fetchList(ctx, "case_studies?order=published_at.desc", "case_studies", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) GetCaseStudyBySlug(ctx context.Context, slug string) (*domain.CaseStudy, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetCaseStudyBySlug")
	defer span.End()

	var rows []domain.CaseStudy
	path := fmt.Sprintf("case_studies?slug=eq.%s&limit=1", slug)
	if err := c.fetchList(ctx, path, "case_studies", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "case_study", ID: slug}
	}
	return &rows[0], nil
}

func (c *Client) ListResources(ctx context.Context) ([]domain.Resource, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListResources")
	defer span.End()

	var rows []domain.Resource
	if err := c.fetchList(ctx, "resources?order=title.asc", "resources", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// fetchList runs a GET and decodes the row array into out. A missing or
// empty result leaves out as an empty slice, never nil decode errors.
func (c *Client) fetchList(ctx context.Context, path, table string, out any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/" + table, Err: err}
	}
	if body == nil {
		body = []byte("[]")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", table, err)
	}
	return nil
}

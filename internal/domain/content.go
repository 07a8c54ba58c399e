package domain

import "time"

// ============================================================
// Editorial content backing the marketing site
// ============================================================

// Article is a long-form editorial piece on a tax-law topic.
type Article struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Body        string    `json:"body,omitempty"`
	Category    string    `json:"category,omitempty"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Post is a short blog entry.
type Post struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Body        string    `json:"body,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// CaseStudy describes an anonymized client engagement and its outcome.
type CaseStudy struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Body        string    `json:"body,omitempty"`
	Specialty   string    `json:"specialty,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Resource is a downloadable guide, template or external reference.
type Resource struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Kind        string `json:"kind"` // guide, template, link
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

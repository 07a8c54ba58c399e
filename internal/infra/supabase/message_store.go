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
// InboxStore implementation — contact_messages via PostgREST
// ============================================================

// CreateMessage inserts a contact form submission.
func (c *Client) CreateMessage(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateMessage")
	defer span.End()

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	data := map[string]any{
		"id":         msg.ID,
		"name":       msg.Name,
		"email":      msg.Email,
		"phone":      msg.Phone,
		"subject":    msg.Subject,
		"body":       msg.Body,
		"read":       false,
		"created_at": msg.CreatedAt.Format(time.RFC3339),
	}

	body, err := c.doPost(ctx, "contact_messages", data)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/contact_messages", Err: err}
	}

	var rows []domain.ContactMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode created contact message: %w", err)
	}
	if len(rows) == 0 {
		return msg, nil
	}
	return &rows[0], nil
}

// ListMessages pages through the inbox, newest first.
func (c *Client) ListMessages(ctx context.Context, unreadOnly bool, page, pageSize int) ([]domain.ContactMessage, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListMessages")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	path := fmt.Sprintf("contact_messages?order=created_at.desc&limit=%d&offset=%d", pageSize, offset)
	if unreadOnly {
		path += "&read=eq.false"
	}

	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/contact_messages", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.ContactMessage{}, nil
	}

	var rows []domain.ContactMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode contact_messages: %w", err)
	}
	return rows, nil
}

// MarkMessageRead flags a message as handled.
func (c *Client) MarkMessageRead(ctx context.Context, messageID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.MarkMessageRead")
	defer span.End()

	path := fmt.Sprintf("contact_messages?id=eq.%s", messageID)
	if err := c.doPatch(ctx, path, map[string]any{"read": true}); err != nil {
		return &domain.ErrExternalService{Service: "supabase/contact_messages", Err: err}
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var inboxTracer = otel.Tracer("service/inbox")

// InboxService accepts contact form submissions and serves the lawyer
// inbox.
type InboxService struct {
	store  port.InboxStore
	logger *zap.Logger
}

// NewInboxService creates the inbox service.
func NewInboxService(store port.InboxStore, logger *zap.Logger) *InboxService {
	return &InboxService{store: store, logger: logger}
}

// SubmitMessage validates and stores a public contact form submission.
func (s *InboxService) SubmitMessage(ctx context.Context, req *domain.ContactRequest) (*domain.ContactMessage, error) {
	ctx, span := inboxTracer.Start(ctx, "Inbox.SubmitMessage")
	defer span.End()

	if strings.TrimSpace(req.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return nil, &domain.ErrValidation{Field: "email", Message: "valid email required"}
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, &domain.ErrValidation{Field: "body", Message: "required"}
	}

	msg := &domain.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Body:    req.Body,
	}

	created, err := s.store.CreateMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	s.logger.Info("contact message received",
		zap.String("message_id", created.ID),
		zap.String("email", created.Email),
	)
	return created, nil
}

// ListMessages pages through the inbox for authenticated lawyers.
func (s *InboxService) ListMessages(ctx context.Context, unreadOnly bool, page, pageSize int) ([]domain.ContactMessage, error) {
	ctx, span := inboxTracer.Start(ctx, "Inbox.ListMessages")
	defer span.End()

	return s.store.ListMessages(ctx, unreadOnly, page, pageSize)
}

// MarkRead flags a message as handled.
func (s *InboxService) MarkRead(ctx context.Context, messageID string) error {
	ctx, span := inboxTracer.Start(ctx, "Inbox.MarkRead")
	defer span.End()

	if err := s.store.MarkMessageRead(ctx, messageID); err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	return nil
}

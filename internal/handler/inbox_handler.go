package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Contact inbox
// ============================================================

func submitContactHandler(svc *service.InboxService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/contact")
		defer span.End()

		var req domain.ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		msg, err := svc.SubmitMessage(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, msg)
	}
}

func listMessagesHandler(svc *service.InboxService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/messages")
		defer span.End()

		page, pageSize := parsePagination(r)
		unreadOnly := r.URL.Query().Get("unread") == "true"

		messages, err := svc.ListMessages(ctx, unreadOnly, page, pageSize)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, messages)
	}
}

func markMessageReadHandler(svc *service.InboxService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/messages/{messageId}/read")
		defer span.End()

		messageID := chi.URLParam(r, "messageId")
		if messageID == "" {
			writeError(w, http.StatusBadRequest, "message_id is required")
			return
		}

		if err := svc.MarkRead(ctx, messageID); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "message marked as read"})
	}
}

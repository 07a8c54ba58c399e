package handler

import (
	"net/http"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Lawyer directory — GET /v1/lawyers
// ============================================================

func listLawyersHandler(svc *service.DirectoryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/lawyers")
		defer span.End()

		filter := domain.LawyerFilter{
			City:      r.URL.Query().Get("city"),
			Specialty: r.URL.Query().Get("specialty"),
			Query:     r.URL.Query().Get("q"),
		}
		span.SetAttributes(
			attribute.String("filter.city", filter.City),
			attribute.String("filter.specialty", filter.Specialty),
		)

		lawyers, err := svc.ListLawyers(ctx, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, lawyers)
	}
}

func getLawyerHandler(svc *service.DirectoryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/lawyers/{lawyerId}")
		defer span.End()

		lawyerID := chi.URLParam(r, "lawyerId")
		if lawyerID == "" {
			writeError(w, http.StatusBadRequest, "lawyer_id is required")
			return
		}
		span.SetAttributes(attribute.String("lawyer.id", lawyerID))

		lawyer, err := svc.GetLawyer(ctx, lawyerID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, lawyer)
	}
}

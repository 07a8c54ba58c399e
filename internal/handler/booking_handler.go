package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Availability & booking
// ============================================================

func availabilityHandler(svc *service.BookingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/lawyers/{lawyerId}/availability")
		defer span.End()

		lawyerID := chi.URLParam(r, "lawyerId")
		if lawyerID == "" {
			writeError(w, http.StatusBadRequest, "lawyer_id is required")
			return
		}
		span.SetAttributes(attribute.String("lawyer.id", lawyerID))

		slots, err := svc.GetAvailability(ctx, lawyerID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, slots)
	}
}

func bookAppointmentHandler(svc *service.BookingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/lawyers/{lawyerId}/appointments")
		defer span.End()

		lawyerID := chi.URLParam(r, "lawyerId")
		if lawyerID == "" {
			writeError(w, http.StatusBadRequest, "lawyer_id is required")
			return
		}
		span.SetAttributes(attribute.String("lawyer.id", lawyerID))

		var req domain.BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		appt, err := svc.BookAppointment(ctx, lawyerID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, appt)
	}
}

// listMyAppointmentsHandler serves the authenticated lawyer's agenda.
func listMyAppointmentsHandler(svc *service.BookingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/appointments")
		defer span.End()

		lawyerID := LawyerIDFromContext(ctx)
		if lawyerID == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		appointments, err := svc.ListAppointments(ctx, lawyerID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, appointments)
	}
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func updateAppointmentStatusHandler(svc *service.BookingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/appointments/{appointmentId}")
		defer span.End()

		lawyerID := LawyerIDFromContext(ctx)
		if lawyerID == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		appointmentID := chi.URLParam(r, "appointmentId")
		if appointmentID == "" {
			writeError(w, http.StatusBadRequest, "appointment_id is required")
			return
		}

		var req statusUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		appt, err := svc.UpdateStatus(ctx, lawyerID, appointmentID, domain.AppointmentStatus(req.Status))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, appt)
	}
}

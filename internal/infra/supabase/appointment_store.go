package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// BookingStore implementation — windows + appointments via PostgREST
// ============================================================

// ListWindows fetches all availability windows for a lawyer, active or not.
// Filtering on active is a scheduling concern, not a storage one.
func (c *Client) ListWindows(ctx context.Context, lawyerID string) ([]domain.AvailabilityWindow, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListWindows")
	defer span.End()
	span.SetAttributes(attribute.String("lawyer.id", lawyerID))

	path := fmt.Sprintf("availability_windows?lawyer_id=eq.%s&order=day_of_week.asc", lawyerID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/availability_windows", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.AvailabilityWindow{}, nil
	}

	var rows []domain.AvailabilityWindow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode availability_windows: %w", err)
	}
	return rows, nil
}

// ListActiveAppointments fetches only pending and confirmed appointments,
// the ones that occupy their slot.
func (c *Client) ListActiveAppointments(ctx context.Context, lawyerID string) ([]domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListActiveAppointments")
	defer span.End()
	span.SetAttributes(attribute.String("lawyer.id", lawyerID))

	path := fmt.Sprintf("appointments?lawyer_id=eq.%s&status=in.(pending,confirmed)&order=starts_at.asc", lawyerID)
	return c.fetchAppointments(ctx, path)
}

// ListAppointments fetches all appointments for a lawyer regardless of status.
func (c *Client) ListAppointments(ctx context.Context, lawyerID string) ([]domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListAppointments")
	defer span.End()
	span.SetAttributes(attribute.String("lawyer.id", lawyerID))

	path := fmt.Sprintf("appointments?lawyer_id=eq.%s&order=starts_at.desc", lawyerID)
	return c.fetchAppointments(ctx, path)
}

func (c *Client) fetchAppointments(ctx context.Context, path string) ([]domain.Appointment, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/appointments", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.Appointment{}, nil
	}

	var rows []domain.Appointment
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return rows, nil
}

// GetAppointment fetches a single appointment by ID.
func (c *Client) GetAppointment(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetAppointment")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", appointmentID))

	path := fmt.Sprintf("appointments?id=eq.%s&limit=1", appointmentID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/appointments", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return nil, &domain.ErrNotFound{Resource: "appointment", ID: appointmentID}
	}

	var rows []domain.Appointment
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "appointment", ID: appointmentID}
	}
	return &rows[0], nil
}

// CreateAppointment inserts a new appointment and returns the stored row.
func (c *Client) CreateAppointment(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateAppointment")
	defer span.End()
	span.SetAttributes(attribute.String("lawyer.id", appt.LawyerID))

	data := map[string]any{
		"id":               appt.ID,
		"lawyer_id":        appt.LawyerID,
		"client_name":      appt.ClientName,
		"client_email":     appt.ClientEmail,
		"client_phone":     appt.ClientPhone,
		"subject":          appt.Subject,
		"starts_at":        appt.StartsAt.UTC().Format(time.RFC3339),
		"duration_minutes": appt.DurationMinutes,
		"status":           string(appt.Status),
		"created_at":       appt.CreatedAt.UTC().Format(time.RFC3339),
	}

	body, err := c.doPost(ctx, "appointments", data)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/appointments", Err: err}
	}

	var rows []domain.Appointment
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode created appointment: %w", err)
	}
	if len(rows) == 0 {
		// PostgREST honored the insert but returned no representation.
		return appt, nil
	}
	return &rows[0], nil
}

// UpdateAppointmentStatus patches the status column of one appointment.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, appointmentID string, status domain.AppointmentStatus) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateAppointmentStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("appointment.id", appointmentID),
		attribute.String("appointment.status", string(status)),
	)

	path := fmt.Sprintf("appointments?id=eq.%s", appointmentID)
	if err := c.doPatch(ctx, path, map[string]any{"status": string(status)}); err != nil {
		return &domain.ErrExternalService{Service: "supabase/appointments", Err: err}
	}
	return nil
}

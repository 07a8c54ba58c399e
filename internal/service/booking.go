package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/infra/observability"
	"github.com/lexanova/lexanova-api/internal/port"
	"github.com/lexanova/lexanova-api/internal/scheduling"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var bookingTracer = otel.Tracer("service/booking")

// BookingService computes availability and manages the appointment
// lifecycle.
type BookingService struct {
	store        port.BookingStore
	directory    port.DirectoryStore
	metrics      *observability.Metrics
	logger       *zap.Logger
	horizonDays  int
	slotDuration time.Duration
	buffer       time.Duration
	now          func() time.Time
}

// NewBookingService creates the booking service. Zero horizon, slot
// duration or buffer fall back to the scheduling defaults.
func NewBookingService(
	store port.BookingStore,
	directory port.DirectoryStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
	horizonDays int,
	slotDuration, buffer time.Duration,
) *BookingService {
	if horizonDays <= 0 {
		horizonDays = scheduling.DefaultHorizonDays
	}
	if slotDuration <= 0 {
		slotDuration = scheduling.DefaultSlotDuration
	}
	if buffer <= 0 {
		buffer = scheduling.DefaultConflictBuffer
	}
	return &BookingService{
		store:        store,
		directory:    directory,
		metrics:      metrics,
		logger:       logger,
		horizonDays:  horizonDays,
		slotDuration: slotDuration,
		buffer:       buffer,
		now:          time.Now,
	}
}

// GetAvailability returns bookable slots for a lawyer over the booking
// horizon. Windows and active appointments are fetched concurrently.
func (s *BookingService) GetAvailability(ctx context.Context, lawyerID string) ([]domain.TimeSlot, error) {
	ctx, span := bookingTracer.Start(ctx, "Booking.GetAvailability")
	defer span.End()
	span.SetAttributes(attribute.String("lawyer.id", lawyerID))

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("availability", time.Since(start)) }()

	// Ensure the lawyer exists before doing any schedule work.
	if _, err := s.directory.GetLawyer(ctx, lawyerID); err != nil {
		return nil, err
	}

	var (
		windows      []domain.AvailabilityWindow
		appointments []domain.Appointment
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w, err := s.store.ListWindows(gCtx, lawyerID)
		if err != nil {
			s.metrics.IncrExternalError("availability_windows")
			return fmt.Errorf("fetch windows: %w", err)
		}
		windows = w
		return nil
	})

	g.Go(func() error {
		a, err := s.store.ListActiveAppointments(gCtx, lawyerID)
		if err != nil {
			s.metrics.IncrExternalError("appointments")
			return fmt.Errorf("fetch appointments: %w", err)
		}
		appointments = a
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slots := scheduling.GenerateSlots(windows, appointments, s.now(), s.horizonDays, s.slotDuration)
	return slots, nil
}

// BookAppointment validates the request, checks for conflicts and creates
// a pending appointment.
func (s *BookingService) BookAppointment(ctx context.Context, lawyerID string, req *domain.BookingRequest) (*domain.Appointment, error) {
	ctx, span := bookingTracer.Start(ctx, "Booking.BookAppointment")
	defer span.End()
	span.SetAttributes(
		attribute.String("lawyer.id", lawyerID),
		attribute.String("starts_at", req.StartsAt.Format(time.RFC3339)),
	)

	if strings.TrimSpace(req.ClientName) == "" {
		return nil, &domain.ErrValidation{Field: "client_name", Message: "required"}
	}
	if strings.TrimSpace(req.ClientEmail) == "" || !strings.Contains(req.ClientEmail, "@") {
		return nil, &domain.ErrValidation{Field: "client_email", Message: "valid email required"}
	}
	if req.StartsAt.IsZero() || !req.StartsAt.After(s.now()) {
		return nil, &domain.ErrValidation{Field: "starts_at", Message: "must be in the future"}
	}

	if _, err := s.directory.GetLawyer(ctx, lawyerID); err != nil {
		return nil, err
	}

	active, err := s.store.ListActiveAppointments(ctx, lawyerID)
	if err != nil {
		s.metrics.IncrExternalError("appointments")
		return nil, fmt.Errorf("fetch appointments: %w", err)
	}

	if scheduling.HasConflict(req.StartsAt, s.slotDuration, lawyerID, active, s.buffer) {
		s.metrics.IncrBooking("conflict")
		return nil, &domain.ErrBookingConflict{LawyerID: lawyerID, StartsAt: req.StartsAt}
	}

	appt := &domain.Appointment{
		ID:              uuid.New().String(),
		LawyerID:        lawyerID,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		Subject:         req.Subject,
		StartsAt:        req.StartsAt,
		DurationMinutes: int(s.slotDuration.Minutes()),
		Status:          domain.StatusPending,
		CreatedAt:       s.now().UTC(),
	}

	created, err := s.store.CreateAppointment(ctx, appt)
	if err != nil {
		s.metrics.IncrBooking("error")
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.metrics.IncrBooking("created")
	s.logger.Info("appointment booked",
		zap.String("appointment_id", created.ID),
		zap.String("lawyer_id", lawyerID),
		zap.Time("starts_at", created.StartsAt),
	)

	return created, nil
}

// ListAppointments returns all appointments of the authenticated lawyer.
func (s *BookingService) ListAppointments(ctx context.Context, lawyerID string) ([]domain.Appointment, error) {
	ctx, span := bookingTracer.Start(ctx, "Booking.ListAppointments")
	defer span.End()
	span.SetAttributes(attribute.String("lawyer.id", lawyerID))

	return s.store.ListAppointments(ctx, lawyerID)
}

// UpdateStatus applies a lifecycle transition to an appointment owned by
// the given lawyer.
func (s *BookingService) UpdateStatus(ctx context.Context, lawyerID, appointmentID string, next domain.AppointmentStatus) (*domain.Appointment, error) {
	ctx, span := bookingTracer.Start(ctx, "Booking.UpdateStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("appointment.id", appointmentID),
		attribute.String("status.next", string(next)),
	)

	switch next {
	case domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
	default:
		return nil, &domain.ErrValidation{Field: "status", Message: "unknown status"}
	}

	appt, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.LawyerID != lawyerID {
		return nil, &domain.ErrForbidden{Action: "update appointment"}
	}

	if !appt.Status.CanTransitionTo(next) {
		return nil, &domain.ErrInvalidTransition{From: appt.Status, To: next}
	}

	if err := s.store.UpdateAppointmentStatus(ctx, appointmentID, next); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	appt.Status = next
	s.logger.Info("appointment status updated",
		zap.String("appointment_id", appointmentID),
		zap.String("status", string(next)),
	)
	return appt, nil
}

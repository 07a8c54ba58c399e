package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/infra/observability"

	"go.uber.org/zap"
)

// --- Mocks ---

type mockBookingStore struct {
	windows      []domain.AvailabilityWindow
	active       []domain.Appointment
	all          []domain.Appointment
	appointment  *domain.Appointment
	created      *domain.Appointment
	statusUpdate domain.AppointmentStatus
	err          error
}

func (m *mockBookingStore) ListWindows(_ context.Context, _ string) ([]domain.AvailabilityWindow, error) {
	return m.windows, m.err
}

func (m *mockBookingStore) ListActiveAppointments(_ context.Context, _ string) ([]domain.Appointment, error) {
	return m.active, m.err
}

func (m *mockBookingStore) ListAppointments(_ context.Context, _ string) ([]domain.Appointment, error) {
	return m.all, m.err
}

func (m *mockBookingStore) GetAppointment(_ context.Context, id string) (*domain.Appointment, error) {
	if m.appointment == nil {
		return nil, &domain.ErrNotFound{Resource: "appointment", ID: id}
	}
	return m.appointment, nil
}

func (m *mockBookingStore) CreateAppointment(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = appt
	return appt, nil
}

func (m *mockBookingStore) UpdateAppointmentStatus(_ context.Context, _ string, status domain.AppointmentStatus) error {
	m.statusUpdate = status
	return m.err
}

type mockDirectory struct {
	lawyer *domain.Lawyer
	err    error
}

func (m *mockDirectory) ListLawyers(_ context.Context, _ domain.LawyerFilter) ([]domain.Lawyer, error) {
	if m.lawyer == nil {
		return []domain.Lawyer{}, m.err
	}
	return []domain.Lawyer{*m.lawyer}, m.err
}

func (m *mockDirectory) GetLawyer(_ context.Context, id string) (*domain.Lawyer, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.lawyer == nil {
		return nil, &domain.ErrNotFound{Resource: "lawyer", ID: id}
	}
	return m.lawyer, nil
}

// --- Tests ---

// Wednesday 2026-01-07 08:00 UTC.
var bookingTestNow = time.Date(2026, 1, 7, 8, 0, 0, 0, time.UTC)

func newBookingService(store *mockBookingStore, dir *mockDirectory) *BookingService {
	svc := NewBookingService(store, dir, observability.NewMetrics(), zap.NewNop(), 30, time.Hour, time.Hour)
	svc.now = func() time.Time { return bookingTestNow }
	return svc
}

func testLawyer() *domain.Lawyer {
	return &domain.Lawyer{ID: "lw-1", FullName: "Claire Dumont", City: "Lyon", Verified: true}
}

func TestGetAvailability(t *testing.T) {
	store := &mockBookingStore{
		windows: []domain.AvailabilityWindow{
			{LawyerID: "lw-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", Active: true},
		},
	}
	svc := newBookingService(store, &mockDirectory{lawyer: testLawyer()})

	slots, err := svc.GetAvailability(context.Background(), "lw-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 3 hourly slots per Monday, 4 Mondays within the 30-day horizon.
	if len(slots) != 12 {
		t.Fatalf("expected 12 slots, got %d", len(slots))
	}
	if got := slots[0].Start; got != time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC) {
		t.Errorf("unexpected first slot start: %v", got)
	}
}

func TestGetAvailability_ExcludesBookedSlots(t *testing.T) {
	store := &mockBookingStore{
		windows: []domain.AvailabilityWindow{
			{LawyerID: "lw-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00", Active: true},
		},
		active: []domain.Appointment{
			{
				LawyerID:        "lw-1",
				StartsAt:        time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC),
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			},
		},
	}
	svc := newBookingService(store, &mockDirectory{lawyer: testLawyer()})

	slots, err := svc.GetAvailability(context.Background(), "lw-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, s := range slots {
		if s.Start.Equal(time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)) {
			t.Errorf("booked slot should not appear: %v", s.Start)
		}
	}
}

func TestGetAvailability_UnknownLawyer(t *testing.T) {
	svc := newBookingService(&mockBookingStore{}, &mockDirectory{})

	_, err := svc.GetAvailability(context.Background(), "ghost")

	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookAppointment(t *testing.T) {
	store := &mockBookingStore{}
	svc := newBookingService(store, &mockDirectory{lawyer: testLawyer()})

	appt, err := svc.BookAppointment(context.Background(), "lw-1", &domain.BookingRequest{
		ClientName:  "Jean Petit",
		ClientEmail: "jean@example.com",
		StartsAt:    time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if appt.Status != domain.StatusPending {
		t.Errorf("expected pending status, got %s", appt.Status)
	}
	if appt.ID == "" {
		t.Error("expected generated ID")
	}
	if appt.DurationMinutes != 60 {
		t.Errorf("expected 60 minute duration, got %d", appt.DurationMinutes)
	}
	if store.created == nil {
		t.Error("expected appointment persisted")
	}
}

func TestBookAppointment_Conflict(t *testing.T) {
	store := &mockBookingStore{
		active: []domain.Appointment{
			{
				LawyerID:        "lw-1",
				StartsAt:        time.Date(2026, 1, 12, 9, 30, 0, 0, time.UTC),
				DurationMinutes: 60,
				Status:          domain.StatusPending,
			},
		},
	}
	svc := newBookingService(store, &mockDirectory{lawyer: testLawyer()})

	_, err := svc.BookAppointment(context.Background(), "lw-1", &domain.BookingRequest{
		ClientName:  "Jean Petit",
		ClientEmail: "jean@example.com",
		StartsAt:    time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC),
	})

	var conflict *domain.ErrBookingConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected booking conflict, got %v", err)
	}
	if store.created != nil {
		t.Error("conflicting appointment must not be persisted")
	}
}

func TestBookAppointment_PastStart(t *testing.T) {
	svc := newBookingService(&mockBookingStore{}, &mockDirectory{lawyer: testLawyer()})

	_, err := svc.BookAppointment(context.Background(), "lw-1", &domain.BookingRequest{
		ClientName:  "Jean Petit",
		ClientEmail: "jean@example.com",
		StartsAt:    bookingTestNow.Add(-time.Hour),
	})

	var validationErr *domain.ErrValidation
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookAppointment_MissingFields(t *testing.T) {
	svc := newBookingService(&mockBookingStore{}, &mockDirectory{lawyer: testLawyer()})

	cases := []domain.BookingRequest{
		{ClientEmail: "jean@example.com", StartsAt: bookingTestNow.Add(time.Hour)},
		{ClientName: "Jean", ClientEmail: "not-an-email", StartsAt: bookingTestNow.Add(time.Hour)},
	}
	for _, req := range cases {
		if _, err := svc.BookAppointment(context.Background(), "lw-1", &req); err == nil {
			t.Errorf("expected validation error for %+v", req)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	store := &mockBookingStore{
		appointment: &domain.Appointment{
			ID:       "ap-1",
			LawyerID: "lw-1",
			Status:   domain.StatusPending,
		},
	}
	svc := newBookingService(store, &mockDirectory{lawyer: testLawyer()})

	appt, err := svc.UpdateStatus(context.Background(), "lw-1", "ap-1", domain.StatusConfirmed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if appt.Status != domain.StatusConfirmed {
		t.Errorf("expected confirmed, got %s", appt.Status)
	}
	if store.statusUpdate != domain.StatusConfirmed {
		t.Errorf("expected store update to confirmed, got %s", store.statusUpdate)
	}
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	store := &mockBookingStore{
		appointment: &domain.Appointment{
			ID:       "ap-1",
			LawyerID: "lw-1",
			Status:   domain.StatusCompleted,
		},
	}
	svc := newBookingService(store, &mockDirectory{lawyer: testLawyer()})

	_, err := svc.UpdateStatus(context.Background(), "lw-1", "ap-1", domain.StatusCancelled)

	var transitionErr *domain.ErrInvalidTransition
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestUpdateStatus_WrongLawyer(t *testing.T) {
	store := &mockBookingStore{
		appointment: &domain.Appointment{
			ID:       "ap-1",
			LawyerID: "lw-2",
			Status:   domain.StatusPending,
		},
	}
	svc := newBookingService(store, &mockDirectory{lawyer: testLawyer()})

	_, err := svc.UpdateStatus(context.Background(), "lw-1", "ap-1", domain.StatusConfirmed)

	var forbidden *domain.ErrForbidden
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

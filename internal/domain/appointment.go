package domain

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// IsSchedulable reports whether an appointment in this status occupies its
// time slot. Cancelled and completed appointments are inert for scheduling.
func (s AppointmentStatus) IsSchedulable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo reports whether the status change is allowed:
// pending → confirmed → completed, or pending/confirmed → cancelled.
// Completed and cancelled are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Appointment is a client booking with a lawyer. Appointments are never
// physically deleted; cancellation is a status change.
type Appointment struct {
	ID              string            `json:"id"`
	LawyerID        string            `json:"lawyer_id"`
	ClientName      string            `json:"client_name"`
	ClientEmail     string            `json:"client_email"`
	ClientPhone     string            `json:"client_phone,omitempty"`
	Subject         string            `json:"subject,omitempty"`
	StartsAt        time.Time         `json:"starts_at"`
	DurationMinutes int               `json:"duration_minutes"`
	Status          AppointmentStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
}

// End returns the exclusive end instant of the appointment interval.
func (a Appointment) End() time.Time {
	return a.StartsAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// AvailabilityWindow is a recurring weekly open slot for one lawyer.
// Times are wall-clock "HH:MM" strings in the lawyer's timezone.
type AvailabilityWindow struct {
	ID        string `json:"id"`
	LawyerID  string `json:"lawyer_id"`
	DayOfWeek int    `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`
}

// TimeSlot is a bookable candidate interval. Derived, never persisted.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BookingRequest is the client-facing payload to book an appointment.
type BookingRequest struct {
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	ClientPhone string    `json:"client_phone,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
}

// Package scheduling computes bookable time slots and booking conflicts
// for a lawyer's calendar. Both entry points are pure: they read the
// caller-supplied snapshot of windows and appointments, never mutate it,
// and depend on nothing but their inputs. Safe to call concurrently.
package scheduling

import (
	"strconv"
	"strings"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"
)

const (
	// DefaultHorizonDays is the booking horizon: today through day 29.
	DefaultHorizonDays = 30
	// DefaultSlotDuration is the length of a generated slot.
	DefaultSlotDuration = 60 * time.Minute
	// DefaultConflictBuffer pads the conflict window before a new booking.
	DefaultConflictBuffer = 60 * time.Minute
)

// GenerateSlots produces the chronological list of bookable slots over the
// horizon starting at now. For each day, the first active window matching
// the weekday is used — additional windows on the same weekday are ignored,
// a documented policy, not an accident. Within the window, candidate starts
// step by fixed one-hour increments from the window's opening time while
// strictly before its closing time. A candidate is dropped when its start
// is not strictly after now, or when [start, start+slotDuration) overlaps a
// schedulable appointment's interval (half-open overlap test).
//
// Windows with malformed HH:MM times are skipped; the generator never fails.
func GenerateSlots(windows []domain.AvailabilityWindow, appointments []domain.Appointment, now time.Time, horizonDays int, slotDuration time.Duration) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	if horizonDays <= 0 || slotDuration <= 0 {
		return slots
	}

	for day := 0; day < horizonDays; day++ {
		date := now.AddDate(0, 0, day)
		window, ok := windowForWeekday(windows, date.Weekday())
		if !ok {
			continue
		}

		startH, startM, ok := parseClock(window.StartTime)
		if !ok {
			continue
		}
		endH, endM, ok := parseClock(window.EndTime)
		if !ok {
			continue
		}

		windowStart := time.Date(date.Year(), date.Month(), date.Day(), startH, startM, 0, 0, now.Location())
		windowEnd := time.Date(date.Year(), date.Month(), date.Day(), endH, endM, 0, 0, now.Location())

		for start := windowStart; start.Before(windowEnd); start = start.Add(time.Hour) {
			if !start.After(now) {
				continue
			}
			end := start.Add(slotDuration)
			if overlapsAny(start, end, appointments) {
				continue
			}
			slots = append(slots, domain.TimeSlot{Start: start, End: end})
		}
	}

	return slots
}

// HasConflict decides whether a proposed appointment for lawyerID collides
// with an existing pending or confirmed appointment. An existing
// appointment conflicts when its start falls within
// [newStart−buffer, newStart+duration) — the buffer pads only the leading
// side, and the existing appointment's own duration is not consulted.
// That asymmetry matches the production booking rule and is kept as-is.
func HasConflict(newStart time.Time, duration time.Duration, lawyerID string, appointments []domain.Appointment, buffer time.Duration) bool {
	newEnd := newStart.Add(duration)
	earliest := newStart.Add(-buffer)

	for _, appt := range appointments {
		if appt.LawyerID != lawyerID || !appt.Status.IsSchedulable() {
			continue
		}
		if appt.StartsAt.Before(newEnd) && !appt.StartsAt.Before(earliest) {
			return true
		}
	}
	return false
}

// windowForWeekday returns the first active window for the weekday.
func windowForWeekday(windows []domain.AvailabilityWindow, weekday time.Weekday) (domain.AvailabilityWindow, bool) {
	for _, w := range windows {
		if w.Active && w.DayOfWeek == int(weekday) {
			return w, true
		}
	}
	return domain.AvailabilityWindow{}, false
}

// overlapsAny applies the half-open overlap test [a,b) ∩ [c,d) ≠ ∅ ⇔
// a < d && c < b against every schedulable appointment.
func overlapsAny(start, end time.Time, appointments []domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.Status.IsSchedulable() {
			continue
		}
		if start.Before(appt.End()) && appt.StartsAt.Before(end) {
			return true
		}
	}
	return false
}

// parseClock parses a wall-clock "HH:MM" string.
func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

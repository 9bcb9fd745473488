package booking

import (
	"errors"
	"fmt"

	"clinic-app-server/internal/scheduling"
)

var (
	// ErrPastDate rejects bookings dated before the current calendar day.
	ErrPastDate = errors.New("appointment date cannot be in the past")

	// ErrSlotTaken is the single conflict signal for both the fast-path
	// lookup and the duplicate-key violation at commit time. Callers cannot
	// tell which path detected it.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrAppointmentNotFound is returned for unknown appointment ids.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidTransition rejects status changes the state machine forbids,
	// including cancelling an already cancelled or completed appointment.
	ErrInvalidTransition = errors.New("invalid appointment status transition")

	// ErrForbidden rejects a status change the caller's role does not permit.
	ErrForbidden = errors.New("not allowed to perform this status change")

	// ErrWindowNotFound is returned for unknown schedule window ids.
	ErrWindowNotFound = errors.New("schedule window not found")

	// ErrInvalidRange rejects schedule windows whose start is not strictly
	// before their end.
	ErrInvalidRange = errors.New("start time must be before end time")

	// ErrWindowOverlap rejects a schedule window that intersects another
	// enabled window for the same doctor and day.
	ErrWindowOverlap = errors.New("schedule window overlaps an existing window for that day")

	// ErrInvalidDay rejects day names outside the seven stored tokens.
	ErrInvalidDay = errors.New("invalid day of week")
)

// DayUnavailableError means the doctor has no enabled schedule window for the
// requested date's weekday.
type DayUnavailableError struct {
	Day string
}

func (e *DayUnavailableError) Error() string {
	return fmt.Sprintf("doctor is not available on %ss", e.Day)
}

// OutsideWindowError means the requested time falls outside the doctor's
// schedule window for that day.
type OutsideWindowError struct {
	Start scheduling.TimeOfDay
	End   scheduling.TimeOfDay
}

func (e *OutsideWindowError) Error() string {
	return fmt.Sprintf("appointment time must be between %s and %s", e.Start.Short(), e.End.Short())
}

// ValidationError wraps malformed input (unparseable date or time).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

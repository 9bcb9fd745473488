package booking

import (
	"context"
	"fmt"
	"time"

	"clinic-app-server/internal/metrics"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/notify"
	"clinic-app-server/internal/scheduling"

	"go.uber.org/zap"
)

// Actor is the authenticated caller of a core operation, resolved once at the
// HTTP edge and passed explicitly. ProfileID is the caller's doctor or
// patient profile id, empty when the role has no profile.
type Actor struct {
	UserID    string
	Role      models.Role
	ProfileID string
}

// BookRequest carries everything the booking transaction needs. The contact
// fields feed the confirmation notification and play no part in validation.
type BookRequest struct {
	DoctorID  string
	PatientID string
	Date      string // "YYYY-MM-DD"
	Time      string // "HH:MM" or "HH:MM:SS"
	Reason    string

	PatientEmail string
	PatientName  string
	DoctorName   string
}

// BookingService owns the appointment write path: the validation ladder, the
// atomic commit, and status transitions.
type BookingService struct {
	schedules    ScheduleStore
	appointments AppointmentStore
	notifier     *notify.Notifier
	log          *zap.Logger
	now          func() time.Time
}

// NewBookingService creates a BookingService. notifier may be nil; bookings
// then simply produce no confirmation email.
func NewBookingService(schedules ScheduleStore, appointments AppointmentStore, notifier *notify.Notifier, log *zap.Logger) *BookingService {
	return &BookingService{
		schedules:    schedules,
		appointments: appointments,
		notifier:     notifier,
		log:          log,
		now:          time.Now,
	}
}

// Book validates and commits a new appointment. Validation runs in a fixed
// order, each step a hard stop: past date, schedule existence for the date's
// weekday, half-open window membership, conflict lookup, then the create.
// The store's uniqueness constraint is the authoritative conflict check; the
// preceding lookup only produces a friendlier rejection in the common case.
func (s *BookingService) Book(ctx context.Context, req BookRequest) (*models.Appointment, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, &ValidationError{Msg: "invalid date format, expected YYYY-MM-DD"}
	}
	if req.Date < s.now().Format("2006-01-02") {
		return nil, ErrPastDate
	}

	dayName := scheduling.DayName(day)
	window, err := s.schedules.EnabledWindow(ctx, req.DoctorID, dayName)
	if err != nil {
		return nil, fmt.Errorf("looking up schedule: %w", err)
	}
	if window == nil {
		return nil, &DayUnavailableError{Day: dayName}
	}

	requested, err := scheduling.ParseTimeOfDay(req.Time)
	if err != nil {
		return nil, &ValidationError{Msg: "invalid time format, expected HH:MM:SS"}
	}
	start, err := scheduling.ParseTimeOfDay(window.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule start %q: %w", window.StartTime, err)
	}
	end, err := scheduling.ParseTimeOfDay(window.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule end %q: %w", window.EndTime, err)
	}
	if !scheduling.WithinWindow(start, end, requested.TruncateToMinute()) {
		return nil, &OutsideWindowError{Start: start, End: end}
	}

	normalized := requested.String()
	taken, err := s.appointments.HasActive(ctx, req.DoctorID, req.Date, normalized)
	if err != nil {
		return nil, fmt.Errorf("checking for conflicts: %w", err)
	}
	if taken {
		metrics.BookingConflicts.Inc()
		return nil, ErrSlotTaken
	}

	appt := &models.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		AppointmentDate: req.Date,
		AppointmentTime: normalized,
		Status:          models.StatusScheduled,
		ReasonForVisit:  req.Reason,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		if err == ErrSlotTaken {
			// Lost the race to a concurrent booking after the lookup passed.
			metrics.BookingConflicts.Inc()
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("creating appointment: %w", err)
	}
	metrics.BookingsCreated.Inc()

	if s.notifier != nil && req.PatientEmail != "" {
		s.notifier.Enqueue(notify.Message{
			ToEmail:    req.PatientEmail,
			ToName:     req.PatientName,
			DoctorName: req.DoctorName,
			Date:       req.Date,
			Time:       normalized,
			Reason:     req.Reason,
		})
	}

	return appt, nil
}

// UpdateStatus applies a status transition on behalf of actor. Patients may
// only cancel their own scheduled appointments; doctors may only mark their
// own as completed or no_show; admins may apply any transition the state
// machine allows. Cancelling an already cancelled or completed appointment is
// an invalid transition, not a no-op.
func (s *BookingService) UpdateStatus(ctx context.Context, actor Actor, appointmentID string, next models.AppointmentStatus) (*models.Appointment, error) {
	if !next.IsValid() || next == models.StatusScheduled {
		return nil, &ValidationError{Msg: "invalid target status"}
	}

	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}

	switch actor.Role {
	case models.RolePatient:
		if appt.PatientID != actor.ProfileID {
			return nil, ErrForbidden
		}
		if next != models.StatusCancelled {
			return nil, ErrForbidden
		}
	case models.RoleDoctor:
		if appt.DoctorID != actor.ProfileID {
			return nil, ErrForbidden
		}
		if next != models.StatusCompleted && next != models.StatusNoShow {
			return nil, ErrForbidden
		}
	case models.RoleAdmin:
		// Admins are bound only by the state machine.
	default:
		return nil, ErrForbidden
	}

	if !appt.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	appt.Status = next
	if err := s.appointments.Save(ctx, appt); err != nil {
		return nil, fmt.Errorf("updating appointment status: %w", err)
	}

	s.log.Info("appointment status changed",
		zap.String("appointmentId", appt.ID),
		zap.String("status", string(next)),
		zap.String("byUser", actor.UserID),
		zap.String("byRole", string(actor.Role)))

	return appt, nil
}

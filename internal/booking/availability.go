package booking

import (
	"context"
	"fmt"
	"time"

	"clinic-app-server/internal/metrics"
	"clinic-app-server/internal/scheduling"

	"go.uber.org/zap"
)

// DayAvailability is the availability picture for one doctor on one date.
// Slots carry full "HH:MM:SS" values; the schedule bounds are truncated to
// "HH:MM" for display.
type DayAvailability struct {
	DoctorID       string   `json:"doctorId"`
	Date           string   `json:"date"`
	DayOfWeek      string   `json:"dayOfWeek"`
	ScheduleStart  string   `json:"scheduleStart"`
	ScheduleEnd    string   `json:"scheduleEnd"`
	AvailableSlots []string `json:"availableSlots"`
	BookedSlots    []string `json:"bookedSlots"`
}

// AvailabilityService resolves which slots are open for a doctor on a date.
// Read-only; it offers no consistency guarantee against a concurrent booking,
// which is why the write path re-validates everything.
type AvailabilityService struct {
	schedules    ScheduleStore
	appointments AppointmentStore
	slotMinutes  int
	log          *zap.Logger
}

// NewAvailabilityService creates an AvailabilityService. slotMinutes <= 0
// falls back to the 30-minute default.
func NewAvailabilityService(schedules ScheduleStore, appointments AppointmentStore, slotMinutes int, log *zap.Logger) *AvailabilityService {
	if slotMinutes <= 0 {
		slotMinutes = scheduling.DefaultSlotMinutes
	}
	return &AvailabilityService{
		schedules:    schedules,
		appointments: appointments,
		slotMinutes:  slotMinutes,
		log:          log,
	}
}

// Resolve computes the open and booked slots for (doctorID, date).
// Returns a DayUnavailableError when the doctor has no enabled window for
// the date's weekday.
func (s *AvailabilityService) Resolve(ctx context.Context, doctorID, date string) (*DayAvailability, error) {
	metrics.AvailabilityLookups.Inc()

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, &ValidationError{Msg: "invalid date format, expected YYYY-MM-DD"}
	}
	dayName := scheduling.DayName(day)

	window, err := s.schedules.EnabledWindow(ctx, doctorID, dayName)
	if err != nil {
		return nil, fmt.Errorf("looking up schedule: %w", err)
	}
	if window == nil {
		return nil, &DayUnavailableError{Day: dayName}
	}

	start, err := scheduling.ParseTimeOfDay(window.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule start %q: %w", window.StartTime, err)
	}
	end, err := scheduling.ParseTimeOfDay(window.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule end %q: %w", window.EndTime, err)
	}

	bookedTimes, err := s.appointments.BookedTimes(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("looking up booked slots: %w", err)
	}

	booked := make(map[scheduling.TimeOfDay]struct{}, len(bookedTimes))
	bookedSlots := make([]string, 0, len(bookedTimes))
	for _, bt := range bookedTimes {
		tod, err := scheduling.ParseTimeOfDay(bt)
		if err != nil {
			s.log.Warn("skipping unparseable booked time",
				zap.String("doctorId", doctorID),
				zap.String("date", date),
				zap.String("time", bt))
			continue
		}
		booked[tod] = struct{}{}
		bookedSlots = append(bookedSlots, tod.String())
	}

	slots := scheduling.ComputeSlots(start, end, s.slotMinutes, booked)
	available := make([]string, 0, len(slots))
	for _, slot := range slots {
		available = append(available, slot.String())
	}

	return &DayAvailability{
		DoctorID:       doctorID,
		Date:           date,
		DayOfWeek:      dayName,
		ScheduleStart:  start.Short(),
		ScheduleEnd:    end.Short(),
		AvailableSlots: available,
		BookedSlots:    bookedSlots,
	}, nil
}

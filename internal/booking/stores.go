package booking

import (
	"context"

	"clinic-app-server/internal/models"
)

// ScheduleStore provides access to doctors' recurring weekly windows.
type ScheduleStore interface {
	// EnabledWindow returns the enabled window for (doctorID, day), or
	// (nil, nil) when the doctor has none for that day.
	EnabledWindow(ctx context.Context, doctorID, day string) (*models.DoctorSchedule, error)

	// EnabledWindowsForDay returns every enabled window for (doctorID, day).
	EnabledWindowsForDay(ctx context.Context, doctorID, day string) ([]models.DoctorSchedule, error)

	// ListByDoctor returns all of a doctor's windows, enabled or not, in no
	// particular order.
	ListByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error)

	GetWindow(ctx context.Context, id string) (*models.DoctorSchedule, error)
	CreateWindow(ctx context.Context, w *models.DoctorSchedule) error
	SaveWindow(ctx context.Context, w *models.DoctorSchedule) error
	DeleteWindow(ctx context.Context, id string) error
}

// AppointmentStore provides access to booked appointments.
type AppointmentStore interface {
	// BookedTimes returns the "HH:MM:SS" times of all non-cancelled
	// appointments for (doctorID, date), ascending.
	BookedTimes(ctx context.Context, doctorID, date string) ([]string, error)

	// HasActive reports whether a non-cancelled appointment exists at
	// (doctorID, date, timeOfDay).
	HasActive(ctx context.Context, doctorID, date, timeOfDay string) (bool, error)

	// Create persists a new appointment. A uniqueness violation on the
	// active slot key must be returned as ErrSlotTaken; that is the
	// race-breaker for concurrent bookings of the same slot.
	Create(ctx context.Context, a *models.Appointment) error

	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	Save(ctx context.Context, a *models.Appointment) error

	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
}

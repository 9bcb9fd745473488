package store

import (
	"context"
	"errors"

	"clinic-app-server/internal/booking"
	"clinic-app-server/internal/models"

	"gorm.io/gorm"
)

// AppointmentStore is the gorm-backed implementation of
// booking.AppointmentStore.
type AppointmentStore struct {
	db *gorm.DB
}

// NewAppointmentStore creates an AppointmentStore.
func NewAppointmentStore(db *gorm.DB) *AppointmentStore {
	return &AppointmentStore{db: db}
}

var _ booking.AppointmentStore = (*AppointmentStore)(nil)

// BookedTimes returns the times of all non-cancelled appointments for
// (doctorID, date), ascending.
func (s *AppointmentStore) BookedTimes(ctx context.Context, doctorID, date string) ([]string, error) {
	var times []string
	err := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status <> ?", doctorID, date, models.StatusCancelled).
		Order("appointment_time asc").
		Pluck("appointment_time", &times).Error
	return times, err
}

// HasActive reports whether a non-cancelled appointment occupies the slot.
func (s *AppointmentStore) HasActive(ctx context.Context, doctorID, date, timeOfDay string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status <> ?",
			doctorID, date, timeOfDay, models.StatusCancelled).
		Count(&count).Error
	return count > 0, err
}

// Create persists a new appointment. A duplicate on the active slot key
// means a concurrent booking won the slot; it is reported as ErrSlotTaken.
func (s *AppointmentStore) Create(ctx context.Context, a *models.Appointment) error {
	err := s.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return booking.ErrSlotTaken
	}
	return err
}

// GetByID returns an appointment by id, or (nil, nil) when absent.
func (s *AppointmentStore) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var a models.Appointment
	err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Save persists changes to an existing appointment.
func (s *AppointmentStore) Save(ctx context.Context, a *models.Appointment) error {
	return s.db.WithContext(ctx).Save(a).Error
}

// ListByPatient returns a patient's appointments ordered by date and time.
func (s *AppointmentStore) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("appointment_date asc, appointment_time asc").
		Find(&appts).Error
	return appts, err
}

// ListByDoctor returns a doctor's appointments ordered by date and time.
func (s *AppointmentStore) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("appointment_date asc, appointment_time asc").
		Find(&appts).Error
	return appts, err
}

package store

import (
	"context"
	"errors"

	"clinic-app-server/internal/booking"
	"clinic-app-server/internal/models"

	"gorm.io/gorm"
)

// ScheduleStore is the gorm-backed implementation of booking.ScheduleStore.
type ScheduleStore struct {
	db *gorm.DB
}

// NewScheduleStore creates a ScheduleStore.
func NewScheduleStore(db *gorm.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

var _ booking.ScheduleStore = (*ScheduleStore)(nil)

// EnabledWindow returns the enabled window for (doctorID, day), or (nil, nil)
// when none exists.
func (s *ScheduleStore) EnabledWindow(ctx context.Context, doctorID, day string) (*models.DoctorSchedule, error) {
	var w models.DoctorSchedule
	err := s.db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ? AND is_available = ?", doctorID, day, true).
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// EnabledWindowsForDay returns every enabled window for (doctorID, day).
func (s *ScheduleStore) EnabledWindowsForDay(ctx context.Context, doctorID, day string) ([]models.DoctorSchedule, error) {
	var windows []models.DoctorSchedule
	err := s.db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ? AND is_available = ?", doctorID, day, true).
		Order("start_time asc").
		Find(&windows).Error
	return windows, err
}

// ListByDoctor returns all of a doctor's windows.
func (s *ScheduleStore) ListByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	var windows []models.DoctorSchedule
	err := s.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Find(&windows).Error
	return windows, err
}

// GetWindow returns a window by id, or (nil, nil) when absent.
func (s *ScheduleStore) GetWindow(ctx context.Context, id string) (*models.DoctorSchedule, error) {
	var w models.DoctorSchedule
	err := s.db.WithContext(ctx).First(&w, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWindow persists a new window.
func (s *ScheduleStore) CreateWindow(ctx context.Context, w *models.DoctorSchedule) error {
	return s.db.WithContext(ctx).Create(w).Error
}

// SaveWindow persists changes to an existing window.
func (s *ScheduleStore) SaveWindow(ctx context.Context, w *models.DoctorSchedule) error {
	return s.db.WithContext(ctx).Save(w).Error
}

// DeleteWindow removes a window by id.
func (s *ScheduleStore) DeleteWindow(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.DoctorSchedule{}, "id = ?", id).Error
}

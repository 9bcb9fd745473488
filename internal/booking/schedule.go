package booking

import (
	"context"
	"fmt"
	"sort"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/scheduling"

	"go.uber.org/zap"
)

// ScheduleService maintains doctors' weekly availability windows. Creation
// and update share the same two constraints: start strictly before end, and
// no half-open overlap with any other enabled window for the same day.
type ScheduleService struct {
	schedules ScheduleStore
	log       *zap.Logger
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(schedules ScheduleStore, log *zap.Logger) *ScheduleService {
	return &ScheduleService{schedules: schedules, log: log}
}

// WindowInput is a schedule window as submitted by a doctor.
type WindowInput struct {
	DayOfWeek   string
	StartTime   string // "HH:MM" or "HH:MM:SS"
	EndTime     string
	IsAvailable *bool // nil means enabled
}

func (s *ScheduleService) validate(ctx context.Context, doctorID string, in WindowInput, excludeID string) (start, end scheduling.TimeOfDay, err error) {
	if !scheduling.ValidDayName(in.DayOfWeek) {
		return 0, 0, ErrInvalidDay
	}
	start, err = scheduling.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return 0, 0, &ValidationError{Msg: "invalid start time, expected HH:MM:SS"}
	}
	end, err = scheduling.ParseTimeOfDay(in.EndTime)
	if err != nil {
		return 0, 0, &ValidationError{Msg: "invalid end time, expected HH:MM:SS"}
	}
	if start >= end {
		return 0, 0, ErrInvalidRange
	}

	existing, err := s.schedules.EnabledWindowsForDay(ctx, doctorID, in.DayOfWeek)
	if err != nil {
		return 0, 0, fmt.Errorf("looking up existing windows: %w", err)
	}
	for _, w := range existing {
		if w.ID == excludeID {
			continue
		}
		ws, perr := scheduling.ParseTimeOfDay(w.StartTime)
		if perr != nil {
			continue
		}
		we, perr := scheduling.ParseTimeOfDay(w.EndTime)
		if perr != nil {
			continue
		}
		if scheduling.Overlaps(start, end, ws, we) {
			return 0, 0, ErrWindowOverlap
		}
	}
	return start, end, nil
}

// AddWindow creates a new window for the doctor.
func (s *ScheduleService) AddWindow(ctx context.Context, doctorID string, in WindowInput) (*models.DoctorSchedule, error) {
	start, end, err := s.validate(ctx, doctorID, in, "")
	if err != nil {
		return nil, err
	}

	w := &models.DoctorSchedule{
		DoctorID:    doctorID,
		DayOfWeek:   in.DayOfWeek,
		StartTime:   start.String(),
		EndTime:     end.String(),
		IsAvailable: in.IsAvailable == nil || *in.IsAvailable,
	}
	if err := s.schedules.CreateWindow(ctx, w); err != nil {
		return nil, fmt.Errorf("creating schedule window: %w", err)
	}

	s.log.Info("schedule window added",
		zap.String("doctorId", doctorID),
		zap.String("day", w.DayOfWeek),
		zap.String("start", w.StartTime),
		zap.String("end", w.EndTime))
	return w, nil
}

// UpdateWindow revalidates and saves an existing window owned by doctorID.
// The overlap scan excludes the window itself.
func (s *ScheduleService) UpdateWindow(ctx context.Context, doctorID, windowID string, in WindowInput) (*models.DoctorSchedule, error) {
	w, err := s.schedules.GetWindow(ctx, windowID)
	if err != nil {
		return nil, err
	}
	if w == nil || w.DoctorID != doctorID {
		return nil, ErrWindowNotFound
	}

	start, end, err := s.validate(ctx, doctorID, in, windowID)
	if err != nil {
		return nil, err
	}

	w.DayOfWeek = in.DayOfWeek
	w.StartTime = start.String()
	w.EndTime = end.String()
	if in.IsAvailable != nil {
		w.IsAvailable = *in.IsAvailable
	}
	if err := s.schedules.SaveWindow(ctx, w); err != nil {
		return nil, fmt.Errorf("saving schedule window: %w", err)
	}
	return w, nil
}

// DeleteWindow removes a window owned by doctorID.
func (s *ScheduleService) DeleteWindow(ctx context.Context, doctorID, windowID string) error {
	w, err := s.schedules.GetWindow(ctx, windowID)
	if err != nil {
		return err
	}
	if w == nil || w.DoctorID != doctorID {
		return ErrWindowNotFound
	}
	return s.schedules.DeleteWindow(ctx, windowID)
}

// WeeklySchedule returns a doctor's windows in Monday-first display order,
// then by start time within a day.
func (s *ScheduleService) WeeklySchedule(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	windows, err := s.schedules.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule: %w", err)
	}
	sort.SliceStable(windows, func(i, j int) bool {
		ri, rj := scheduling.DayRank(windows[i].DayOfWeek), scheduling.DayRank(windows[j].DayOfWeek)
		if ri != rj {
			return ri < rj
		}
		return windows[i].StartTime < windows[j].StartTime
	})
	return windows, nil
}

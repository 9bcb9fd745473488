package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"clinic-app-server/internal/models"
)

// In-memory stores backing the service tests. memAppointmentStore enforces
// the same at-most-one-active-per-slot rule as the database's unique index,
// under a mutex, so the concurrency tests exercise the real race contract.

type memScheduleStore struct {
	mu      sync.Mutex
	windows []models.DoctorSchedule
	nextID  int
	failAll bool
}

func (s *memScheduleStore) add(w models.DoctorSchedule) models.DoctorSchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID == "" {
		s.nextID++
		w.ID = fmt.Sprintf("win-%d", s.nextID)
	}
	s.windows = append(s.windows, w)
	return w
}

func (s *memScheduleStore) EnabledWindow(ctx context.Context, doctorID, day string) (*models.DoctorSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return nil, fmt.Errorf("store unavailable")
	}
	for i := range s.windows {
		w := s.windows[i]
		if w.DoctorID == doctorID && w.DayOfWeek == day && w.IsAvailable {
			return &w, nil
		}
	}
	return nil, nil
}

func (s *memScheduleStore) EnabledWindowsForDay(ctx context.Context, doctorID, day string) ([]models.DoctorSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.DoctorSchedule
	for _, w := range s.windows {
		if w.DoctorID == doctorID && w.DayOfWeek == day && w.IsAvailable {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *memScheduleStore) ListByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.DoctorSchedule
	for _, w := range s.windows {
		if w.DoctorID == doctorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *memScheduleStore) GetWindow(ctx context.Context, id string) (*models.DoctorSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.windows {
		if s.windows[i].ID == id {
			w := s.windows[i]
			return &w, nil
		}
	}
	return nil, nil
}

func (s *memScheduleStore) CreateWindow(ctx context.Context, w *models.DoctorSchedule) error {
	stored := s.add(*w)
	w.ID = stored.ID
	return nil
}

func (s *memScheduleStore) SaveWindow(ctx context.Context, w *models.DoctorSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.windows {
		if s.windows[i].ID == w.ID {
			s.windows[i] = *w
			return nil
		}
	}
	return fmt.Errorf("window %s not found", w.ID)
}

func (s *memScheduleStore) DeleteWindow(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.windows {
		if s.windows[i].ID == id {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("window %s not found", id)
}

type memAppointmentStore struct {
	mu     sync.Mutex
	appts  map[string]*models.Appointment
	active map[string]string // slot key -> appointment id
	nextID int
}

func newMemAppointmentStore() *memAppointmentStore {
	return &memAppointmentStore{
		appts:  map[string]*models.Appointment{},
		active: map[string]string{},
	}
}

func slotKey(a *models.Appointment) string {
	return a.DoctorID + "|" + a.AppointmentDate + "|" + a.AppointmentTime
}

func (s *memAppointmentStore) BookedTimes(ctx context.Context, doctorID, date string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var times []string
	for _, a := range s.appts {
		if a.DoctorID == doctorID && a.AppointmentDate == date && a.Status != models.StatusCancelled {
			times = append(times, a.AppointmentTime)
		}
	}
	sort.Strings(times)
	return times, nil
}

func (s *memAppointmentStore) HasActive(ctx context.Context, doctorID, date, timeOfDay string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[doctorID+"|"+date+"|"+timeOfDay]
	return ok, nil
}

func (s *memAppointmentStore) Create(ctx context.Context, a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := slotKey(a)
	if a.Status != models.StatusCancelled {
		if _, taken := s.active[key]; taken {
			return ErrSlotTaken
		}
	}
	s.nextID++
	a.ID = fmt.Sprintf("appt-%d", s.nextID)
	clone := *a
	s.appts[a.ID] = &clone
	if a.Status != models.StatusCancelled {
		s.active[key] = a.ID
	}
	return nil
}

func (s *memAppointmentStore) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appts[id]
	if !ok {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (s *memAppointmentStore) Save(ctx context.Context, a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.appts[a.ID]
	if !ok {
		return fmt.Errorf("appointment %s not found", a.ID)
	}
	key := slotKey(existing)
	if existing.Status != models.StatusCancelled && a.Status == models.StatusCancelled {
		delete(s.active, key)
	}
	clone := *a
	s.appts[a.ID] = &clone
	return nil
}

func (s *memAppointmentStore) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appts {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *memAppointmentStore) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appts {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

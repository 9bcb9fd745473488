package booking

import (
	"context"
	"testing"

	"clinic-app-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newScheduleService(t *testing.T) (*ScheduleService, *memScheduleStore) {
	t.Helper()
	store := &memScheduleStore{}
	return NewScheduleService(store, zap.NewNop()), store
}

func window(day, start, end string) WindowInput {
	return WindowInput{DayOfWeek: day, StartTime: start, EndTime: end}
}

func TestAddWindow(t *testing.T) {
	svc, _ := newScheduleService(t)

	w, err := svc.AddWindow(context.Background(), testDoctor, window("Monday", "09:00", "13:00"))
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, "09:00:00", w.StartTime)
	assert.Equal(t, "13:00:00", w.EndTime)
	assert.True(t, w.IsAvailable)
}

func TestAddWindowValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      WindowInput
		wantErr error
	}{
		{name: "unknown day", in: window("Funday", "09:00", "13:00"), wantErr: ErrInvalidDay},
		{name: "lowercase day rejected", in: window("monday", "09:00", "13:00"), wantErr: ErrInvalidDay},
		{name: "start equals end", in: window("Monday", "09:00", "09:00"), wantErr: ErrInvalidRange},
		{name: "start after end", in: window("Monday", "14:00", "09:00"), wantErr: ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newScheduleService(t)
			_, err := svc.AddWindow(context.Background(), testDoctor, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAddWindowBadTimes(t *testing.T) {
	svc, _ := newScheduleService(t)

	_, err := svc.AddWindow(context.Background(), testDoctor, window("Monday", "9am", "13:00"))
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestAddWindowOverlap(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleService(t)

	tests := []struct {
		name string
		in   WindowInput
		ok   bool
	}{
		{name: "contained", in: window("Monday", "10:00", "11:00")},
		{name: "straddles start", in: window("Monday", "08:00", "09:30")},
		{name: "straddles end", in: window("Monday", "12:30", "14:00")},
		{name: "identical", in: window("Monday", "09:00", "13:00")},
		{name: "back-to-back after is allowed", in: window("Monday", "13:00", "17:00"), ok: true},
		{name: "back-to-back before is allowed", in: window("Monday", "08:00", "09:00"), ok: true},
		{name: "other day is independent", in: window("Tuesday", "09:00", "13:00"), ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddWindow(ctx, "doc-overlap-"+tt.name, window("Monday", "09:00", "13:00"))
			require.NoError(t, err)
			_, err = svc.AddWindow(ctx, "doc-overlap-"+tt.name, tt.in)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrWindowOverlap)
			}
		})
	}
}

func TestAddWindowIgnoresDisabledForOverlap(t *testing.T) {
	ctx := context.Background()
	svc, store := newScheduleService(t)
	store.add(models.DoctorSchedule{
		DoctorID:    testDoctor,
		DayOfWeek:   "Monday",
		StartTime:   "09:00:00",
		EndTime:     "13:00:00",
		IsAvailable: false,
	})

	_, err := svc.AddWindow(ctx, testDoctor, window("Monday", "10:00", "11:00"))
	assert.NoError(t, err)
}

func TestUpdateWindow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleService(t)
	w, err := svc.AddWindow(ctx, testDoctor, window("Monday", "09:00", "13:00"))
	require.NoError(t, err)

	// Shifting a window within its own original range must not trip the
	// overlap scan against itself.
	updated, err := svc.UpdateWindow(ctx, testDoctor, w.ID, window("Monday", "10:00", "14:00"))
	require.NoError(t, err)
	assert.Equal(t, "10:00:00", updated.StartTime)
	assert.Equal(t, "14:00:00", updated.EndTime)
}

func TestUpdateWindowOverlapsOther(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleService(t)
	_, err := svc.AddWindow(ctx, testDoctor, window("Monday", "09:00", "12:00"))
	require.NoError(t, err)
	second, err := svc.AddWindow(ctx, testDoctor, window("Monday", "14:00", "17:00"))
	require.NoError(t, err)

	_, err = svc.UpdateWindow(ctx, testDoctor, second.ID, window("Monday", "11:00", "17:00"))
	assert.ErrorIs(t, err, ErrWindowOverlap)
}

func TestUpdateWindowDisable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleService(t)
	w, err := svc.AddWindow(ctx, testDoctor, window("Monday", "09:00", "13:00"))
	require.NoError(t, err)

	off := false
	in := window("Monday", "09:00", "13:00")
	in.IsAvailable = &off
	updated, err := svc.UpdateWindow(ctx, testDoctor, w.ID, in)
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
}

func TestUpdateWindowOwnership(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleService(t)
	w, err := svc.AddWindow(ctx, testDoctor, window("Monday", "09:00", "13:00"))
	require.NoError(t, err)

	_, err = svc.UpdateWindow(ctx, "doc-other", w.ID, window("Monday", "10:00", "12:00"))
	assert.ErrorIs(t, err, ErrWindowNotFound)

	_, err = svc.UpdateWindow(ctx, testDoctor, "missing", window("Monday", "10:00", "12:00"))
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestDeleteWindow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleService(t)
	w, err := svc.AddWindow(ctx, testDoctor, window("Monday", "09:00", "13:00"))
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteWindow(ctx, "doc-other", w.ID), ErrWindowNotFound)
	require.NoError(t, svc.DeleteWindow(ctx, testDoctor, w.ID))

	windows, err := svc.WeeklySchedule(ctx, testDoctor)
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestWeeklyScheduleOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleService(t)

	// Inserted out of order on purpose.
	for _, in := range []WindowInput{
		window("Sunday", "09:00", "12:00"),
		window("Wednesday", "14:00", "17:00"),
		window("Monday", "09:00", "12:00"),
		window("Wednesday", "09:00", "12:00"),
	} {
		_, err := svc.AddWindow(ctx, testDoctor, in)
		require.NoError(t, err)
	}

	windows, err := svc.WeeklySchedule(ctx, testDoctor)
	require.NoError(t, err)
	require.Len(t, windows, 4)

	got := make([][2]string, 0, len(windows))
	for _, w := range windows {
		got = append(got, [2]string{w.DayOfWeek, w.StartTime})
	}
	assert.Equal(t, [][2]string{
		{"Monday", "09:00:00"},
		{"Wednesday", "09:00:00"},
		{"Wednesday", "14:00:00"},
		{"Sunday", "09:00:00"},
	}, got)
}

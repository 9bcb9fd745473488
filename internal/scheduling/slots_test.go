package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:00", want: "09:00:00"},
		{in: "09:00:00", want: "09:00:00"},
		{in: "12:30:15", want: "12:30:15"},
		{in: "00:00", want: "00:00:00"},
		{in: "23:59:59", want: "23:59:59"},
		{in: "24:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "9", wantErr: true},
		{in: "", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got.String())
	}
}

func TestTimeOfDayFormatting(t *testing.T) {
	tod := mustParse(t, "09:05:30")
	assert.Equal(t, "09:05:30", tod.String())
	assert.Equal(t, "09:05", tod.Short())
	assert.Equal(t, "09:05:00", tod.TruncateToMinute().String())
	assert.Equal(t, "09:35:30", tod.AddMinutes(30).String())
}

func TestComputeSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		interval int
		booked   []string
		want     []string
	}{
		{
			name:     "monday morning window with no bookings",
			start:    "09:00:00",
			end:      "13:00:00",
			interval: 30,
			want: []string{
				"09:00:00", "09:30:00", "10:00:00", "10:30:00",
				"11:00:00", "11:30:00", "12:00:00", "12:30:00",
			},
		},
		{
			name:     "booked slot is excluded",
			start:    "09:00:00",
			end:      "13:00:00",
			interval: 30,
			booked:   []string{"10:00:00"},
			want: []string{
				"09:00:00", "09:30:00", "10:30:00",
				"11:00:00", "11:30:00", "12:00:00", "12:30:00",
			},
		},
		{
			name:     "fully booked window",
			start:    "09:00:00",
			end:      "10:00:00",
			interval: 30,
			booked:   []string{"09:00:00", "09:30:00"},
			want:     []string{},
		},
		{
			name:     "window shorter than one interval",
			start:    "09:00:00",
			end:      "09:15:00",
			interval: 30,
			want:     []string{"09:00:00"},
		},
		{
			name:     "zero-width window",
			start:    "09:00:00",
			end:      "09:00:00",
			interval: 30,
			want:     []string{},
		},
		{
			name:     "inverted window yields nothing",
			start:    "13:00:00",
			end:      "09:00:00",
			interval: 30,
			want:     []string{},
		},
		{
			name:     "non-positive interval falls back to default",
			start:    "09:00:00",
			end:      "10:00:00",
			interval: 0,
			want:     []string{"09:00:00", "09:30:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booked := map[TimeOfDay]struct{}{}
			for _, b := range tt.booked {
				booked[mustParse(t, b)] = struct{}{}
			}

			got := ComputeSlots(mustParse(t, tt.start), mustParse(t, tt.end), tt.interval, booked)

			formatted := make([]string, 0, len(got))
			for _, s := range got {
				formatted = append(formatted, s.String())
			}
			assert.Equal(t, tt.want, formatted)
		})
	}
}

func TestComputeSlotsCount(t *testing.T) {
	// floor((end-start)/interval) slots, each exactly interval*i after start.
	start := mustParse(t, "08:00:00")
	end := mustParse(t, "12:10:00")
	slots := ComputeSlots(start, end, 30, nil)
	require.Len(t, slots, 8)
	for i, s := range slots {
		assert.Equal(t, start.AddMinutes(30*i), s)
		assert.Less(t, s, end)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{"identical", [2]string{"09:00", "13:00"}, [2]string{"09:00", "13:00"}, true},
		{"contained", [2]string{"09:00", "13:00"}, [2]string{"10:00", "11:00"}, true},
		{"partial", [2]string{"09:00", "11:00"}, [2]string{"10:00", "12:00"}, true},
		{"back-to-back is allowed", [2]string{"09:00", "10:00"}, [2]string{"10:00", "11:00"}, false},
		{"disjoint", [2]string{"09:00", "10:00"}, [2]string{"11:00", "12:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				mustParse(t, tt.a[0]), mustParse(t, tt.a[1]),
				mustParse(t, tt.b[0]), mustParse(t, tt.b[1]),
			)
			assert.Equal(t, tt.want, got)
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(
				mustParse(t, tt.b[0]), mustParse(t, tt.b[1]),
				mustParse(t, tt.a[0]), mustParse(t, tt.a[1]),
			))
		})
	}
}

func TestWithinWindow(t *testing.T) {
	start := mustParse(t, "09:00")
	end := mustParse(t, "13:00")

	assert.True(t, WithinWindow(start, end, mustParse(t, "09:00")), "start boundary is bookable")
	assert.True(t, WithinWindow(start, end, mustParse(t, "12:30")))
	assert.False(t, WithinWindow(start, end, mustParse(t, "13:00")), "end boundary is never bookable")
	assert.False(t, WithinWindow(start, end, mustParse(t, "08:30")))
	assert.False(t, WithinWindow(start, end, mustParse(t, "13:30")))
}

func TestDayName(t *testing.T) {
	// 2026-03-02 is a Monday; walk the whole week from there.
	base := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	want := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, name := range want {
		assert.Equal(t, name, DayName(base.AddDate(0, 0, i)))
	}
}

func TestDayRank(t *testing.T) {
	ordered := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, DayRank(ordered[i-1]), DayRank(ordered[i]))
	}
	assert.Equal(t, 7, DayRank("Funday"), "unknown names sort last")
	assert.True(t, ValidDayName("Wednesday"))
	assert.False(t, ValidDayName("wednesday"))
}

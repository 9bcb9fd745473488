package scheduling

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a clock time expressed as seconds since midnight.
// Appointment and schedule times are stored as "HH:MM:SS" strings; this type
// carries the same value through slot arithmetic and comparisons.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time format: %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	second := 0
	if len(parts) == 3 {
		second, err = strconv.Atoi(parts[2])
		if err != nil || second < 0 || second > 59 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}

	return TimeOfDay(hour*3600 + minute*60 + second), nil
}

// String formats as "HH:MM:SS", the normalized slot representation.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)%3600/60, int(t)%60)
}

// Short formats as "HH:MM", used for displaying schedule bounds.
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", int(t)/3600, int(t)%3600/60)
}

// AddMinutes returns the time m minutes later.
func (t TimeOfDay) AddMinutes(m int) TimeOfDay {
	return t + TimeOfDay(m*60)
}

// TruncateToMinute drops the seconds component.
func (t TimeOfDay) TruncateToMinute() TimeOfDay {
	return t - t%60
}

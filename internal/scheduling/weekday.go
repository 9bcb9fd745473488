package scheduling

import "time"

// dayNames maps time.Weekday's Sunday-first index to the day tokens stored in
// doctor_schedules.day_of_week. The booking and availability paths both go
// through DayName so they can never disagree on the mapping.
var dayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// dayRank orders day names Monday-first for displaying weekly schedules.
var dayRank = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// DayName returns the stored day-of-week token for a calendar date.
func DayName(t time.Time) string {
	return dayNames[int(t.Weekday())]
}

// DayRank returns the Monday-first display rank of a day name. Unknown names
// sort last.
func DayRank(name string) int {
	if r, ok := dayRank[name]; ok {
		return r
	}
	return len(dayRank)
}

// ValidDayName reports whether name is one of the seven stored day tokens.
func ValidDayName(name string) bool {
	_, ok := dayRank[name]
	return ok
}

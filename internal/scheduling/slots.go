package scheduling

// DefaultSlotMinutes is the fixed appointment slot length.
const DefaultSlotMinutes = 30

// ComputeSlots generates the bookable slot times inside the half-open window
// [start, end), stepping by intervalMinutes and skipping any time present in
// booked. Results are in ascending generation order. A window with
// start >= end yields no slots rather than an error; the schedule invariant
// should prevent it, but callers must not crash if it slips through.
func ComputeSlots(start, end TimeOfDay, intervalMinutes int, booked map[TimeOfDay]struct{}) []TimeOfDay {
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultSlotMinutes
	}

	slots := []TimeOfDay{}
	for cursor := start; cursor < end; cursor = cursor.AddMinutes(intervalMinutes) {
		if _, taken := booked[cursor]; taken {
			continue
		}
		slots = append(slots, cursor)
	}
	return slots
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back windows (aEnd == bStart) do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && aEnd > bStart
}

// WithinWindow reports whether t is a valid booking time for the half-open
// window [start, end). The end boundary itself is never bookable.
func WithinWindow(start, end, t TimeOfDay) bool {
	return t >= start && t < end
}

// Package schedule implements time-range arithmetic for conflict detection.
package schedule

import (
	"strconv"
	"strings"
)

// NoTime is the sentinel returned by ParseClock for malformed or missing
// input. Callers must check for it before calling Overlaps; the sentinel
// never silently compares as a valid minute value.
const NoTime = -1

// ParseClock converts an "HH:MM" string to minutes since midnight.
// Returns NoTime when the string is empty, malformed, or out of range.
func ParseClock(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return NoTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return NoTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return NoTime
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return NoTime
	}
	return h*60 + m
}

// Overlaps reports whether two half-open minute ranges on the same day
// intersect. Ranges that merely touch at an endpoint do not overlap, so
// back-to-back bookings are permitted.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

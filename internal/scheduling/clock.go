// Package scheduling holds the time arithmetic behind availability checks:
// HH:MM clock parsing, half-open interval overlap and end-time derivation.
// All comparisons happen at minute resolution as minutes since midnight.
package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

var ErrInvalidClock = errors.New("invalid clock value, use HH:MM")

// ParseClock converts "HH:MM" (or "HH:MM:SS", as stored by the database time
// columns) to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, ErrInvalidClock
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, ErrInvalidClock
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, ErrInvalidClock
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as "HH:MM", wrapping past
// midnight.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// HHMM normalizes a clock value to the bare "HH:MM" form used by the grid,
// dropping a seconds component. Returns the input unchanged when it does not
// parse; callers filtering against the grid will simply never match it.
func HHMM(s string) string {
	minutes, err := ParseClock(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return FormatClock(minutes)
}

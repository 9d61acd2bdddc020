package scheduling

import "fmt"

// Interval is a half-open [Start,End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect:
// a overlaps b iff a.Start < b.End && b.Start < a.End.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// EndTime computes start + duration and renders it in the HH:MM:SS form the
// database time column expects. The result wraps modulo 24h; callers that
// consider a past-midnight end invalid must check CrossesMidnight first.
func EndTime(start string, durationMin int) (string, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	end := startMin + durationMin
	return FormatClock(end) + ":00", nil
}

// CrossesMidnight reports whether start + duration runs past 24:00.
func CrossesMidnight(start string, durationMin int) (bool, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return false, err
	}
	return startMin+durationMin > minutesPerDay, nil
}

// SlotInterval builds the candidate interval for a slot start and duration.
func SlotInterval(start string, durationMin int) (Interval, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	if durationMin <= 0 {
		return Interval{}, fmt.Errorf("non-positive duration %d", durationMin)
	}
	return Interval{Start: startMin, End: startMin + durationMin}, nil
}

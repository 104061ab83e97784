// Package schedule holds the fixed weekly grid definitions shared by the
// timetable handlers and the presence derivation: the monday..friday weekday
// set and the five daily periods with their fixed start/end times. Slot
// times are institution constants, never user input.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// Slot is the fixed time window of one period, both ends as "HH:MM".
type Slot struct {
	Start string
	End   string
}

// Slots maps period number (1..5) to its fixed time window.
var Slots = map[int]Slot{
	1: {Start: "08:45", End: "10:15"},
	2: {Start: "10:30", End: "12:00"},
	3: {Start: "13:00", End: "14:30"},
	4: {Start: "14:45", End: "16:15"},
	5: {Start: "16:30", End: "18:00"},
}

// dayNames is indexed by the stored day_of_week value (Monday=0 .. Friday=4).
var dayNames = [5]string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// DayIndex converts a weekday name to its stored index. The lookup is
// case-insensitive; weekend names and anything unknown return false.
func DayIndex(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range dayNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// DayName converts a stored day_of_week index back to its weekday name.
func DayName(idx int) (string, bool) {
	if idx < 0 || idx >= len(dayNames) {
		return "", false
	}
	return dayNames[idx], true
}

// WeekdayIndex maps a time.Weekday onto the stored 0..4 range. The second
// result is false on weekends, when no classes take place.
func WeekdayIndex(w time.Weekday) (int, bool) {
	if w == time.Saturday || w == time.Sunday {
		return 0, false
	}
	return int(w) - 1, true
}

// MinutesOfDay parses an "HH:MM" clock value into minutes since midnight.
// Malformed input returns -1; stored slot times are always well-formed.
func MinutesOfDay(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return -1
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

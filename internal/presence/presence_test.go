package presence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harukimz/timetable-share/internal/model"
)

// 2026-01-05 is a Monday.
func mondayAt(hour, min int) time.Time {
	return time.Date(2026, 1, 5, hour, min, 0, 0, time.UTC)
}

func mondayEntries() []model.TimetableEntry {
	return []model.TimetableEntry{
		{DayOfWeek: 0, Period: 3, SubjectName: "Linear Algebra", Room: "B201", StartTime: "13:00", EndTime: "14:30"},
		{DayOfWeek: 0, Period: 5, SubjectName: "Databases", Room: "C105", StartTime: "16:30", EndTime: "18:00"},
	}
}

func TestDeriveInClass(t *testing.T) {
	got := Derive(mondayEntries(), mondayAt(13, 15))
	assert.Equal(t, StatusInClass, got.Status)
	assert.Equal(t, "Linear Algebra", got.Subject)
	assert.Equal(t, "B201", got.Location)
	assert.Equal(t, "14:30", got.EndTime)
}

func TestDeriveBoundariesInclusive(t *testing.T) {
	start := Derive(mondayEntries(), mondayAt(13, 0))
	assert.Equal(t, StatusInClass, start.Status)

	end := Derive(mondayEntries(), mondayAt(14, 30))
	assert.Equal(t, StatusInClass, end.Status)
}

func TestDeriveFreeBetweenClasses(t *testing.T) {
	got := Derive(mondayEntries(), mondayAt(14, 31))
	assert.Equal(t, Status{Status: StatusFree}, got)
}

func TestDeriveFreeOtherDay(t *testing.T) {
	// Tuesday at a time that would be in class on Monday.
	tuesday := time.Date(2026, 1, 6, 13, 15, 0, 0, time.UTC)
	got := Derive(mondayEntries(), tuesday)
	assert.Equal(t, Status{Status: StatusFree}, got)
}

func TestDeriveWeekendAlwaysFree(t *testing.T) {
	saturday := time.Date(2026, 1, 10, 13, 15, 0, 0, time.UTC)
	entries := []model.TimetableEntry{
		{DayOfWeek: 0, Period: 3, SubjectName: "Linear Algebra", StartTime: "13:00", EndTime: "14:30"},
	}
	got := Derive(entries, saturday)
	assert.Equal(t, Status{Status: StatusFree}, got)
}

func TestDeriveNoEntries(t *testing.T) {
	got := Derive(nil, mondayAt(9, 0))
	assert.Equal(t, Status{Status: StatusFree}, got)
}

func TestDeriveSkipsMalformedTimes(t *testing.T) {
	entries := []model.TimetableEntry{
		{DayOfWeek: 0, Period: 1, SubjectName: "Broken", StartTime: "junk", EndTime: "10:15"},
	}
	got := Derive(entries, mondayAt(9, 0))
	assert.Equal(t, Status{Status: StatusFree}, got)
}

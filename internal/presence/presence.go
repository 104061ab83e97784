// Package presence derives a user's live free/in-class status from their
// timetable and the current wall-clock time. The status is computed on every
// request and never stored.
package presence

import (
	"time"

	"github.com/harukimz/timetable-share/internal/model"
	"github.com/harukimz/timetable-share/internal/schedule"
)

const (
	StatusFree    = "free"
	StatusInClass = "in_class"
)

// Status is the derived class status of a user at a point in time. Subject,
// Location and EndTime are only set while in class.
type Status struct {
	Status   string `json:"status"`
	Subject  string `json:"subject,omitempty"`
	Location string `json:"location,omitempty"`
	EndTime  string `json:"end_time,omitempty"`
}

// Derive computes the status for the given timetable entries at time now.
// Weekends are always free. On weekdays a user is in class when now falls
// inside any entry's [start, end] window for that weekday, boundaries
// included; otherwise free. Times are compared at minute resolution in the
// server's local zone, matching how slot times are stored.
func Derive(entries []model.TimetableEntry, now time.Time) Status {
	day, ok := schedule.WeekdayIndex(now.Weekday())
	if !ok {
		return Status{Status: StatusFree}
	}

	nowMin := now.Hour()*60 + now.Minute()
	for _, e := range entries {
		if e.DayOfWeek != day {
			continue
		}
		start := schedule.MinutesOfDay(e.StartTime)
		end := schedule.MinutesOfDay(e.EndTime)
		if start < 0 || end < 0 {
			continue
		}
		if start <= nowMin && nowMin <= end {
			return Status{
				Status:   StatusInClass,
				Subject:  e.SubjectName,
				Location: e.Room,
				EndTime:  e.EndTime,
			}
		}
	}
	return Status{Status: StatusFree}
}

package model

import "time"

// TimetableEntry models a row in the `timetables` table: one class slot in a
// user's weekly grid. Days run Monday=0 through Friday=4 and periods 1..5.
// StartTime and EndTime always come from the fixed period table and are kept
// as "HH:MM" strings, matching how they are rendered in responses.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owner of the entry.
//  DayOfWeek   – weekday index, 0 (Monday) to 4 (Friday).
//  Period      – daily slot number, 1 to 5.
//  SubjectName – class name; may be empty.
//  Room        – room or building; may be empty.
//  StartTime   – slot start, "HH:MM".
//  EndTime     – slot end, "HH:MM".
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type TimetableEntry struct {
	ID          uint64    // timetables.id
	UserID      uint64    // timetables.user_id
	DayOfWeek   int       // timetables.day_of_week
	Period      int       // timetables.period
	SubjectName string    // timetables.subject_name
	Room        string    // timetables.room
	StartTime   string    // timetables.start_time
	EndTime     string    // timetables.end_time
	CreatedAt   time.Time // timetables.created_at
	UpdatedAt   time.Time // timetables.updated_at
}

package repository

import (
	"context"
	"database/sql"

	"github.com/harukimz/timetable-share/internal/model"
)

// TimetableRepo provides persistence for weekly timetable entries. Slot
// times are stored as TIME columns; the driver hands them back as
// "HH:MM:SS" strings which are trimmed to the "HH:MM" form used everywhere
// else in the application.
type TimetableRepo struct{ DB *sql.DB }

func NewTimetableRepo(db *sql.DB) *TimetableRepo { return &TimetableRepo{DB: db} }

const timetableColumns = "id, user_id, day_of_week, period, subject_name, room, start_time, end_time, created_at, updated_at"

// hhmm trims a TIME column value ("08:45:00") down to "HH:MM".
func hhmm(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

func scanEntry(scan func(dest ...any) error) (model.TimetableEntry, error) {
	var e model.TimetableEntry
	var start, end string
	err := scan(&e.ID, &e.UserID, &e.DayOfWeek, &e.Period, &e.SubjectName, &e.Room,
		&start, &end, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.TimetableEntry{}, err
	}
	e.StartTime = hhmm(start)
	e.EndTime = hhmm(end)
	return e, nil
}

// ListByUser returns all timetable entries for a user, ordered by day and period.
func (r *TimetableRepo) ListByUser(ctx context.Context, userID uint64) ([]model.TimetableEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+timetableColumns+" FROM timetables WHERE user_id=? ORDER BY day_of_week, period",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.TimetableEntry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListByUserAndDay returns a user's entries for one weekday. Used by the
// presence derivation, which only ever needs the current day.
func (r *TimetableRepo) ListByUserAndDay(ctx context.Context, userID uint64, day int) ([]model.TimetableEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+timetableColumns+" FROM timetables WHERE user_id=? AND day_of_week=? ORDER BY period",
		userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.TimetableEntry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetSlot returns the entry occupying (user, day, period), or ErrNotFound.
func (r *TimetableRepo) GetSlot(ctx context.Context, userID uint64, day, period int) (model.TimetableEntry, error) {
	e, err := scanEntry(r.DB.QueryRowContext(ctx,
		"SELECT "+timetableColumns+" FROM timetables WHERE user_id=? AND day_of_week=? AND period=? LIMIT 1",
		userID, day, period).Scan)
	if err == sql.ErrNoRows {
		return model.TimetableEntry{}, ErrNotFound
	}
	return e, err
}

// Create inserts a new entry and reads the stored row back so timestamps
// and normalized times are populated. The unique slot key turns a
// concurrent double-create into ErrConflict.
func (r *TimetableRepo) Create(ctx context.Context, e *model.TimetableEntry) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO timetables (user_id, day_of_week, period, subject_name, room, start_time, end_time) VALUES (?,?,?,?,?,?,?)",
		e.UserID, e.DayOfWeek, e.Period, e.SubjectName, e.Room, e.StartTime+":00", e.EndTime+":00")
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := scanEntry(r.DB.QueryRowContext(ctx,
		"SELECT "+timetableColumns+" FROM timetables WHERE id=?", id).Scan)
	if err != nil {
		return err
	}
	*e = stored
	return nil
}

// UpdateSubjectRoom replaces the subject and room of an existing entry and
// returns the updated row.
func (r *TimetableRepo) UpdateSubjectRoom(ctx context.Context, id uint64, subject, room string) (model.TimetableEntry, error) {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE timetables SET subject_name=?, room=? WHERE id=?", subject, room, id); err != nil {
		return model.TimetableEntry{}, err
	}
	e, err := scanEntry(r.DB.QueryRowContext(ctx,
		"SELECT "+timetableColumns+" FROM timetables WHERE id=?", id).Scan)
	if err == sql.ErrNoRows {
		return model.TimetableEntry{}, ErrNotFound
	}
	return e, err
}

// DeleteByID removes an entry without an ownership check. Used for the
// clear-slot path where the entry was already fetched for the owner.
func (r *TimetableRepo) DeleteByID(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM timetables WHERE id=?", id)
	return err
}

// DeleteOwned removes an entry only when it belongs to the given user;
// ErrNotFound otherwise.
func (r *TimetableRepo) DeleteOwned(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM timetables WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harukimz/timetable-share/internal/middleware"
	"github.com/harukimz/timetable-share/internal/model"
	"github.com/harukimz/timetable-share/internal/repository"
	"github.com/harukimz/timetable-share/internal/schedule"
)

// TimetableHandler serves the weekly class grid endpoints.
type TimetableHandler struct {
	Timetables *repository.TimetableRepo
}

func NewTimetableHandler(t *repository.TimetableRepo) *TimetableHandler {
	return &TimetableHandler{Timetables: t}
}

type upsertTimetableReq struct {
	DayOfWeek   string `json:"day_of_week"`
	Period      int    `json:"period"`
	SubjectName string `json:"subject_name"`
	Room        string `json:"room"`
}

// entryView renders a timetable entry. DayOfWeek is either the weekday name
// (own timetable) or the stored numeric index (another user's timetable);
// the any type covers both without duplicating the struct.
type entryView struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	DayOfWeek   any       `json:"day_of_week"`
	Period      int       `json:"period"`
	SubjectName string    `json:"subject_name"`
	Room        string    `json:"room"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newEntryView(e model.TimetableEntry, named bool) entryView {
	v := entryView{
		ID:          e.ID,
		UserID:      e.UserID,
		DayOfWeek:   e.DayOfWeek,
		Period:      e.Period,
		SubjectName: e.SubjectName,
		Room:        e.Room,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if named {
		if name, ok := schedule.DayName(e.DayOfWeek); ok {
			v.DayOfWeek = name
		}
	}
	return v
}

// List returns the caller's own timetable with symbolic weekday names.
func (h *TimetableHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	entries, err := h.Timetables.ListByUser(ctx, middleware.CurrentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, newEntryView(e, true))
	}
	return c.JSON(http.StatusOK, echo.Map{"timetables": views})
}

// Upsert writes one slot of the grid. Submitting an empty subject and room
// clears the slot: an existing entry is deleted, a missing one stays
// missing. Otherwise the slot is updated in place or created with the
// fixed period times.
func (h *TimetableHandler) Upsert(c echo.Context) error {
	var req upsertTimetableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.DayOfWeek) == "" || req.Period == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day_of_week and period are required"})
	}
	day, ok := schedule.DayIndex(req.DayOfWeek)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid day_of_week"})
	}
	slot, ok := schedule.Slots[req.Period]
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid period"})
	}
	subject := strings.TrimSpace(req.SubjectName)
	room := strings.TrimSpace(req.Room)
	userID := middleware.CurrentUserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	existing, err := h.Timetables.GetSlot(ctx, userID, day, req.Period)
	switch err {
	case nil:
		if subject == "" && room == "" {
			if err := h.Timetables.DeleteByID(ctx, existing.ID); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
			}
			return c.JSON(http.StatusOK, echo.Map{"message": "timetable entry removed"})
		}
		updated, err := h.Timetables.UpdateSubjectRoom(ctx, existing.ID, subject, room)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"timetable": newEntryView(updated, true)})

	case repository.ErrNotFound:
		if subject == "" && room == "" {
			// Clearing an empty slot is a no-op, not an error.
			return c.JSON(http.StatusOK, echo.Map{"message": "empty entries are not stored"})
		}
		entry := model.TimetableEntry{
			UserID:      userID,
			DayOfWeek:   day,
			Period:      req.Period,
			SubjectName: subject,
			Room:        room,
			StartTime:   slot.Start,
			EndTime:     slot.End,
		}
		if err := h.Timetables.Create(ctx, &entry); err != nil {
			if err == repository.ErrConflict {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot already taken"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
		}
		return c.JSON(http.StatusCreated, echo.Map{"timetable": newEntryView(entry, true)})

	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
}

// Delete removes an entry by id; only the owner can delete it.
func (h *TimetableHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	err := h.Timetables.DeleteOwned(ctx, id, middleware.CurrentUserID(c))
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "timetable entry not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "timetable entry removed"})
}

// ListForUser returns another user's timetable. Any authenticated user may
// read any timetable; visibility is intentionally not tied to friendship.
// Day indexes stay numeric here.
func (h *TimetableHandler) ListForUser(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	entries, err := h.Timetables.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, newEntryView(e, false))
	}
	return c.JSON(http.StatusOK, echo.Map{"timetables": views})
}

package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harukimz/timetable-share/internal/middleware"
	"github.com/harukimz/timetable-share/internal/model"
	"github.com/harukimz/timetable-share/internal/presence"
	"github.com/harukimz/timetable-share/internal/queue"
	"github.com/harukimz/timetable-share/internal/repository"
	"github.com/harukimz/timetable-share/internal/schedule"
)

// FriendHandler serves the friendship lifecycle and the friends-with-status
// listing. Now is injectable so presence can be tested with a frozen clock.
type FriendHandler struct {
	Friends    *repository.FriendRepo
	Users      *repository.UserRepo
	Timetables *repository.TimetableRepo
	Now        func() time.Time
}

func NewFriendHandler(f *repository.FriendRepo, u *repository.UserRepo, t *repository.TimetableRepo) *FriendHandler {
	return &FriendHandler{Friends: f, Users: u, Timetables: t, Now: time.Now}
}

type friendRequestReq struct {
	UserID uint64 `json:"user_id"`
}

type friendView struct {
	ID           uint64          `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	ClassStatus  presence.Status `json:"class_status"`
	FriendshipID uint64          `json:"friendship_id"`
}

type requestView struct {
	ID        uint64    `json:"id"`
	User      userRef   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type searchResultView struct {
	ID               uint64 `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	FriendshipStatus string `json:"friendship_status"`
}

// relationshipLabel classifies a relation from the viewer's perspective:
// friends, sent, received, or none when no relation exists.
func relationshipLabel(f model.Friend, exists bool, viewerID uint64) string {
	if !exists {
		return "none"
	}
	switch f.Status {
	case model.FriendStatusAccepted:
		return "friends"
	case model.FriendStatusPending:
		if f.UserID == viewerID {
			return "sent"
		}
		return "received"
	}
	return "none"
}

// classStatus derives one user's live presence. Weekends skip the query
// entirely; weekdays only load that day's entries.
func (h *FriendHandler) classStatus(ctx context.Context, userID uint64, now time.Time) (presence.Status, error) {
	day, ok := schedule.WeekdayIndex(now.Weekday())
	if !ok {
		return presence.Status{Status: presence.StatusFree}, nil
	}
	entries, err := h.Timetables.ListByUserAndDay(ctx, userID, day)
	if err != nil {
		return presence.Status{}, err
	}
	return presence.Derive(entries, now), nil
}

// ListFriends returns accepted friends, each with live class status, free
// friends first. The sort is stable so alphabetical order holds within
// each group.
func (h *FriendHandler) ListFriends(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rows, err := h.Friends.ListAccepted(ctx, middleware.CurrentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	now := h.Now()
	friends := make([]friendView, 0, len(rows))
	for _, fr := range rows {
		status, err := h.classStatus(ctx, fr.UserID, now)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		friends = append(friends, friendView{
			ID:           fr.UserID,
			Username:     fr.Username,
			Email:        fr.Email,
			ClassStatus:  status,
			FriendshipID: fr.FriendshipID,
		})
	}
	sort.SliceStable(friends, func(i, j int) bool {
		return friends[i].ClassStatus.Status == presence.StatusFree &&
			friends[j].ClassStatus.Status != presence.StatusFree
	})

	return c.JSON(http.StatusOK, echo.Map{"friends": friends})
}

// ListRequests returns pending requests, split into received and sent.
func (h *FriendHandler) ListRequests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	userID := middleware.CurrentUserID(c)

	received, err := h.Friends.ListPendingReceived(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	sent, err := h.Friends.ListPendingSent(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	toViews := func(rows []repository.RequestRow) []requestView {
		views := make([]requestView, 0, len(rows))
		for _, r := range rows {
			views = append(views, requestView{
				ID:        r.ID,
				User:      userRef{ID: r.UserID, Username: r.Username},
				CreatedAt: r.CreatedAt,
			})
		}
		return views
	}
	return c.JSON(http.StatusOK, echo.Map{
		"received_requests": toViews(received),
		"sent_requests":     toViews(sent),
	})
}

// Search finds users by username or email substring and labels each result
// with its relationship to the caller.
func (h *FriendHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return c.JSON(http.StatusOK, echo.Map{"users": []searchResultView{}})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	userID := middleware.CurrentUserID(c)

	users, err := h.Users.Search(ctx, query, userID, 20)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	results := make([]searchResultView, 0, len(users))
	for _, u := range users {
		rel, err := h.Friends.GetBetween(ctx, userID, u.ID)
		exists := err == nil
		if err != nil && err != repository.ErrNotFound {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		results = append(results, searchResultView{
			ID:               u.ID,
			Username:         u.Username,
			Email:            u.Email,
			FriendshipStatus: relationshipLabel(rel, exists, userID),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": results})
}

// sendRequest holds the shared logic behind the JSON endpoint and the QR
// add-friend path: validate the target, refuse duplicates in either
// direction, insert a pending row.
func (h *FriendHandler) sendRequest(ctx context.Context, fromID, toID uint64) (model.User, int, string) {
	if toID == fromID {
		return model.User{}, http.StatusBadRequest, "cannot send a friend request to yourself"
	}
	target, err := h.Users.GetByID(ctx, toID)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, http.StatusNotFound, "user not found"
		}
		return model.User{}, http.StatusInternalServerError, "query failed"
	}

	rel, err := h.Friends.GetBetween(ctx, fromID, toID)
	if err == nil {
		if rel.Status == model.FriendStatusAccepted {
			return model.User{}, http.StatusBadRequest, "already friends"
		}
		return model.User{}, http.StatusBadRequest, "friend request already exists"
	}
	if err != repository.ErrNotFound {
		return model.User{}, http.StatusInternalServerError, "query failed"
	}

	if _, err := h.Friends.CreateRequest(ctx, fromID, toID); err != nil {
		if err == repository.ErrConflict {
			// The pair key caught a concurrent request.
			return model.User{}, http.StatusBadRequest, "friend request already exists"
		}
		return model.User{}, http.StatusInternalServerError, "create failed"
	}
	return target, 0, ""
}

// SendRequest creates a pending friend request.
func (h *FriendHandler) SendRequest(c echo.Context) error {
	var req friendRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, code, msg := h.sendRequest(ctx, middleware.CurrentUserID(c), req.UserID); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "friend request sent"})
}

// Accept transitions a pending request addressed to the caller into an
// accepted friendship and publishes a friend.accepted event.
func (h *FriendHandler) Accept(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	userID := middleware.CurrentUserID(c)

	rel, err := h.Friends.GetPendingForAddressee(ctx, id, userID)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "friend request not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Friends.Accept(ctx, id, userID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "friend request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept failed"})
	}

	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), dbTimeout)
		defer pubCancel()
		if err := queue.PublishFriendAccepted(pubCtx, queue.FriendAcceptedEvent{
			FriendshipID: rel.ID,
			RequesterID:  rel.UserID,
			AccepterID:   userID,
			AcceptedAt:   time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			log.Printf("friend.accepted publish skipped: %v", err)
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{"message": "friend request accepted"})
}

// Reject deletes a pending request addressed to the caller.
func (h *FriendHandler) Reject(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	err := h.Friends.Reject(ctx, id, middleware.CurrentUserID(c))
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "friend request not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reject failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "friend request rejected"})
}

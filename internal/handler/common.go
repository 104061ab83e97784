// Package handler implements the HTTP layer: request DTOs, response shapes
// and the translation of repository errors into status codes. All error
// bodies are {"error": message}.
package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harukimz/timetable-share/internal/model"
	"github.com/harukimz/timetable-share/internal/repository"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// userView is the public representation of a user.
type userView struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u model.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

// userRef is the short form embedded in messages and requests.
type userRef struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// messageView renders a message with both parties resolved.
type messageView struct {
	ID         uint64    `json:"id"`
	SenderID   uint64    `json:"sender_id"`
	ReceiverID uint64    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
	Sender     userRef   `json:"sender"`
	Receiver   userRef   `json:"receiver"`
}

func newMessageView(m repository.MessageRow) messageView {
	return messageView{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
		IsRead:     m.IsRead,
		Sender:     userRef{ID: m.SenderID, Username: m.SenderName},
		Receiver:   userRef{ID: m.ReceiverID, Username: m.ReceiverName},
	}
}

// pathID parses a numeric path parameter. The second result is false for
// anything that is not a positive integer.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter with a default.
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harukimz/timetable-share/internal/middleware"
	"github.com/harukimz/timetable-share/internal/queue"
	"github.com/harukimz/timetable-share/internal/repository"
	"github.com/harukimz/timetable-share/internal/utils"
)

// MessageHandler serves direct messaging between friends.
type MessageHandler struct {
	Conversations *repository.ConversationRepo
	Messages      *repository.MessageRepo
	Friends       *repository.FriendRepo
}

type sendMessageReq struct {
	Content string `json:"content"`
}

type conversationView struct {
	ID          uint64       `json:"id"`
	OtherUser   userRef      `json:"other_user"`
	LastMessage *messageView `json:"last_message"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func newConversationView(r repository.ConversationRow) conversationView {
	view := conversationView{
		ID:        r.ID,
		OtherUser: userRef{ID: r.OtherUserID, Username: r.OtherUsername},
		UpdatedAt: r.UpdatedAt,
	}
	if r.LastMessage != nil {
		mv := newMessageView(*r.LastMessage)
		view.LastMessage = &mv
	}
	return view
}

// ListConversations returns the caller's conversations, most recently
// active first.
func (h *MessageHandler) ListConversations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rows, err := h.Conversations.ListByUser(ctx, middleware.CurrentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	views := make([]conversationView, 0, len(rows))
	for _, r := range rows {
		views = append(views, newConversationView(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"conversations": views})
}

// OpenConversation returns the conversation with the given user, creating
// it on first contact. Messaging is limited to accepted friends.
func (h *MessageHandler) OpenConversation(c echo.Context) error {
	otherID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	userID := middleware.CurrentUserID(c)

	if otherID == userID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot message yourself"})
	}
	friends, err := h.Friends.AreFriends(ctx, userID, otherID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !friends {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only message friends"})
	}

	conv, err := h.Conversations.GetOrCreate(ctx, userID, otherID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	row, err := h.Conversations.GetRowForUser(ctx, conv.ID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"conversation": newConversationView(row)})
}

// ListMessages returns one page of a conversation's history, oldest first
// within the page, and marks incoming messages as read.
func (h *MessageHandler) ListMessages(c echo.Context) error {
	convID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid conversation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	userID := middleware.CurrentUserID(c)

	conv, err := h.Conversations.GetByID(ctx, convID)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "conversation not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !conv.HasParticipant(userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a participant in this conversation"})
	}

	if err := h.Messages.MarkIncomingRead(ctx, conv, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	total, err := h.Messages.CountForConversation(ctx, conv)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	page := utils.Paginate(total, queryInt(c, "page", 1), queryInt(c, "per_page", 50))

	rows, err := h.Messages.ListPage(ctx, conv, page.PerPage, page.Offset())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	// The query returns newest first so pagination walks backwards through
	// history; reverse so each page reads top to bottom.
	views := make([]messageView, len(rows))
	for i, r := range rows {
		views[len(rows)-1-i] = newMessageView(r)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"messages":   views,
		"pagination": page,
	})
}

// SendMessage appends a message to a conversation the caller participates
// in and publishes a message.sent event.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	convID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid conversation id"})
	}
	var req sendMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message content is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	userID := middleware.CurrentUserID(c)

	conv, err := h.Conversations.GetByID(ctx, convID)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "conversation not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !conv.HasParticipant(userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a participant in this conversation"})
	}

	row, err := h.Messages.Send(ctx, conv, userID, content)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send failed"})
	}

	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), dbTimeout)
		defer pubCancel()
		if err := queue.PublishMessageSent(pubCtx, queue.MessageSentEvent{
			MessageID:      row.ID,
			ConversationID: conv.ID,
			SenderID:       row.SenderID,
			SenderName:     row.SenderName,
			ReceiverID:     row.ReceiverID,
			ReceiverName:   row.ReceiverName,
			SentAt:         row.CreatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			log.Printf("message.sent publish skipped: %v", err)
		}
	}()

	return c.JSON(http.StatusCreated, echo.Map{"message": newMessageView(row)})
}

// UnreadCount returns the caller's total unread message count.
func (h *MessageHandler) UnreadCount(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Messages.UnreadCount(ctx, middleware.CurrentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": n})
}

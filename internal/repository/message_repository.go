package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/harukimz/timetable-share/internal/model"
)

// MessageRepo provides persistence for direct messages. A message belongs
// to a conversation through its (sender, receiver) pair; the send path also
// bumps the conversation row, so it runs inside one transaction.
type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

// MessageRow is a message joined with both party usernames for rendering.
type MessageRow struct {
	model.Message
	SenderName   string
	ReceiverName string
}

const messageJoin = `SELECT m.id, m.sender_id, m.receiver_id, m.content, m.is_read, m.created_at,
                            su.username, ru.username
                     FROM messages m
                     JOIN users su ON su.id = m.sender_id
                     JOIN users ru ON ru.id = m.receiver_id`

// CountForConversation returns the number of messages exchanged between the
// two participants of the conversation.
func (r *MessageRepo) CountForConversation(ctx context.Context, c model.Conversation) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages
		 WHERE (sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?)`,
		c.User1ID, c.User2ID, c.User2ID, c.User1ID).Scan(&n)
	return n, err
}

// ListPage returns one page of the conversation's messages, newest first.
// The handler reverses the page so clients always see oldest-to-newest.
func (r *MessageRepo) ListPage(ctx context.Context, c model.Conversation, limit, offset int) ([]MessageRow, error) {
	q := messageJoin + `
	     WHERE (m.sender_id=? AND m.receiver_id=?) OR (m.sender_id=? AND m.receiver_id=?)
	     ORDER BY m.created_at DESC, m.id DESC
	     LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, q,
		c.User1ID, c.User2ID, c.User2ID, c.User1ID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []MessageRow
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt,
			&m.SenderName, &m.ReceiverName); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// MarkIncomingRead flips is_read on every unread message the counterpart
// has sent to the reader within this conversation.
func (r *MessageRepo) MarkIncomingRead(ctx context.Context, c model.Conversation, readerID uint64) error {
	other := c.Counterpart(readerID)
	if other == 0 {
		return ErrForbidden
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE messages SET is_read=TRUE WHERE receiver_id=? AND sender_id=? AND is_read=FALSE",
		readerID, other)
	return err
}

// Send creates a message inside the conversation and updates the
// conversation's last_message_id and updated_at in the same transaction, so
// a failure leaves neither half behind.
func (r *MessageRepo) Send(ctx context.Context, c model.Conversation, senderID uint64, content string) (MessageRow, error) {
	content = strings.TrimSpace(content)
	receiverID := c.Counterpart(senderID)
	if receiverID == 0 {
		return MessageRow{}, ErrForbidden
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return MessageRow{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO messages (sender_id, receiver_id, content) VALUES (?,?,?)",
		senderID, receiverID, content)
	if err != nil {
		return MessageRow{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return MessageRow{}, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE conversations SET last_message_id=?, updated_at=NOW() WHERE id=?",
		id, c.ID); err != nil {
		return MessageRow{}, err
	}

	var m MessageRow
	err = tx.QueryRowContext(ctx, messageJoin+" WHERE m.id=?", id).Scan(
		&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt,
		&m.SenderName, &m.ReceiverName)
	if err != nil {
		return MessageRow{}, err
	}
	if err := tx.Commit(); err != nil {
		return MessageRow{}, err
	}
	return m, nil
}

// UnreadCount returns how many unread messages are addressed to the user
// across all conversations.
func (r *MessageRepo) UnreadCount(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE receiver_id=? AND is_read=FALSE", userID).Scan(&n)
	return n, err
}

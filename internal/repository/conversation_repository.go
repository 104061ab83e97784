package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/harukimz/timetable-share/internal/model"
)

// ConversationRepo provides persistence for per-pair message containers.
// Rows always store the lower user id first; the (user1_id, user2_id)
// unique key makes the pair unique and GetOrCreate race-safe.
type ConversationRepo struct{ DB *sql.DB }

func NewConversationRepo(db *sql.DB) *ConversationRepo { return &ConversationRepo{DB: db} }

const conversationColumns = "id, user1_id, user2_id, last_message_id, updated_at"

func scanConversation(row *sql.Row) (model.Conversation, error) {
	var c model.Conversation
	var lastID sql.NullInt64
	err := row.Scan(&c.ID, &c.User1ID, &c.User2ID, &lastID, &c.UpdatedAt)
	if err != nil {
		return model.Conversation{}, err
	}
	if lastID.Valid {
		id := uint64(lastID.Int64)
		c.LastMessageID = &id
	}
	return c, nil
}

// GetByID fetches one conversation, or ErrNotFound.
func (r *ConversationRepo) GetByID(ctx context.Context, id uint64) (model.Conversation, error) {
	c, err := scanConversation(r.DB.QueryRowContext(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Conversation{}, ErrNotFound
	}
	return c, err
}

// GetByPair fetches the conversation between two users, or ErrNotFound.
// The pair is canonicalized before lookup so argument order is irrelevant.
func (r *ConversationRepo) GetByPair(ctx context.Context, a, b uint64) (model.Conversation, error) {
	lo, hi := model.CanonicalPair(a, b)
	c, err := scanConversation(r.DB.QueryRowContext(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE user1_id=? AND user2_id=? LIMIT 1", lo, hi))
	if err == sql.ErrNoRows {
		return model.Conversation{}, ErrNotFound
	}
	return c, err
}

// GetOrCreate returns the conversation between two users, creating it on
// first contact. A concurrent create loses to the unique pair key and
// falls back to reading the winner's row.
func (r *ConversationRepo) GetOrCreate(ctx context.Context, a, b uint64) (model.Conversation, error) {
	c, err := r.GetByPair(ctx, a, b)
	if err == nil {
		return c, nil
	}
	if err != ErrNotFound {
		return model.Conversation{}, err
	}

	lo, hi := model.CanonicalPair(a, b)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO conversations (user1_id, user2_id) VALUES (?,?)", lo, hi)
	if err != nil {
		if isDuplicateKey(err) {
			return r.GetByPair(ctx, a, b)
		}
		return model.Conversation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Conversation{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// ConversationRow is a conversation joined with the counterpart's identity
// and its last message, as rendered in conversation lists.
type ConversationRow struct {
	ID            uint64
	OtherUserID   uint64
	OtherUsername string
	UpdatedAt     time.Time
	LastMessage   *MessageRow
}

// GetRowForUser loads one conversation with the counterpart and last
// message resolved from the given participant's point of view.
func (r *ConversationRepo) GetRowForUser(ctx context.Context, convID, userID uint64) (ConversationRow, error) {
	const q = `SELECT c.id, u.id, u.username, c.updated_at,
	                  m.id, m.sender_id, m.receiver_id, m.content, m.is_read, m.created_at,
	                  su.username, ru.username
	           FROM conversations c
	           JOIN users u ON u.id = CASE WHEN c.user1_id = ? THEN c.user2_id ELSE c.user1_id END
	           LEFT JOIN messages m ON m.id = c.last_message_id
	           LEFT JOIN users su ON su.id = m.sender_id
	           LEFT JOIN users ru ON ru.id = m.receiver_id
	           WHERE c.id = ? AND (c.user1_id = ? OR c.user2_id = ?)`
	row := r.DB.QueryRowContext(ctx, q, userID, convID, userID, userID)

	var cr ConversationRow
	var mID, mSender, mReceiver sql.NullInt64
	var mContent, mSenderName, mReceiverName sql.NullString
	var mRead sql.NullBool
	var mCreated sql.NullTime
	err := row.Scan(&cr.ID, &cr.OtherUserID, &cr.OtherUsername, &cr.UpdatedAt,
		&mID, &mSender, &mReceiver, &mContent, &mRead, &mCreated,
		&mSenderName, &mReceiverName)
	if err == sql.ErrNoRows {
		return ConversationRow{}, ErrNotFound
	}
	if err != nil {
		return ConversationRow{}, err
	}
	if mID.Valid {
		cr.LastMessage = &MessageRow{
			Message: model.Message{
				ID:         uint64(mID.Int64),
				SenderID:   uint64(mSender.Int64),
				ReceiverID: uint64(mReceiver.Int64),
				Content:    mContent.String,
				IsRead:     mRead.Bool,
				CreatedAt:  mCreated.Time,
			},
			SenderName:   mSenderName.String,
			ReceiverName: mReceiverName.String,
		}
	}
	return cr, nil
}

// ListByUser returns all conversations the user participates in, newest
// updated first, each with the counterpart and last message attached.
func (r *ConversationRepo) ListByUser(ctx context.Context, userID uint64) ([]ConversationRow, error) {
	const q = `SELECT c.id, u.id, u.username, c.updated_at,
	                  m.id, m.sender_id, m.receiver_id, m.content, m.is_read, m.created_at,
	                  su.username, ru.username
	           FROM conversations c
	           JOIN users u ON u.id = CASE WHEN c.user1_id = ? THEN c.user2_id ELSE c.user1_id END
	           LEFT JOIN messages m ON m.id = c.last_message_id
	           LEFT JOIN users su ON su.id = m.sender_id
	           LEFT JOIN users ru ON ru.id = m.receiver_id
	           WHERE c.user1_id = ? OR c.user2_id = ?
	           ORDER BY c.updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []ConversationRow
	for rows.Next() {
		var cr ConversationRow
		var mID, mSender, mReceiver sql.NullInt64
		var mContent, mSenderName, mReceiverName sql.NullString
		var mRead sql.NullBool
		var mCreated sql.NullTime
		if err := rows.Scan(&cr.ID, &cr.OtherUserID, &cr.OtherUsername, &cr.UpdatedAt,
			&mID, &mSender, &mReceiver, &mContent, &mRead, &mCreated,
			&mSenderName, &mReceiverName); err != nil {
			return nil, err
		}
		if mID.Valid {
			cr.LastMessage = &MessageRow{
				Message: model.Message{
					ID:         uint64(mID.Int64),
					SenderID:   uint64(mSender.Int64),
					ReceiverID: uint64(mReceiver.Int64),
					Content:    mContent.String,
					IsRead:     mRead.Bool,
					CreatedAt:  mCreated.Time,
				},
				SenderName:   mSenderName.String,
				ReceiverName: mReceiverName.String,
			}
		}
		list = append(list, cr)
	}
	return list, rows.Err()
}

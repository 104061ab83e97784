package model

import "time"

// Message models a row in the `messages` table. Messages are immutable once
// created except for the IsRead flag, which flips when the receiver opens
// the conversation.
//
// Fields:
//  ID         – primary key identifier.
//  SenderID   – user who wrote the message.
//  ReceiverID – user it was addressed to.
//  Content    – message body, never empty after trimming.
//  IsRead     – whether the receiver has seen it.
//  CreatedAt  – timestamp of creation.
type Message struct {
	ID         uint64    // messages.id
	SenderID   uint64    // messages.sender_id
	ReceiverID uint64    // messages.receiver_id
	Content    string    // messages.content
	IsRead     bool      // messages.is_read
	CreatedAt  time.Time // messages.created_at
}

// Conversation models a row in the `conversations` table: the unique
// container for direct messages between two friended users. User1ID is
// always the smaller of the two ids so the (user1_id, user2_id) unique key
// covers the unordered pair.
//
// Fields:
//  ID            – primary key identifier.
//  User1ID       – participant with the lower user id.
//  User2ID       – participant with the higher user id.
//  LastMessageID – most recent message, nil until the first send.
//  UpdatedAt     – bumped on every send; used to order conversation lists.
type Conversation struct {
	ID            uint64    // conversations.id
	User1ID       uint64    // conversations.user1_id
	User2ID       uint64    // conversations.user2_id
	LastMessageID *uint64   // conversations.last_message_id (nullable)
	UpdatedAt     time.Time // conversations.updated_at
}

// HasParticipant reports whether the user is one of the two parties.
func (c Conversation) HasParticipant(userID uint64) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// Counterpart returns the other participant's id, or 0 when the user is
// not part of the conversation.
func (c Conversation) Counterpart(userID uint64) uint64 {
	switch userID {
	case c.User1ID:
		return c.User2ID
	case c.User2ID:
		return c.User1ID
	}
	return 0
}

// CanonicalPair orders two user ids so the smaller one comes first. Every
// conversation row is stored with this ordering, which is what makes the
// pair unique regardless of who initiated it.
func CanonicalPair(a, b uint64) (uint64, uint64) {
	if a > b {
		return b, a
	}
	return a, b
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// MessageSentEvent is published after a direct message commits. It carries
// enough information for downstream consumers to log or trigger analytics
// without querying the primary database.
type MessageSentEvent struct {
	MessageID      uint64 `json:"message_id"`
	ConversationID uint64 `json:"conversation_id"`
	SenderID       uint64 `json:"sender_id"`
	SenderName     string `json:"sender_name"`
	ReceiverID     uint64 `json:"receiver_id"`
	ReceiverName   string `json:"receiver_name"`
	SentAt         string `json:"sent_at"`
}

// FriendAcceptedEvent is published when a friend request is accepted.
type FriendAcceptedEvent struct {
	FriendshipID uint64 `json:"friendship_id"`
	RequesterID  uint64 `json:"requester_id"`
	AccepterID   uint64 `json:"accepter_id"`
	AcceptedAt   string `json:"accepted_at"`
}

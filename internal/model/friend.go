package model

import "time"

// Friend status values. A pending request either becomes accepted or is
// deleted on rejection; no row ever carries a rejected status.
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// Friend models a row in the `friends` table. A single row represents the
// relationship between two users regardless of direction: UserID is the
// requester and FriendUserID the addressee. Uniqueness over the unordered
// pair is enforced at the storage layer via generated pair_lo/pair_hi
// columns, so at most one row can ever exist between two users.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – user who sent the request.
//  FriendUserID – user the request was addressed to.
//  Status       – pending or accepted.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Friend struct {
	ID           uint64    // friends.id
	UserID       uint64    // friends.user_id
	FriendUserID uint64    // friends.friend_user_id
	Status       string    // friends.status
	CreatedAt    time.Time // friends.created_at
	UpdatedAt    time.Time // friends.updated_at
}

// Involves reports whether the given user is either side of the relation.
func (f Friend) Involves(userID uint64) bool {
	return f.UserID == userID || f.FriendUserID == userID
}

// OtherSide returns the counterpart of the given user in the relation.
// It returns 0 when the user is not part of the relation at all.
func (f Friend) OtherSide(userID uint64) uint64 {
	switch userID {
	case f.UserID:
		return f.FriendUserID
	case f.FriendUserID:
		return f.UserID
	}
	return 0
}

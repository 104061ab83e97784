package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/harukimz/timetable-share/internal/model"
)

// FriendRepo provides persistence for friend relations. A relation is a
// single row regardless of direction; the generated pair_lo/pair_hi unique
// key in the schema guarantees at most one row per unordered user pair even
// when two requests race.
type FriendRepo struct{ DB *sql.DB }

func NewFriendRepo(db *sql.DB) *FriendRepo { return &FriendRepo{DB: db} }

const friendColumns = "id, user_id, friend_user_id, status, created_at, updated_at"

// GetBetween returns the relation between two users in either direction,
// or ErrNotFound when none exists.
func (r *FriendRepo) GetBetween(ctx context.Context, a, b uint64) (model.Friend, error) {
	var f model.Friend
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+friendColumns+" FROM friends WHERE pair_lo=LEAST(?,?) AND pair_hi=GREATEST(?,?) LIMIT 1",
		a, b, a, b).Scan(&f.ID, &f.UserID, &f.FriendUserID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Friend{}, ErrNotFound
	}
	return f, err
}

// AreFriends reports whether an accepted relation exists between the two users.
func (r *FriendRepo) AreFriends(ctx context.Context, a, b uint64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM friends WHERE pair_lo=LEAST(?,?) AND pair_hi=GREATEST(?,?) AND status=?)",
		a, b, a, b, model.FriendStatusAccepted).Scan(&exists)
	return exists, err
}

// CreateRequest inserts a pending request from one user to another. A
// duplicate-pair violation from the unique key is reported as ErrConflict;
// the handler checks beforehand, this closes the race.
func (r *FriendRepo) CreateRequest(ctx context.Context, fromID, toID uint64) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO friends (user_id, friend_user_id, status) VALUES (?,?,?)",
		fromID, toID, model.FriendStatusPending)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetPendingForAddressee fetches a pending request by id, but only when it
// is addressed to the given user. ErrNotFound otherwise.
func (r *FriendRepo) GetPendingForAddressee(ctx context.Context, requestID, addresseeID uint64) (model.Friend, error) {
	var f model.Friend
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+friendColumns+" FROM friends WHERE id=? AND friend_user_id=? AND status=? LIMIT 1",
		requestID, addresseeID, model.FriendStatusPending).
		Scan(&f.ID, &f.UserID, &f.FriendUserID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Friend{}, ErrNotFound
	}
	return f, err
}

// Accept transitions a pending request addressed to the given user into an
// accepted relation. ErrNotFound when no such pending request exists.
func (r *FriendRepo) Accept(ctx context.Context, requestID, addresseeID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE friends SET status=? WHERE id=? AND friend_user_id=? AND status=?",
		model.FriendStatusAccepted, requestID, addresseeID, model.FriendStatusPending)
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

// Reject deletes a pending request addressed to the given user. Rejection
// removes the row entirely so either side can start over later.
func (r *FriendRepo) Reject(ctx context.Context, requestID, addresseeID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM friends WHERE id=? AND friend_user_id=? AND status=?",
		requestID, addresseeID, model.FriendStatusPending)
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

// FriendRow pairs an accepted relation with the counterpart's identity,
// ready for presence decoration in the handler.
type FriendRow struct {
	FriendshipID uint64
	UserID       uint64
	Username     string
	Email        string
}

// ListAccepted returns all accepted relations involving the user, each with
// the other party's identity.
func (r *FriendRepo) ListAccepted(ctx context.Context, userID uint64) ([]FriendRow, error) {
	const q = `SELECT f.id, u.id, u.username, u.email
	           FROM friends f
	           JOIN users u ON u.id = CASE WHEN f.user_id = ? THEN f.friend_user_id ELSE f.user_id END
	           WHERE (f.user_id = ? OR f.friend_user_id = ?) AND f.status = ?
	           ORDER BY u.username`
	rows, err := r.DB.QueryContext(ctx, q, userID, userID, userID, model.FriendStatusAccepted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []FriendRow
	for rows.Next() {
		var fr FriendRow
		if err := rows.Scan(&fr.FriendshipID, &fr.UserID, &fr.Username, &fr.Email); err != nil {
			return nil, err
		}
		list = append(list, fr)
	}
	return list, rows.Err()
}

// RequestRow is a pending request joined with the relevant counterpart:
// the requester for received requests, the addressee for sent ones.
type RequestRow struct {
	ID        uint64
	UserID    uint64
	Username  string
	Email     string
	CreatedAt time.Time
}

// ListPendingReceived returns pending requests addressed to the user, with
// each requester's identity.
func (r *FriendRepo) ListPendingReceived(ctx context.Context, userID uint64) ([]RequestRow, error) {
	const q = `SELECT f.id, u.id, u.username, u.email, f.created_at
	           FROM friends f JOIN users u ON u.id = f.user_id
	           WHERE f.friend_user_id = ? AND f.status = ?
	           ORDER BY f.created_at DESC`
	return r.listRequests(ctx, q, userID)
}

// ListPendingSent returns pending requests the user has sent, with each
// addressee's identity.
func (r *FriendRepo) ListPendingSent(ctx context.Context, userID uint64) ([]RequestRow, error) {
	const q = `SELECT f.id, u.id, u.username, u.email, f.created_at
	           FROM friends f JOIN users u ON u.id = f.friend_user_id
	           WHERE f.user_id = ? AND f.status = ?
	           ORDER BY f.created_at DESC`
	return r.listRequests(ctx, q, userID)
}

func (r *FriendRepo) listRequests(ctx context.Context, q string, userID uint64) ([]RequestRow, error) {
	rows, err := r.DB.QueryContext(ctx, q, userID, model.FriendStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []RequestRow
	for rows.Next() {
		var rr RequestRow
		if err := rows.Scan(&rr.ID, &rr.UserID, &rr.Username, &rr.Email, &rr.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, rr)
	}
	return list, rows.Err()
}

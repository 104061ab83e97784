// Package repository implements the data access layer over database/sql.
// This file defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrConflict signals that a write collided with existing
// state (e.g. a second friend request between the same pair of users).
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested row does not exist or is not
// owned by the caller. Handlers should translate this into an HTTP 404
// response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot be
// performed because of conflicting state, such as a duplicate
// friend request between the same two users. Handlers should
// translate this into a validation error response.
var ErrConflict = errors.New("conflict")

// ErrUsernameExists and ErrEmailExists narrow ErrConflict for user
// registration so the handler can report which field collided.
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

// isDuplicateKey reports whether the error is a MySQL duplicate entry
// violation (error 1062), the signal that a unique key caught a race.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "1062")
}

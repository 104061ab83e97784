// Package session implements the server-side session store. A session is an
// opaque random id handed to the client in an HttpOnly cookie; the id maps
// to a user id on the server and nothing else. Redis is the production
// backend so sessions survive restarts; an in-process store exists as a
// fallback and for tests.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// CookieName is the name of the cookie carrying the session id.
const CookieName = "session_id"

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store persists sessions keyed by their opaque id.
type Store interface {
	// Create opens a new session for the user and returns its id.
	Create(ctx context.Context, userID uint64) (string, error)
	// Resolve returns the user id a session belongs to, or ErrNotFound.
	Resolve(ctx context.Context, id string) (uint64, error)
	// Destroy removes a session. Destroying an unknown id is not an error.
	Destroy(ctx context.Context, id string) error
}

// newID returns a hex-encoded string generated from 32 bytes of
// cryptographically secure random data. 64 hex characters is plenty of
// entropy for an unguessable session id.
func newID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// clampTTL guards against zero or negative TTLs from misconfiguration.
func clampTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Hour
	}
	return ttl
}

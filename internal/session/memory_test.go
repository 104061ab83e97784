package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateResolve(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	id, err := s.Create(ctx, 7)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	userID, err := s.Resolve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), userID)
}

func TestMemoryStoreUnknownID(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	_, err := s.Resolve(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDestroy(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	id, err := s.Create(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, s.Destroy(ctx, id))

	_, err = s.Resolve(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	// Destroying an unknown id is not an error.
	assert.NoError(t, s.Destroy(ctx, "deadbeef"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	id, err := s.Create(ctx, 7)
	require.NoError(t, err)

	now = now.Add(31 * time.Minute)
	_, err = s.Resolve(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSlidingExpiry(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	id, err := s.Create(ctx, 7)
	require.NoError(t, err)

	// Each resolve pushes the deadline forward.
	now = now.Add(20 * time.Minute)
	_, err = s.Resolve(ctx, id)
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	userID, err := s.Resolve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), userID)
}

func TestMemoryStoreIDsAreUnique(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	a, err := s.Create(ctx, 1)
	require.NoError(t, err)
	b, err := s.Create(ctx, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64) // 32 random bytes, hex encoded
}

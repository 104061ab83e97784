package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	lo, hi := CanonicalPair(9, 3)
	assert.Equal(t, uint64(3), lo)
	assert.Equal(t, uint64(9), hi)

	lo, hi = CanonicalPair(3, 9)
	assert.Equal(t, uint64(3), lo)
	assert.Equal(t, uint64(9), hi)

	lo, hi = CanonicalPair(5, 5)
	assert.Equal(t, uint64(5), lo)
	assert.Equal(t, uint64(5), hi)
}

func TestConversationParticipants(t *testing.T) {
	c := Conversation{User1ID: 3, User2ID: 9}

	assert.True(t, c.HasParticipant(3))
	assert.True(t, c.HasParticipant(9))
	assert.False(t, c.HasParticipant(4))

	assert.Equal(t, uint64(9), c.Counterpart(3))
	assert.Equal(t, uint64(3), c.Counterpart(9))
	assert.Equal(t, uint64(0), c.Counterpart(4))
}

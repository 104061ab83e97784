package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendInvolves(t *testing.T) {
	f := Friend{UserID: 3, FriendUserID: 9}

	assert.True(t, f.Involves(3))
	assert.True(t, f.Involves(9))
	assert.False(t, f.Involves(4))
}

func TestFriendOtherSide(t *testing.T) {
	f := Friend{UserID: 3, FriendUserID: 9}

	assert.Equal(t, uint64(9), f.OtherSide(3))
	assert.Equal(t, uint64(3), f.OtherSide(9))
	assert.Equal(t, uint64(0), f.OtherSide(4))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong-pass"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret-pass"))
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("same-input", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("same-input", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

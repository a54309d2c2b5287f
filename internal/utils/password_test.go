package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4) // low cost keeps the test fast
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret"))
}

func TestHashPasswordClampsBadCost(t *testing.T) {
	// An out-of-range cost falls back to the bcrypt default instead of
	// failing or weakening the hash.
	hash, err := HashPassword("s3cret", -1)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
}

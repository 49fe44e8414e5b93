package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	digest, err := HashPassword("Secret1x")
	require.NoError(t, err)
	require.NotEqual(t, "Secret1x", digest)

	assert.True(t, CheckPassword(digest, "Secret1x"))
	assert.False(t, CheckPassword(digest, "wrong"))
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-digest", "Secret1x"))
	assert.False(t, CheckPassword("", "Secret1x"))
}

package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret!", hash)

	assert.True(t, CompareHashAndPassword(hash, "Sup3rSecret!"))
	assert.False(t, CompareHashAndPassword(hash, "wrong-password"))
}

func TestCompareHashAndPasswordInvalidHash(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-bcrypt-hash", "anything"))
}

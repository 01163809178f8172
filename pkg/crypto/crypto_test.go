package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_GenerateRefreshToken(t *testing.T) {
	token1, err := GenerateRefreshToken()
	require.NoError(t, err)

	token2, err := GenerateRefreshToken()
	require.NoError(t, err)

	require.NotEqual(t, token1, token2)
	require.Greater(t, len(token1), 64)
}

func Test_SHA256(t *testing.T) {
	// Deterministic, so the stored hash matches on lookup.
	require.Equal(t, SHA256([]byte("foo")), SHA256([]byte("foo")))
	require.NotEqual(t, SHA256([]byte("foo")), SHA256([]byte("bar")))
}

func Test_HashPassword(t *testing.T) {
	hashed, err := HashPassword("Password1")
	require.NoError(t, err)
	require.NotEqual(t, "Password1", hashed)

	require.True(t, ComparePassword(hashed, "Password1"))
	require.False(t, ComparePassword(hashed, "password1"))
	require.False(t, ComparePassword(hashed, ""))

	// Two hashes of the same password differ because of the salt.
	hashed2, err := HashPassword("Password1")
	require.NoError(t, err)
	require.NotEqual(t, hashed, hashed2)
}

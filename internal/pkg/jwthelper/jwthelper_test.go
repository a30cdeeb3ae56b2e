package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signingKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(signingKey, 42, "Mozilla/5.0")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(signingKey, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Mozilla/5.0", claims.UserAgent)
}

func TestParseTokenWrongKey(t *testing.T) {
	token, err := GenerateToken(signingKey, 42, "Mozilla/5.0")
	require.NoError(t, err)

	_, err = ParseToken([]byte("another-key"), token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(signingKey, "not-a-token")
	assert.Error(t, err)
}

func TestParseTokenMissingUserID(t *testing.T) {
	token, err := GenerateToken(signingKey, 0, "Mozilla/5.0")
	require.NoError(t, err)

	_, err = ParseToken(signingKey, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

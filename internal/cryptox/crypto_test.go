package cryptox

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenKey_LengthAndAlphabet(t *testing.T) {
	key, err := NewTokenKey()
	require.NoError(t, err)
	assert.Len(t, key, TokenKeyLength)

	for _, r := range key {
		isAlnum := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		assert.Truef(t, isAlnum, "unexpected rune %q in key %q", r, key)
	}
}

func TestNewTokenKey_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		key, err := NewTokenKey()
		require.NoError(t, err)
		_, dup := seen[key]
		require.Falsef(t, dup, "duplicate key after %d iterations", i)
		seen[key] = struct{}{}
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("test_password")
	require.NoError(t, err)
	assert.NotEqual(t, "test_password", hash)

	assert.NoError(t, ComparePassword(hash, "test_password"))

	err = ComparePassword(hash, "blblb")
	assert.True(t, errors.Is(err, ErrPasswordMismatch), "got %v", err)
}

func TestComparePassword_EmptyHash(t *testing.T) {
	err := ComparePassword("", "anything")
	assert.True(t, errors.Is(err, ErrPasswordMismatch), "got %v", err)
}

func TestComparePassword_MalformedHash(t *testing.T) {
	err := ComparePassword("not-a-bcrypt-hash", "anything")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrPasswordMismatch))
}

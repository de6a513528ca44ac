package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_Roundtrip(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("secret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "secret", hash)

	ok, err := h.CheckPassword("secret", hash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckPassword_Mismatch(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("secret")
	require.NoError(t, err)

	ok, err := h.CheckPassword("wrong", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	h1, err := h.HashPassword("secret")
	require.NoError(t, err)
	h2, err := h.HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	_, err := h.CheckPassword("secret", "not-a-bcrypt-hash")
	require.ErrorIs(t, err, ErrHashMalformed)
}

func TestNewHasher_ZeroCostUsesDefault(t *testing.T) {
	t.Parallel()

	h := NewHasher(0)
	require.Equal(t, bcrypt.DefaultCost, h.cost)
}

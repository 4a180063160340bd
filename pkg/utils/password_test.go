package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	passwords := []string{"Secr3t!23", "NewPass123", "pässwörd-ünicode", strings.Repeat("a", 72)}
	for _, p := range passwords {
		digest, err := h.Hash(p)
		require.NoError(t, err)

		assert.NotEqual(t, p, digest)
		assert.True(t, h.Verify(p, digest), "hash of %q must verify", p)
		assert.False(t, h.Verify(p+"x", digest))
		assert.False(t, h.Verify("", digest))
	}
}

func TestPasswordHasher_RejectsInputPastBcryptLimit(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	stored := strings.Repeat("a", MaxPasswordBytes)
	digest, err := h.Hash(stored)
	require.NoError(t, err)

	assert.True(t, h.Verify(stored, digest))
	assert.False(t, h.Verify(stored+"WRONG-SUFFIX", digest))
	assert.False(t, h.Verify(stored+"a", digest))
}

func TestPasswordHasher_SaltsEachHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("Secr3t!23")
	require.NoError(t, err)
	b, err := h.Hash("Secr3t!23")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("anything", "not-a-bcrypt-hash"))
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost())
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(1).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewPasswordHasher(99).Cost())
	assert.Equal(t, 12, NewPasswordHasher(12).Cost())
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("NewPass123"))
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("a", 73)), ErrPasswordTooLong)
}

func TestValidatePasswordLength(t *testing.T) {
	assert.NoError(t, ValidatePasswordLength("short"))
	assert.NoError(t, ValidatePasswordLength(strings.Repeat("a", MaxPasswordBytes)))
	assert.ErrorIs(t, ValidatePasswordLength(strings.Repeat("a", MaxPasswordBytes+1)), ErrPasswordTooLong)
}

package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetCode_Format(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateResetCode()
		require.NoError(t, err)
		assert.True(t, IsResetCode(code), "code %q is not 6 digits", code)
	}
}

func TestGenerateResetToken_IsRandomUUID(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	b, err := GenerateResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, uuid.Version(4), a.Version())
}

func TestIsResetCode(t *testing.T) {
	assert.True(t, IsResetCode("000123"))
	assert.True(t, IsResetCode("999999"))
	assert.False(t, IsResetCode("12345"))
	assert.False(t, IsResetCode("1234567"))
	assert.False(t, IsResetCode("12a456"))
	assert.False(t, IsResetCode("１２３４５６"))
}

func TestCodesEqual(t *testing.T) {
	assert.True(t, CodesEqual("012345", "012345"))
	assert.False(t, CodesEqual("012345", "012346"))
	assert.False(t, CodesEqual("012345", "12345"))
}

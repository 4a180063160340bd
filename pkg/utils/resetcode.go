package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const ResetCodeLength = 6

var resetCodeSpace = big.NewInt(1_000_000)

// GenerateResetCode returns a uniformly random 6-digit code, zero padded.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, resetCodeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%0*d", ResetCodeLength, n.Int64()), nil
}

// GenerateResetToken returns a random (v4) UUID used as the reset link capability.
func GenerateResetToken() (uuid.UUID, error) {
	return uuid.NewRandom()
}

// CodesEqual compares two codes without leaking the position of the first difference.
func CodesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func IsResetCode(s string) bool {
	if len(s) != ResetCodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

package reset

import (
	"time"

	"github.com/google/uuid"

	"auth-service/pkg/utils"
)

// DefaultTTL is how long a reset request accepts its code.
const DefaultTTL = 10 * time.Minute

// Request is a single password-reset attempt. Token is the capability carried
// in the reset link, Code is the 6-digit value typed in by the user.
type Request struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     uuid.UUID
	Code      string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// IsExpired reports whether now is past the expiry. A request is still
// accepted at exactly ExpiresAt.
func (r *Request) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Validate checks the request against a supplied code. The order is fixed:
// used, then expiry, then code, so a replayed request reports ErrAlreadyUsed
// even when it has also expired.
func (r *Request) Validate(code string, now time.Time) error {
	if r == nil {
		return ErrInvalidToken
	}
	if r.Used {
		return ErrAlreadyUsed
	}
	if r.IsExpired(now) {
		return ErrExpired
	}
	if !utils.CodesEqual(r.Code, code) {
		return ErrCodeMismatch
	}
	return nil
}

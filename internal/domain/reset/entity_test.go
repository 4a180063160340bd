package reset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequest_Validate(t *testing.T) {
	created := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	base := Request{Code: "012345", CreatedAt: created, ExpiresAt: created.Add(DefaultTTL)}

	tests := []struct {
		name   string
		mutate func(r *Request)
		code   string
		now    time.Time
		want   error
	}{
		{name: "ok", code: "012345", now: created.Add(time.Minute)},
		{name: "ok at expiry instant", code: "012345", now: created.Add(DefaultTTL)},
		{name: "code mismatch", code: "012346", now: created.Add(time.Minute), want: ErrCodeMismatch},
		{name: "leading zero dropped", code: "12345", now: created.Add(time.Minute), want: ErrCodeMismatch},
		{name: "expired with correct code", code: "012345", now: created.Add(DefaultTTL + time.Second), want: ErrExpired},
		{name: "expired beats code mismatch", code: "999999", now: created.Add(time.Hour), want: ErrExpired},
		{
			name:   "used beats expiry",
			mutate: func(r *Request) { r.Used = true },
			code:   "012345",
			now:    created.Add(time.Hour),
			want:   ErrAlreadyUsed,
		},
		{
			name:   "used beats code mismatch",
			mutate: func(r *Request) { r.Used = true },
			code:   "000000",
			now:    created.Add(time.Minute),
			want:   ErrAlreadyUsed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			if tt.mutate != nil {
				tt.mutate(&r)
			}
			err := r.Validate(tt.code, tt.now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRequest_ValidateNil(t *testing.T) {
	var r *Request
	assert.ErrorIs(t, r.Validate("012345", time.Now()), ErrInvalidToken)
}

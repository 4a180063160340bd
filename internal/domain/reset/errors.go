package reset

import "errors"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrAlreadyUsed  = errors.New("token already used")
	ErrExpired      = errors.New("token expired")
	ErrCodeMismatch = errors.New("invalid code")
)

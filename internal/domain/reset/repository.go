package reset

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// Repository persists reset requests.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	// GetByToken returns ErrInvalidToken when no request carries the token.
	GetByToken(ctx context.Context, token uuid.UUID) (*Request, error)
	// Consume marks the request used and stores the owner's new password hash
	// in one transaction. It returns ErrAlreadyUsed when the request was
	// already consumed, so concurrent callers see exactly one success.
	Consume(ctx context.Context, requestID, userID uuid.UUID, passwordHash string) error
}

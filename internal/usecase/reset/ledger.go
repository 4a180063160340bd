package reset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainReset "auth-service/internal/domain/reset"
	"auth-service/pkg/utils"
)

// Ledger issues, validates and consumes password reset requests.
type Ledger struct {
	repo     domainReset.Repository
	ttl      time.Duration
	now      func() time.Time
	newToken func() (uuid.UUID, error)
	newCode  func() (string, error)
}

func NewLedger(repo domainReset.Repository, ttl time.Duration) *Ledger {
	if ttl <= 0 {
		ttl = domainReset.DefaultTTL
	}
	return &Ledger{
		repo:     repo,
		ttl:      ttl,
		now:      time.Now,
		newToken: utils.GenerateResetToken,
		newCode:  utils.GenerateResetCode,
	}
}

// WithClock returns a copy of the ledger that reads time from now.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	cp := *l
	cp.now = now
	return &cp
}

func (l *Ledger) TTL() time.Duration {
	return l.ttl
}

func (l *Ledger) CreateRequest(ctx context.Context, userID uuid.UUID) (*domainReset.Request, error) {
	token, err := l.newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}
	code, err := l.newCode()
	if err != nil {
		return nil, err
	}

	now := l.now().UTC()
	req := &domainReset.Request{
		UserID:    userID,
		Token:     token,
		Code:      code,
		ExpiresAt: now.Add(l.ttl),
		Used:      false,
		CreatedAt: now,
	}

	if err := l.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// LookupByToken accepts the token as it arrives from a client; anything that
// is not a known UUID is ErrInvalidToken.
func (l *Ledger) LookupByToken(ctx context.Context, token string) (*domainReset.Request, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, domainReset.ErrInvalidToken
	}
	return l.repo.GetByToken(ctx, parsed)
}

func (l *Ledger) Validate(req *domainReset.Request, code string) error {
	return req.Validate(code, l.now())
}

// Consume marks req used and stores newHash for its owner atomically.
func (l *Ledger) Consume(ctx context.Context, req *domainReset.Request, newHash string) error {
	if req == nil {
		return domainReset.ErrInvalidToken
	}
	return l.repo.Consume(ctx, req.ID, req.UserID, newHash)
}

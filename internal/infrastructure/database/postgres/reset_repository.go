package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"auth-service/internal/domain/reset"
	"auth-service/internal/infrastructure/database/postgres/models"
)

// ResetRepository implements reset.Repository on postgres
type ResetRepository struct {
	db *DB
}

func NewResetRepository(db *DB) *ResetRepository {
	return &ResetRepository{db: db}
}

func (r *ResetRepository) Create(ctx context.Context, req *reset.Request) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(toResetModel(req)).Error; err != nil {
		return fmt.Errorf("failed to create reset request: %w", err)
	}
	return nil
}

func (r *ResetRepository) GetByToken(ctx context.Context, token uuid.UUID) (*reset.Request, error) {
	var dbModel models.PasswordResetRequestModel
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reset.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset request: %w", err)
	}

	return toResetEntity(&dbModel), nil
}

// Consume flips used with a conditional update and writes the new hash in the
// same transaction. Concurrent callers serialise on the row lock; the loser
// sees zero affected rows.
func (r *ResetRepository) Consume(ctx context.Context, requestID, userID uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PasswordResetRequestModel{}).
			Where("id = ? AND used = ?", requestID, false).
			Update("used", true)
		if result.Error != nil {
			return fmt.Errorf("failed to consume reset request: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return reset.ErrAlreadyUsed
		}

		return updatePassword(tx, userID, passwordHash)
	})
}

func toResetModel(req *reset.Request) *models.PasswordResetRequestModel {
	return &models.PasswordResetRequestModel{
		ID:        req.ID,
		UserID:    req.UserID,
		Token:     req.Token,
		Code:      req.Code,
		ExpiresAt: req.ExpiresAt,
		Used:      req.Used,
		CreatedAt: req.CreatedAt,
	}
}

func toResetEntity(m *models.PasswordResetRequestModel) *reset.Request {
	return &reset.Request{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		Code:      m.Code,
		ExpiresAt: m.ExpiresAt,
		Used:      m.Used,
		CreatedAt: m.CreatedAt,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName      string    `gorm:"type:varchar(100)"`
	LastName       string    `gorm:"type:varchar(100)"`
	Username       string    `gorm:"type:varchar(100);not null;uniqueIndex:users_username_key"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex:users_email_key"`
	HashedPassword string    `gorm:"column:hashed_password;type:varchar(255);not null"`
	IsActive       bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// PasswordResetRequestModel represents the database model for a reset request
type PasswordResetRequestModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:password_reset_requests_token_key"`
	Code      string    `gorm:"type:char(6);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (PasswordResetRequestModel) TableName() string {
	return "password_reset_requests"
}

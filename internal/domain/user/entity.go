package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account in the domain
type User struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Username       string
	Email          string
	PasswordHashed string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

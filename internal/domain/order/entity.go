package order

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusOngoing   Status = "ONGOING"
	StatusCancelled Status = "CANCELLED"
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOngoing, StatusCancelled, StatusPending, StatusCompleted:
		return true
	}
	return false
}

// Customer is a business client referenced by orders. Code is unique.
type Customer struct {
	ID            uuid.UUID
	Code          string
	Name          string
	ContactNumber *string
	Address       *string
	CreatedAt     time.Time
}

// Order belongs to the user who placed it and references one customer.
type Order struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	CustomerID          uuid.UUID
	OrderType           string
	OrderPlace          string
	QuotationTotalPrice float64
	Status              Status
	CreatedAt           time.Time
}

package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists orders. Orders are removed together with their owner.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status Status) error
}

// CustomerRepository persists customers. Delete fails with ErrCustomerInUse
// while orders still reference the customer.
type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, customerID uuid.UUID) (*Customer, error)
	Delete(ctx context.Context, customerID uuid.UUID) error
}

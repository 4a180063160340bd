package order

import "errors"

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrDuplicateCustomerCode = errors.New("customer code already exists")
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrCustomerInUse         = errors.New("customer still has orders")
)

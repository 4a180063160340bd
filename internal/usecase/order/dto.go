package order

import (
	"time"

	"github.com/google/uuid"

	domainOrder "auth-service/internal/domain/order"
)

type CreateCustomerRequest struct {
	Code          string  `json:"customer_code" validate:"required,min=1,max=64"`
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=32"`
	Address       *string `json:"address" validate:"omitempty,max=500"`
}

type CreateOrderRequest struct {
	CustomerID          uuid.UUID `json:"customer_id" validate:"required"`
	OrderType           string    `json:"order_type" validate:"required,max=100"`
	OrderPlace          string    `json:"order_place" validate:"required,max=255"`
	QuotationTotalPrice float64   `json:"quotation_total_price" validate:"gte=0"`
	Status              string    `json:"status" validate:"omitempty,order_status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

type CustomerResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"customer_code"`
	Name          string    `json:"name"`
	ContactNumber *string   `json:"contact_number"`
	Address       *string   `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
}

type OrderResponse struct {
	ID                  uuid.UUID          `json:"id"`
	CustomerID          uuid.UUID          `json:"customer_id"`
	OrderType           string             `json:"order_type"`
	OrderPlace          string             `json:"order_place"`
	QuotationTotalPrice float64            `json:"quotation_total_price"`
	Status              domainOrder.Status `json:"status"`
	CreatedAt           time.Time          `json:"created_at"`
}

func ToCustomerResponse(c *domainOrder.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:            c.ID,
		Code:          c.Code,
		Name:          c.Name,
		ContactNumber: c.ContactNumber,
		Address:       c.Address,
		CreatedAt:     c.CreatedAt,
	}
}

func ToOrderResponse(o *domainOrder.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		OrderType:           o.OrderType,
		OrderPlace:          o.OrderPlace,
		QuotationTotalPrice: o.QuotationTotalPrice,
		Status:              o.Status,
		CreatedAt:           o.CreatedAt,
	}
}

package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainOrder "auth-service/internal/domain/order"
	"auth-service/internal/logger"
	appErrors "auth-service/pkg/errors"
	"auth-service/pkg/utils"
)

// Service implements order and customer use cases
type Service struct {
	orderRepo    domainOrder.Repository
	customerRepo domainOrder.CustomerRepository
}

func NewService(orderRepo domainOrder.Repository, customerRepo domainOrder.CustomerRepository) *Service {
	return &Service{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
	}
}

func (s *Service) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*CustomerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	customer := &domainOrder.Customer{
		Code:          req.Code,
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	logger.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("customer_code", customer.Code),
		zap.String("event", "customer_created"),
	)

	return ToCustomerResponse(customer), nil
}

func (s *Service) GetCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

func (s *Service) CreateOrder(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*OrderResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	status := domainOrder.StatusOngoing
	if req.Status != "" {
		status = domainOrder.Status(req.Status)
	}

	o := &domainOrder.Order{
		UserID:              userID,
		CustomerID:          req.CustomerID,
		OrderType:           req.OrderType,
		OrderPlace:          req.OrderPlace,
		QuotationTotalPrice: req.QuotationTotalPrice,
		Status:              status,
	}
	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	logger.Info("Order created",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("customer_id", o.CustomerID.String()),
		zap.String("event", "order_created"),
	)

	return ToOrderResponse(o), nil
}

// ListOrders returns the caller's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, userID uuid.UUID) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, ToOrderResponse(o))
	}
	return responses, nil
}

// UpdateOrderStatus changes the status of one of the caller's orders. Orders
// owned by someone else are reported as not found.
func (s *Service) UpdateOrderStatus(ctx context.Context, userID, orderID uuid.UUID, req *UpdateStatusRequest) (*OrderResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, domainOrder.ErrInvalidStatus
	}

	status := domainOrder.Status(req.Status)
	if !status.Valid() {
		return nil, domainOrder.ErrInvalidStatus
	}

	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, domainOrder.ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	o.Status = status

	logger.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", string(status)),
		zap.String("event", "order_status_updated"),
	)

	return ToOrderResponse(o), nil
}

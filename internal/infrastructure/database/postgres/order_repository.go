package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"auth-service/internal/domain/order"
	"auth-service/internal/infrastructure/database/postgres/models"
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = order.StatusOngoing
	}
	o.CreatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(toOrderModel(o)).Error; err != nil {
		if _, ok := foreignKeyViolation(err); ok {
			return order.ErrCustomerNotFound
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	var dbModel models.OrderModel
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return toOrderEntity(&dbModel), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error) {
	var dbModels []models.OrderModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*order.Order, len(dbModels))
	for i := range dbModels {
		orders[i] = toOrderEntity(&dbModels[i])
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status order.Status) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", orderID).
		Update("status", string(status))

	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

type CustomerRepository struct {
	db *DB
}

func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *order.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(toCustomerModel(c)).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return order.ErrDuplicateCustomerCode
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID uuid.UUID) (*order.Customer, error) {
	var dbModel models.CustomerModel
	err := r.db.WithContext(ctx).Where("id = ?", customerID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, order.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return toCustomerEntity(&dbModel), nil
}

// Delete fails while orders reference the customer (ON DELETE RESTRICT).
func (r *CustomerRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", customerID)
	if result.Error != nil {
		if _, ok := foreignKeyViolation(result.Error); ok {
			return order.ErrCustomerInUse
		}
		return fmt.Errorf("failed to delete customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrCustomerNotFound
	}
	return nil
}

func toOrderModel(o *order.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:                  o.ID,
		UserID:              o.UserID,
		CustomerID:          o.CustomerID,
		OrderType:           o.OrderType,
		OrderPlace:          o.OrderPlace,
		QuotationTotalPrice: o.QuotationTotalPrice,
		Status:              string(o.Status),
		CreatedAt:           o.CreatedAt,
	}
}

func toOrderEntity(m *models.OrderModel) *order.Order {
	return &order.Order{
		ID:                  m.ID,
		UserID:              m.UserID,
		CustomerID:          m.CustomerID,
		OrderType:           m.OrderType,
		OrderPlace:          m.OrderPlace,
		QuotationTotalPrice: m.QuotationTotalPrice,
		Status:              order.Status(m.Status),
		CreatedAt:           m.CreatedAt,
	}
}

func toCustomerModel(c *order.Customer) *models.CustomerModel {
	return &models.CustomerModel{
		ID:            c.ID,
		CustomerCode:  c.Code,
		Name:          c.Name,
		ContactNumber: c.ContactNumber,
		Address:       c.Address,
		CreatedAt:     c.CreatedAt,
	}
}

func toCustomerEntity(m *models.CustomerModel) *order.Customer {
	return &order.Customer{
		ID:            m.ID,
		Code:          m.CustomerCode,
		Name:          m.Name,
		ContactNumber: m.ContactNumber,
		Address:       m.Address,
		CreatedAt:     m.CreatedAt,
	}
}

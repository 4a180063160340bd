package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerModel represents the database model for Customers
type CustomerModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerCode  string    `gorm:"column:customer_code;type:varchar(64);not null;uniqueIndex:customers_customer_code_key"`
	Name          string    `gorm:"type:varchar(255);not null"`
	ContactNumber *string   `gorm:"type:varchar(32)"`
	Address       *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (CustomerModel) TableName() string {
	return "customers"
}

// OrderModel represents the database model for Orders
type OrderModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderType           string    `gorm:"type:varchar(100);not null"`
	OrderPlace          string    `gorm:"type:varchar(255);not null"`
	QuotationTotalPrice float64   `gorm:"type:numeric(12,2);not null"`
	Status              string    `gorm:"type:order_status_enum;not null"`
	CreatedAt           time.Time `gorm:"not null;index"`

	User     *UserModel     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Customer *CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
}

func (OrderModel) TableName() string {
	return "orders"
}

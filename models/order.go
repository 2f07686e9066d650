package models

import (
	"time"
)

// Order links a customer to a product and a quantity. Orders are insert-only.
type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customerId"` // foreign key to customers table
	Customer   Customer  `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ProductID  uint      `gorm:"not null;index" json:"productId"` // foreign key to products table
	Product    Product   `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	PlacedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"placedAt"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

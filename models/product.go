package models

import "github.com/shopspring/decimal"

// Product represents a cookie flavor on the menu with its sale price and unit cost
type Product struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	Flavor string          `gorm:"size:100;not null;uniqueIndex" json:"flavor"`
	Price  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Cost   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Margin returns the profit made on a single unit (price minus cost).
// It is computed on demand and never persisted.
func (p Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

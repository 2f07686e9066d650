package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is an order joined with its customer and product, as read by the
// weekly report query. Prices are the product's current price and cost.
type OrderLine struct {
	OrderID      uint            `json:"orderId"`
	CustomerName string          `json:"customerName"`
	Flavor       string          `json:"flavor"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	PlacedAt     time.Time       `json:"placedAt"`
}

// Revenue returns quantity * unit price
func (l OrderLine) Revenue() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cost returns quantity * unit cost
func (l OrderLine) Cost() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Profit returns quantity * (unit price - unit cost)
func (l OrderLine) Profit() decimal.Decimal {
	return l.UnitPrice.Sub(l.UnitCost).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// WeeklyReport summarizes the orders placed in a date range.
// The range need not span exactly seven days.
type WeeklyReport struct {
	Start             time.Time
	End               time.Time
	TotalRevenue      decimal.Decimal
	TotalCost         decimal.Decimal
	TotalProfit       decimal.Decimal
	TotalQuantity     int
	DistinctCustomers int
	QuantityByFlavor  map[string]int
	Orders            []OrderLine
}

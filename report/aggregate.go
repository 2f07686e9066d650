// Package report turns joined order rows into the weekly summary and resolves
// the calendar date range a report covers. Nothing here performs I/O.
package report

import (
	"github.com/kendall-kelly/cookie-orders-api/models"
	"github.com/shopspring/decimal"
)

// Aggregate summarizes order lines. Revenue and cost are summed line by line and
// profit is their difference, so it always equals TotalRevenue - TotalCost.
// Customers are counted by name: two customers sharing a name count once.
func Aggregate(lines []models.OrderLine) models.WeeklyReport {
	totalRevenue := decimal.Zero
	totalCost := decimal.Zero
	totalQuantity := 0
	byFlavor := make(map[string]int)
	customers := make(map[string]struct{})

	for _, line := range lines {
		totalRevenue = totalRevenue.Add(line.Revenue())
		totalCost = totalCost.Add(line.Cost())
		totalQuantity += line.Quantity
		byFlavor[line.Flavor] += line.Quantity
		customers[line.CustomerName] = struct{}{}
	}

	orders := make([]models.OrderLine, len(lines))
	copy(orders, lines)

	return models.WeeklyReport{
		TotalRevenue:      totalRevenue,
		TotalCost:         totalCost,
		TotalProfit:       totalRevenue.Sub(totalCost),
		TotalQuantity:     totalQuantity,
		DistinctCustomers: len(customers),
		QuantityByFlavor:  byFlavor,
		Orders:            orders,
	}
}

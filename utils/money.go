package utils

import (
	"github.com/shopspring/decimal"
)

// Money is a decimal amount rendered with exactly two decimal places at the
// API boundary. Internally amounts stay unrounded.
type Money decimal.Decimal

// NewMoney wraps a decimal for presentation
func NewMoney(d decimal.Decimal) Money {
	return Money(d)
}

// Decimal returns the wrapped amount
func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

// String formats the amount with two decimals, rounding half away from zero
func (m Money) String() string {
	return decimal.Decimal(m).StringFixed(2)
}

// MarshalJSON encodes the amount as a JSON number with two decimals
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

// FormatCurrency renders an amount for documents, e.g. "R$ 18.50"
func FormatCurrency(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

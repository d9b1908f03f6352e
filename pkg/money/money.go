package money

import (
	"github.com/shopspring/decimal"
)

// Round rounds a monetary amount to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatUSD renders an amount as a signed dollar string, e.g. "-$1234.50".
func FormatUSD(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

package utils

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with the given precision
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return amount.StringFixed(int32(precision))
}

// FormatFloatWithPrecision is FormatWithPrecision for float64 amounts.
// Values decimal cannot represent (NaN, ±Inf) are printed as-is.
func FormatFloatWithPrecision(amount float64, precision int) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	return FormatWithPrecision(decimal.NewFromFloat(amount), precision)
}

// Package format renders prices and percentage changes for display.
package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"quoteboard/internal/domain/market"
)

// DefaultDecimals is the precision used by Price and Percent.
const DefaultDecimals = 2

// MaxDecimals bounds the fractional digits any formatter will produce.
const MaxDecimals = 20

var ErrDecimalsRange = errors.New("decimals out of range")

// ClampDecimals limits decimals to [0, MaxDecimals].
func ClampDecimals(decimals int) int {
	switch {
	case decimals < 0:
		return 0
	case decimals > MaxDecimals:
		return MaxDecimals
	}
	return decimals
}

// fixed renders v with exactly decimals fractional digits, rounding half
// away from zero. decimals is clamped to [0, MaxDecimals].
func fixed(v float64, decimals int) string {
	decimals = ClampDecimals(decimals)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return decimal.NewFromFloat(v).StringFixed(int32(decimals))
}

// FormatPrice prefixes the fixed-point value with the currency symbol,
// e.g. FormatPrice(1234.567, "USD", 2) == "$1234.57". Unknown currency
// codes are used as their own symbol. The sign stays where the number puts
// it: "$-5.00".
func FormatPrice(value float64, currency string, decimals int) string {
	return market.CurrencySymbol(currency) + fixed(value, decimals)
}

// Price is FormatPrice with DefaultDecimals.
func Price(value float64, currency string) string {
	return FormatPrice(value, currency, DefaultDecimals)
}

// FormatChange renders a change with an explicit leading sign followed by
// suffix: "+5.10%", "-3.5". Zero is rendered without a sign.
func FormatChange(changePercent float64, suffix string, decimals int) string {
	if changePercent == 0 {
		return fixed(0, decimals) + suffix
	}

	sign := "-"
	if changePercent > 0 {
		sign = "+"
	}
	return sign + fixed(math.Abs(changePercent), decimals) + suffix
}

// Percent is FormatChange with a "%" suffix and DefaultDecimals.
func Percent(changePercent float64) string {
	return FormatChange(changePercent, "%", DefaultDecimals)
}

// ParseDecimals reads a decimals query value. Empty means def; anything
// other than an integer in [0, MaxDecimals] is ErrDecimalsRange.
func ParseDecimals(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxDecimals {
		return 0, fmt.Errorf("%w: %q", ErrDecimalsRange, s)
	}
	return n, nil
}

package market

import "strings"

// ChangeType is the direction of a price change after the market's color
// convention has been applied. It is not the raw sign of the change.
type ChangeType string

const (
	Positive ChangeType = "positive"
	Negative ChangeType = "negative"
	Neutral  ChangeType = "neutral"
)

// DefaultCurrency is assumed when a quote carries no currency code.
const DefaultCurrency = "USD"

// CNY quotes use the Chinese convention: red for gains, green for losses.
const invertedCurrency = "CNY"

// ChangeTypes returns every change type in display order.
func ChangeTypes() []ChangeType {
	return []ChangeType{Positive, Negative, Neutral}
}

func (c ChangeType) String() string { return string(c) }

// Valid reports whether c is one of the three known change types.
func (c ChangeType) Valid() bool {
	switch c {
	case Positive, Negative, Neutral:
		return true
	default:
		return false
	}
}

// Classify maps a change value quoted in currency to a ChangeType.
//
// Zero is always Neutral. For CNY (case-insensitive) the mapping is
// inverted: a rise is Negative and a fall is Positive, so that the
// negative color (red) marks gains on Chinese boards. Every other
// currency, known or not, maps directly.
func Classify(change float64, currency string) ChangeType {
	if change == 0 {
		return Neutral
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	if strings.ToUpper(currency) == invertedCurrency {
		if change > 0 {
			return Negative
		}
		return Positive
	}

	if change > 0 {
		return Positive
	}
	return Negative
}

// GetChangeType is an alias of Classify kept for frontend-facing callers.
func GetChangeType(change float64, currency string) ChangeType {
	return Classify(change, currency)
}

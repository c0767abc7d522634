package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		currency string
		decimals int
		expected string
	}{
		{name: "usd", value: 1234.567, currency: "USD", decimals: 2, expected: "$1234.57"},
		{name: "cny", value: 1234.567, currency: "CNY", decimals: 2, expected: "¥1234.57"},
		{name: "hkd", value: 25000.1, currency: "HKD", decimals: 2, expected: "HK$25000.10"},
		{name: "unknown code", value: 5, currency: "XYZ", decimals: 2, expected: "XYZ5.00"},
		{name: "lowercase is not mapped", value: 5, currency: "usd", decimals: 2, expected: "usd5.00"},
		{name: "negative keeps native sign", value: -5, currency: "USD", decimals: 2, expected: "$-5.00"},
		{name: "zero decimals", value: 99.6, currency: "JPY", decimals: 0, expected: "¥100"},
		{name: "many decimals", value: 0.5, currency: "EUR", decimals: 6, expected: "€0.500000"},
		{name: "negative decimals clamp", value: 12.34, currency: "GBP", decimals: -1, expected: "£12"},
		{name: "won", value: 70000, currency: "KRW", decimals: 0, expected: "₩70000"},
		{name: "empty code", value: 1, currency: "", decimals: 2, expected: "1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPrice(tt.value, tt.currency, tt.decimals))
		})
	}
}

func TestPriceDefaults(t *testing.T) {
	assert.Equal(t, "$1234.57", Price(1234.567, "USD"))
	assert.Equal(t, "XYZ5.00", Price(5, "XYZ"))
}

func TestFormatChange(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		suffix   string
		decimals int
		expected string
	}{
		{name: "zero", value: 0, suffix: "", decimals: 2, expected: "0.00"},
		{name: "zero with suffix", value: 0, suffix: "%", decimals: 2, expected: "0.00%"},
		{name: "negative zero", value: math.Copysign(0, -1), suffix: "%", decimals: 1, expected: "0.0%"},
		{name: "positive", value: 5.1, suffix: "%", decimals: 2, expected: "+5.10%"},
		{name: "negative one decimal", value: -3.456, suffix: "", decimals: 1, expected: "-3.5"},
		{name: "small positive", value: 0.01, suffix: "%", decimals: 2, expected: "+0.01%"},
		{name: "rounds to zero keeps sign", value: -0.001, suffix: "", decimals: 2, expected: "-0.00"},
		{name: "no decimals", value: 12.5, suffix: " pts", decimals: 0, expected: "+13 pts"},
		{name: "large", value: -12345.678, suffix: "%", decimals: 2, expected: "-12345.68%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatChange(tt.value, tt.suffix, tt.decimals))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "+1.23%", Percent(1.234))
	assert.Equal(t, "-1.23%", Percent(-1.234))
	assert.Equal(t, "0.00%", Percent(0))
}

func TestNonFinite(t *testing.T) {
	assert.Equal(t, "$NaN", Price(math.NaN(), "USD"))
	assert.Equal(t, "$Infinity", Price(math.Inf(1), "USD"))
	assert.Equal(t, "+Infinity%", Percent(math.Inf(1)))
	assert.Equal(t, "-Infinity%", Percent(math.Inf(-1)))
}

func TestDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, "$1234.57", FormatPrice(1234.567, "USD", 2))
		assert.Equal(t, "+5.10%", FormatChange(5.1, "%", 2))
	}
}

func TestParseDecimals(t *testing.T) {
	valid := []struct {
		in   string
		want int
	}{
		{"", 2},
		{"4", 4},
		{"0", 0},
		{"20", 20},
	}
	for _, tt := range valid {
		n, err := ParseDecimals(tt.in, 2)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, n, tt.in)
	}

	for _, in := range []string{"-1", "abc", "21", "20000000", "2147483648", "4294967298"} {
		_, err := ParseDecimals(in, 2)
		assert.ErrorIs(t, err, ErrDecimalsRange, in)
	}
}

func TestHugeDecimalsAreClamped(t *testing.T) {
	want := "$1.50000000000000000000"
	assert.Equal(t, want, FormatPrice(1.5, "USD", 20000000))
	// would wrap negative through int32
	assert.Equal(t, want, FormatPrice(1.5, "USD", 2147483648))
	// would wrap to 2 through int32
	assert.Equal(t, want, FormatPrice(1.5, "USD", 4294967298))
	assert.Equal(t, "+1.50000000000000000000%", FormatChange(1.5, "%", math.MaxInt))

	assert.Equal(t, 0, ClampDecimals(-5))
	assert.Equal(t, 7, ClampDecimals(7))
	assert.Equal(t, MaxDecimals, ClampDecimals(MaxDecimals+1))
}

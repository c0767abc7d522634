package market

import "strings"

var currencySymbols = map[string]string{
	"USD": "$",
	"CNY": "¥",
	"HKD": "HK$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"KRW": "₩",
}

// exchange prefix of a ticker identifier -> quote currency
var exchangeCurrencies = map[string]string{
	"NASDAQ": "USD",
	"NYSE":   "USD",
	"AMEX":   "USD",
	"HKEX":   "HKD",
	"SSE":    "CNY",
	"SZSE":   "CNY",
	"LSE":    "GBP",
	"TSE":    "JPY",
	"KRX":    "KRW",
}

// CurrencySymbol returns the display symbol for a currency code such as
// "USD" or "HKD". Codes without a known symbol are returned unchanged.
// The lookup is exact: "usd" is not "USD".
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code
}

// CurrencyForTicker guesses the quote currency of an "EXCHANGE:CODE"
// ticker from its exchange prefix. It returns DefaultCurrency when the
// prefix is missing or unknown.
func CurrencyForTicker(ticker string) string {
	ex, _, ok := strings.Cut(ticker, ":")
	if !ok {
		return DefaultCurrency
	}
	if cur, ok := exchangeCurrencies[strings.ToUpper(strings.TrimSpace(ex))]; ok {
		return cur
	}
	return DefaultCurrency
}

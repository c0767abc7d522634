package market

// Ticker is a display entry: the full identifier (e.g. "NASDAQ:IXIC") and
// the short label shown to users (e.g. "NASDAQ"). Symbol is a label, not a
// currency symbol.
type Ticker struct {
	Ticker string `json:"ticker"`
	Symbol string `json:"symbol"`
}

var homeTickers = [...]Ticker{
	{Ticker: "NASDAQ:IXIC", Symbol: "NASDAQ"},
	{Ticker: "HKEX:HSI", Symbol: "HSI"},
	{Ticker: "SSE:000001", Symbol: "SSE"},
}

// HomeTickers returns the fixed home page index set. The result is a copy.
func HomeTickers() []Ticker {
	out := make([]Ticker, len(homeTickers))
	copy(out, homeTickers[:])
	return out
}

package quote

import "quoteboard/internal/domain/market"

// Quote is the latest known state of one board row.
type Quote struct {
	Ticker        string  `json:"ticker"`
	Symbol        string  `json:"symbol"`
	Currency      string  `json:"currency"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	HasPrice      bool    `json:"has_price"`
	Ts            int64   `json:"ts_ms"`
}

// ChangeType classifies the quote's change under its market's convention.
func (q Quote) ChangeType() market.ChangeType {
	return market.Classify(q.ChangePercent, q.Currency)
}

// ChangePercent returns the percentage move from open to last. A zero
// open yields 0.
func ChangePercent(open, last float64) float64 {
	if open == 0 {
		return 0
	}
	return (last - open) / open * 100
}

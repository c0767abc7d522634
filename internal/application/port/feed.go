package port

import "context"

type Tick struct {
	Source        string  // feed name, e.g. "BINANCE"
	Stream        string  // exchange symbol, e.g. "BTCUSDT"
	PriceStr      string  // raw last price
	Price         float64 // parsed last price (best-effort)
	ChangePercent float64 // 24h change in percent
	Ts            int64   // unix ms
}

type QuoteFeed interface {
	Name() string
	Subscribe(ctx context.Context, streams []string) (<-chan Tick, error)
}

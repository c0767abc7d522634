package binance

import (
	"quoteboard/internal/application/port"
	"quoteboard/internal/infrastructure/feed"
)

func init() {
	feed.Register(Name, func(wsURL string) port.QuoteFeed {
		return NewTickerFeed(wsURL)
	})
}

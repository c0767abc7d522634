package port

import (
	"context"

	"quoteboard/internal/domain/quote"
)

type Repository interface {
	// Latest quote per ticker
	UpsertQuote(ctx context.Context, q quote.Quote) error

	// Board snapshot (JSON payload)
	InsertSnapshot(ctx context.Context, ts int64, payload string) error
}

// QuoteLoader is implemented by stores that can seed the board on startup.
type QuoteLoader interface {
	LatestQuotes(ctx context.Context) ([]quote.Quote, error)
}

package composite

import (
	"context"
	"fmt"

	"quoteboard/internal/application/port"
	"quoteboard/internal/domain/quote"
)

// Repo writes to every backing store and reads from the first one that
// has data. Stores are used in the order given.
type Repo struct {
	stores []port.Repository
}

func New(stores ...port.Repository) *Repo {
	r := &Repo{}
	for _, s := range stores {
		if s != nil {
			r.stores = append(r.stores, s)
		}
	}
	return r
}

func (r *Repo) Len() int { return len(r.stores) }

// each runs fn on all stores and reports the first failure.
func (r *Repo) each(fn func(port.Repository) error) error {
	var firstErr error
	for i, s := range r.stores {
		if err := fn(s); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("store %d: %w", i, err)
		}
	}
	return firstErr
}

func (r *Repo) UpsertQuote(ctx context.Context, q quote.Quote) error {
	return r.each(func(s port.Repository) error { return s.UpsertQuote(ctx, q) })
}

func (r *Repo) InsertSnapshot(ctx context.Context, ts int64, payload string) error {
	return r.each(func(s port.Repository) error { return s.InsertSnapshot(ctx, ts, payload) })
}

// LatestQuotes falls through the stores that can load quotes until one
// returns a non-empty set. An error is returned only when every loader
// failed.
func (r *Repo) LatestQuotes(ctx context.Context) ([]quote.Quote, error) {
	var lastErr error
	for _, s := range r.stores {
		loader, ok := s.(port.QuoteLoader)
		if !ok {
			continue
		}
		quotes, err := loader.LatestQuotes(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if len(quotes) > 0 {
			return quotes, nil
		}
		lastErr = nil
	}
	return nil, lastErr
}

var (
	_ port.Repository  = (*Repo)(nil)
	_ port.QuoteLoader = (*Repo)(nil)
)

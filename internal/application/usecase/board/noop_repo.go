package board

import (
	"context"

	"quoteboard/internal/application/port"
	"quoteboard/internal/domain/quote"
)

type noopRepo struct{}

func NewNoopRepo() port.Repository { return &noopRepo{} }

func (n *noopRepo) UpsertQuote(ctx context.Context, q quote.Quote) error {
	return nil
}

func (n *noopRepo) InsertSnapshot(ctx context.Context, ts int64, payload string) error {
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"quoteboard/internal/application/port"
	"quoteboard/internal/domain/quote"
)

type Repo struct {
	db *sql.DB
}

func New(dsn string) (*Repo, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	r := &Repo{db: db}
	if err := r.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func (r *Repo) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS quotes (
  ticker TEXT PRIMARY KEY,
  symbol TEXT NOT NULL,
  currency TEXT NOT NULL,
  price DOUBLE PRECISION NOT NULL,
  change_pct DOUBLE PRECISION NOT NULL,
  change_type TEXT NOT NULL,
  ts_ms BIGINT NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
  id BIGSERIAL PRIMARY KEY,
  ts_ms BIGINT NOT NULL,
  payload JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON snapshots(ts_ms);
`)
	return err
}

func (r *Repo) UpsertQuote(ctx context.Context, q quote.Quote) error {
	if !q.HasPrice {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quotes(ticker, symbol, currency, price, change_pct, change_type, ts_ms, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT(ticker) DO UPDATE SET
		symbol=EXCLUDED.symbol, currency=EXCLUDED.currency, price=EXCLUDED.price,
		change_pct=EXCLUDED.change_pct, change_type=EXCLUDED.change_type,
		ts_ms=EXCLUDED.ts_ms, updated_at=EXCLUDED.updated_at
	`, q.Ticker, q.Symbol, q.Currency, q.Price, q.ChangePercent, string(q.ChangeType()), q.Ts, time.Now().UTC())
	return err
}

func (r *Repo) LatestQuotes(ctx context.Context) ([]quote.Quote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ticker, symbol, currency, price, change_pct, ts_ms FROM quotes ORDER BY ticker`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []quote.Quote
	for rows.Next() {
		var q quote.Quote
		if err := rows.Scan(&q.Ticker, &q.Symbol, &q.Currency, &q.Price, &q.ChangePercent, &q.Ts); err != nil {
			return nil, err
		}
		q.HasPrice = true
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *Repo) InsertSnapshot(ctx context.Context, ts int64, payload string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO snapshots(ts_ms, payload) VALUES($1, $2)`, ts, payload)
	return err
}

var (
	_ port.Repository  = (*Repo)(nil)
	_ port.QuoteLoader = (*Repo)(nil)
)

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"quoteboard/internal/application/port"
	"quoteboard/internal/domain/quote"
)

type Repo struct {
	db *sql.DB
}

func New(path string) (*Repo, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

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
  price REAL NOT NULL,
  change_pct REAL NOT NULL,
  change_type TEXT NOT NULL,
  ts_ms INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quotes_ts ON quotes(ts_ms);

CREATE TABLE IF NOT EXISTS snapshots (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts_ms INTEGER NOT NULL,
  payload TEXT NOT NULL,
  created_at INTEGER NOT NULL
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
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
		symbol=excluded.symbol, currency=excluded.currency, price=excluded.price,
		change_pct=excluded.change_pct, change_type=excluded.change_type,
		ts_ms=excluded.ts_ms, updated_at=excluded.updated_at
	`, q.Ticker, q.Symbol, q.Currency, q.Price, q.ChangePercent, string(q.ChangeType()), q.Ts, time.Now().UnixMilli())
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
	_, err := r.db.ExecContext(ctx, `INSERT INTO snapshots(ts_ms, payload, created_at) VALUES(?, ?, ?)`, ts, payload, time.Now().UnixMilli())
	return err
}

// LatestSnapshot returns the most recent snapshot payload, or sql.ErrNoRows.
func (r *Repo) LatestSnapshot(ctx context.Context) (ts int64, payload string, err error) {
	err = r.db.QueryRowContext(ctx, `SELECT ts_ms, payload FROM snapshots ORDER BY ts_ms DESC, id DESC LIMIT 1`).
		Scan(&ts, &payload)
	return
}

var (
	_ port.Repository  = (*Repo)(nil)
	_ port.QuoteLoader = (*Repo)(nil)
)

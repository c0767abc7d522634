package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"quoteboard/internal/application/port"
	"quoteboard/internal/domain/quote"

	"github.com/redis/go-redis/v9"
)

type Repo struct {
	rdb         *redis.Client
	prefix      string
	ttl         time.Duration
	keyLatest   string // prefix + ":latest"
	snapChannel string
}

func New(rdb *redis.Client, prefix string, ttl time.Duration, snapChannel string) *Repo {
	if strings.TrimSpace(snapChannel) == "" {
		snapChannel = prefix + ":snapshots"
	}
	return &Repo{
		rdb:         rdb,
		prefix:      prefix,
		ttl:         ttl,
		keyLatest:   prefix + ":latest",
		snapChannel: snapChannel,
	}
}

// UpsertQuote stores q as JSON in the latest-quote hash, field = ticker.
func (r *Repo) UpsertQuote(ctx context.Context, q quote.Quote) error {
	if !q.HasPrice {
		return nil
	}
	b, err := json.Marshal(q)
	if err != nil {
		return err
	}

	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, r.keyLatest, q.Ticker, string(b))
	if r.ttl > 0 {
		pipe.Expire(ctx, r.keyLatest, r.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *Repo) LatestQuotes(ctx context.Context) ([]quote.Quote, error) {
	fields, err := r.rdb.HGetAll(ctx, r.keyLatest).Result()
	if err != nil {
		return nil, err
	}
	out := make([]quote.Quote, 0, len(fields))
	for _, raw := range fields {
		var q quote.Quote
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// InsertSnapshot publishes the snapshot payload for live subscribers.
func (r *Repo) InsertSnapshot(ctx context.Context, ts int64, payload string) error {
	msg, err := json.Marshal(struct {
		Ts      int64           `json:"ts_ms"`
		Payload json.RawMessage `json:"payload"`
	}{Ts: ts, Payload: json.RawMessage(payload)})
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, r.snapChannel, string(msg)).Err()
}

var (
	_ port.Repository  = (*Repo)(nil)
	_ port.QuoteLoader = (*Repo)(nil)
)

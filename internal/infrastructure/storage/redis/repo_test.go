package redis

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"quoteboard/internal/domain/quote"

	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 0})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("Failed to PING Redis: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisRepoUpsertQuote(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()
	prefix := "quoteboard-test"
	repo := New(rdb, prefix, time.Minute, "")
	defer rdb.Del(ctx, prefix+":latest")

	q := quote.Quote{Ticker: "HKEX:HSI", Symbol: "HSI", Currency: "HKD", Price: 17000, ChangePercent: 1.1, HasPrice: true, Ts: 1}
	if err := repo.UpsertQuote(ctx, q); err != nil {
		t.Fatalf("UpsertQuote failed: %v", err)
	}
	if err := repo.UpsertQuote(ctx, quote.Quote{Ticker: "SSE:000001"}); err != nil {
		t.Fatalf("UpsertQuote (empty) failed: %v", err)
	}

	quotes, err := repo.LatestQuotes(ctx)
	if err != nil {
		t.Fatalf("LatestQuotes failed: %v", err)
	}
	if len(quotes) != 1 || quotes[0] != q {
		t.Errorf("unexpected quotes: %+v", quotes)
	}

	ttl, err := rdb.TTL(ctx, prefix+":latest").Result()
	if err != nil || ttl <= 0 {
		t.Errorf("expected ttl on latest hash, got %v (%v)", ttl, err)
	}
}

func TestRedisRepoPublishesSnapshot(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()
	repo := New(rdb, "quoteboard-test", 0, "")

	sub := rdb.Subscribe(ctx, "quoteboard-test:snapshots")
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := repo.InsertSnapshot(ctx, 42, `[{"ticker":"HKEX:HSI"}]`); err != nil {
		t.Fatalf("InsertSnapshot failed: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var got struct {
			Ts      int64             `json:"ts_ms"`
			Payload []json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
			t.Fatalf("bad message: %v", err)
		}
		if got.Ts != 42 || len(got.Payload) != 1 {
			t.Errorf("unexpected message: %s", msg.Payload)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("snapshot not published")
	}
}

package board

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"quoteboard/internal/application/port"
	"quoteboard/internal/domain/quote"
)

type fakeFeed struct {
	ch      chan port.Tick
	streams []string
}

func (f *fakeFeed) Name() string { return "FAKE" }

func (f *fakeFeed) Subscribe(ctx context.Context, streams []string) (<-chan port.Tick, error) {
	f.streams = streams
	return f.ch, nil
}

type fakeSink struct {
	mu    sync.Mutex
	lines []string
	live  chan string
}

func (s *fakeSink) WriteLive(line string) error {
	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()
	select {
	case s.live <- line:
	default:
	}
	return nil
}

func (s *fakeSink) WriteSnapshot(ts time.Time, line string) error { return nil }
func (s *fakeSink) NewLine() error                                 { return nil }

type memRepo struct {
	mu     sync.Mutex
	quotes map[string]quote.Quote
}

func (m *memRepo) UpsertQuote(ctx context.Context, q quote.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[q.Ticker] = q
	return nil
}

func (m *memRepo) InsertSnapshot(ctx context.Context, ts int64, payload string) error { return nil }

func (m *memRepo) LatestQuotes(ctx context.Context) ([]quote.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]quote.Quote, 0, len(m.quotes))
	for _, q := range m.quotes {
		out = append(out, q)
	}
	return out, nil
}

func (m *memRepo) get(ticker string) (quote.Quote, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[ticker]
	return q, ok
}

func TestServiceRunAppliesTicks(t *testing.T) {
	feed := &fakeFeed{ch: make(chan port.Tick, 4)}
	sink := &fakeSink{live: make(chan string, 16)}
	repo := &memRepo{quotes: map[string]quote.Quote{}}

	svc := NewService(ServiceDeps{
		Feeds:     []port.QuoteFeed{feed},
		Rows:      []Row{{Ticker: "SSE:000001", Symbol: "SSE", Currency: "CNY", Stream: "sh000001"}},
		Precision: DefaultPrecision,
		Sink:      sink,
		Repo:      repo,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	// initial line
	select {
	case <-sink.live:
	case <-time.After(2 * time.Second):
		t.Fatal("no initial live line")
	}

	feed.ch <- port.Tick{Source: "FAKE", Stream: "SH000001", PriceStr: "3100.5", Price: 3100.5, ChangePercent: 0.5, Ts: 42}

	var line string
	select {
	case line = <-sink.live:
	case <-time.After(2 * time.Second):
		t.Fatal("tick did not produce a live line")
	}
	if !strings.Contains(line, "¥3100.50") || !strings.Contains(line, "+0.50%") {
		t.Errorf("unexpected live line: %q", line)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if len(feed.streams) != 1 || feed.streams[0] != "SH000001" {
		t.Errorf("unexpected subscribed streams: %v", feed.streams)
	}
	q, ok := repo.get("SSE:000001")
	if !ok || q.Price != 3100.5 || q.Ts != 42 {
		t.Errorf("quote not persisted: %+v", q)
	}

	views := svc.Views()
	if len(views) != 1 || views[0].ChangeText != "+0.50%" || views[0].ChangeType != "negative" {
		t.Errorf("unexpected views: %+v", views)
	}
}

func TestServiceRunWithoutFeeds(t *testing.T) {
	svc := NewService(ServiceDeps{Rows: []Row{{Ticker: "A:B", Stream: "ab"}}, Sink: &fakeSink{live: make(chan string, 1)}})
	if err := svc.Run(context.Background()); !errors.Is(err, ErrNoFeeds) {
		t.Errorf("expected ErrNoFeeds, got %v", err)
	}
}

func TestServiceRunWithoutStreams(t *testing.T) {
	svc := NewService(ServiceDeps{
		Feeds: []port.QuoteFeed{&fakeFeed{ch: make(chan port.Tick)}},
		Rows:  []Row{{Ticker: "HKEX:HSI"}},
		Sink:  &fakeSink{live: make(chan string, 1)},
	})
	if err := svc.Run(context.Background()); !errors.Is(err, ErrNoStreams) {
		t.Errorf("expected ErrNoStreams, got %v", err)
	}
}

func TestServiceRestore(t *testing.T) {
	repo := &memRepo{quotes: map[string]quote.Quote{
		"HKEX:HSI": {Ticker: "HKEX:HSI", Price: 17250, HasPrice: true, ChangePercent: -1},
	}}
	svc := NewService(ServiceDeps{Rows: []Row{{Ticker: "HKEX:HSI", Symbol: "HSI", Currency: "HKD"}}, Precision: DefaultPrecision})

	if err := svc.Restore(context.Background(), repo); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	views := svc.Views()
	if views[0].PriceText != "HK$17250.00" || views[0].ChangeText != "-1.00%" || views[0].ChangeType != "negative" {
		t.Errorf("unexpected restored view: %+v", views[0])
	}
}

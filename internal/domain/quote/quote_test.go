package quote

import (
	"math"
	"testing"

	"quoteboard/internal/domain/market"
)

func TestQuoteChangeType(t *testing.T) {
	q := Quote{Ticker: "SSE:000001", Currency: "CNY", ChangePercent: 1.2}
	if got := q.ChangeType(); got != market.Negative {
		t.Errorf("CNY rise: got %s, want negative", got)
	}

	q.Currency = "USD"
	if got := q.ChangeType(); got != market.Positive {
		t.Errorf("USD rise: got %s, want positive", got)
	}

	q.ChangePercent = 0
	if got := q.ChangeType(); got != market.Neutral {
		t.Errorf("flat: got %s, want neutral", got)
	}
}

func TestChangePercent(t *testing.T) {
	if got := ChangePercent(100, 105); math.Abs(got-5) > 1e-9 {
		t.Errorf("expected 5, got %v", got)
	}
	if got := ChangePercent(200, 150); math.Abs(got+25) > 1e-9 {
		t.Errorf("expected -25, got %v", got)
	}
	if got := ChangePercent(0, 10); got != 0 {
		t.Errorf("expected 0 for zero open, got %v", got)
	}
}

package board

import (
	"strings"
	"sync"

	"quoteboard/internal/application/port"
	"quoteboard/internal/domain/quote"
)

// Row is one configured board line.
type Row struct {
	Ticker   string // "NASDAQ:IXIC"
	Symbol   string // display label
	Currency string // quote currency code
	Stream   string // feed symbol; empty rows never receive ticks
}

type rowState struct {
	q        quote.Quote
	priceStr string
	seen     bool
}

type State struct {
	mu sync.Mutex

	order    []string
	streams  []string
	rows     map[string]*rowState
	byStream map[string]string // stream -> ticker
}

func NewState(rows []Row) *State {
	st := &State{
		order:    make([]string, 0, len(rows)),
		rows:     make(map[string]*rowState, len(rows)),
		byStream: make(map[string]string, len(rows)),
	}
	for _, r := range rows {
		ticker := strings.ToUpper(strings.TrimSpace(r.Ticker))
		if ticker == "" {
			continue
		}
		if _, dup := st.rows[ticker]; dup {
			continue
		}
		st.order = append(st.order, ticker)
		st.rows[ticker] = &rowState{q: quote.Quote{
			Ticker:   ticker,
			Symbol:   strings.TrimSpace(r.Symbol),
			Currency: strings.ToUpper(strings.TrimSpace(r.Currency)),
		}}
		stream := normalizeStream(r.Stream)
		if stream == "" {
			continue
		}
		// a stream feeds at most one row; the first one wins
		if _, taken := st.byStream[stream]; !taken {
			st.byStream[stream] = ticker
			st.streams = append(st.streams, stream)
		}
	}
	return st
}

func normalizeStream(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Tickers returns the row order.
func (s *State) Tickers() []string {
	return s.order
}

// Streams returns the feed symbols the board listens to, in row order.
func (s *State) Streams() []string {
	return s.streams
}

// Apply updates the row subscribed to t.Stream and reports whether the
// displayed quote changed. Ticks for unknown streams are ignored.
func (s *State) Apply(t port.Tick) (quote.Quote, bool) {
	stream := normalizeStream(t.Stream)
	price := strings.TrimSpace(t.PriceStr)
	if stream == "" || price == "" {
		return quote.Quote{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticker, ok := s.byStream[stream]
	if !ok {
		return quote.Quote{}, false
	}
	rs := s.rows[ticker]

	if rs.seen && rs.priceStr == price && rs.q.ChangePercent == t.ChangePercent {
		return rs.q, false
	}

	rs.seen = true
	rs.priceStr = price
	rs.q.Price = t.Price
	rs.q.HasPrice = t.Price > 0
	rs.q.ChangePercent = t.ChangePercent
	rs.q.Ts = t.Ts
	return rs.q, true
}

// Seed restores previously stored quotes. Quotes for tickers that are not
// on the board are dropped.
func (s *State) Seed(quotes []quote.Quote) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, q := range quotes {
		rs := s.rows[strings.ToUpper(strings.TrimSpace(q.Ticker))]
		if rs == nil || rs.seen {
			continue
		}
		rs.q.Price = q.Price
		rs.q.HasPrice = q.HasPrice
		rs.q.ChangePercent = q.ChangePercent
		rs.q.Ts = q.Ts
		n++
	}
	return n
}

// Quotes returns a copy of every row in board order.
func (s *State) Quotes() []quote.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]quote.Quote, 0, len(s.order))
	for _, ticker := range s.order {
		out = append(out, s.rows[ticker].q)
	}
	return out
}

// Quote returns the row for ticker.
func (s *State) Quote(ticker string) (quote.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.rows[strings.ToUpper(strings.TrimSpace(ticker))]
	if rs == nil {
		return quote.Quote{}, false
	}
	return rs.q, true
}

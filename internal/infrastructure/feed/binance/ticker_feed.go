package binance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quoteboard/internal/application/port"
	"quoteboard/internal/domain/quote"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const Name = "BINANCE"

// TickerFeed streams 24h rolling ticker statistics from the Binance
// combined stream endpoint.
type TickerFeed struct {
	wsURL string // e.g. wss://stream.binance.com:9443
}

func NewTickerFeed(wsURL string) *TickerFeed {
	return &TickerFeed{wsURL: strings.TrimSpace(wsURL)}
}

func (f *TickerFeed) Name() string { return Name }

type combinedMsg struct {
	Stream string    `json:"stream"`
	Data   tickerMsg `json:"data"`
}

type tickerMsg struct {
	Symbol        string `json:"s"`
	Last          string `json:"c"`
	Open          string `json:"o"`
	ChangePercent string `json:"P"`
	EventTime     int64  `json:"E"`
}

func (f *TickerFeed) Subscribe(ctx context.Context, streams []string) (<-chan port.Tick, error) {
	wsURL, err := buildCombinedURL(f.wsURL, streams)
	if err != nil {
		return nil, err
	}

	out := make(chan port.Tick, 1024)
	go f.run(ctx, wsURL, out)
	return out, nil
}

func buildCombinedURL(base string, symbols []string) (string, error) {
	if base == "" {
		return "", errors.New("binance ws_url empty")
	}
	if len(symbols) == 0 {
		return "", errors.New("symbols empty")
	}

	streams := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		streams = append(streams, fmt.Sprintf("%s@ticker", s))
	}
	if len(streams) == 0 {
		return "", errors.New("no valid symbols")
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.Path = "/stream"
	u.RawQuery = "streams=" + strings.Join(streams, "/")
	return u.String(), nil
}

// decodeTick turns a combined-stream frame into a Tick. The change percent
// falls back to open/last when "P" is missing or malformed.
func decodeTick(b []byte, now time.Time) (port.Tick, error) {
	var msg combinedMsg
	if err := json.Unmarshal(b, &msg); err != nil {
		return port.Tick{}, err
	}

	sym := strings.ToUpper(strings.TrimSpace(msg.Data.Symbol))
	pxs := strings.TrimSpace(msg.Data.Last)
	if sym == "" || pxs == "" {
		return port.Tick{}, errors.New("ticker without symbol or price")
	}
	pxn, _ := strconv.ParseFloat(pxs, 64)

	chg, err := strconv.ParseFloat(strings.TrimSpace(msg.Data.ChangePercent), 64)
	if err != nil {
		open, _ := strconv.ParseFloat(strings.TrimSpace(msg.Data.Open), 64)
		chg = quote.ChangePercent(open, pxn)
	}

	ts := msg.Data.EventTime
	if ts <= 0 {
		ts = now.UnixMilli()
	}
	return port.Tick{
		Source:        Name,
		Stream:        sym,
		PriceStr:      pxs,
		Price:         pxn,
		ChangePercent: chg,
		Ts:            ts,
	}, nil
}

func (f *TickerFeed) run(ctx context.Context, wsURL string, out chan<- port.Tick) {
	defer close(out)

	backoff := 500 * time.Millisecond
	maxBackoff := 10 * time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		log.Info().Str("feed", f.Name()).Str("url", wsURL).Msg("ws connecting")
		cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		conn, _, err := websocket.DefaultDialer.DialContext(cctx, wsURL, nil)
		cancel()
		if err != nil {
			log.Error().Str("feed", f.Name()).Err(err).Msg("ws dial failed")
			if !sleepCtx(ctx, backoff) {
				return
			}
			backoff = minDur(backoff*2, maxBackoff)
			continue
		}

		backoff = 500 * time.Millisecond
		log.Info().Str("feed", f.Name()).Msg("ws connected")

		err = readLoop(ctx, conn, func(b []byte) {
			t, e := decodeTick(b, time.Now())
			if e != nil {
				log.Debug().Str("feed", f.Name()).Err(e).Msg("skip frame")
				return
			}
			select {
			case out <- t:
			case <-ctx.Done():
			}
		})

		_ = conn.Close()

		if ctx.Err() != nil {
			return
		}

		log.Warn().Str("feed", f.Name()).Err(err).Msg("ws disconnected, reconnecting")
		if !sleepCtx(ctx, backoff) {
			return
		}
		backoff = minDur(backoff*2, maxBackoff)
	}
}

func readLoop(ctx context.Context, conn *websocket.Conn, onMsg func([]byte)) error {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	pingTicker := time.NewTicker(25 * time.Second)
	defer pingTicker.Stop()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			_, b, err := conn.ReadMessage()
			if err != nil {
				errCh <- err
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			onMsg(b)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return err
		case <-pingTicker.C:
			_ = conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second))
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func minDur(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

package board

import (
	"context"
	"errors"
	"time"

	"quoteboard/internal/application/port"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNoFeeds is returned by Run when no quote feed is configured.
	ErrNoFeeds = errors.New("no quote feeds enabled")
	// ErrNoStreams is returned by Run when no row has a stream to subscribe to.
	ErrNoStreams = errors.New("no rows with a stream")
)

type ServiceDeps struct {
	Feeds         []port.QuoteFeed
	Rows          []Row
	PrintEveryMin int
	Precision     Precision
	Sink          port.Sink
	Repo          port.Repository
}

type Service struct {
	deps   ServiceDeps
	st     *State
	render *Renderer
}

func NewService(deps ServiceDeps) *Service {
	if deps.Repo == nil {
		deps.Repo = NewNoopRepo()
	}
	if deps.PrintEveryMin <= 0 {
		deps.PrintEveryMin = 5
	}
	return &Service{
		deps:   deps,
		st:     NewState(deps.Rows),
		render: NewRenderer(deps.Precision),
	}
}

// State exposes the board for read-only consumers such as the HTTP API.
func (s *Service) State() *State { return s.st }

// Views returns the formatted board rows.
func (s *Service) Views() []View {
	return Views(s.st.Quotes(), s.deps.Precision)
}

// Restore seeds the board from a store that remembers the last quotes.
func (s *Service) Restore(ctx context.Context, loader port.QuoteLoader) error {
	quotes, err := loader.LatestQuotes(ctx)
	if err != nil {
		return err
	}
	n := s.st.Seed(quotes)
	log.Info().Int("restored", n).Msg("board restored from store")
	return nil
}

func (s *Service) Run(ctx context.Context) error {
	if len(s.deps.Feeds) == 0 {
		return ErrNoFeeds
	}
	streams := s.st.Streams()
	if len(streams) == 0 {
		return ErrNoStreams
	}

	merged := make(chan port.Tick, 1024)

	// start feeds
	for _, feed := range s.deps.Feeds {
		ch, err := feed.Subscribe(ctx, streams)
		if err != nil {
			return err
		}
		go func(in <-chan port.Tick) {
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-in:
					if !ok {
						return
					}
					select {
					case merged <- t:
					case <-ctx.Done():
						return
					}
				}
			}
		}(ch)

		log.Info().Str("feed", feed.Name()).Int("streams", len(streams)).Msg("feed started")
	}

	snapTicker := time.NewTicker(time.Duration(s.deps.PrintEveryMin) * time.Minute)
	defer snapTicker.Stop()

	// initial live line
	_ = s.deps.Sink.WriteLive(s.render.Render(s.st.Quotes(), RenderLive))

	for {
		select {
		case <-ctx.Done():
			_ = s.deps.Sink.NewLine()
			return ctx.Err()

		case now := <-snapTicker.C:
			s.snapshot(ctx, now)

		case t := <-merged:
			q, changed := s.st.Apply(t)
			if !changed {
				continue
			}
			_ = s.deps.Sink.WriteLive(s.render.Render(s.st.Quotes(), RenderLive))
			if err := s.deps.Repo.UpsertQuote(ctx, q); err != nil {
				log.Debug().Err(err).Str("ticker", q.Ticker).Msg("persist quote failed")
			}
		}
	}
}

func (s *Service) snapshot(ctx context.Context, now time.Time) {
	quotes := s.st.Quotes()
	_ = s.deps.Sink.WriteSnapshot(now, s.render.Render(quotes, RenderSnapshot))

	payload, err := s.render.Payload(quotes)
	if err != nil {
		log.Error().Err(err).Msg("encode snapshot failed")
		return
	}
	if err := s.deps.Repo.InsertSnapshot(ctx, now.UnixMilli(), payload); err != nil {
		log.Warn().Err(err).Msg("persist snapshot failed")
	}
}

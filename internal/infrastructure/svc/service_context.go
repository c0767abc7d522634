package svc

import (
	"context"
	"fmt"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"quoteboard/internal/application/port"
	"quoteboard/internal/application/usecase/board"
	"quoteboard/internal/infrastructure/config"
	"quoteboard/internal/infrastructure/feed"
	_ "quoteboard/internal/infrastructure/feed/binance"
	"quoteboard/internal/infrastructure/storage/composite"
	pgrepo "quoteboard/internal/infrastructure/storage/postgres"
	redisrepo "quoteboard/internal/infrastructure/storage/redis"
	sqliterepo "quoteboard/internal/infrastructure/storage/sqlite"
	"quoteboard/internal/interfaces/console"
	"quoteboard/internal/interfaces/httpapi"
)

type ServiceContext struct {
	Ctx    context.Context
	Config *config.Config

	redisRepo  *redisrepo.Repo
	sqliteRepo *sqliterepo.Repo
	pgRepo     *pgrepo.Repo
	store      *composite.Repo

	Sink      port.Sink
	feeds     []port.QuoteFeed
	precision board.Precision
	board     *board.Service
	http      *httpapi.Server

	closerChain []func() error
}

// New builds every component from cfg. Resources opened before a failure
// are closed again.
func New(ctx context.Context, cfg *config.Config) (*ServiceContext, error) {
	return NewWithSink(ctx, cfg, console.NewSink())
}

func NewWithSink(ctx context.Context, cfg *config.Config, sink port.Sink) (*ServiceContext, error) {
	sc := &ServiceContext{
		Ctx:         ctx,
		Config:      cfg,
		Sink:        sink,
		closerChain: make([]func() error, 0),
	}

	if err := sc.initializeComponents(); err != nil {
		_ = sc.Close()
		return nil, err
	}
	return sc, nil
}

func (sc *ServiceContext) initializeComponents() error {
	if err := sc.initializeStorage(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageInitFailed, err)
	}

	if stores := sc.stores(); len(stores) > 0 {
		sc.store = composite.New(stores...)
	}

	if err := sc.initializeFeeds(); err != nil {
		return err
	}

	sc.precision = board.Precision{
		Price:  *sc.Config.App.PriceDecimals,
		Change: *sc.Config.App.ChangeDecimals,
	}
	sc.board = board.NewService(board.ServiceDeps{
		Feeds:         sc.feeds,
		Rows:          rowsFromConfig(sc.Config.Tickers),
		PrintEveryMin: sc.Config.App.PrintEveryMin,
		Precision:     sc.precision,
		Sink:          sc.Sink,
		Repo:          sc.repository(),
	})

	if sc.store != nil {
		if err := sc.board.Restore(sc.Ctx, sc.store); err != nil {
			log.Warn().Err(err).Msg("restore board failed")
		}
	}

	if sc.Config.HTTP.Enabled {
		sc.http = httpapi.NewServer(sc.Config.HTTP.Addr, sc.board)
	}

	log.Info().
		Int("feeds", len(sc.feeds)).
		Int("rows", len(sc.Config.Tickers)).
		Bool("http", sc.http != nil).
		Msg("components initialized")
	return nil
}

func (sc *ServiceContext) initializeFeeds() error {
	enabled := sc.Config.EnabledFeeds()
	if len(enabled) == 0 {
		log.Warn().Strs("available", feed.Names()).Msg("all feeds disabled by config")
		return nil
	}
	for _, name := range enabled {
		factory, ok := feed.Get(name)
		if !ok {
			return fmt.Errorf("feed %q not registered", name)
		}
		sc.feeds = append(sc.feeds, factory(sc.Config.FeedURL(name)))
		log.Info().Str("feed", name).Msg("feed enabled")
	}
	return nil
}

func rowsFromConfig(tickers []config.Ticker) []board.Row {
	rows := make([]board.Row, 0, len(tickers))
	for _, t := range tickers {
		rows = append(rows, board.Row{
			Ticker:   t.Ticker,
			Symbol:   t.Symbol,
			Currency: t.Currency,
			Stream:   t.Stream,
		})
	}
	return rows
}

func (sc *ServiceContext) initializeStorage() error {
	if sc.Config.Redis.Enabled {
		if err := sc.initRedis(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if sc.Config.SQLite.Enabled {
		if err := sc.initSQLite(); err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
	}
	if sc.Config.Postgres.Enabled {
		if err := sc.initPostgres(); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	return nil
}

func (sc *ServiceContext) initRedis() error {
	rdb := redisclient.NewClient(&redisclient.Options{
		Addr:     sc.Config.Redis.Addr,
		Password: sc.Config.Redis.Password,
		DB:       sc.Config.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(sc.Ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(sc.Config.Redis.TTLSeconds) * time.Second
	sc.redisRepo = redisrepo.New(rdb, sc.Config.Redis.Prefix, ttl, sc.Config.Redis.Channel)
	sc.closerChain = append(sc.closerChain, func() error {
		log.Info().Msg("closing redis connection")
		return rdb.Close()
	})

	log.Info().Str("addr", sc.Config.Redis.Addr).Int("db", sc.Config.Redis.DB).Msg("redis initialized")
	return nil
}

func (sc *ServiceContext) initSQLite() error {
	repo, err := sqliterepo.New(sc.Config.SQLite.Path)
	if err != nil {
		return err
	}
	sc.sqliteRepo = repo
	sc.closerChain = append(sc.closerChain, func() error {
		log.Info().Msg("closing sqlite connection")
		return repo.Close()
	})

	log.Info().Str("path", sc.Config.SQLite.Path).Msg("sqlite initialized")
	return nil
}

func (sc *ServiceContext) initPostgres() error {
	repo, err := pgrepo.New(sc.Config.Postgres.DSN)
	if err != nil {
		return err
	}
	sc.pgRepo = repo
	sc.closerChain = append(sc.closerChain, func() error {
		log.Info().Msg("closing postgres connection")
		return repo.Close()
	})

	log.Info().Msg("postgres initialized")
	return nil
}

// stores lists the enabled stores in restore order: sqlite, postgres, redis.
func (sc *ServiceContext) stores() []port.Repository {
	var out []port.Repository
	if sc.sqliteRepo != nil {
		out = append(out, sc.sqliteRepo)
	}
	if sc.pgRepo != nil {
		out = append(out, sc.pgRepo)
	}
	if sc.redisRepo != nil {
		out = append(out, sc.redisRepo)
	}
	return out
}

func (sc *ServiceContext) repository() port.Repository {
	if sc.store == nil {
		return board.NewNoopRepo()
	}
	return sc.store
}

func (sc *ServiceContext) Board() *board.Service { return sc.board }

func (sc *ServiceContext) HTTP() *httpapi.Server { return sc.http }

func (sc *ServiceContext) SQLiteRepo() *sqliterepo.Repo { return sc.sqliteRepo }

// Run starts the HTTP API (if enabled) and the board. Without a feed the
// board stays static and only the API is served.
func (sc *ServiceContext) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	running := 0

	if sc.http != nil {
		running++
		go func() { errCh <- sc.http.Run(ctx) }()
	}
	streams := sc.board.State().Streams()
	switch {
	case len(sc.feeds) > 0 && len(streams) > 0:
		running++
		go func() { errCh <- sc.board.Run(ctx) }()
	case len(streams) > 0:
		log.Warn().Err(ErrNoFeedsEnabled).Msg("board rows have streams but no feed")
	case len(sc.feeds) > 0:
		log.Warn().Msg("feeds enabled but no ticker has a stream")
	}

	if running == 0 {
		// nothing live: print the board once
		line := board.NewRenderer(sc.precision).Render(sc.board.State().Quotes(), board.RenderSnapshot)
		_ = sc.Sink.WriteSnapshot(time.Now(), line)
		return ErrNoFeedsEnabled
	}

	// the first component to stop takes the others down with it
	var firstErr error
	for i := 0; i < running; i++ {
		err := <-errCh
		if err != nil && firstErr == nil && ctx.Err() == nil {
			firstErr = err
		}
		cancel()
	}
	return firstErr
}

// Close releases resources in reverse order of acquisition.
func (sc *ServiceContext) Close() error {
	for i := len(sc.closerChain) - 1; i >= 0; i-- {
		if err := sc.closerChain[i](); err != nil {
			log.Error().Err(err).Msg("error closing resource")
		}
	}
	sc.closerChain = nil
	return nil
}

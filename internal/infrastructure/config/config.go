package config

import (
	"errors"
	"strings"

	"github.com/BurntSushi/toml"

	"quoteboard/internal/domain/market"
	"quoteboard/internal/presentation/format"
)

var ErrNoTickers = errors.New("no tickers configured")

type Ticker struct {
	Ticker   string `toml:"ticker"`   // e.g. NASDAQ:IXIC
	Symbol   string `toml:"symbol"`   // display label
	Currency string `toml:"currency"` // quote currency code
	Stream   string `toml:"stream"`   // feed symbol, e.g. btcusdt
}

type Config struct {
	App struct {
		PrintEveryMin  int    `toml:"print_every_min"`
		LogLevel       string `toml:"log_level"`
		PriceDecimals  *int   `toml:"price_decimals"`
		ChangeDecimals *int   `toml:"change_decimals"`
	} `toml:"app"`

	Tickers []Ticker `toml:"tickers"`

	Feed struct {
		Binance struct {
			Enabled bool   `toml:"enabled"`
			WsURL   string `toml:"ws_url"` // e.g. wss://stream.binance.com:9443
		} `toml:"binance"`
	} `toml:"feed"`

	HTTP struct {
		Enabled bool   `toml:"enabled"`
		Addr    string `toml:"addr"`
	} `toml:"http"`

	Redis struct {
		Enabled    bool   `toml:"enabled"`
		Addr       string `toml:"addr"`
		Password   string `toml:"password"`
		DB         int    `toml:"db"`
		Prefix     string `toml:"prefix"`
		TTLSeconds int    `toml:"ttl_seconds"`
		Channel    string `toml:"channel"`
	} `toml:"redis"`

	SQLite struct {
		Enabled bool   `toml:"enabled"`
		Path    string `toml:"path"`
	} `toml:"sqlite"`

	Postgres struct {
		Enabled bool   `toml:"enabled"`
		DSN     string `toml:"dsn"`
	} `toml:"postgres"`
}

func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return prepare(&cfg)
}

// Parse loads a config from TOML text.
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, err
	}
	return prepare(&cfg)
}

func prepare(cfg *Config) (*Config, error) {
	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.PrintEveryMin <= 0 {
		cfg.App.PrintEveryMin = 5
	}
	if strings.TrimSpace(cfg.App.LogLevel) == "" {
		cfg.App.LogLevel = "info"
	}
	if cfg.App.PriceDecimals == nil || *cfg.App.PriceDecimals < 0 {
		cfg.App.PriceDecimals = intPtr(format.DefaultDecimals)
	}
	if cfg.App.ChangeDecimals == nil || *cfg.App.ChangeDecimals < 0 {
		cfg.App.ChangeDecimals = intPtr(format.DefaultDecimals)
	}
	*cfg.App.PriceDecimals = format.ClampDecimals(*cfg.App.PriceDecimals)
	*cfg.App.ChangeDecimals = format.ClampDecimals(*cfg.App.ChangeDecimals)
	if len(cfg.Tickers) == 0 {
		for _, t := range market.HomeTickers() {
			cfg.Tickers = append(cfg.Tickers, Ticker{Ticker: t.Ticker, Symbol: t.Symbol})
		}
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if strings.TrimSpace(cfg.Redis.Prefix) == "" {
		cfg.Redis.Prefix = "quoteboard"
	}
}

func validate(cfg *Config) error {
	cfg.Tickers = normalizeTickers(cfg.Tickers)
	if len(cfg.Tickers) == 0 {
		return ErrNoTickers
	}

	if cfg.Feed.Binance.Enabled && strings.TrimSpace(cfg.Feed.Binance.WsURL) == "" {
		return errors.New("feed.binance.ws_url empty but enabled")
	}
	if cfg.Redis.Enabled && strings.TrimSpace(cfg.Redis.Addr) == "" {
		return errors.New("redis.addr empty but enabled")
	}
	if cfg.SQLite.Enabled && strings.TrimSpace(cfg.SQLite.Path) == "" {
		return errors.New("sqlite.path empty but enabled")
	}
	if cfg.Postgres.Enabled && strings.TrimSpace(cfg.Postgres.DSN) == "" {
		return errors.New("postgres.dsn empty but enabled")
	}
	return nil
}

// normalizeTickers trims and upper-cases identifiers, drops empty and
// duplicate tickers, and fills in a missing symbol or currency.
func normalizeTickers(in []Ticker) []Ticker {
	out := make([]Ticker, 0, len(in))
	seen := map[string]struct{}{}
	for _, t := range in {
		id := strings.ToUpper(strings.TrimSpace(t.Ticker))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		t.Ticker = id
		t.Symbol = strings.TrimSpace(t.Symbol)
		if t.Symbol == "" {
			t.Symbol = id
			if _, code, ok := strings.Cut(id, ":"); ok && code != "" {
				t.Symbol = code
			}
		}
		t.Currency = strings.ToUpper(strings.TrimSpace(t.Currency))
		if t.Currency == "" {
			t.Currency = market.CurrencyForTicker(id)
		}
		t.Stream = strings.ToUpper(strings.TrimSpace(t.Stream))
		out = append(out, t)
	}
	return out
}

// EnabledFeeds lists the names of feeds turned on in the config.
func (c *Config) EnabledFeeds() []string {
	var out []string
	if c.Feed.Binance.Enabled {
		out = append(out, "BINANCE")
	}
	return out
}

// FeedURL returns the websocket base URL configured for the named feed.
func (c *Config) FeedURL(name string) string {
	switch name {
	case "BINANCE":
		return c.Feed.Binance.WsURL
	}
	return ""
}

func intPtr(v int) *int { return &v }

package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"quoteboard/internal/infrastructure/config"
	"quoteboard/internal/infrastructure/logger"
	"quoteboard/internal/infrastructure/svc"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.Setup("info")

	configPath := flag.String("config", "configs/config.toml", "path to config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("load config failed")
	}
	logger.Setup(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, err := svc.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init failed")
	}
	defer sc.Close()

	log.Info().
		Str("config", *configPath).
		Int("tickers", len(cfg.Tickers)).
		Int("print_every_min", cfg.App.PrintEveryMin).
		Int("price_decimals", *cfg.App.PriceDecimals).
		Msg("quoteboard started")

	if err := sc.Run(ctx); err != nil {
		if errors.Is(err, svc.ErrNoFeedsEnabled) {
			log.Warn().Msg("no live feed, board printed once")
			return
		}
		log.Error().Err(err).Msg("quoteboard exited")
	}
}

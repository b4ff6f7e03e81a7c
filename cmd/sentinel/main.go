package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"StockSage/internal/app"
	"StockSage/internal/config"
	"StockSage/internal/model"
	"StockSage/internal/notifier"
	"StockSage/internal/recorder"
	"StockSage/internal/scheduler"
	"StockSage/internal/store"
	"StockSage/internal/watchlist"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	config.SetupLogger(cfg.Logging.Level, cfg.Logging.Pretty)
	if err := cfg.ValidateBot(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Str("config", cfgPath).Msg("StockSage sentinel starting")

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init fetcher and cache
	fetcher, err := app.NewFetcher(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init fetcher")
	}
	log.Info().Str("provider", fetcher.Name()).Msg("data source ready")

	cache, closer, err := app.NewCache(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Cache.Backend).Msg("init cache")
	}
	if closer != nil {
		defer closer.Close()
	}

	col, err := app.NewCollector(cfg, fetcher, cache)
	if err != nil {
		log.Fatal().Err(err).Msg("init collector")
	}

	// Init watchlist
	wlStore, err := store.NewFileStore(cfg.Watchlist.File)
	if err != nil {
		log.Fatal().Err(err).Msg("open watchlist store")
	}
	wl, err := watchlist.NewManager(ctx, wlStore, cfg.Watchlist.Symbols)
	if err != nil {
		log.Fatal().Err(err).Msg("init watchlist")
	}
	log.Info().Strs("symbols", wl.List()).Msg("watchlist loaded")

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0755); err != nil {
			log.Warn().Err(err).Msg("create database directory")
		}
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init scheduler
	tf, _ := model.ParseTimeframe(cfg.Schedule.Timeframe)
	sched := scheduler.NewScheduler(ctx, col, wl, tn, rec, tf)
	if err := sched.RegisterAll(cfg.Schedule.EvaluateCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, evaluating watchlist now")
		if err := sched.StartEvaluation(); err != nil {
			log.Warn().Err(err).Msg("initial evaluation not started")
		}
	}

	log.Info().Msg("StockSage sentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
}

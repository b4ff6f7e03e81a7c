// Package app builds the collaborators shared by the command-line entry
// points from a loaded configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"StockSage/internal/analysis"
	"StockSage/internal/collector"
	"StockSage/internal/config"
	"StockSage/internal/store"
)

// NewFetcher returns the configured market data provider.
func NewFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.DataSource.Provider {
	case "yahoo":
		return collector.NewYahooFetcher(cfg.Proxy), nil
	case "mock":
		return &collector.MockFetcher{Price: cfg.DataSource.MockPrice}, nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", cfg.DataSource.Provider)
	}
}

// NewCache returns the configured history cache. The closer is nil for
// backends without resources to release; a nil Store disables caching.
func NewCache(ctx context.Context, cfg *config.Config) (store.Store, io.Closer, error) {
	switch cfg.Cache.Backend {
	case "none":
		return nil, nil, nil
	case "memory":
		return store.NewMemoryStore(10 * time.Minute), nil, nil
	case "file":
		fs, err := store.NewFileStore(cfg.Cache.File)
		if err != nil {
			return nil, nil, err
		}
		return fs, nil, nil
	case "redis":
		rs, err := store.NewRedisStore(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return rs, rs, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// NewCollector wires fetcher, prediction client, cache and price
// precedence into a Collector.
func NewCollector(cfg *config.Config, fetcher collector.Fetcher, cache store.Store) (*collector.Collector, error) {
	var predictions collector.PredictionSource
	if cfg.Prediction.BaseURL != "" {
		predictions = collector.NewBackendClient(cfg.Prediction.BaseURL, cfg.Prediction.APIKey, cfg.Proxy)
	} else {
		log.Warn().Msg("prediction.base_url not set, reports will use the local trend only")
	}

	col := collector.NewCollector(fetcher, predictions, cache, cfg.Cache.TTL)
	resolver, err := analysis.NewResolver(cfg.Analysis.PricePrecedence)
	if err != nil {
		return nil, err
	}
	col.Resolver = resolver
	return col, nil
}

// Package collector gathers price history, quotes and predictions for a
// symbol and assembles them into a Report.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"StockSage/internal/analysis"
	"StockSage/internal/calculator"
	"StockSage/internal/model"
	"StockSage/internal/predictor"
	"StockSage/internal/store"
)

// Collector orchestrates data fetching and report computation.
type Collector struct {
	Fetcher     Fetcher
	Predictions PredictionSource // optional
	Cache       store.Store      // optional
	CacheTTL    time.Duration
	Predictor   *predictor.Predictor
	Resolver    *analysis.Resolver
	Now         func() time.Time
}

// NewCollector creates a new Collector with a time-seeded predictor and the
// default price precedence.
func NewCollector(fetcher Fetcher, predictions PredictionSource, cache store.Store, cacheTTL time.Duration) *Collector {
	resolver, _ := analysis.NewResolver(nil)
	return &Collector{
		Fetcher:     fetcher,
		Predictions: predictions,
		Cache:       cache,
		CacheTTL:    cacheTTL,
		Predictor:   predictor.New(nil),
		Resolver:    resolver,
		Now:         time.Now,
	}
}

// Collect builds a report for symbol. Only a failure to obtain any history
// is an error; quote and prediction failures are logged and left absent.
func (c *Collector) Collect(ctx context.Context, symbol string, tf model.Timeframe) (*model.Report, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, errors.New("empty symbol")
	}
	tf, err := model.ParseTimeframe(string(tf))
	if err != nil {
		return nil, err
	}

	history, err := c.history(ctx, symbol, tf)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		Symbol:      symbol,
		Timeframe:   tf,
		Source:      c.Fetcher.Name(),
		GeneratedAt: c.Now(),
		History:     history,
	}

	if q, err := c.Fetcher.FetchQuote(ctx, symbol); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("quote unavailable, using last close")
	} else if q > 0 {
		report.Quote = &q
	}

	if c.Predictions != nil {
		pred, err := c.Predictions.FetchPrediction(ctx, symbol, tf)
		if err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Str("timeframe", string(tf)).Msg("prediction unavailable")
		} else {
			report.Prediction = pred
		}
	}

	report.Stats = c.Resolver.CalculateStats(history, report.Prediction, report.Quote)
	report.Chart = c.Resolver.PrepareChartDataAt(history, report.Prediction, tf, report.GeneratedAt)
	report.Usable = analysis.IsPredictionUsable(report.Prediction)
	report.Forecast = c.Predictor.Predict(symbol, history)

	prices := model.Prices(history)
	if high, low, err := calculator.CalculateRange(prices, 0); err == nil {
		report.PeriodHigh, report.PeriodLow = high, low
	}
	report.LocalTrend = calculator.TechnicalTrend(prices)

	log.Info().
		Str("symbol", symbol).
		Str("timeframe", string(tf)).
		Int("points", len(history)).
		Bool("usable", report.Usable).
		Msg("report collected")
	return report, nil
}

func (c *Collector) history(ctx context.Context, symbol string, tf model.Timeframe) ([]model.HistoricalPoint, error) {
	days := tf.HistoryDays()
	key := fmt.Sprintf("history:%s:%s:%d", c.Fetcher.Name(), symbol, days)

	if c.Cache != nil {
		var cached []model.HistoricalPoint
		err := c.Cache.Get(ctx, key, &cached)
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
	}

	history, err := c.Fetcher.FetchHistory(ctx, symbol, days)
	if err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("history %s: %w", symbol, ErrNoData)
	}
	history = sortedCopy(history)

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, key, history, c.CacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return history, nil
}

// sortedCopy orders points by date without touching the provider's slice.
func sortedCopy(in []model.HistoricalPoint) []model.HistoricalPoint {
	out := append([]model.HistoricalPoint(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time().Before(out[j].Time()) })
	return out
}

package app

import (
	"context"
	"path/filepath"
	"testing"

	"StockSage/internal/analysis"
	"StockSage/internal/collector"
	"StockSage/internal/config"
	"StockSage/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.DataSource.Provider = "mock"
	cfg.DataSource.MockPrice = 42
	cfg.Cache.Backend = "memory"
	cfg.Cache.File = filepath.Join(t.TempDir(), "cache.json")
	return cfg
}

func TestNewFetcher(t *testing.T) {
	cfg := testConfig(t)
	f, err := NewFetcher(cfg)
	if err != nil {
		t.Fatalf("fetcher: %v", err)
	}
	if f.Name() != "mock" {
		t.Errorf("expected mock, got %s", f.Name())
	}

	cfg.DataSource.Provider = "yahoo"
	if f, _ := NewFetcher(cfg); f.Name() != "yahoo" {
		t.Errorf("expected yahoo, got %s", f.Name())
	}

	cfg.DataSource.Provider = "other"
	if _, err := NewFetcher(cfg); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewCache(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()
	for _, backend := range []string{"memory", "file"} {
		cfg.Cache.Backend = backend
		s, closer, err := NewCache(ctx, cfg)
		if err != nil || s == nil || closer != nil {
			t.Errorf("%s: unexpected result %v %v %v", backend, s, closer, err)
		}
	}
	cfg.Cache.Backend = "none"
	if s, _, err := NewCache(ctx, cfg); s != nil || err != nil {
		t.Errorf("expected no cache, got %v %v", s, err)
	}
}

func TestNewCollector(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analysis.PricePrecedence = []string{"derived"}
	f, _ := NewFetcher(cfg)
	col, err := NewCollector(cfg, f, nil)
	if err != nil {
		t.Fatalf("collector: %v", err)
	}
	if col.Predictions != nil {
		t.Error("expected no prediction source without base url")
	}
	if len(col.Resolver.Precedence) != 1 || col.Resolver.Precedence[0] != analysis.PriceDerived {
		t.Errorf("unexpected precedence %v", col.Resolver.Precedence)
	}

	report, err := col.Collect(context.Background(), "demo", model.Timeframe1D)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if report.Source != "mock" || report.Quote == nil || *report.Quote != 42 {
		t.Errorf("unexpected report %+v", report)
	}

	cfg.Prediction.BaseURL = "http://localhost:9"
	col, _ = NewCollector(cfg, f, nil)
	if _, ok := col.Predictions.(*collector.BackendClient); !ok {
		t.Errorf("expected backend client, got %T", col.Predictions)
	}

	cfg.Analysis.PricePrecedence = []string{"nope"}
	if _, err := NewCollector(cfg, f, nil); err == nil {
		t.Error("expected precedence error")
	}
}

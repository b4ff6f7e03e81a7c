package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const sampleYAML = `
telegram:
  bot_token: "file-token"
  chat_id: "1001"
prediction:
  base_url: "http://predict.local"
data_source:
  provider: Mock
cache:
  backend: file
  ttl: 2h
schedule:
  timeframe: 1m
analysis:
  price_precedence: [target, explicit]
watchlist:
  symbols: [AAPL, MSFT]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	for _, k := range []string{"TELEGRAM_BOT_TOKEN", "DATA_PROVIDER", "REDIS_ADDR", "CRON_EVALUATE", "SQLITE_PATH"} {
		t.Setenv(k, "")
	}
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.BotToken != "file-token" || cfg.Prediction.BaseURL != "http://predict.local" {
		t.Errorf("file values not loaded: %+v", cfg)
	}
	if cfg.DataSource.Provider != "mock" {
		t.Errorf("expected provider lower-cased to mock, got %q", cfg.DataSource.Provider)
	}
	if cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("expected ttl 2h, got %s", cfg.Cache.TTL)
	}
	if len(cfg.Analysis.PricePrecedence) != 2 || len(cfg.Watchlist.Symbols) != 2 {
		t.Errorf("lists not loaded: %+v", cfg)
	}
	if cfg.Schedule.EvaluateCron != "0 30 16 * * 1-5" || cfg.Database.SQLitePath != "data/stocksage.db" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if err := cfg.ValidateBot(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	for _, k := range []string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "DATA_PROVIDER", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource.Provider != "yahoo" || cfg.Cache.Backend != "memory" || cfg.Schedule.Timeframe != "1w" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
	if err := cfg.ValidateBot(); err == nil {
		t.Error("expected missing telegram settings to fail bot validation")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("PREDICTION_API_KEY", "k")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CRON_EVALUATE", "0 0 9 * * *")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.BotToken != "env-token" || cfg.Prediction.APIKey != "k" {
		t.Errorf("env overrides not applied: %+v", cfg.Telegram)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("expected redis backend, got %+v", cfg.Cache)
	}
	if cfg.Schedule.EvaluateCron != "0 0 9 * * *" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected schedule/logging: %+v %+v", cfg.Schedule, cfg.Logging)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }, "data_source.provider"},
		{"backend", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"redis addr", func(c *Config) { c.Cache.Backend = "redis"; c.Cache.RedisAddr = "" }, "redis_addr"},
		{"timeframe", func(c *Config) { c.Schedule.Timeframe = "1y" }, "schedule.timeframe"},
		{"precedence", func(c *Config) { c.Analysis.PricePrecedence = []string{"oracle"} }, "price_precedence"},
	}
	for _, tt := range tests {
		cfg, err := Load(writeConfig(t, sampleYAML))
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		tt.mutate(cfg)
		err = cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error mentioning %q, got %v", tt.name, tt.want, err)
		}
	}
}

func TestSetupLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetupLogger("warn", false)
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn, got %s", zerolog.GlobalLevel())
	}
	SetupLogger("nonsense", true)
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("expected fallback to info, got %s", zerolog.GlobalLevel())
	}
}

// Package config loads the YAML configuration, .env files and environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockSage/internal/analysis"
	"StockSage/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Prediction struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"prediction"`
	DataSource struct {
		Provider  string  `yaml:"provider"`
		MockPrice float64 `yaml:"mock_price"`
	} `yaml:"data_source"`
	Cache struct {
		Backend       string        `yaml:"backend"`
		TTL           time.Duration `yaml:"ttl"`
		File          string        `yaml:"file"`
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		RedisPrefix   string        `yaml:"redis_prefix"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		EvaluateCron string `yaml:"evaluate_cron"`
		Timeframe    string `yaml:"timeframe"`
	} `yaml:"schedule"`
	Analysis struct {
		PricePrecedence []string `yaml:"price_precedence"`
	} `yaml:"analysis"`
	Watchlist struct {
		File    string   `yaml:"file"`
		Symbols []string `yaml:"symbols"`
	} `yaml:"watchlist"`
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Values already in the environment take priority over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("PREDICTION_BASE_URL"); v != "" {
		cfg.Prediction.BaseURL = v
	}
	if v := os.Getenv("PREDICTION_API_KEY"); v != "" {
		cfg.Prediction.APIKey = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
		cfg.Cache.Backend = "redis"
	}
	if v := os.Getenv("CRON_EVALUATE"); v != "" {
		cfg.Schedule.EvaluateCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.MockPrice == 0 {
		cfg.DataSource.MockPrice = 100
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 15 * time.Minute
	}
	if cfg.Cache.File == "" {
		cfg.Cache.File = "data/cache.json"
	}
	if cfg.Cache.RedisPrefix == "" {
		cfg.Cache.RedisPrefix = "stocksage:"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stocksage.db"
	}
	if cfg.Schedule.EvaluateCron == "" {
		cfg.Schedule.EvaluateCron = "0 30 16 * * 1-5"
	}
	if cfg.Schedule.Timeframe == "" {
		cfg.Schedule.Timeframe = string(model.Timeframe1W)
	}
	if cfg.Watchlist.File == "" {
		cfg.Watchlist.File = "data/watchlist.json"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	cfg.DataSource.Provider = strings.ToLower(cfg.DataSource.Provider)
	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)

	return cfg, nil
}

// Validate checks the settings shared by every entry point.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	default:
		return fmt.Errorf("data_source.provider %q is not supported (yahoo, mock)", c.DataSource.Provider)
	}
	switch c.Cache.Backend {
	case "memory", "file", "none":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend %q is not supported (memory, file, redis, none)", c.Cache.Backend)
	}
	if _, err := model.ParseTimeframe(c.Schedule.Timeframe); err != nil {
		return fmt.Errorf("schedule.timeframe: %w", err)
	}
	if _, err := analysis.NewResolver(c.Analysis.PricePrecedence); err != nil {
		return fmt.Errorf("analysis.price_precedence: %w", err)
	}
	return nil
}

// ValidateBot additionally checks what the Telegram bot needs.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}

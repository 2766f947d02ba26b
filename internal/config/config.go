package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port            int    `envconfig:"PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	JWTSecret       string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AccessKeyHash   string `envconfig:"ACCESS_KEY_HASH"`
	AllowedOrigins  string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	HistoryLimit    int    `envconfig:"HISTORY_LIMIT" default:"100"`
	StoreQuotaBytes int    `envconfig:"STORE_QUOTA_BYTES" default:"5242880"`
	PreviewWidth    int    `envconfig:"PREVIEW_WIDTH" default:"800"`
	PreviewHeight   int    `envconfig:"PREVIEW_HEIGHT" default:"600"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.PreviewWidth <= 0 || cfg.PreviewHeight <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", cfg.PreviewWidth, cfg.PreviewHeight)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

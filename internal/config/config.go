package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	IrisBaseURL string
	IrisWSURL   string

	BotPrefix string

	DatabaseURL string
	RedisURL    string

	// Upstream APIs.
	OWAPIBaseURL string
	CatAPIKey    string

	// Room the bot reports upstream breakage to. Optional.
	OperatorRoom string

	AllowedRooms []string

	// Outbound HTTP timeouts.
	HTTPTimeout  time.Duration
	StatsTimeout time.Duration
}

const (
	defaultOWAPIBaseURL = "http://127.0.0.1:4444"
	defaultHTTPTimeout  = 10 * time.Second
	defaultStatsTimeout = 20 * time.Second
)

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		OWAPIBaseURL: defaultOWAPIBaseURL,
		HTTPTimeout:  defaultHTTPTimeout,
		StatsTimeout: defaultStatsTimeout,
	}

	cfg.IrisBaseURL = strings.TrimSpace(os.Getenv("IRIS_BASE_URL"))
	cfg.IrisWSURL = strings.TrimSpace(os.Getenv("IRIS_WS_URL"))
	cfg.BotPrefix = strings.TrimSpace(os.Getenv("BOT_PREFIX"))

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))

	if v := strings.TrimSpace(os.Getenv("OWAPI_BASE_URL")); v != "" {
		cfg.OWAPIBaseURL = strings.TrimRight(v, "/")
	}
	cfg.CatAPIKey = strings.TrimSpace(os.Getenv("CAT_API_KEY"))
	cfg.OperatorRoom = strings.TrimSpace(os.Getenv("OPERATOR_ROOM"))

	if v := strings.TrimSpace(os.Getenv("ALLOWED_ROOMS")); v != "" {
		for _, p := range strings.Split(v, ",") {
			if s := strings.TrimSpace(p); s != "" {
				cfg.AllowedRooms = append(cfg.AllowedRooms, s)
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("HTTP_TIMEOUT_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeout = time.Duration(n) * time.Second
		}
	}
	if v := strings.TrimSpace(os.Getenv("STATS_TIMEOUT_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StatsTimeout = time.Duration(n) * time.Second
		}
	}

	if cfg.IrisBaseURL == "" {
		return nil, errors.New("IRIS_BASE_URL is required")
	}
	if cfg.IrisWSURL == "" {
		return nil, errors.New("IRIS_WS_URL is required")
	}
	if cfg.BotPrefix == "" {
		return nil, errors.New("BOT_PREFIX is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/i474232898/weather-lookup/internal/location"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

// Locator modes.
const (
	LocatorIP   = "ip"
	LocatorNone = "none"
)

type AppConfig struct {
	// OpenWeatherAPIKey may be empty; lookups then fail with "API key missing.".
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	HTTPTimeout time.Duration

	// DefaultPlace is queried when the position cannot be determined.
	DefaultPlace string

	// Locator selects how a position is found when the browser sends none.
	Locator      string
	IPAPIBaseURL string

	// Session retention.
	SessionMax           int           // max live sessions (0 = unlimited)
	SessionMaxAge        time.Duration // max idle time (0 = unlimited)
	SessionSweepInterval time.Duration

	LogLevel zapcore.Level

	Port string
}

// Load reads configuration from environment with sensible defaults. A .env
// file in the working directory is applied first if present.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = getenvDefault("OPENWEATHER_API_KEY", os.Getenv("VITE_APP_ID"))
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", providers.DefaultOpenWeatherBaseURL)

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.DefaultPlace = getenvDefault("DEFAULT_PLACE", location.DefaultPlace)

	cfg.Locator = getenvDefault("LOCATOR", LocatorIP)
	if cfg.Locator != LocatorIP && cfg.Locator != LocatorNone {
		return nil, fmt.Errorf("invalid LOCATOR %q: want %q or %q", cfg.Locator, LocatorIP, LocatorNone)
	}
	cfg.IPAPIBaseURL = getenvDefault("IPAPI_BASE_URL", location.DefaultIPAPIBaseURL)

	cfg.SessionMax = getenvInt("SESSION_MAX", 1000)

	maxAge, err := time.ParseDuration(getenvDefault("SESSION_MAX_AGE", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_MAX_AGE: %w", err)
	}
	cfg.SessionMaxAge = maxAge

	sweep, err := time.ParseDuration(getenvDefault("SESSION_SWEEP_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}
	cfg.SessionSweepInterval = sweep

	level, err := zapcore.ParseLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

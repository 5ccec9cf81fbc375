package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OPENWEATHER_API_KEY", "VITE_APP_ID", "OPENWEATHER_BASE_URL", "HTTP_TIMEOUT",
		"DEFAULT_PLACE", "LOCATOR", "IPAPI_BASE_URL", "SESSION_MAX", "SESSION_MAX_AGE",
		"SESSION_SWEEP_INTERVAL", "LOG_LEVEL", "PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.OpenWeatherAPIKey, "a missing key is not a load error")
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.OpenWeatherBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "New York", cfg.DefaultPlace)
	assert.Equal(t, LocatorIP, cfg.Locator)
	assert.Equal(t, 1000, cfg.SessionMax)
	assert.Equal(t, 30*time.Minute, cfg.SessionMaxAge)
	assert.Equal(t, 5*time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_APP_ID", "from-vite")
	t.Setenv("DEFAULT_PLACE", "Lisbon")
	t.Setenv("LOCATOR", "none")
	t.Setenv("SESSION_MAX", "not-a-number")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-vite", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "Lisbon", cfg.DefaultPlace)
	assert.Equal(t, LocatorNone, cfg.Locator)
	assert.Equal(t, 1000, cfg.SessionMax)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)

	t.Setenv("OPENWEATHER_API_KEY", "primary")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.OpenWeatherAPIKey)
}

func TestLoadInvalid(t *testing.T) {
	for key, val := range map[string]string{
		"HTTP_TIMEOUT":           "soon",
		"SESSION_MAX_AGE":        "forever",
		"SESSION_SWEEP_INTERVAL": "-",
		"LOCATOR":                "gps",
		"LOG_LEVEL":              "loud",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

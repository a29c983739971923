package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// clearEnv isolates a test from the developer's shell and any .env file.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OPENWEATHER_API_KEY", "OPENWEATHER_BASE_URL", "APP_ENV", "LOG_LEVEL",
		"HTTP_TIMEOUT", "DEFAULT_UNITS", "FORECAST_DAYS", "SESSION_MAX_AGE",
		"SESSION_SWEEP_INTERVAL", "PORT", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "empty.env"))
	if err := os.WriteFile(os.Getenv("CONFIG_FILE"), nil, 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "abc123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenWeatherAPIKey != "abc123" {
		t.Errorf("api key = %q", cfg.OpenWeatherAPIKey)
	}
	if cfg.OpenWeatherBaseURL != "https://api.openweathermap.org" {
		t.Errorf("base url = %q", cfg.OpenWeatherBaseURL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.DefaultUnits != weather.UnitsMetric {
		t.Errorf("units = %q", cfg.DefaultUnits)
	}
	if cfg.ForecastDays != 5 {
		t.Errorf("forecast days = %d", cfg.ForecastDays)
	}
	if cfg.SessionMaxAge != 30*time.Minute || cfg.SessionSweepInterval != 5*time.Minute {
		t.Errorf("session retention = %v / %v", cfg.SessionMaxAge, cfg.SessionSweepInterval)
	}
	if cfg.Port != "8080" || cfg.AppEnv != "dev" || cfg.LogLevel != slog.LevelInfo {
		t.Errorf("port=%q env=%q level=%v", cfg.Port, cfg.AppEnv, cfg.LogLevel)
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("otlp endpoint = %q", cfg.OTLPEndpoint)
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	t.Setenv("OPENWEATHER_API_KEY", "   ")
	if _, err := Load(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("blank key: expected ErrMissingAPIKey, got %v", err)
	}
}

func TestLoadFromConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "weather.env")
	content := "OPENWEATHER_API_KEY=from-file\nDEFAULT_UNITS=imperial\nHTTP_TIMEOUT=3s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	// godotenv does not override variables that already exist, even when empty.
	os.Unsetenv("OPENWEATHER_API_KEY")
	os.Unsetenv("DEFAULT_UNITS")
	os.Unsetenv("HTTP_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenWeatherAPIKey != "from-file" {
		t.Errorf("api key = %q", cfg.OpenWeatherAPIKey)
	}
	if cfg.DefaultUnits != weather.UnitsImperial {
		t.Errorf("units = %q", cfg.DefaultUnits)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("timeout = %v", cfg.HTTPTimeout)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "abc")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "does-not-exist.env"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing CONFIG_FILE")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	cases := map[string]string{
		"HTTP_TIMEOUT":    "soon",
		"DEFAULT_UNITS":   "kelvin",
		"FORECAST_DAYS":   "9",
		"LOG_LEVEL":       "chatty",
		"APP_ENV":         "staging",
		"SESSION_MAX_AGE": "forever",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("OPENWEATHER_API_KEY", "abc")
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

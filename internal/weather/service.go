package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/i474232898/weather-dashboard/internal/tracing"
)

const tracerName = "weather-client"

// MaxForecastDays is the horizon of the provider's 5 day / 3 hour forecast.
const MaxForecastDays = 5

// Service is the weather client used by the dashboard and the JSON API. It
// validates input, performs exactly one provider call per request and never
// retries or caches.
type Service struct {
	provider Provider
	timeout  time.Duration
	logger   *slog.Logger
}

// NewService creates a new Service. A non-positive timeout falls back to 10s.
func NewService(provider Provider, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// NormalizeCity trims surrounding whitespace and rejects empty names.
func NormalizeCity(city string) (string, error) {
	c := strings.TrimSpace(city)
	if c == "" {
		return "", ErrInvalidCity
	}
	return c, nil
}

// Fetch returns the current weather for city. Input is validated before any
// network activity.
func (s *Service) Fetch(ctx context.Context, city string, units Units) (Reading, error) {
	c, err := NormalizeCity(city)
	if err != nil {
		return Reading{}, err
	}
	if !units.Valid() {
		return Reading{}, fmt.Errorf("%w: %q", ErrInvalidUnits, units)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "fetch-current-weather", trace.WithAttributes(
		attribute.String("provider", s.provider.Name()),
		attribute.String("units", string(units)),
	))
	start := time.Now()
	r, err := s.provider.Fetch(ctx, c, units)
	tracing.RecordAnyErrorAndEndSpan(err, span)
	if err != nil {
		s.logger.Warn("provider fetch failed",
			"provider", s.provider.Name(), "city", c, "units", units, "error", err)
		return Reading{}, err
	}

	s.logger.Debug("provider fetch succeeded",
		"provider", s.provider.Name(), "city", c, "duration_ms", time.Since(start).Milliseconds())
	return r, nil
}

// Forecast fetches the multi-day forecast for city and aggregates it per day.
func (s *Service) Forecast(ctx context.Context, city string, units Units, days int) (Forecast, error) {
	c, err := NormalizeCity(city)
	if err != nil {
		return Forecast{}, err
	}
	if !units.Valid() {
		return Forecast{}, fmt.Errorf("%w: %q", ErrInvalidUnits, units)
	}
	if days < 1 || days > MaxForecastDays {
		return Forecast{}, fmt.Errorf("%w: %d (allowed 1-%d)", ErrInvalidDays, days, MaxForecastDays)
	}

	fp, ok := s.provider.(ForecastProvider)
	if !ok {
		return Forecast{}, fmt.Errorf("provider %s does not support forecasts", s.provider.Name())
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "fetch-forecast", trace.WithAttributes(
		attribute.String("provider", s.provider.Name()),
		attribute.Int("days", days),
	))
	samples, offset, err := fp.FetchForecast(ctx, c, units)
	tracing.RecordAnyErrorAndEndSpan(err, span)
	if err != nil {
		s.logger.Warn("provider forecast failed",
			"provider", s.provider.Name(), "city", c, "units", units, "error", err)
		return Forecast{}, err
	}

	return Forecast{
		City:  c,
		Units: units,
		Days:  AggregateForecast(samples, offset, days),
	}, nil
}

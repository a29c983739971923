package weather

import (
	"context"
)

// Provider abstracts the external weather data source (OpenWeatherMap).
// city is already trimmed and non-empty and units is valid when Service calls it.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city string, units Units) (Reading, error)
}

// ForecastProvider is implemented by providers that also serve forecasts.
type ForecastProvider interface {
	FetchForecast(ctx context.Context, city string, units Units) (samples []ForecastSample, utcOffsetSeconds int, err error)
}

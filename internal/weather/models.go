package weather

import (
	"fmt"
	"strings"
	"time"
)

// Units selects the unit system the provider reports values in.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// ParseUnits normalizes a user supplied unit preference. An empty value
// selects def.
func ParseUnits(s string, def Units) (Units, error) {
	switch Units(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return def, nil
	case UnitsMetric:
		return UnitsMetric, nil
	case UnitsImperial:
		return UnitsImperial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUnits, s)
	}
}

// Valid reports whether u is one of the supported unit systems.
func (u Units) Valid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// TemperatureLabel returns the display suffix for temperatures.
func (u Units) TemperatureLabel() string {
	if u == UnitsImperial {
		return "°F"
	}
	return "°C"
}

// WindSpeedLabel returns the display suffix for wind speed.
func (u Units) WindSpeedLabel() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// Reading is the normalized snapshot of one successful current-weather query.
// Values are copied verbatim from the provider; only the unit labels are added.
type Reading struct {
	City        string  `json:"city"`
	Country     string  `json:"country,omitempty"`
	Units       Units   `json:"units"`
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidityPercent"`
	Pressure    int     `json:"pressureHpa"`
	WindSpeed   float64 `json:"windSpeed"`
	Condition   string  `json:"condition"`
	IconID      string  `json:"iconId"`

	// Optional fields; absent in the provider payload means unset here.
	FeelsLike  *float64  `json:"feelsLike,omitempty"`
	Clouds     *int      `json:"cloudsPercent,omitempty"`
	Rain1h     float64   `json:"rain1hMm"`
	Sunrise    time.Time `json:"sunrise,omitzero"`
	Sunset     time.Time `json:"sunset,omitzero"`
	ObservedAt time.Time `json:"observedAt,omitzero"` // always UTC
}

// ForecastSample is one 3-hourly forecast entry as reported by a provider.
type ForecastSample struct {
	Timestamp   time.Time // UTC
	Temperature *float64
	RainMM      float64
	Condition   string
	IconID      string
}

// ForecastDay is the per-day summary of forecast samples.
type ForecastDay struct {
	Date      string  `json:"date"` // YYYY-MM-DD in the city's local time
	TempMin   float64 `json:"tempMin"`
	TempMax   float64 `json:"tempMax"`
	RainMM    float64 `json:"rainMm"`
	Condition string  `json:"condition"`
	IconID    string  `json:"iconId,omitempty"`
}

// Forecast is a multi-day forecast ordered by Date ascending.
type Forecast struct {
	City  string        `json:"city"`
	Units Units         `json:"units"`
	Days  []ForecastDay `json:"days"`
}

package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultOpenWeatherBaseURL is the public OpenWeatherMap API host.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org"

// OpenWeatherProvider implements weather.Provider and weather.ForecastProvider
// for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, baseURL, apiKey string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type owCondition struct {
	Description *string `json:"description" validate:"required"`
	Icon        *string `json:"icon" validate:"required"`
}

type owCurrent struct {
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
	Main *struct {
		Temp      *float64 `json:"temp" validate:"required"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *int     `json:"humidity" validate:"required,min=0,max=100"`
		Pressure  *int     `json:"pressure" validate:"required"`
	} `json:"main" validate:"required"`
	Wind *struct {
		Speed *float64 `json:"speed" validate:"required"`
	} `json:"wind" validate:"required"`
	Weather []owCondition `json:"weather" validate:"required,min=1,dive"`
	Clouds  *struct {
		All *int `json:"all"`
	} `json:"clouds"`
	Rain *struct {
		OneH float64 `json:"1h"`
	} `json:"rain"`
	Sys *struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

type owForecast struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main *struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Rain *struct {
			ThreeH float64 `json:"3h"`
		} `json:"rain"`
	} `json:"list" validate:"required"`
	City struct {
		Timezone int `json:"timezone"`
	} `json:"city"`
}

func (p *OpenWeatherProvider) newRequest(path, city string, units weather.Units) (*http.Request, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", p.apiKey)
	values.Set("units", string(units))
	values.Set("mode", "json")

	u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
	return http.NewRequest(http.MethodGet, u, nil)
}

// get performs the single GET and decodes a 200 body into v.
func (p *OpenWeatherProvider) get(ctx context.Context, path, city string, units weather.Units, v any) error {
	if p.apiKey == "" {
		return fmt.Errorf("%w: openweather api key is not configured", weather.ErrAuthentication)
	}

	req, err := p.newRequest(path, city, units)
	if err != nil {
		return err
	}

	resp, err := doRequest(ctx, p.client, p.circuit, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}
	return decodeBody(resp.Body, v)
}

// Fetch returns the current conditions for city.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, city string, units weather.Units) (weather.Reading, error) {
	var payload owCurrent
	if err := p.get(ctx, "/data/2.5/weather", city, units, &payload); err != nil {
		return weather.Reading{}, err
	}

	cond := payload.Weather[0]
	r := weather.Reading{
		City:        city,
		Units:       units,
		Temperature: *payload.Main.Temp,
		Humidity:    *payload.Main.Humidity,
		Pressure:    *payload.Main.Pressure,
		WindSpeed:   *payload.Wind.Speed,
		Condition:   *cond.Description,
		IconID:      *cond.Icon,
		FeelsLike:   payload.Main.FeelsLike,
		ObservedAt:  unixUTC(payload.Dt),
	}
	if payload.Clouds != nil {
		r.Clouds = payload.Clouds.All
	}
	if payload.Rain != nil {
		r.Rain1h = payload.Rain.OneH
	}
	if payload.Sys != nil {
		r.Country = payload.Sys.Country
		r.Sunrise = unixUTC(payload.Sys.Sunrise)
		r.Sunset = unixUTC(payload.Sys.Sunset)
	}
	return r, nil
}

// FetchForecast returns the raw 3-hourly samples and the city's UTC offset.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, city string, units weather.Units) ([]weather.ForecastSample, int, error) {
	var payload owForecast
	if err := p.get(ctx, "/data/2.5/forecast", city, units, &payload); err != nil {
		return nil, 0, err
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for _, item := range payload.List {
		if item.Dt == 0 {
			continue
		}
		s := weather.ForecastSample{Timestamp: unixUTC(item.Dt)}
		if item.Main != nil {
			s.Temperature = item.Main.Temp
		}
		if item.Rain != nil {
			s.RainMM = item.Rain.ThreeH
		}
		if len(item.Weather) > 0 {
			s.Condition = item.Weather[0].Description
			s.IconID = item.Weather[0].Icon
		}
		samples = append(samples, s)
	}
	return samples, payload.City.Timezone, nil
}

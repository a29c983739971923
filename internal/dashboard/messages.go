package dashboard

import (
	"errors"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	MsgInvalidCity     = "Please enter a city name"
	MsgInvalidUnits    = "Please choose metric or imperial units"
	MsgInvalidDays     = "Forecast length must be between 1 and 5 days"
	MsgCityNotFound    = "City not found"
	MsgAuthentication  = "Weather service rejected the API key"
	MsgRateLimited     = "Too many requests, please wait a moment and retry"
	MsgMalformed       = "Weather service returned an unexpected response"
	MsgNetwork         = "Network error, please retry"
	MsgProviderFailure = "Weather service error, please retry"
)

// ErrorMessage turns a client error into the one-line banner text shown to
// the user.
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, weather.ErrInvalidCity):
		return MsgInvalidCity
	case errors.Is(err, weather.ErrInvalidUnits):
		return MsgInvalidUnits
	case errors.Is(err, weather.ErrInvalidDays):
		return MsgInvalidDays
	case errors.Is(err, weather.ErrCityNotFound):
		return MsgCityNotFound
	case errors.Is(err, weather.ErrAuthentication):
		return MsgAuthentication
	case errors.Is(err, weather.ErrRateLimited):
		return MsgRateLimited
	case errors.Is(err, weather.ErrMalformedResponse):
		return MsgMalformed
	case errors.Is(err, weather.ErrNetwork):
		return MsgNetwork
	default:
		return MsgProviderFailure
	}
}

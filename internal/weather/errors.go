package weather

import "errors"

// Errors returned by Service and providers. Callers classify with errors.Is;
// the returned error usually wraps one of these with extra context.
var (
	ErrInvalidCity       = errors.New("city must not be empty")
	ErrInvalidUnits      = errors.New("units must be metric or imperial")
	ErrInvalidDays       = errors.New("forecast days out of range")
	ErrCityNotFound      = errors.New("city not found")
	ErrAuthentication    = errors.New("provider rejected api key")
	ErrRateLimited       = errors.New("rate limited by provider")
	ErrMalformedResponse = errors.New("malformed provider response")
	ErrNetwork           = errors.New("network error")
	ErrUnexpectedStatus  = errors.New("unexpected provider status")
)

// IsInputError reports whether err was caused by caller input rather than the
// provider.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidCity) ||
		errors.Is(err, ErrInvalidUnits) ||
		errors.Is(err, ErrInvalidDays)
}

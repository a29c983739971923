package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// maxBodyBytes bounds how much of a provider response we are willing to read.
const maxBodyBytes = 1 << 20

var validate = validator.New()

var (
	errServerError  = errors.New("server error")
	errNoHTTPClient = errors.New("http client not configured")
)

// newCircuitBreaker trips after consecutive transport or 5xx failures so a dead
// provider fails fast instead of holding every request for the full timeout.
// It never retries. Requests abandoned by the caller say nothing about the
// provider and are not counted against it.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// doRequest performs a single attempt through the circuit breaker. Responses
// with status < 500 are handed back for status mapping; the caller owns the body.
func doRequest(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil, fmt.Errorf("%w: %v", context.Canceled, execErr)
			}
			return nil, execErr
		}
		if resp.StatusCode >= 500 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, fmt.Errorf("%w: circuit breaker open: %v", weather.ErrNetwork, err)
		case errors.Is(err, errServerError):
			return nil, fmt.Errorf("%w: %v", weather.ErrUnexpectedStatus, err)
		default:
			return nil, fmt.Errorf("%w: %v", weather.ErrNetwork, err)
		}
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// statusError maps a non-200 provider status to the weather error taxonomy.
func statusError(code int) error {
	switch code {
	case http.StatusNotFound:
		return weather.ErrCityNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d", weather.ErrAuthentication, code)
	case http.StatusTooManyRequests:
		return weather.ErrRateLimited
	default:
		return fmt.Errorf("%w: %d", weather.ErrUnexpectedStatus, code)
	}
}

// decodeBody reads a JSON body into v and checks it against its validate tags.
func decodeBody(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", weather.ErrNetwork, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", weather.ErrMalformedResponse, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", weather.ErrMalformedResponse, err)
	}
	return nil
}

func unixUTC(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

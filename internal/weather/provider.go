package weather

import (
	"context"
	"errors"
)

// Observation is a provider's raw current-conditions payload, before
// normalization into a Reading.
type Observation struct {
	Humidity    float64
	WindSpeed   float64
	Temperature float64
	Name        string
	IconCode    string
	Main        string
	Description string
}

// Provider abstracts the current-weather data source (OpenWeatherMap).
type Provider interface {
	Name() string
	// Configured reports ErrAPIKeyMissing when the provider cannot be called.
	Configured() error
	Current(ctx context.Context, q LocationQuery) (Observation, error)
}

// MsgFetchFailed is the generic message shown when no better one exists.
const MsgFetchFailed = "Failed to fetch"

// Error is a user-visible failure. Message is shown as-is; Err keeps the
// underlying cause for logs.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrAPIKeyMissing is returned before any network call when no API key is set.
var ErrAPIKeyMissing = &Error{Message: "API key missing."}

// FetchFailed wraps cause under the generic failure message.
func FetchFailed(cause error) *Error {
	return &Error{Message: MsgFetchFailed, Err: cause}
}

// Message flattens any error into the string presented to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return MsgFetchFailed
}

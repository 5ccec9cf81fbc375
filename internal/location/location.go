package location

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultPlace is queried when the position cannot be determined.
const DefaultPlace = "New York"

// ErrDenied is returned by a locator when the user refused location access.
var ErrDenied = errors.New("location access denied")

// Locator is a one-shot position lookup. It either yields coordinates or fails.
type Locator interface {
	Locate(ctx context.Context) (weather.Coordinates, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (weather.Coordinates, error)

func (f LocatorFunc) Locate(ctx context.Context) (weather.Coordinates, error) {
	return f(ctx)
}

// Fixed is a position already known to the caller, e.g. sent by the browser.
type Fixed weather.Coordinates

func (f Fixed) Locate(context.Context) (weather.Coordinates, error) {
	return weather.Coordinates(f), nil
}

// Denied always fails as if the user refused location access.
type Denied struct{}

func (Denied) Locate(context.Context) (weather.Coordinates, error) {
	return weather.Coordinates{}, ErrDenied
}

// Resolve turns a locator outcome into a query. It never fails: any error,
// or a nil locator, falls back to fallback (DefaultPlace when empty) and is
// only logged.
func Resolve(ctx context.Context, l Locator, fallback string, logger *zap.Logger) weather.LocationQuery {
	if fallback == "" {
		fallback = DefaultPlace
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if l == nil {
		logger.Warn("location not allowed, loading default city",
			zap.String("place", fallback),
			zap.String("reason", "no locator"))
		return weather.PlaceQuery(fallback)
	}

	c, err := l.Locate(ctx)
	if err != nil {
		logger.Warn("location not allowed, loading default city",
			zap.String("place", fallback),
			zap.Error(err))
		return weather.PlaceQuery(fallback)
	}
	return weather.CoordinatesQuery(c)
}

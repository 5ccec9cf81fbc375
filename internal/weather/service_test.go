package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type stubProvider struct {
	configured error
	obs        Observation
	err        error
	calls      int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Configured() error { return p.configured }

func (p *stubProvider) Current(context.Context, LocationQuery) (Observation, error) {
	p.calls++
	return p.obs, p.err
}

func TestFetcherMissingAPIKey(t *testing.T) {
	p := &stubProvider{configured: ErrAPIKeyMissing}
	f := NewFetcher(p, zaptest.NewLogger(t))

	_, err := f.Fetch(context.Background(), PlaceQuery("Paris"))
	require.Error(t, err)
	assert.Equal(t, "API key missing.", Message(err))
	assert.Zero(t, p.calls, "no provider call expected")
}

func TestFetcherNilProvider(t *testing.T) {
	f := NewFetcher(nil, nil)
	assert.ErrorIs(t, f.Check(), ErrAPIKeyMissing)
}

func TestFetcherSuccess(t *testing.T) {
	p := &stubProvider{obs: Observation{Humidity: 50, WindSpeed: 2, Temperature: 9.6, Name: "Oslo", IconCode: "13n", Main: "Snow", Description: "snow"}}
	f := NewFetcher(p, zaptest.NewLogger(t))

	r, err := f.Fetch(context.Background(), CoordinatesQuery(Coordinates{Lat: 59.9, Lon: 10.7}))
	require.NoError(t, err)
	assert.Equal(t, 10, r.Temperature)
	assert.Equal(t, "2.00", r.WindSpeed)
	assert.Equal(t, CategorySnow, r.Category)
	assert.Equal(t, 1, p.calls)
}

func TestFetcherErrorMessages(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"raw error", cause, "Failed to fetch"},
		{"provider message", &Error{Message: "city not found"}, "city not found"},
		{"generic", FetchFailed(cause), "Failed to fetch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFetcher(&stubProvider{err: tt.err}, zaptest.NewLogger(t))
			_, err := f.Fetch(context.Background(), PlaceQuery("x"))
			require.Error(t, err)

			var werr *Error
			require.ErrorAs(t, err, &werr)
			assert.Equal(t, tt.want, werr.Message)
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Failed to fetch", Message(errors.New("boom")))
	assert.Equal(t, "Failed to fetch", Message(&Error{}))
	assert.Equal(t, "city not found", Message(&Error{Message: "city not found"}))

	cause := errors.New("eof")
	assert.ErrorIs(t, FetchFailed(cause), cause)
}

func TestFetcherLogsRefusalOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := NewFetcher(&stubProvider{configured: ErrAPIKeyMissing}, zap.New(core))

	_, err := f.Fetch(context.Background(), PlaceQuery("Paris"))
	require.ErrorIs(t, err, ErrAPIKeyMissing)

	refusals := logs.FilterMessage("weather fetch refused")
	require.Equal(t, 1, refusals.Len())
	assert.Equal(t, zapcore.ErrorLevel, refusals.All()[0].Level)
	assert.Equal(t, 1, logs.Len())
}

package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-lookup/internal/weather"
)

func TestIPLocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json/203.0.113.7":
			_, _ = w.Write([]byte(`{"status":"success","lat":52.52,"lon":13.405}`))
		case "/json/127.0.0.1":
			_, _ = w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
		default:
			http.Error(w, "nope", http.StatusTooManyRequests)
		}
	}))
	defer srv.Close()

	base := srv.URL + "/json/"

	c, err := NewIPLocator(srv.Client(), base, "203.0.113.7").Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, weather.Coordinates{Lat: 52.52, Lon: 13.405}, c)

	_, err = NewIPLocator(srv.Client(), base, "127.0.0.1").Locate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved range")

	_, err = NewIPLocator(srv.Client(), base, "198.51.100.1").Locate(context.Background())
	require.Error(t, err)
}

func TestIPLocatorFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer srv.Close()

	q := Resolve(context.Background(), NewIPLocator(srv.Client(), srv.URL, "10.0.0.1"), "", nil)
	assert.Equal(t, weather.PlaceQuery("New York"), q)
}

package location

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultIPAPIBaseURL resolves an IP address to an approximate position.
const DefaultIPAPIBaseURL = "http://ip-api.com/json/"

// IPLocator looks up the approximate position of a client IP address. It is
// the server-side stand-in for a device location service.
type IPLocator struct {
	client  *http.Client
	baseURL string
	ip      string
}

// NewIPLocator creates a locator for ip. An empty ip asks the service about
// the caller's own address.
func NewIPLocator(client *http.Client, baseURL, ip string) *IPLocator {
	if baseURL == "" {
		baseURL = DefaultIPAPIBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &IPLocator{client: client, baseURL: baseURL, ip: ip}
}

func (l *IPLocator) Locate(ctx context.Context) (weather.Coordinates, error) {
	u, err := url.JoinPath(l.baseURL, l.ip)
	if err != nil {
		return weather.Coordinates{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?fields=status,message,lat,lon", nil)
	if err != nil {
		return weather.Coordinates{}, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return weather.Coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return weather.Coordinates{}, fmt.Errorf("ip lookup: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Coordinates{}, err
	}
	if payload.Status != "success" {
		return weather.Coordinates{}, fmt.Errorf("ip lookup failed: %s", payload.Message)
	}

	return weather.Coordinates{Lat: payload.Lat, Lon: payload.Lon}, nil
}

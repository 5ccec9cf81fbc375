package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultOpenWeatherBaseURL is the "current weather" endpoint.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

var errMalformedPayload = errors.New("malformed openweather payload")

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// Option customizes an OpenWeatherProvider.
type Option func(*OpenWeatherProvider)

// WithBaseURL points the provider at another endpoint, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(p *OpenWeatherProvider) {
		if u != "" {
			p.baseURL = u
		}
	}
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	p := &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherBaseURL,
		client:  client,
		circuit: newCircuitBreaker("openweather"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Configured() error {
	if p.apiKey == "" {
		return weather.ErrAPIKeyMissing
	}
	return nil
}

// requestURL builds the query; place names are URL-encoded by url.Values.
func (p *OpenWeatherProvider) requestURL(q weather.LocationQuery) string {
	values := url.Values{}
	if q.IsCoordinates() {
		c := q.Coordinates()
		values.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))
	} else {
		values.Set("q", q.PlaceName())
	}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	return fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
}

type openWeatherPayload struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Main    *struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

func (p *OpenWeatherProvider) Current(ctx context.Context, q weather.LocationQuery) (weather.Observation, error) {
	if err := p.Configured(); err != nil {
		return weather.Observation{}, err
	}

	req, err := http.NewRequest(http.MethodGet, p.requestURL(q), nil)
	if err != nil {
		return weather.Observation{}, weather.FetchFailed(err)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, req)
	if err != nil {
		return weather.Observation{}, weather.FetchFailed(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return weather.Observation{}, weather.FetchFailed(err)
	}

	// The body is parsed before the status is looked at: error responses
	// carry the reason in "message".
	var payload openWeatherPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Observation{}, weather.FetchFailed(fmt.Errorf("%w: %v", errMalformedPayload, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		cause := fmt.Errorf("openweather status %d", resp.StatusCode)
		if payload.Message != "" {
			return weather.Observation{}, &weather.Error{Message: payload.Message, Err: cause}
		}
		return weather.Observation{}, weather.FetchFailed(cause)
	}

	if payload.Main == nil || payload.Wind == nil || len(payload.Weather) == 0 {
		return weather.Observation{}, weather.FetchFailed(errMalformedPayload)
	}

	cond := payload.Weather[0]
	return weather.Observation{
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		Temperature: payload.Main.Temp,
		Name:        payload.Name,
		IconCode:    cond.Icon,
		Main:        cond.Main,
		Description: cond.Description,
	}, nil
}

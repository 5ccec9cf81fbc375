package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	errServerError  = errors.New("server error")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// newCircuitBreaker returns the breaker shared by all calls of one provider.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doRequest executes a single request through the circuit breaker. There are
// no retries. Transport failures and 5xx responses count against the breaker;
// any other status is returned to the caller, which decides what it means.
// On errServerError the response is still returned so its body can be read.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	req *http.Request,
) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req = req.WithContext(ctx)

	var resp *http.Response
	_, err := cb.Execute(func() (interface{}, error) {
		r, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		resp = r
		if r.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %d", errServerError, r.StatusCode)
		}
		return nil, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
	}
	if err != nil && !errors.Is(err, errServerError) {
		return nil, err
	}
	return resp, nil
}

package widget

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/i474232898/weather-lookup/internal/location"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// Fetcher is the part of weather.Fetcher the widget needs.
type Fetcher interface {
	Check() error
	Fetch(ctx context.Context, q weather.LocationQuery) (weather.Reading, error)
}

// Widget is one weather lookup: it resolves a location once on mount, then
// fetches on every search. All state changes go through the State transitions.
type Widget struct {
	fetcher      Fetcher
	defaultPlace string
	logger       *zap.Logger

	mountOnce sync.Once

	mu     sync.RWMutex
	state  State
	notify func(State)
}

// Option customizes a Widget.
type Option func(*Widget)

// WithDefaultPlace overrides the place used when location is unavailable.
func WithDefaultPlace(place string) Option {
	return func(w *Widget) { w.defaultPlace = place }
}

// WithLogger sets the widget logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Widget) { w.logger = l }
}

// WithNotify registers a callback run after every state change.
func WithNotify(fn func(State)) Option {
	return func(w *Widget) { w.notify = fn }
}

// New creates a new Widget in its initial state.
func New(fetcher Fetcher, opts ...Option) *Widget {
	w := &Widget{
		fetcher:      fetcher,
		defaultPlace: location.DefaultPlace,
		logger:       zap.NewNop(),
		state:        InitialState(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns a copy of the current state.
func (w *Widget) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s := w.state
	if s.Reading != nil {
		r := *s.Reading
		s.Reading = &r
	}
	return s
}

// Mount resolves the location and runs the first fetch. Only the first call
// does anything; it reports whether this call was the one that mounted.
func (w *Widget) Mount(ctx context.Context, l location.Locator) bool {
	mounted := false
	w.mountOnce.Do(func() {
		mounted = true
		q := location.Resolve(ctx, l, w.defaultPlace, w.logger)
		w.fetch(ctx, q)
	})
	return mounted
}

// Search fetches the weather for the trimmed input. Blank input is ignored
// and reported by returning false.
func (w *Widget) Search(ctx context.Context, input string) bool {
	value := strings.TrimSpace(input)
	if value == "" {
		return false
	}
	// A search counts as the widget's first activation: a later Mount must
	// not replace the user's result with the resolved location.
	w.mountOnce.Do(func() {})
	w.fetch(ctx, weather.PlaceQuery(value))
	return true
}

// fetch runs one lookup. Overlapping fetches are not sequenced: whichever
// finishes last decides the final state.
func (w *Widget) fetch(ctx context.Context, q weather.LocationQuery) {
	if err := w.fetcher.Check(); err != nil {
		w.apply(func(s State) State { return s.FetchFailed(weather.Message(err)) })
		return
	}

	w.apply(State.StartFetch)

	finished := false
	defer func() {
		// Loading must end even if the fetch panics.
		if !finished {
			w.apply(func(s State) State { return s.FetchFailed(weather.MsgFetchFailed) })
		}
	}()

	r, err := w.fetcher.Fetch(ctx, q)
	finished = true
	if err != nil {
		w.apply(func(s State) State { return s.FetchFailed(weather.Message(err)) })
		return
	}
	w.apply(func(s State) State { return s.FetchSucceeded(r) })
}

func (w *Widget) apply(transition func(State) State) {
	w.mu.Lock()
	w.state = transition(w.state)
	s := w.state
	w.mu.Unlock()

	if w.notify != nil {
		w.notify(s)
	}
}

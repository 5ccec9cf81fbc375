package widget

import "github.com/i474232898/weather-lookup/internal/weather"

// State is what the widget displays. At most one of Loading, Error and
// Reading is shown; see Render for the precedence.
type State struct {
	Loading bool             `json:"loading"`
	Error   string           `json:"error,omitempty"`
	Reading *weather.Reading `json:"reading,omitempty"`
	Theme   weather.Theme    `json:"theme"`
}

// InitialState is the state before any fetch.
func InitialState() State {
	return State{Theme: weather.ThemeDefault}
}

// StartFetch marks a fetch as in flight. The theme is left as it was.
func (s State) StartFetch() State {
	s.Loading = true
	s.Error = ""
	s.Reading = nil
	return s
}

// FetchSucceeded installs a fresh reading and derives the theme from it.
func (s State) FetchSucceeded(r weather.Reading) State {
	s.Loading = false
	s.Error = ""
	s.Reading = &r
	s.Theme = weather.ThemeFor(r.Category)
	return s
}

// FetchFailed records msg and drops the reading. The theme is left as it was.
func (s State) FetchFailed(msg string) State {
	s.Loading = false
	s.Error = msg
	s.Reading = nil
	return s
}

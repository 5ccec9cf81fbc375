package widget

import (
	"embed"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Mode is the branch of the view that is displayed.
type Mode string

const (
	ModeEmpty   Mode = "empty"
	ModeLoading Mode = "loading"
	ModeError   Mode = "error"
	ModeReading Mode = "reading"
)

// View is the display tree for a State.
type View struct {
	Mode        Mode          `json:"mode"`
	Theme       weather.Theme `json:"theme"`
	Error       string        `json:"error,omitempty"`
	IconURL     string        `json:"icon,omitempty"`
	Temperature string        `json:"temperature,omitempty"`
	Location    string        `json:"location,omitempty"`
	Description string        `json:"description,omitempty"`
	Humidity    string        `json:"humidity,omitempty"`
	WindSpeed   string        `json:"windSpeed,omitempty"`
}

// descriptionEmoji is checked against the description text on its own,
// so it may not agree with the reading's category.
var descriptionEmoji = []struct {
	substr string
	emoji  string
}{
	{"cloud", "☁️ "},
	{"rain", "🌧️ "},
	{"clear", "☀️ "},
	{"snow", "❄️ "},
}

// DecorateDescription prefixes the description with every matching emoji.
func DecorateDescription(desc string) string {
	var b strings.Builder
	for _, e := range descriptionEmoji {
		if strings.Contains(desc, e.substr) {
			b.WriteString(e.emoji)
		}
	}
	b.WriteString(desc)
	return b.String()
}

// Render maps a state to its view: loading first, then error, then reading.
func Render(s State) View {
	v := View{Mode: ModeEmpty, Theme: s.Theme}

	switch {
	case s.Loading:
		v.Mode = ModeLoading
	case s.Error != "":
		v.Mode = ModeError
		v.Error = s.Error
	case s.Reading != nil:
		r := s.Reading
		v.Mode = ModeReading
		v.IconURL = r.IconURL
		v.Temperature = strconv.Itoa(r.Temperature) + "°C"
		v.Location = r.Location
		v.Description = DecorateDescription(r.Description)
		v.Humidity = strconv.Itoa(r.Humidity) + "%"
		v.WindSpeed = r.WindSpeed + " km/h"
	}

	return v
}

//go:embed templates/widget.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/widget.html"))

// RenderHTML writes the full widget page for s.
func RenderHTML(w io.Writer, s State) error {
	return pageTemplate.Execute(w, Render(s))
}
